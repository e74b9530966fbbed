package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps recently computed cohort averages in Redis so repeated
// school/class dashboard loads don't refetch the whole cohort from the
// document store. Entries are short-lived; staleness up to the TTL is fine
// for averages.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache connects to Redis and verifies the connection.
func NewStatsCache(redisURL string, ttl time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &StatsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func cohortKey(prefix, city, school, className string) string {
	return fmt.Sprintf("%s:%s:%s:%s", prefix, city, school, className)
}

// GetCohortAverages returns a cached value into dest, reporting a hit.
// Cache failures degrade to a miss so the caller recomputes.
func (sc *StatsCache) GetCohortAverages(ctx context.Context, prefix, school, city, className string, dest interface{}) bool {
	if sc == nil {
		return false
	}

	data, err := sc.client.Get(ctx, cohortKey(prefix, city, school, className)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("stats cache read failed: %v", err)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("stats cache decode failed: %v", err)
		return false
	}

	return true
}

// SetCohortAverages caches a computed value. Failures are logged and
// swallowed; caching is never worth failing a request over.
func (sc *StatsCache) SetCohortAverages(ctx context.Context, prefix, school, city, className string, value interface{}) {
	if sc == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("stats cache encode failed: %v", err)
		return
	}

	if err := sc.client.Set(ctx, cohortKey(prefix, city, school, className), data, sc.ttl).Err(); err != nil {
		log.Printf("stats cache write failed: %v", err)
	}
}
