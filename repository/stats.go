package repository

import (
	"context"
	"fmt"
	"os"

	"lekturai/model"
	"lekturai/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsFetchBatchLimit is the store-imposed cap on "fetch by list of IDs"
// lookups. Callers needing more documents must chunk their ID lists.
const StatsFetchBatchLimit = 10

func GetStatsRepo(client *mongo.Client) *StatsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("STATS_COLLECTION")
	return &StatsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type StatsRepo struct {
	MongoCollection *mongo.Collection
}

// FindStats returns the user's all-time stats record, or nil if none exists.
func (r *StatsRepo) FindStats(ctx context.Context, userID string) (*model.UserAllTimeStats, error) {
	timer := utils.TrackDBOperation("find", "stats")
	defer timer.ObserveDuration()

	var stats model.UserAllTimeStats
	filter := bson.D{{Key: "user_id", Value: userID}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&stats)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "stats_lookup_error")
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	return &stats, nil
}

// UpsertStats writes the full record, creating it if absent.
func (r *StatsRepo) UpsertStats(ctx context.Context, stats *model.UserAllTimeStats) error {
	timer := utils.TrackDBOperation("upsert", "stats")
	defer timer.ObserveDuration()

	filter := bson.D{{Key: "user_id", Value: stats.UserID}}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.MongoCollection.ReplaceOne(ctx, filter, stats, opts); err != nil {
		utils.TrackError("database", "stats_upsert_failed")
		return fmt.Errorf("failed to write stats: %w", err)
	}

	return nil
}

// UpdateStatsFields applies a merge patch to an existing record. Used by the
// reconciliation job, which only ever touches current_streak.
func (r *StatsRepo) UpdateStatsFields(ctx context.Context, userID string, fields bson.M) error {
	timer := utils.TrackDBOperation("update", "stats")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": fields}

	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update); err != nil {
		utils.TrackError("database", "stats_update_failed")
		return fmt.Errorf("failed to update stats fields: %w", err)
	}

	return nil
}

// DeleteStats removes the record. Deleting an absent record is not an error.
func (r *StatsRepo) DeleteStats(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "stats")
	defer timer.ObserveDuration()

	filter := bson.D{{Key: "user_id", Value: userID}}
	if _, err := r.MongoCollection.DeleteOne(ctx, filter); err != nil {
		utils.TrackError("database", "stats_deletion_failed")
		return fmt.Errorf("failed to delete stats: %w", err)
	}

	return nil
}

// FindStatsByUserIDs fetches up to StatsFetchBatchLimit records in one round
// trip. Documents are decoded leniently so the aggregator can skip records
// with missing fields instead of failing the whole batch.
func (r *StatsRepo) FindStatsByUserIDs(ctx context.Context, userIDs []string) ([]model.CohortStatsDoc, error) {
	timer := utils.TrackDBOperation("find_many", "stats")
	defer timer.ObserveDuration()

	if len(userIDs) > StatsFetchBatchLimit {
		return nil, fmt.Errorf("batched stats lookup limited to %d IDs, got %d", StatsFetchBatchLimit, len(userIDs))
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{"user_id": bson.M{"$in": userIDs}}
	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "stats_batch_lookup_error")
		return nil, fmt.Errorf("failed to fetch stats batch: %w", err)
	}

	var docs []model.CohortStatsDoc
	if err := cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database", "stats_batch_decode_error")
		return nil, fmt.Errorf("failed to decode stats batch: %w", err)
	}

	return docs, nil
}
