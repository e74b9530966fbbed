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

// DailyWindowSize caps how many daily documents a user may hold. The cap is
// by document count, not calendar distance: after a long break the stale days
// age out one by one as new days arrive.
const DailyWindowSize = 10

func GetDailyStatsRepo(client *mongo.Client) *DailyStatsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("DAILY_STATS_COLLECTION")
	return &DailyStatsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type DailyStatsRepo struct {
	MongoCollection *mongo.Collection
}

// AddPoints adds points to the (user, date) document, creating it if absent.
func (r *DailyStatsRepo) AddPoints(ctx context.Context, userID, date string, points int64) error {
	timer := utils.TrackDBOperation("upsert", "daily_stats")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "date": date}
	update := bson.M{"$inc": bson.M{"points": points}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		utils.TrackError("database", "daily_upsert_failed")
		return fmt.Errorf("failed to add daily points: %w", err)
	}

	return nil
}

// EnsureDay creates a zero-point document for the (user, date) pair if none
// exists yet. Existing points are left untouched.
func (r *DailyStatsRepo) EnsureDay(ctx context.Context, userID, date string) error {
	timer := utils.TrackDBOperation("upsert", "daily_stats")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "date": date}
	update := bson.M{"$setOnInsert": bson.M{"points": int64(0)}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		utils.TrackError("database", "daily_ensure_failed")
		return fmt.Errorf("failed to ensure daily entry: %w", err)
	}

	return nil
}

// ListDays returns all daily documents for the user, newest date first.
func (r *DailyStatsRepo) ListDays(ctx context.Context, userID string) ([]model.DailyStats, error) {
	timer := utils.TrackDBOperation("find", "daily_stats")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "daily_list_error")
		return nil, fmt.Errorf("failed to list daily entries: %w", err)
	}

	var days []model.DailyStats
	if err := cursor.All(ctx, &days); err != nil {
		utils.TrackError("database", "daily_decode_error")
		return nil, fmt.Errorf("failed to decode daily entries: %w", err)
	}

	return days, nil
}

// DeleteDays removes the given dates for the user.
func (r *DailyStatsRepo) DeleteDays(ctx context.Context, userID string, dates []string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "daily_stats")
	defer timer.ObserveDuration()

	if len(dates) == 0 {
		return 0, nil
	}

	filter := bson.M{"user_id": userID, "date": bson.M{"$in": dates}}
	result, err := r.MongoCollection.DeleteMany(ctx, filter)
	if err != nil {
		utils.TrackError("database", "daily_deletion_failed")
		return 0, fmt.Errorf("failed to delete daily entries: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteAllDays drops every daily document for the user. Used when the user
// account is removed.
func (r *DailyStatsRepo) DeleteAllDays(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "daily_stats")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "daily_deletion_failed")
		return 0, fmt.Errorf("failed to delete daily entries: %w", err)
	}

	return result.DeletedCount, nil
}

// FindDaysForUsers returns every daily document for the given users dated on
// or after fromDate. The user list must respect StatsFetchBatchLimit; the
// aggregator chunks larger cohorts.
func (r *DailyStatsRepo) FindDaysForUsers(ctx context.Context, userIDs []string, fromDate string) ([]model.DailyStats, error) {
	timer := utils.TrackDBOperation("find_many", "daily_stats")
	defer timer.ObserveDuration()

	if len(userIDs) > StatsFetchBatchLimit {
		return nil, fmt.Errorf("batched daily lookup limited to %d IDs, got %d", StatsFetchBatchLimit, len(userIDs))
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"user_id": bson.M{"$in": userIDs},
		"date":    bson.M{"$gte": fromDate},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "daily_batch_lookup_error")
		return nil, fmt.Errorf("failed to fetch daily batch: %w", err)
	}

	var days []model.DailyStats
	if err := cursor.All(ctx, &days); err != nil {
		utils.TrackError("database", "daily_batch_decode_error")
		return nil, fmt.Errorf("failed to decode daily batch: %w", err)
	}

	return days, nil
}
