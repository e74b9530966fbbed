package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"lekturai/model"
	"lekturai/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetHistoryRepo(client *mongo.Client) *HistoryRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("HISTORY_COLLECTION")
	return &HistoryRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type HistoryRepo struct {
	MongoCollection *mongo.Collection
}

func (r *HistoryRepo) AddEntry(ctx context.Context, entry *model.HistoryEntry) (interface{}, error) {
	timer := utils.TrackDBOperation("insert", "history")
	defer timer.ObserveDuration()

	if entry.UserID == "" {
		utils.TrackError("database", "invalid_history_entry")
		return nil, errors.New("user ID is required")
	}
	if entry.EntryID == "" {
		entry.EntryID = utils.GenerateID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	result, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "history_creation_failed")
		return nil, fmt.Errorf("failed to add history entry: %w", err)
	}

	return result.InsertedID, nil
}

// GetEntriesByRange returns the user's entries between two 1-based positions
// over a date-descending sort, optionally filtered by type. Positions mirror
// the app's "show me items 1..10, then 11..20" paging.
func (r *HistoryRepo) GetEntriesByRange(ctx context.Context, userID, typeFilter string, fromPos, toPos int) ([]model.HistoryEntry, error) {
	timer := utils.TrackDBOperation("find", "history")
	defer timer.ObserveDuration()

	limit := toPos - fromPos + 1
	if limit <= 0 {
		return nil, nil
	}
	offset := fromPos - 1
	if offset < 0 {
		offset = 0
	}

	filter := bson.M{"user_id": userID}
	if typeFilter != "" {
		filter["type"] = typeFilter
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "history_lookup_error")
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []model.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "history_decode_error")
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return entries, nil
}

func (r *HistoryRepo) DeleteEntry(ctx context.Context, userID, entryID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "history")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "entry_id": entryID}
	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "history_deletion_failed")
		return 0, fmt.Errorf("failed to delete history entry: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteUserEntries drops the user's whole history on account removal.
func (r *HistoryRepo) DeleteUserEntries(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "history")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "history_deletion_failed")
		return 0, fmt.Errorf("failed to delete history entries: %w", err)
	}

	return result.DeletedCount, nil
}
