package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := db.Collection(os.Getenv("USERS_COLLECTION"))
	statsCollection := db.Collection(os.Getenv("STATS_COLLECTION"))
	dailyCollection := db.Collection(os.Getenv("DAILY_STATS_COLLECTION"))
	historyCollection := db.Collection(os.Getenv("HISTORY_COLLECTION"))

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_index").
				SetUnique(true),
		},
		// Cohort resolution filters on city + school (+ class)
		{
			Keys: bson.D{
				{Key: "city", Value: 1},
				{Key: "school", Value: 1},
				{Key: "class_name", Value: 1},
			},
			Options: options.Index().
				SetName("cohort_index"),
		},
	}

	statsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("stats_user_index").
				SetUnique(true),
		},
	}

	dailyIndexes := []mongo.IndexModel{
		// One document per user per calendar day
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("daily_user_date").
				SetUnique(true),
		},
	}

	historyIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("history_user_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "type", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("history_user_type_date"),
		},
	}

	_, err := usersCollection.Indexes().CreateMany(ctx, userIndexes)
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	_, err = statsCollection.Indexes().CreateMany(ctx, statsIndexes)
	if err != nil {
		return fmt.Errorf("failed to create stats indexes: %w", err)
	}

	_, err = dailyCollection.Indexes().CreateMany(ctx, dailyIndexes)
	if err != nil {
		return fmt.Errorf("failed to create daily stats indexes: %w", err)
	}

	_, err = historyCollection.Indexes().CreateMany(ctx, historyIndexes)
	if err != nil {
		return fmt.Errorf("failed to create history indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
