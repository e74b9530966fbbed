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

func GetUserRepo(client *mongo.Client) *UserRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("USERS_COLLECTION")
	return &UserRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) (interface{}, error) {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return nil, errors.New("email and password required")
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastLoginAt = now

	result, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		utils.TrackError("database", "user_creation_failed")
		return nil, errors.New("failed to add user to database")
	}

	return result.InsertedID, nil
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.D{{Key: "user_id", Value: userID}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.D{{Key: "email", Value: email}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	return &user, nil
}

// UpdateUserFields applies a merge patch and bumps updatedAt, the way every
// profile edit goes through.
func (r *UserRepo) UpdateUserFields(ctx context.Context, userID string, fields bson.M) (int64, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	fields["updatedAt"] = time.Now().UTC()
	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": fields}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "user_update_failed")
		return 0, fmt.Errorf("failed to update user: %w", err)
	}

	return result.ModifiedCount, nil
}

// RecordLogin stamps lastLoginAt and the client device parsed from the
// User-Agent header.
func (r *UserRepo) RecordLogin(ctx context.Context, userID, device string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{
		"lastLoginAt": time.Now().UTC(),
		"last_device": device,
	}}

	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update); err != nil {
		utils.TrackError("database", "login_stamp_failed")
		return fmt.Errorf("failed to record login: %w", err)
	}

	return nil
}

func (r *UserRepo) DeleteUserByID(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		utils.TrackError("database", "user_deletion_failed")
		return 0, err
	}

	return result.DeletedCount, nil
}

// FindCohortUserIDs resolves the set of users sharing a city and school, and
// optionally a class. An empty result is a valid cohort of zero members.
func (r *UserRepo) FindCohortUserIDs(ctx context.Context, city, school, className string) ([]string, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"city": city, "school": school}
	if className != "" {
		filter["class_name"] = className
	}

	opts := options.Find().SetProjection(bson.M{"user_id": 1})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "cohort_lookup_error")
		return nil, fmt.Errorf("failed to resolve cohort: %w", err)
	}

	var docs []struct {
		UserID string `bson:"user_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database", "cohort_decode_error")
		return nil, fmt.Errorf("failed to decode cohort: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.UserID)
	}
	return ids, nil
}

// ListUserIDs enumerates every user ID. The reconciliation job processes
// whatever this returns in one pass; callers with very large user sets are
// expected to supply their own paginated ID lists instead.
func (r *UserRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	opts := options.Find().SetProjection(bson.M{"user_id": 1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.TrackError("database", "user_list_error")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var docs []struct {
		UserID string `bson:"user_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database", "user_list_decode_error")
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.UserID)
	}
	return ids, nil
}
