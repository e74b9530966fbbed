package repository

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"lekturai/model"
	"lekturai/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetSchoolRepo(client *mongo.Client) *SchoolRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SCHOOLS_COLLECTION")
	return &SchoolRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type SchoolRepo struct {
	MongoCollection *mongo.Collection
}

// prefixRange builds the [start, end) pair for a case-sensitive prefix search
// over a string field: for "Wroc" the end bound is "Wrod". The bound is
// computed on the last rune, not the last byte, so Polish names like "Łódź"
// don't get a bound inside a UTF-8 sequence. Runes already at the maximum
// are dropped and the carry moves left; an empty end means "no upper bound".
func prefixRange(phrase string) (string, string) {
	runes := []rune(phrase)
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < utf8.MaxRune {
			runes[i]++
			return phrase, string(runes[:i+1])
		}
	}
	return phrase, ""
}

func (r *SchoolRepo) findByPrefix(ctx context.Context, field, phrase string) ([]model.School, error) {
	timer := utils.TrackDBOperation("find", "schools")
	defer timer.ObserveDuration()

	filter := bson.M{}
	if phrase != "" {
		start, end := prefixRange(phrase)
		bounds := bson.M{"$gte": start}
		if end != "" {
			bounds["$lt"] = end
		}
		filter[field] = bounds
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "school_lookup_error")
		return nil, fmt.Errorf("failed to search schools: %w", err)
	}

	var schools []model.School
	if err := cursor.All(ctx, &schools); err != nil {
		utils.TrackError("database", "school_decode_error")
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}

	return schools, nil
}

// FindByCity searches schools whose city starts with the phrase. An empty
// phrase lists everything.
func (r *SchoolRepo) FindByCity(ctx context.Context, cityPhrase string) ([]model.School, error) {
	return r.findByPrefix(ctx, "city", cityPhrase)
}

// FindByName searches schools whose name starts with the phrase.
func (r *SchoolRepo) FindByName(ctx context.Context, namePhrase string) ([]model.School, error) {
	return r.findByPrefix(ctx, "name", namePhrase)
}
