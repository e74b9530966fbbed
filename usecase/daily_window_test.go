package usecase

import (
	"context"
	"log"
	"testing"

	"lekturai/config"
	"lekturai/repository"
	"lekturai/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newMongoClient() *mongo.Client {
	cfg := config.LoadDatabaseConfig()

	mongoTestClient, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Fatal("error while connecting to database", err)
	}

	err = mongoTestClient.Ping(context.Background(), readpref.Primary())
	if err != nil {
		log.Fatal("database not reachable", err)
	}

	return mongoTestClient
}

// Recording activity over more days than the window holds must never leave
// more than DailyWindowSize documents behind, on any day of the sequence.
func TestDailyWindowCapAcrossManyDays(t *testing.T) {
	mongoTest := newMongoClient()
	defer mongoTest.Disconnect(context.Background())

	userID := uuid.New().String()

	coll := mongoTest.Database(config.LoadDatabaseConfig().DatabaseName).Collection("testDailyWindow")
	defer coll.Drop(context.Background())

	svc := NewDailyWindowService(&repository.DailyStatsRepo{MongoCollection: coll})
	ctx := context.Background()

	day := "2025-03-01"
	for i := 0; i < 13; i++ {
		if err := svc.RecordActivity(ctx, userID, day, 5); err != nil {
			t.Fatalf("record activity on %s failed: %v", day, err)
		}

		days, err := svc.DailyRepo.ListDays(ctx, userID)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if len(days) > repository.DailyWindowSize {
			t.Fatalf("window held %d entries after day %s, cap is %d",
				len(days), day, repository.DailyWindowSize)
		}

		day = utils.ShiftDateKey(day, 1)
	}

	days, err := svc.DailyRepo.ListDays(ctx, userID)
	if err != nil {
		t.Fatal("list failed:", err)
	}
	if len(days) != repository.DailyWindowSize {
		t.Fatalf("expected exactly %d entries after 13 days, got %d",
			repository.DailyWindowSize, len(days))
	}
	// The 10 newest days survive: 2025-03-04 through 2025-03-13.
	if days[0].Date != "2025-03-13" {
		t.Errorf("newest surviving day is %s, want 2025-03-13", days[0].Date)
	}
	if days[len(days)-1].Date != "2025-03-04" {
		t.Errorf("oldest surviving day is %s, want 2025-03-04", days[len(days)-1].Date)
	}

	// The read path holds the same cap and still serves a full series.
	series, err := svc.GetLastTen(ctx, userID, "2025-03-13")
	if err != nil {
		t.Fatal("get last ten failed:", err)
	}
	if len(series) != repository.DailyWindowSize {
		t.Errorf("expected %d series rows, got %d", repository.DailyWindowSize, len(series))
	}
	for _, row := range series {
		if row.Points != 5 {
			t.Errorf("expected 5 points on %s, got %d", row.Date, row.Points)
		}
	}
}
