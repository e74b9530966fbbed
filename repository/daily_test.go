package repository

import (
	"context"
	"testing"

	"lekturai/config"

	"github.com/google/uuid"
)

func TestDailyStatsRepoOperations(t *testing.T) {
	mongoTest := newMongoClient()
	defer mongoTest.Disconnect(context.Background())

	user1 := uuid.New().String()
	user2 := uuid.New().String()

	coll := mongoTest.Database(config.LoadDatabaseConfig().DatabaseName).Collection("testDailyStats")
	defer coll.Drop(context.Background())

	dailyRepo := DailyStatsRepo{MongoCollection: coll}
	ctx := context.Background()

	t.Run("AddPointsCreatesDay", func(t *testing.T) {
		if err := dailyRepo.AddPoints(ctx, user1, "2025-03-15", 10); err != nil {
			t.Fatal("add points failed:", err)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if len(days) != 1 || days[0].Points != 10 {
			t.Errorf("read back %+v", days)
		}
	})

	t.Run("AddPointsAccumulatesSameDay", func(t *testing.T) {
		if err := dailyRepo.AddPoints(ctx, user1, "2025-03-15", 2); err != nil {
			t.Fatal("add points failed:", err)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if len(days) != 1 || days[0].Points != 12 {
			t.Errorf("expected one day with 12 points, got %+v", days)
		}
	})

	t.Run("EnsureDayLeavesExistingPoints", func(t *testing.T) {
		if err := dailyRepo.EnsureDay(ctx, user1, "2025-03-15"); err != nil {
			t.Fatal("ensure failed:", err)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if days[0].Points != 12 {
			t.Errorf("ensure overwrote points: %+v", days)
		}
	})

	t.Run("EnsureDayCreatesZeroEntry", func(t *testing.T) {
		if err := dailyRepo.EnsureDay(ctx, user1, "2025-03-16"); err != nil {
			t.Fatal("ensure failed:", err)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if len(days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(days))
		}
		// Newest first.
		if days[0].Date != "2025-03-16" || days[0].Points != 0 {
			t.Errorf("expected fresh zero entry first, got %+v", days[0])
		}
	})

	t.Run("ListDaysNewestFirst", func(t *testing.T) {
		if err := dailyRepo.AddPoints(ctx, user1, "2025-03-10", 4); err != nil {
			t.Fatal("add points failed:", err)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		for i := 1; i < len(days); i++ {
			if days[i].Date > days[i-1].Date {
				t.Errorf("listing not newest first: %s after %s", days[i].Date, days[i-1].Date)
			}
		}
	})

	t.Run("DeleteDays", func(t *testing.T) {
		deleted, err := dailyRepo.DeleteDays(ctx, user1, []string{"2025-03-10", "2025-03-16"})
		if err != nil {
			t.Fatal("delete failed:", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deletions, got %d", deleted)
		}

		days, err := dailyRepo.ListDays(ctx, user1)
		if err != nil {
			t.Fatal("list failed:", err)
		}
		if len(days) != 1 || days[0].Date != "2025-03-15" {
			t.Errorf("wrong days survived: %+v", days)
		}
	})

	t.Run("DeleteDaysEmptyListIsNoOp", func(t *testing.T) {
		deleted, err := dailyRepo.DeleteDays(ctx, user1, nil)
		if err != nil {
			t.Fatal("delete failed:", err)
		}
		if deleted != 0 {
			t.Errorf("expected 0 deletions, got %d", deleted)
		}
	})

	t.Run("FindDaysForUsers", func(t *testing.T) {
		if err := dailyRepo.AddPoints(ctx, user2, "2025-03-15", 6); err != nil {
			t.Fatal("add points failed:", err)
		}
		if err := dailyRepo.AddPoints(ctx, user2, "2025-02-01", 99); err != nil {
			t.Fatal("add points failed:", err)
		}

		days, err := dailyRepo.FindDaysForUsers(ctx, []string{user1, user2}, "2025-03-06")
		if err != nil {
			t.Fatal("batch lookup failed:", err)
		}
		if len(days) != 2 {
			t.Errorf("expected 2 in-range days, got %d: %+v", len(days), days)
		}
		for _, day := range days {
			if day.Date < "2025-03-06" {
				t.Errorf("out-of-range day returned: %+v", day)
			}
		}
	})

	t.Run("FindDaysForUsersEnforcesBatchLimit", func(t *testing.T) {
		tooMany := make([]string, StatsFetchBatchLimit+1)
		for i := range tooMany {
			tooMany[i] = uuid.New().String()
		}

		if _, err := dailyRepo.FindDaysForUsers(ctx, tooMany, "2025-03-06"); err == nil {
			t.Error("expected error for oversized ID list")
		}
	})

	t.Run("DeleteAllDays", func(t *testing.T) {
		deleted, err := dailyRepo.DeleteAllDays(ctx, user2)
		if err != nil {
			t.Fatal("delete failed:", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deletions, got %d", deleted)
		}
	})
}
