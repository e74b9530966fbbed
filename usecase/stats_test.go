package usecase

import (
	"testing"

	"lekturai/model"
	"lekturai/utils"
)

func TestApplyActivity(t *testing.T) {
	t.Run("FirstEverActivity", func(t *testing.T) {
		stats := &model.UserAllTimeStats{
			UserID:       "user-1",
			LastTaskDate: utils.EpochDateKey,
		}

		applyActivity(stats, "2025-03-15", 5)

		if stats.CurrentStreak != 1 {
			t.Errorf("expected streak 1, got %d", stats.CurrentStreak)
		}
		if stats.LongestStreak != 1 {
			t.Errorf("expected longest streak 1, got %d", stats.LongestStreak)
		}
		if stats.Points != 5 {
			t.Errorf("expected 5 points, got %d", stats.Points)
		}
		if stats.TotalTasksDone != 1 {
			t.Errorf("expected 1 task done, got %d", stats.TotalTasksDone)
		}
		if stats.LastTaskDate != "2025-03-15" {
			t.Errorf("expected last task date 2025-03-15, got %s", stats.LastTaskDate)
		}
	})

	t.Run("SameDayLeavesStreakAlone", func(t *testing.T) {
		stats := &model.UserAllTimeStats{
			UserID:         "user-1",
			CurrentStreak:  3,
			LongestStreak:  7,
			LastTaskDate:   "2025-03-15",
			TotalTasksDone: 12,
			Points:         80,
		}

		applyActivity(stats, "2025-03-15", 10)

		if stats.CurrentStreak != 3 {
			t.Errorf("same-day activity changed streak to %d", stats.CurrentStreak)
		}
		if stats.LongestStreak != 7 {
			t.Errorf("same-day activity changed longest streak to %d", stats.LongestStreak)
		}
		if stats.Points != 90 {
			t.Errorf("expected 90 points, got %d", stats.Points)
		}
		if stats.TotalTasksDone != 13 {
			t.Errorf("expected 13 tasks done, got %d", stats.TotalTasksDone)
		}
	})

	t.Run("ConsecutiveDaysGrowStreak", func(t *testing.T) {
		stats := &model.UserAllTimeStats{
			UserID:       "user-1",
			LastTaskDate: utils.EpochDateKey,
		}

		day := "2025-03-01"
		for i := 0; i < 5; i++ {
			applyActivity(stats, day, 2)
			day = utils.ShiftDateKey(day, 1)
		}

		if stats.CurrentStreak != 5 {
			t.Errorf("expected streak 5 after 5 consecutive days, got %d", stats.CurrentStreak)
		}
		if stats.LongestStreak != 5 {
			t.Errorf("expected longest streak 5, got %d", stats.LongestStreak)
		}
		if stats.Points != 10 {
			t.Errorf("expected 10 points, got %d", stats.Points)
		}
	})

	t.Run("AnyDayChangeExtendsStreak", func(t *testing.T) {
		// The gap-aware reset belongs to the reconciliation job. The write
		// path extends the streak on any day change, even after a long gap.
		stats := &model.UserAllTimeStats{
			UserID:        "user-1",
			CurrentStreak: 4,
			LongestStreak: 4,
			LastTaskDate:  "2025-01-01",
		}

		applyActivity(stats, "2025-03-15", 2)

		if stats.CurrentStreak != 5 {
			t.Errorf("expected streak 5 after day change, got %d", stats.CurrentStreak)
		}
	})

	t.Run("LongestStreakNeverDecreases", func(t *testing.T) {
		stats := &model.UserAllTimeStats{
			UserID:        "user-1",
			CurrentStreak: 2,
			LongestStreak: 9,
			LastTaskDate:  "2025-03-14",
		}

		applyActivity(stats, "2025-03-15", 2)

		if stats.CurrentStreak != 3 {
			t.Errorf("expected streak 3, got %d", stats.CurrentStreak)
		}
		if stats.LongestStreak != 9 {
			t.Errorf("longest streak changed to %d", stats.LongestStreak)
		}
	})

	t.Run("ZeroPointTaskStillCounts", func(t *testing.T) {
		stats := &model.UserAllTimeStats{
			UserID:       "user-1",
			LastTaskDate: utils.EpochDateKey,
		}

		applyActivity(stats, "2025-03-15", 0)

		if stats.TotalTasksDone != 1 {
			t.Errorf("expected 1 task done, got %d", stats.TotalTasksDone)
		}
		if stats.Points != 0 {
			t.Errorf("expected 0 points, got %d", stats.Points)
		}
		if stats.CurrentStreak != 1 {
			t.Errorf("expected streak 1, got %d", stats.CurrentStreak)
		}
	})
}

func TestNewDefaultStats(t *testing.T) {
	stats := newDefaultStats("user-42")

	if stats.UserID != "user-42" {
		t.Errorf("expected user-42, got %s", stats.UserID)
	}
	if stats.LastTaskDate != utils.EpochDateKey {
		t.Errorf("expected epoch sentinel, got %s", stats.LastTaskDate)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 || stats.Points != 0 || stats.TotalTasksDone != 0 {
		t.Error("expected all counters to start at zero")
	}
}
