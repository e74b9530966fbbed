package usecase

import (
	"testing"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/utils"
)

// newestFirst builds count daily entries ending at asOf, newest first,
// matching the sort order ListDays returns.
func newestFirst(userID, asOf string, count int) []model.DailyStats {
	days := make([]model.DailyStats, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, model.DailyStats{
			UserID: userID,
			Date:   utils.ShiftDateKey(asOf, -i),
			Points: int64(10 * (i + 1)),
		})
	}
	return days
}

func TestDatesBeyondWindow(t *testing.T) {
	t.Run("UnderCapEvictsNothing", func(t *testing.T) {
		days := newestFirst("user-1", "2025-03-15", repository.DailyWindowSize-1)
		if stale := datesBeyondWindow(days); stale != nil {
			t.Errorf("expected no evictions, got %v", stale)
		}
	})

	t.Run("AtCapEvictsNothing", func(t *testing.T) {
		days := newestFirst("user-1", "2025-03-15", repository.DailyWindowSize)
		if stale := datesBeyondWindow(days); stale != nil {
			t.Errorf("expected no evictions, got %v", stale)
		}
	})

	t.Run("OverCapEvictsOldest", func(t *testing.T) {
		days := newestFirst("user-1", "2025-03-15", repository.DailyWindowSize+3)

		stale := datesBeyondWindow(days)
		if len(stale) != 3 {
			t.Fatalf("expected 3 stale dates, got %d", len(stale))
		}
		// The three oldest dates are 10, 11 and 12 days before asOf.
		want := []string{"2025-03-05", "2025-03-04", "2025-03-03"}
		for i, date := range stale {
			if date != want[i] {
				t.Errorf("stale[%d] = %s, want %s", i, date, want[i])
			}
		}
	})

	t.Run("EmptyListing", func(t *testing.T) {
		if stale := datesBeyondWindow(nil); stale != nil {
			t.Errorf("expected nil, got %v", stale)
		}
	})
}

func TestBuildLastTen(t *testing.T) {
	t.Run("AlwaysTenRowsOldestFirst", func(t *testing.T) {
		series := buildLastTen(nil, "2025-03-15")
		if len(series) != repository.DailyWindowSize {
			t.Fatalf("expected %d rows, got %d", repository.DailyWindowSize, len(series))
		}
		if series[0].Date != "2025-03-06" {
			t.Errorf("first row is %s, want 2025-03-06", series[0].Date)
		}
		if series[len(series)-1].Date != "2025-03-15" {
			t.Errorf("last row is %s, want 2025-03-15", series[len(series)-1].Date)
		}
		for _, row := range series {
			if row.Points != 0 {
				t.Errorf("expected zero fill, got %d points on %s", row.Points, row.Date)
			}
		}
	})

	t.Run("FillsGapsWithZero", func(t *testing.T) {
		stored := []model.DailyStats{
			{UserID: "user-1", Date: "2025-03-15", Points: 20},
			{UserID: "user-1", Date: "2025-03-12", Points: 4},
		}

		series := buildLastTen(stored, "2025-03-15")

		byDate := make(map[string]int64)
		for _, row := range series {
			byDate[row.Date] = row.Points
		}
		if byDate["2025-03-15"] != 20 {
			t.Errorf("expected 20 points on 2025-03-15, got %d", byDate["2025-03-15"])
		}
		if byDate["2025-03-12"] != 4 {
			t.Errorf("expected 4 points on 2025-03-12, got %d", byDate["2025-03-12"])
		}
		if byDate["2025-03-14"] != 0 {
			t.Errorf("expected zero fill on 2025-03-14, got %d", byDate["2025-03-14"])
		}
	})

	t.Run("IgnoresDaysOutsideRange", func(t *testing.T) {
		stored := []model.DailyStats{
			{UserID: "user-1", Date: "2025-02-01", Points: 99},
		}

		series := buildLastTen(stored, "2025-03-15")
		for _, row := range series {
			if row.Points != 0 {
				t.Errorf("out-of-range day leaked into series: %s=%d", row.Date, row.Points)
			}
		}
	})
}
