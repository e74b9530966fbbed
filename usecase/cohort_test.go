package usecase

import (
	"testing"

	"lekturai/model"
	"lekturai/repository"
)

func int64Ptr(v int64) *int64 { return &v }

func TestChunkIDs(t *testing.T) {
	makeIDs := func(n int) []string {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i%26))
		}
		return ids
	}

	tests := []struct {
		name      string
		count     int
		wantSizes []int
	}{
		{"Empty", 0, nil},
		{"UnderLimit", 7, []int{7}},
		{"ExactLimit", 10, []int{10}},
		{"TwentyThreeUsers", 23, []int{10, 10, 3}},
		{"ExactMultiple", 20, []int{10, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := chunkIDs(makeIDs(tc.count), repository.StatsFetchBatchLimit)
			if len(chunks) != len(tc.wantSizes) {
				t.Fatalf("expected %d chunks, got %d", len(tc.wantSizes), len(chunks))
			}
			for i, chunk := range chunks {
				if len(chunk) != tc.wantSizes[i] {
					t.Errorf("chunk %d has %d IDs, want %d", i, len(chunk), tc.wantSizes[i])
				}
			}
		})
	}

	t.Run("PreservesOrder", func(t *testing.T) {
		ids := []string{"u1", "u2", "u3"}
		chunks := chunkIDs(ids, 2)
		if chunks[0][0] != "u1" || chunks[0][1] != "u2" || chunks[1][0] != "u3" {
			t.Errorf("chunking reordered IDs: %v", chunks)
		}
	})
}

func TestAccumulateValidStats(t *testing.T) {
	t.Run("SumsValidDocs", func(t *testing.T) {
		docs := []model.CohortStatsDoc{
			{UserID: "u1", Points: int64Ptr(10), CurrentStreak: int64Ptr(2)},
			{UserID: "u2", Points: int64Ptr(20), CurrentStreak: int64Ptr(4)},
			{UserID: "u3", Points: int64Ptr(30), CurrentStreak: int64Ptr(6)},
		}

		points, streak, valid, invalid := accumulateValidStats(docs)
		if points != 60 || streak != 12 {
			t.Errorf("got points=%d streak=%d, want 60 and 12", points, streak)
		}
		if valid != 3 || invalid != 0 {
			t.Errorf("got valid=%d invalid=%d, want 3 and 0", valid, invalid)
		}
	})

	t.Run("SkipsDocsWithMissingFields", func(t *testing.T) {
		docs := []model.CohortStatsDoc{
			{UserID: "u1", Points: int64Ptr(10), CurrentStreak: int64Ptr(2)},
			{UserID: "u2", Points: nil, CurrentStreak: int64Ptr(4)},
			{UserID: "u3", Points: int64Ptr(30), CurrentStreak: nil},
		}

		points, streak, valid, invalid := accumulateValidStats(docs)
		if points != 10 || streak != 2 {
			t.Errorf("invalid docs leaked into sums: points=%d streak=%d", points, streak)
		}
		if valid != 1 || invalid != 2 {
			t.Errorf("got valid=%d invalid=%d, want 1 and 2", valid, invalid)
		}
	})

	t.Run("StoredZeroIsValid", func(t *testing.T) {
		docs := []model.CohortStatsDoc{
			{UserID: "u1", Points: int64Ptr(0), CurrentStreak: int64Ptr(0)},
		}

		_, _, valid, invalid := accumulateValidStats(docs)
		if valid != 1 || invalid != 0 {
			t.Errorf("stored zero counted as invalid: valid=%d invalid=%d", valid, invalid)
		}
	})
}

func TestAverageDailySeries(t *testing.T) {
	t.Run("DividesByCohortSize", func(t *testing.T) {
		// Three members, only one active on 2025-03-15: the quiet two still
		// count in the divisor.
		sums := map[string]int64{"2025-03-15": 30}

		series := averageDailySeries(sums, "2025-03-15", 3)
		if len(series) != repository.DailyWindowSize {
			t.Fatalf("expected %d rows, got %d", repository.DailyWindowSize, len(series))
		}

		last := series[len(series)-1]
		if last.Date != "2025-03-15" {
			t.Fatalf("last row is %s, want 2025-03-15", last.Date)
		}
		if last.Points != 10.0 {
			t.Errorf("expected average 10.0, got %v", last.Points)
		}
	})

	t.Run("EmptyCohortYieldsZeroRows", func(t *testing.T) {
		series := averageDailySeries(nil, "2025-03-15", 0)
		if len(series) != repository.DailyWindowSize {
			t.Fatalf("expected %d rows, got %d", repository.DailyWindowSize, len(series))
		}
		for _, row := range series {
			if row.Points != 0 {
				t.Errorf("empty cohort produced nonzero average on %s: %v", row.Date, row.Points)
			}
		}
	})

	t.Run("OldestFirst", func(t *testing.T) {
		series := averageDailySeries(nil, "2025-03-15", 1)
		if series[0].Date != "2025-03-06" || series[9].Date != "2025-03-15" {
			t.Errorf("series misordered: first=%s last=%s", series[0].Date, series[9].Date)
		}
	})

	t.Run("FractionalAverages", func(t *testing.T) {
		sums := map[string]int64{"2025-03-15": 10}
		series := averageDailySeries(sums, "2025-03-15", 4)
		if got := series[9].Points; got != 2.5 {
			t.Errorf("expected 2.5, got %v", got)
		}
	})
}
