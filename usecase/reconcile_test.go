package usecase

import (
	"testing"

	"lekturai/utils"
)

func TestShouldResetStreak(t *testing.T) {
	const yesterday = "2025-03-14"

	tests := []struct {
		name          string
		lastTaskDate  string
		currentStreak int64
		want          bool
	}{
		{"ActiveYesterdayKeepsStreak", "2025-03-14", 5, false},
		{"ActiveTodayKeepsStreak", "2025-03-15", 5, false},
		{"TwoDayGapResets", "2025-03-13", 5, true},
		{"LongGapResets", "2024-11-01", 1, true},
		{"NeverActiveWithZeroStreak", utils.EpochDateKey, 0, false},
		{"StaleButAlreadyZero", "2025-03-01", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldResetStreak(tc.lastTaskDate, yesterday, tc.currentStreak)
			if got != tc.want {
				t.Errorf("shouldResetStreak(%q, %q, %d) = %v, want %v",
					tc.lastTaskDate, yesterday, tc.currentStreak, got, tc.want)
			}
		})
	}

	t.Run("SecondRunSameDayIsNoOp", func(t *testing.T) {
		// After the first run zeroes the streak, the same inputs no longer
		// qualify for a reset.
		if !shouldResetStreak("2025-03-10", yesterday, 7) {
			t.Fatal("expected first pass to reset")
		}
		if shouldResetStreak("2025-03-10", yesterday, 0) {
			t.Error("second pass on a zeroed streak should not reset again")
		}
	})
}
