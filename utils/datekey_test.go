package utils

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	t.Run("FormatsUTC", func(t *testing.T) {
		instant := time.Date(2025, 3, 14, 23, 45, 0, 0, time.UTC)
		if got := DateKey(instant); got != "2025-03-14" {
			t.Errorf("expected 2025-03-14, got %s", got)
		}
	})

	t.Run("ConvertsLocalTimeToUTC", func(t *testing.T) {
		// 01:30 in UTC+3 is still the previous UTC day
		loc := time.FixedZone("UTC+3", 3*60*60)
		instant := time.Date(2025, 3, 15, 1, 30, 0, 0, loc)
		if got := DateKey(instant); got != "2025-03-14" {
			t.Errorf("expected 2025-03-14, got %s", got)
		}
	})
}

func TestShiftDateKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		days int
		want string
	}{
		{"BackOneDay", "2025-03-15", -1, "2025-03-14"},
		{"AcrossMonthBoundary", "2025-03-01", -1, "2025-02-28"},
		{"AcrossLeapDay", "2024-03-01", -1, "2024-02-29"},
		{"AcrossYearBoundary", "2025-01-01", -1, "2024-12-31"},
		{"NineDaysBack", "2025-03-15", -9, "2025-03-06"},
		{"Forward", "2025-03-15", 1, "2025-03-16"},
		{"ZeroShift", "2025-03-15", 0, "2025-03-15"},
		{"InvalidKeyCollapsesToEpoch", "not-a-date", -1, EpochDateKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShiftDateKey(tc.key, tc.days); got != tc.want {
				t.Errorf("ShiftDateKey(%q, %d) = %q, want %q", tc.key, tc.days, got, tc.want)
			}
		})
	}
}

func TestParseDateKey(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		parsed, err := ParseDateKey("2025-03-14")
		if err != nil {
			t.Fatal("parse failed:", err)
		}
		if parsed.Location() != time.UTC {
			t.Errorf("expected UTC location, got %v", parsed.Location())
		}
		if got := DateKey(parsed); got != "2025-03-14" {
			t.Errorf("round trip produced %s", got)
		}
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		if _, err := ParseDateKey("14/03/2025"); err == nil {
			t.Error("expected error for non-ISO date")
		}
	})
}

func TestDateKeyBefore(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2025-03-14", "2025-03-15", true},
		{"2025-03-15", "2025-03-15", false},
		{"2025-03-16", "2025-03-15", false},
		{"2024-12-31", "2025-01-01", true},
		{EpochDateKey, "2025-03-15", true},
	}

	for _, tc := range tests {
		if got := DateKeyBefore(tc.a, tc.b); got != tc.want {
			t.Errorf("DateKeyBefore(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestYesterdayKey(t *testing.T) {
	if got, want := YesterdayKey(), ShiftDateKey(TodayKey(), -1); got != want {
		t.Errorf("YesterdayKey() = %s, want %s", got, want)
	}
}
