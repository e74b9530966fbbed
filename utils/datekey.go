package utils

import "time"

// DateKeyLayout is the storage format for calendar-day identifiers.
// All day math in the application happens on UTC calendar dates.
const DateKeyLayout = "2006-01-02"

// EpochDateKey marks a user that has never recorded any activity.
const EpochDateKey = "1970-01-01"

// DateKey converts an instant to its UTC calendar-day identifier.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// TodayKey returns the current UTC calendar day.
func TodayKey() string {
	return DateKey(time.Now())
}

// YesterdayKey returns the UTC calendar day before today.
func YesterdayKey() string {
	return DateKey(time.Now().AddDate(0, 0, -1))
}

// ShiftDateKey moves a day key by the given number of days.
// Invalid keys collapse to the epoch sentinel.
func ShiftDateKey(key string, days int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return EpochDateKey
	}
	return DateKey(t.AddDate(0, 0, days))
}

// ParseDateKey parses a day key back into a UTC midnight instant.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.UTC)
}

// DateKeyBefore reports whether a comes strictly before b.
// The YYYY-MM-DD layout makes lexicographic order equal to calendar order.
func DateKeyBefore(a, b string) bool {
	return a < b
}
