package model

// DailyStats is one day of points for one user, keyed by (user_id, date)
// where date is a UTC calendar-day key (YYYY-MM-DD). At most
// repository.DailyWindowSize of these exist per user; older days are evicted.
type DailyStats struct {
	UserID string `bson:"user_id" json:"user_id"`
	Date   string `bson:"date" json:"date"`
	Points int64  `bson:"points" json:"points"`
}

// DailyPoints is one row of a user's (or a cohort's averaged) daily series.
type DailyPoints struct {
	Date   string  `json:"date"`
	Points float64 `json:"points"`
}
