package model

// UserAllTimeStats is the per-user streak and points record.
// LastTaskDate is a UTC calendar-day key (YYYY-MM-DD); new users start at the
// epoch sentinel so any first activity reads as "not today".
//
// Invariant: CurrentStreak <= LongestStreak. Points and TotalTasksDone only
// grow, except when the whole record is deleted with its user.
type UserAllTimeStats struct {
	UserID         string `bson:"user_id" json:"user_id"`
	CurrentStreak  int64  `bson:"current_streak" json:"current_streak"`
	LongestStreak  int64  `bson:"longest_streak" json:"longest_streak"`
	LastTaskDate   string `bson:"last_task_date" json:"last_task_date"`
	TotalTasksDone int64  `bson:"total_tasks_done" json:"total_tasks_done"`
	Points         int64  `bson:"points" json:"points"`
}

// CohortStatsDoc is the lenient decode target for batched cohort lookups.
// Pointer fields let the aggregator tell a stored zero apart from a document
// missing the field entirely; malformed documents are skipped from averages
// instead of dragging them down.
type CohortStatsDoc struct {
	UserID        string `bson:"user_id"`
	Points        *int64 `bson:"points"`
	CurrentStreak *int64 `bson:"current_streak"`
}

// Valid reports whether the document carries both numeric fields the
// cohort averages need.
func (d *CohortStatsDoc) Valid() bool {
	return d.Points != nil && d.CurrentStreak != nil
}
