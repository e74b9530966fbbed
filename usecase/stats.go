package usecase

import (
	"context"
	"errors"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/utils"
)

// AllTimeStatsService owns the per-user streak and points counters.
type AllTimeStatsService struct {
	StatsRepo *repository.StatsRepo
}

func NewAllTimeStatsService(repo *repository.StatsRepo) *AllTimeStatsService {
	return &AllTimeStatsService{StatsRepo: repo}
}

func newDefaultStats(userID string) *model.UserAllTimeStats {
	return &model.UserAllTimeStats{
		UserID:       userID,
		LastTaskDate: utils.EpochDateKey,
	}
}

// GetOrCreate returns the user's stats record. A user with no record is
// treated as "never active", not as an error: a zero-valued record with the
// epoch last-task date is persisted and returned. The write on read is part
// of the contract; callers and tests should expect it.
func (svc *AllTimeStatsService) GetOrCreate(ctx context.Context, userID string) (*model.UserAllTimeStats, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	stats, err := svc.StatsRepo.FindStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}

	stats = newDefaultStats(userID)
	if err := svc.StatsRepo.UpsertStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// applyActivity advances the stats record for one graded task done today.
//
// The streak step is deliberately naive: any day change extends the streak by
// one, whether the last activity was yesterday or a year ago. Streaks broken
// by a gap are zeroed by the nightly reconciliation run, not here. Changing
// this to a yesterday check would double up with that job; keep the two rules
// where they are.
func applyActivity(stats *model.UserAllTimeStats, today string, pointsEarned int64) {
	if stats.LastTaskDate != today {
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
	}

	stats.LastTaskDate = today
	stats.Points += pointsEarned
	stats.TotalTasksDone++
}

// RecordActivity counts one completed task worth pointsEarned points.
// Repeat activities on the same calendar day add points and tasks but leave
// the streak fields alone.
func (svc *AllTimeStatsService) RecordActivity(ctx context.Context, userID string, pointsEarned int64) (*model.UserAllTimeStats, error) {
	if pointsEarned < 0 {
		return nil, errors.New("points earned cannot be negative")
	}

	stats, err := svc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyActivity(stats, utils.TodayKey(), pointsEarned)

	if err := svc.StatsRepo.UpsertStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Delete removes the user's stats record. Absent records delete cleanly.
func (svc *AllTimeStatsService) Delete(ctx context.Context, userID string) error {
	return svc.StatsRepo.DeleteStats(ctx, userID)
}
