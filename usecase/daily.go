package usecase

import (
	"context"
	"errors"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/utils"
)

// DailyWindowService maintains the bounded per-user series of daily point
// totals backing the trend view and the cohort daily averages.
type DailyWindowService struct {
	DailyRepo *repository.DailyStatsRepo
}

func NewDailyWindowService(repo *repository.DailyStatsRepo) *DailyWindowService {
	return &DailyWindowService{DailyRepo: repo}
}

// RecordActivity adds points to the user's total for the given calendar day
// and evicts days beyond the window.
func (svc *DailyWindowService) RecordActivity(ctx context.Context, userID, date string, pointsEarned int64) error {
	if userID == "" {
		return errors.New("user ID is required")
	}
	if pointsEarned < 0 {
		return errors.New("points earned cannot be negative")
	}

	if err := svc.DailyRepo.AddPoints(ctx, userID, date, pointsEarned); err != nil {
		return err
	}

	return svc.evict(ctx, userID)
}

// datesBeyondWindow picks the dates to evict from a newest-first listing:
// everything past the DailyWindowSize newest entries.
func datesBeyondWindow(days []model.DailyStats) []string {
	if len(days) <= repository.DailyWindowSize {
		return nil
	}

	stale := make([]string, 0, len(days)-repository.DailyWindowSize)
	for _, day := range days[repository.DailyWindowSize:] {
		stale = append(stale, day.Date)
	}
	return stale
}

func (svc *DailyWindowService) evict(ctx context.Context, userID string) error {
	days, err := svc.DailyRepo.ListDays(ctx, userID)
	if err != nil {
		return err
	}

	stale := datesBeyondWindow(days)
	if len(stale) == 0 {
		return nil
	}

	_, err = svc.DailyRepo.DeleteDays(ctx, userID, stale)
	return err
}

// buildLastTen assembles the 10-day chronological series ending at asOf,
// filling zero points for days without a stored entry. Stored days older
// than the range are ignored; they stay in the store until evicted by count.
func buildLastTen(days []model.DailyStats, asOf string) []model.DailyStats {
	byDate := make(map[string]int64, len(days))
	for _, day := range days {
		byDate[day.Date] = day.Points
	}

	series := make([]model.DailyStats, 0, repository.DailyWindowSize)
	for offset := repository.DailyWindowSize - 1; offset >= 0; offset-- {
		date := utils.ShiftDateKey(asOf, -offset)
		series = append(series, model.DailyStats{
			Date:   date,
			Points: byDate[date],
		})
	}
	return series
}

// GetLastTen returns one entry per day for asOf and the 9 preceding days,
// oldest first. The read also creates today's zero entry if missing and
// prunes the stored window, so read and write paths share the cap invariant.
func (svc *DailyWindowService) GetLastTen(ctx context.Context, userID, asOf string) ([]model.DailyStats, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	if err := svc.DailyRepo.EnsureDay(ctx, userID, asOf); err != nil {
		return nil, err
	}
	if err := svc.evict(ctx, userID); err != nil {
		return nil, err
	}

	days, err := svc.DailyRepo.ListDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildLastTen(days, asOf), nil
}

// DeleteAll drops the user's daily series on account removal.
func (svc *DailyWindowService) DeleteAll(ctx context.Context, userID string) error {
	_, err := svc.DailyRepo.DeleteAllDays(ctx, userID)
	return err
}
