package usecase

import (
	"context"
	"log"
	"time"

	"lekturai/repository"
	"lekturai/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultUserStepTimeout bounds each per-user reconciliation step so one
// unreachable record cannot stall the whole run.
const DefaultUserStepTimeout = 5 * time.Second

// StreakReconciler is the scheduled batch job enforcing "a streak is broken
// if no activity happened yesterday". It holds no state between runs and only
// ever writes the current_streak field.
type StreakReconciler struct {
	UserRepo    *repository.UserRepo
	Stats       *AllTimeStatsService
	StepTimeout time.Duration
}

func NewStreakReconciler(userRepo *repository.UserRepo, stats *AllTimeStatsService) *StreakReconciler {
	return &StreakReconciler{
		UserRepo:    userRepo,
		Stats:       stats,
		StepTimeout: DefaultUserStepTimeout,
	}
}

// ReconcileReport summarizes one run. A run with per-user failures still
// counts as completed; failures surface here and in the logs, not as an
// overall error.
type ReconcileReport struct {
	Processed int      `json:"processed"`
	Reset     int      `json:"reset"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}

// shouldResetStreak decides the per-user transition. Only a last activity
// strictly before yesterday with a live streak triggers a reset: activity
// yesterday keeps the streak, activity today is simply not yesterday and
// gets judged on tomorrow's run, and an already-zero streak needs no write.
func shouldResetStreak(lastTaskDate, yesterday string, currentStreak int64) bool {
	return utils.DateKeyBefore(lastTaskDate, yesterday) && currentStreak > 0
}

// Run scans the given users, or every user when userIDs is nil, and zeroes
// broken streaks. Running twice on the same UTC day is a no-op the second
// time: the first pass leaves nothing left to reset.
func (j *StreakReconciler) Run(ctx context.Context, userIDs []string) (*ReconcileReport, error) {
	if userIDs == nil {
		ids, err := j.UserRepo.ListUserIDs(ctx)
		if err != nil {
			utils.ReconcileRuns.WithLabelValues("failed").Inc()
			return nil, err
		}
		userIDs = ids
	}

	yesterday := utils.YesterdayKey()
	log.Printf("streak reconciliation: processing %d users, cutoff %s", len(userIDs), yesterday)

	report := &ReconcileReport{}
	for _, userID := range userIDs {
		report.Processed++

		reset, err := j.reconcileUser(ctx, userID, yesterday)
		if err != nil {
			log.Printf("streak reconciliation: user %s failed: %v", userID, err)
			utils.TrackError("reconciliation", "user_step_failed")
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, userID)
			continue
		}
		if reset {
			report.Reset++
		}
	}

	utils.ReconcileRuns.WithLabelValues("completed").Inc()
	log.Printf("streak reconciliation: done, %d processed, %d reset, %d failed",
		report.Processed, report.Reset, report.Failed)
	return report, nil
}

func (j *StreakReconciler) reconcileUser(ctx context.Context, userID, yesterday string) (bool, error) {
	stepTimeout := j.StepTimeout
	if stepTimeout <= 0 {
		stepTimeout = DefaultUserStepTimeout
	}
	stepCtx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()

	stats, err := j.Stats.GetOrCreate(stepCtx, userID)
	if err != nil {
		return false, err
	}

	if !shouldResetStreak(stats.LastTaskDate, yesterday, stats.CurrentStreak) {
		return false, nil
	}

	// Minimal patch: only the streak field, never the counters.
	err = j.Stats.StatsRepo.UpdateStatsFields(stepCtx, userID, bson.M{"current_streak": int64(0)})
	if err != nil {
		return false, err
	}

	utils.TrackStreakReset()
	return true, nil
}
