package usecase

import (
	"context"
	"log"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/utils"
)

// CohortService computes read-only averages across the users of a school,
// city and optionally a class. It owns no data; it composes the stats and
// daily repositories and respects the store's batched-lookup cap by chunking
// cohort ID lists.
type CohortService struct {
	UserRepo  *repository.UserRepo
	StatsRepo *repository.StatsRepo
	DailyRepo *repository.DailyStatsRepo
}

func NewCohortService(userRepo *repository.UserRepo, statsRepo *repository.StatsRepo, dailyRepo *repository.DailyStatsRepo) *CohortService {
	return &CohortService{
		UserRepo:  userRepo,
		StatsRepo: statsRepo,
		DailyRepo: dailyRepo,
	}
}

// ResolveCohort returns the user IDs matching the school/city/class filter.
// className may be empty to average over the whole school.
func (svc *CohortService) ResolveCohort(ctx context.Context, schoolName, city, className string) ([]string, error) {
	return svc.UserRepo.FindCohortUserIDs(ctx, city, schoolName, className)
}

// chunkIDs splits an ID list into chunks of at most size, preserving order.
// A cohort of 23 users becomes chunks of 10, 10 and 3.
func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// accumulateValidStats sums points and streaks over the documents that carry
// both numeric fields, returning the count of documents used. Malformed
// documents are counted separately so callers can log them.
func accumulateValidStats(docs []model.CohortStatsDoc) (points, streak int64, valid, invalid int) {
	for _, doc := range docs {
		if !doc.Valid() {
			invalid++
			continue
		}
		points += *doc.Points
		streak += *doc.CurrentStreak
		valid++
	}
	return points, streak, valid, invalid
}

// AverageAllTime averages the cohort's all-time points and current streaks.
//
// Records missing required numeric fields are excluded from both the sum and
// the divisor: a malformed record should not silently depress the average.
// The divisor is the valid-record count, and an all-invalid or empty cohort
// averages to (0, 0). Each round trip fetches at most
// repository.StatsFetchBatchLimit records.
func (svc *CohortService) AverageAllTime(ctx context.Context, cohort []string) (avgPoints, avgStreak float64, err error) {
	var totalPoints, totalStreak int64
	var valid int

	for _, chunk := range chunkIDs(cohort, repository.StatsFetchBatchLimit) {
		docs, err := svc.StatsRepo.FindStatsByUserIDs(ctx, chunk)
		if err != nil {
			return 0, 0, err
		}
		utils.CohortBatchLookups.Inc()

		points, streak, ok, bad := accumulateValidStats(docs)
		if bad > 0 {
			log.Printf("cohort average: skipped %d stats record(s) with missing fields in chunk of %d", bad, len(chunk))
			utils.TrackError("aggregation", "invalid_cohort_member")
		}
		totalPoints += points
		totalStreak += streak
		valid += ok
	}

	if valid == 0 {
		return 0, 0, nil
	}

	return float64(totalPoints) / float64(valid), float64(totalStreak) / float64(valid), nil
}

// averageDailySeries turns per-date point sums into the cohort's 10-day
// series, oldest first. The divisor is the cohort size, not the active-user
// count: a member with no entry for a day contributes a true zero, otherwise
// one busy student would make a quiet class look busy.
func averageDailySeries(sums map[string]int64, asOf string, cohortSize int) []model.DailyPoints {
	series := make([]model.DailyPoints, 0, repository.DailyWindowSize)
	for offset := repository.DailyWindowSize - 1; offset >= 0; offset-- {
		date := utils.ShiftDateKey(asOf, -offset)
		row := model.DailyPoints{Date: date}
		if cohortSize > 0 {
			row.Points = float64(sums[date]) / float64(cohortSize)
		}
		series = append(series, row)
	}
	return series
}

// AverageDailyWindow averages the cohort's daily points over the last 10
// calendar days ending today. An empty cohort yields 10 zero rows.
func (svc *CohortService) AverageDailyWindow(ctx context.Context, cohort []string) ([]model.DailyPoints, error) {
	asOf := utils.TodayKey()
	fromDate := utils.ShiftDateKey(asOf, -(repository.DailyWindowSize - 1))

	sums := make(map[string]int64)
	for _, chunk := range chunkIDs(cohort, repository.StatsFetchBatchLimit) {
		days, err := svc.DailyRepo.FindDaysForUsers(ctx, chunk, fromDate)
		if err != nil {
			return nil, err
		}
		utils.CohortBatchLookups.Inc()

		for _, day := range days {
			sums[day.Date] += day.Points
		}
	}

	return averageDailySeries(sums, asOf, len(cohort)), nil
}
