package handler

import (
	"log"

	"lekturai/dto"
	"lekturai/services"
	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Stats  *usecase.AllTimeStatsService
	Daily  *usecase.DailyWindowService
	Cohort *usecase.CohortService
	Cache  *services.StatsCache
}

func NewStatsHandler(stats *usecase.AllTimeStatsService, daily *usecase.DailyWindowService, cohort *usecase.CohortService, cache *services.StatsCache) *StatsHandler {
	return &StatsHandler{
		Stats:  stats,
		Daily:  daily,
		Cohort: cohort,
		Cache:  cache,
	}
}

// GetUserStats returns the caller's all-time stats, creating the default
// record for first-time users.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	stats, err := h.Stats.GetOrCreate(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching stats for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to fetch user stats")
		return
	}

	utils.Success(c, stats)
}

// GetUserDailyStats returns the caller's 10-day series ending today.
func (h *StatsHandler) GetUserDailyStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	series, err := h.Daily.GetLastTen(c.Request.Context(), userID.(string), utils.TodayKey())
	if err != nil {
		log.Printf("Error fetching daily stats for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to fetch daily stats")
		return
	}

	utils.Success(c, series)
}

func (h *StatsHandler) bindCohortQuery(c *gin.Context) (*dto.CohortQuery, bool) {
	var query dto.CohortQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid cohort query")
		return nil, false
	}
	if err := utils.Validate.Struct(&query); err != nil {
		utils.BadRequest(c, "school_name and city are required")
		return nil, false
	}
	return &query, true
}

// GetAvgScores serves both the school-wide and per-class all-time averages;
// the class filter rides on the optional class_name parameter.
func (h *StatsHandler) GetAvgScores(c *gin.Context) {
	query, ok := h.bindCohortQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var cached dto.AvgScoresResponse
	if h.Cache.GetCohortAverages(ctx, "avg_scores", query.SchoolName, query.City, query.ClassName, &cached) {
		utils.Success(c, cached)
		return
	}

	cohort, err := h.Cohort.ResolveCohort(ctx, query.SchoolName, query.City, query.ClassName)
	if err != nil {
		log.Printf("Error resolving cohort: %v", err)
		utils.ServiceUnavailable(c, "Failed to resolve cohort")
		return
	}

	avgPoints, avgStreak, err := h.Cohort.AverageAllTime(ctx, cohort)
	if err != nil {
		log.Printf("Error averaging cohort stats: %v", err)
		utils.ServiceUnavailable(c, "Failed to compute averages")
		return
	}

	response := dto.AvgScoresResponse{AvgPoints: avgPoints, AvgStreak: avgStreak}
	h.Cache.SetCohortAverages(ctx, "avg_scores", query.SchoolName, query.City, query.ClassName, response)
	utils.Success(c, response)
}

// GetAvgDaily serves the cohort's averaged 10-day series.
func (h *StatsHandler) GetAvgDaily(c *gin.Context) {
	query, ok := h.bindCohortQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var cached dto.AvgDailyResponse
	if h.Cache.GetCohortAverages(ctx, "avg_daily", query.SchoolName, query.City, query.ClassName, &cached) {
		utils.Success(c, cached)
		return
	}

	cohort, err := h.Cohort.ResolveCohort(ctx, query.SchoolName, query.City, query.ClassName)
	if err != nil {
		log.Printf("Error resolving cohort: %v", err)
		utils.ServiceUnavailable(c, "Failed to resolve cohort")
		return
	}

	series, err := h.Cohort.AverageDailyWindow(ctx, cohort)
	if err != nil {
		log.Printf("Error averaging cohort daily stats: %v", err)
		utils.ServiceUnavailable(c, "Failed to compute daily averages")
		return
	}

	response := dto.AvgDailyResponse{Series: series}
	h.Cache.SetCohortAverages(ctx, "avg_daily", query.SchoolName, query.City, query.ClassName, response)
	utils.Success(c, response)
}
