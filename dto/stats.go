package dto

import "lekturai/model"

type AvgScoresResponse struct {
	AvgPoints float64 `json:"avg_points"`
	AvgStreak float64 `json:"avg_streak"`
}

type AvgDailyResponse struct {
	Series []model.DailyPoints `json:"series"`
}

type CohortQuery struct {
	SchoolName string `form:"school_name" validate:"required"`
	City       string `form:"city" validate:"required"`
	ClassName  string `form:"class_name"`
}
