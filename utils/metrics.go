package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Activity Metrics
	ActivitiesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_recorded_total",
			Help: "Total number of graded activities recorded",
		},
		[]string{"type"}, // reading / matura / chat
	)

	// Streak Metrics
	StreakResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_resets_total",
			Help: "Total number of streaks zeroed by the reconciliation job",
		},
	)

	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_reconcile_runs_total",
			Help: "Total number of streak reconciliation runs",
		},
		[]string{"status"}, // completed / failed
	)

	// Cohort Metrics
	CohortBatchLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cohort_batch_lookups_total",
			Help: "Total number of batched stats lookups issued by the aggregator",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and reason",
		},
		[]string{"component", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackActivity increments the recorded-activity counter
func TrackActivity(activityType string) {
	ActivitiesRecorded.WithLabelValues(activityType).Inc()
}

// TrackStreakReset counts one zeroed streak
func TrackStreakReset() {
	StreakResets.Inc()
}

// TrackError increments the error counter by component and reason
func TrackError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}
