package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"example.com/fittracker/internal/workout"
)

// Rejection reasons used as the reason label.
const (
	ReasonUnknownType  = "unknown_type"
	ReasonParamCount   = "param_count"
	ReasonInvalidParam = "invalid_param"
	ReasonOther        = "other"
)

var (
	reportsComputed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Name:      "reports_computed_total",
		Help:      "Number of workout reports computed, labeled by workout type code.",
	}, []string{"workout_type"})

	packagesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Name:      "packages_rejected_total",
		Help:      "Number of tracker packages that could not be turned into a workout.",
	}, []string{"reason"})

	reportCalories = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Name:      "report_calories",
		Help:      "Distribution of calories spent per computed report.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 8),
	}, []string{"workout_type"})

	lastReportGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittracker",
		Name:      "last_report_timestamp_seconds",
		Help:      "Unix timestamp of the most recent computed report.",
	})
)

func init() {
	prometheus.MustRegister(reportsComputed, packagesRejected, reportCalories, lastReportGauge)
}

// RecordReport counts a computed report and observes its calories.
func RecordReport(workoutType string, info workout.InfoMessage, ts time.Time) {
	reportsComputed.WithLabelValues(workoutType).Inc()
	reportCalories.WithLabelValues(workoutType).Observe(info.Calories)
	if ts.IsZero() {
		return
	}
	lastReportGauge.Set(float64(ts.Unix()))
}

// RecordRejected counts a package rejected with err.
func RecordRejected(err error) {
	packagesRejected.WithLabelValues(RejectionReason(err)).Inc()
}

// RejectionReason maps a dispatch error to its metric label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, workout.ErrUnknownWorkoutType):
		return ReasonUnknownType
	case errors.Is(err, workout.ErrParamCount):
		return ReasonParamCount
	case errors.Is(err, workout.ErrInvalidParam):
		return ReasonInvalidParam
	default:
		return ReasonOther
	}
}
