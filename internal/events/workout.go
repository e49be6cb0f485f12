// Package events defines the workout event payloads exchanged over Kafka.
package events

import "time"

// Event type header values.
const (
	TypePackageReceived = "workout.package_received"
	TypeReportComputed  = "workout.report_computed"
)

// WorkoutPackageReceived carries one raw tracker package awaiting calculation.
type WorkoutPackageReceived struct {
	PackageID   string    `json:"package_id"`
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
	ReceivedAt  time.Time `json:"received_at"`
}

// WorkoutReportComputed is emitted once a package has been turned into a report.
type WorkoutReportComputed struct {
	ReportID     string    `json:"report_id"`
	PackageID    string    `json:"package_id,omitempty"`
	WorkoutType  string    `json:"workout_type"`
	TrainingType string    `json:"training_type"`
	DurationH    float64   `json:"duration_h"`
	DistanceKm   float64   `json:"distance_km"`
	MeanSpeedKmh float64   `json:"mean_speed_kmh"`
	Calories     float64   `json:"calories"`
	Message      string    `json:"message"`
	ComputedAt   time.Time `json:"computed_at"`
}
