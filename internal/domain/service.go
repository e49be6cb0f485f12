// Package domain orchestrates workout report calculation for the outer surfaces.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"example.com/fittracker/internal/events"
	"example.com/fittracker/internal/observability"
	"example.com/fittracker/internal/workout"
)

// ReportPublisher announces computed reports to downstream consumers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, evt events.WorkoutReportComputed) error
}

// NoopPublisher discards every report.
type NoopPublisher struct{}

// PublishReport implements ReportPublisher.
func (NoopPublisher) PublishReport(context.Context, events.WorkoutReportComputed) error {
	return nil
}

// Report is a computed workout summary together with its identity.
type Report struct {
	ID          string
	PackageID   string
	WorkoutType string
	Info        workout.InfoMessage
	Message     string
	ComputedAt  time.Time
}

// CalculateInput captures one raw tracker package.
type CalculateInput struct {
	PackageID   string
	WorkoutType string
	Data        []float64
}

// Service turns tracker packages into reports.
type Service struct {
	publisher ReportPublisher
	now       func() time.Time
}

// NewService constructs a Service. A nil publisher disables publishing.
func NewService(publisher ReportPublisher) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Calculate dispatches the package, computes its report and publishes it.
// Input errors from the workout package are returned unwrapped; a report
// with an infinite or NaN figure is rejected as ErrInvalidParam. When
// publishing fails the computed report is returned along with the error.
func (s *Service) Calculate(ctx context.Context, input CalculateInput) (*Report, error) {
	training, err := workout.ReadPackage(input.WorkoutType, input.Data)
	if err != nil {
		observability.RecordRejected(err)
		return nil, err
	}

	info := workout.ShowTrainingInfo(training)
	if !info.Finite() {
		err := fmt.Errorf("%w: %s report is not finite (duration %v h)", workout.ErrInvalidParam, input.WorkoutType, info.Duration)
		observability.RecordRejected(err)
		return nil, err
	}
	report := &Report{
		ID:          uuid.NewString(),
		PackageID:   input.PackageID,
		WorkoutType: input.WorkoutType,
		Info:        info,
		Message:     info.Message(),
		ComputedAt:  s.now(),
	}
	observability.RecordReport(report.WorkoutType, info, report.ComputedAt)

	if err := s.publisher.PublishReport(ctx, report.Event()); err != nil {
		return report, fmt.Errorf("publish report %s: %w", report.ID, err)
	}
	return report, nil
}

// Event converts the report into its wire payload.
func (r Report) Event() events.WorkoutReportComputed {
	return events.WorkoutReportComputed{
		ReportID:     r.ID,
		PackageID:    r.PackageID,
		WorkoutType:  r.WorkoutType,
		TrainingType: r.Info.TrainingType,
		DurationH:    r.Info.Duration,
		DistanceKm:   r.Info.Distance,
		MeanSpeedKmh: r.Info.Speed,
		Calories:     r.Info.Calories,
		Message:      r.Message,
		ComputedAt:   r.ComputedAt,
	}
}
