package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"example.com/fittracker/internal/events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// ReportPublisher encodes computed reports and writes them to a single topic.
type ReportPublisher struct {
	writer messageWriter
	topic  string
}

// NewReportPublisher builds a ReportPublisher writing to topic.
func NewReportPublisher(writer messageWriter, topic string) *ReportPublisher {
	return &ReportPublisher{writer: writer, topic: topic}
}

// PublishReport writes evt keyed by its package so that reports for the same
// package land on the same partition.
func (p *ReportPublisher) PublishReport(ctx context.Context, evt events.WorkoutReportComputed) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	key := evt.PackageID
	if key == "" {
		key = evt.ReportID
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  evt.ComputedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.TypeReportComputed)},
			{Key: "workout_type", Value: []byte(evt.WorkoutType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, p.topic, msg); err != nil {
		failedCounter.WithLabelValues(p.topic).Inc()
		return err
	}
	deliveredCounter.WithLabelValues(p.topic).Inc()
	return nil
}
