package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"example.com/fittracker/internal/domain"
	"example.com/fittracker/internal/events"
	"example.com/fittracker/internal/workout"
)

// PackageHandler computes a report for every workout.package_received event.
type PackageHandler struct {
	service *domain.Service
	logger  *log.Logger
}

// NewPackageHandler constructs a handler backed by the provided service.
func NewPackageHandler(service *domain.Service, logger *log.Logger) *PackageHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[packages] ", log.LstdFlags)
	}
	return &PackageHandler{service: service, logger: logger}
}

// Handle ignores other event types. Malformed packages are logged and
// acknowledged; any other failure is returned so the message is not committed.
func (h *PackageHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType != events.TypePackageReceived {
		return nil
	}

	var evt events.WorkoutPackageReceived
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		h.logger.Printf("dropping undecodable package (offset=%d): %v", msg.Offset, err)
		recordDropped(msg.Topic)
		return nil
	}

	packageID := evt.PackageID
	if packageID == "" {
		packageID = msg.Key
	}

	report, err := h.service.Calculate(ctx, domain.CalculateInput{
		PackageID:   packageID,
		WorkoutType: evt.WorkoutType,
		Data:        evt.Data,
	})
	if err != nil {
		if workout.IsInputError(err) {
			h.logger.Printf("dropping package %s: %v", packageID, err)
			recordDropped(msg.Topic)
			return nil
		}
		return fmt.Errorf("package %s: %w", packageID, err)
	}

	h.logger.Printf("package %s: %s", packageID, report.Message)
	return nil
}
