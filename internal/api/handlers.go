// Package api exposes HTTP handlers for workout report calculation.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/domain"
	"example.com/fittracker/internal/workout"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/reports", h.reports)
	mux.HandleFunc("/v1/workout-types", h.workoutTypes)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeReportsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope reports:write required")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	packageID := strings.TrimSpace(req.PackageID)
	if packageID == "" {
		packageID = uuid.NewString()
	}

	report, err := h.service.Calculate(r.Context(), domain.CalculateInput{
		PackageID:   packageID,
		WorkoutType: strings.TrimSpace(req.WorkoutType),
		Data:        req.Data,
	})
	switch {
	case errors.Is(err, workout.ErrUnknownWorkoutType):
		writeError(w, http.StatusBadRequest, "unsupported_workout_type", err.Error())
		return
	case workout.IsInputError(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	case err != nil && report != nil:
		writeError(w, http.StatusBadGateway, "publish_failed", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toReportView(*report))
}

func (h *Handler) workoutTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if _, ok := auth.FromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	types := workout.Types()
	resp := WorkoutTypesResponse{Items: make([]WorkoutTypeView, 0, len(types))}
	for _, info := range types {
		resp.Items = append(resp.Items, WorkoutTypeView{
			Code:   info.Code,
			Name:   info.Name,
			Params: info.Params,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateReportRequest is the payload for POST /v1/reports.
type CreateReportRequest struct {
	PackageID   string    `json:"package_id,omitempty"`
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// Validate ensures request correctness. Reading counts are checked by the
// workout package.
func (r CreateReportRequest) Validate() error {
	if strings.TrimSpace(r.WorkoutType) == "" {
		return errors.New("workout_type is required")
	}
	if len(r.Data) == 0 {
		return errors.New("data is required")
	}
	return nil
}

// ReportView exposes a computed report.
type ReportView struct {
	ReportID     string    `json:"report_id"`
	PackageID    string    `json:"package_id"`
	WorkoutType  string    `json:"workout_type"`
	TrainingType string    `json:"training_type"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance"`
	Speed        float64   `json:"speed"`
	Calories     float64   `json:"calories"`
	Message      string    `json:"message"`
	ComputedAt   time.Time `json:"computed_at"`
}

// WorkoutTypeView describes one supported workout code.
type WorkoutTypeView struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

// WorkoutTypesResponse packages the supported workout codes.
type WorkoutTypesResponse struct {
	Items []WorkoutTypeView `json:"items"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeJSON encodes payload before committing status so that an encoding
// failure can still be reported as a server error.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func toReportView(report domain.Report) ReportView {
	return ReportView{
		ReportID:     report.ID,
		PackageID:    report.PackageID,
		WorkoutType:  report.WorkoutType,
		TrainingType: report.Info.TrainingType,
		Duration:     report.Info.Duration,
		Distance:     report.Info.Distance,
		Speed:        report.Info.Speed,
		Calories:     report.Info.Calories,
		Message:      report.Message,
		ComputedAt:   report.ComputedAt,
	}
}
