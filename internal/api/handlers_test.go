package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/domain"
	"example.com/fittracker/internal/events"
)

func TestCreateReportSuccess(t *testing.T) {
	publisher := &stubPublisher{}
	handler := NewHandler(domain.NewService(publisher))

	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/reports",
		strings.NewReader(`{"package_id":"pkg-42","workout_type":"RUN","data":[15000,1,75]}`)), auth.ScopeReportsWrite)
	rr := httptest.NewRecorder()
	handler.reports(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp ReportView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.ReportID)
	require.NoError(t, err)
	require.Equal(t, "pkg-42", resp.PackageID)
	require.Equal(t, "RUN", resp.WorkoutType)
	require.Equal(t, "Running", resp.TrainingType)
	require.InDelta(t, 9.75, resp.Distance, 1e-9)
	require.InDelta(t, 9.75, resp.Speed, 1e-9)
	require.InDelta(t, 797.805, resp.Calories, 1e-6)
	require.Equal(t,
		"Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 797.805.",
		resp.Message)

	require.Len(t, publisher.published, 1)
	require.Equal(t, resp.ReportID, publisher.published[0].ReportID)
}

func TestCreateReportGeneratesPackageID(t *testing.T) {
	handler := NewHandler(domain.NewService(nil))

	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/reports",
		strings.NewReader(`{"workout_type":"SWM","data":[720,1,80,25,40]}`)), auth.ScopeReportsWrite)
	rr := httptest.NewRecorder()
	handler.reports(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp ReportView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.PackageID)
	require.NoError(t, err)
	require.InDelta(t, 336.0, resp.Calories, 1e-9)
}

func TestCreateReportErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		scope     string
		publisher *stubPublisher
		status    int
		errType   string
	}{
		{"unknown type", `{"workout_type":"XYZ","data":[15000,1,75]}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "unsupported_workout_type"},
		{"wrong arity", `{"workout_type":"WLK","data":[9000,1,75]}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "validation_failed"},
		{"fractional steps", `{"workout_type":"RUN","data":[15000.5,1,75]}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "validation_failed"},
		{"missing type", `{"data":[15000,1,75]}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "validation_failed"},
		{"missing data", `{"workout_type":"RUN"}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "validation_failed"},
		{"zero duration", `{"workout_type":"RUN","data":[15000,0,75]}`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "validation_failed"},
		{"zero duration with publisher", `{"workout_type":"RUN","data":[15000,0,75]}`, auth.ScopeReportsWrite, &stubPublisher{}, http.StatusBadRequest, "validation_failed"},
		{"bad json", `{"workout_type":`, auth.ScopeReportsWrite, nil, http.StatusBadRequest, "invalid_request"},
		{"read scope only", `{"workout_type":"RUN","data":[15000,1,75]}`, auth.ScopeReportsRead, nil, http.StatusForbidden, "forbidden"},
		{"publish failure", `{"workout_type":"RUN","data":[15000,1,75]}`, auth.ScopeReportsWrite, &stubPublisher{err: errors.New("broker down")}, http.StatusBadGateway, "publish_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var publisher domain.ReportPublisher
			if tt.publisher != nil {
				publisher = tt.publisher
			}
			handler := NewHandler(domain.NewService(publisher))

			req := authorized(httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(tt.body)), tt.scope)
			rr := httptest.NewRecorder()
			handler.reports(rr, req)

			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			var payload map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
			require.Equal(t, tt.errType, payload["type"])
		})
	}
}

func TestWriteJSONReportsEncodingFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, map[string]float64{"speed": math.Inf(1)})

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Body.String(), "unsupported value")
}

func TestCreateReportRequiresClaims(t *testing.T) {
	handler := NewHandler(domain.NewService(nil))

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.reports(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	rr = httptest.NewRecorder()
	handler.reports(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestWorkoutTypes(t *testing.T) {
	handler := NewHandler(domain.NewService(nil))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/workout-types", nil), auth.ScopeReportsRead)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp WorkoutTypesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	require.Equal(t, "SWM", resp.Items[0].Code)
	require.Equal(t, []string{"action", "duration", "weight", "length_pool", "count_pool"}, resp.Items[0].Params)
}

func TestHealthz(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(domain.NewService(nil)).RegisterRoutes(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func authorized(req *http.Request, scopes ...string) *http.Request {
	claims := &auth.Claims{
		Subject:   "tester",
		Scopes:    make(map[string]struct{}, len(scopes)),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	for _, scope := range scopes {
		claims.Scopes[scope] = struct{}{}
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

type stubPublisher struct {
	published []events.WorkoutReportComputed
	err       error
}

func (p *stubPublisher) PublishReport(_ context.Context, evt events.WorkoutReportComputed) error {
	p.published = append(p.published, evt)
	return p.err
}
