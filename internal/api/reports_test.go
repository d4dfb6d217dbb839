package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/report"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// stubBuilder returns canned results and records the last request.
type stubBuilder struct {
	report   *types.Report
	points   []types.TrendPoint
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastMode report.Mode
}

func (s *stubBuilder) BuildReport(_ context.Context, _ string, from, to time.Time) (*types.Report, error) {
	s.lastFrom, s.lastTo = from, to
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubBuilder) BuildTrendSeries(_ context.Context, _ string, from, to time.Time, mode report.Mode) ([]types.TrendPoint, error) {
	s.lastFrom, s.lastTo, s.lastMode = from, to, mode
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

func newTestHandler(builder *stubBuilder) *ReportHandler {
	return NewReportHandler(builder, nil, zerolog.New(&bytes.Buffer{}))
}

func TestGetReport(t *testing.T) {
	builder := &stubBuilder{report: &types.Report{TenantID: "tenant-a"}}
	handler := newTestHandler(builder)

	req := httptest.NewRequest(http.MethodGet, "/api/reports?tenant=tenant-a&from=2026-03-02&to=2026-03-03", nil)
	rec := httptest.NewRecorder()
	handler.GetReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var got types.Report
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TenantID != "tenant-a" {
		t.Errorf("tenant = %q", got.TenantID)
	}

	// to is anchored to end of day.
	if builder.lastTo.Hour() != 23 || builder.lastTo.Minute() != 59 || builder.lastTo.Second() != 59 {
		t.Errorf("to not anchored to end of day: %v", builder.lastTo)
	}
	if builder.lastFrom.Hour() != 0 {
		t.Errorf("from not anchored to start of day: %v", builder.lastFrom)
	}
}

func TestGetReportValidation(t *testing.T) {
	handler := newTestHandler(&stubBuilder{report: &types.Report{}})

	tests := []struct {
		name  string
		query string
	}{
		{"missing tenant", "from=2026-03-02&to=2026-03-03"},
		{"missing range", "tenant=tenant-a"},
		{"bad from", "tenant=tenant-a&from=02-03-2026&to=2026-03-03"},
		{"bad to", "tenant=tenant-a&from=2026-03-02&to=soon"},
		{"inverted range", "tenant=tenant-a&from=2026-03-05&to=2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/reports?"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.GetReport(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestEndOfDayAcrossClockChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 2026-10-25 has 25 hours, so a fixed 24h offset would land an hour
	// short of the end of the day.
	day := time.Date(2026, 10, 25, 0, 0, 0, 0, loc)
	got := endOfDay(day)
	want := time.Date(2026, 10, 25, 23, 59, 59, 0, loc)

	if !got.Equal(want) {
		t.Errorf("endOfDay = %v, want %v", got, want)
	}
	if got.Sub(day) != 25*time.Hour-time.Second {
		t.Errorf("span = %v, want 24h59m59s", got.Sub(day))
	}
}

func TestGetReportBuilderFailure(t *testing.T) {
	handler := newTestHandler(&stubBuilder{err: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/api/reports?tenant=tenant-a&from=2026-03-02&to=2026-03-03", nil)
	rec := httptest.NewRecorder()
	handler.GetReport(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestGetHeatmapFill(t *testing.T) {
	builder := &stubBuilder{report: &types.Report{
		Heatmap: []types.HeatmapCell{{Day: "Lun", Hour: 10, Calls: 5}},
	}}
	handler := newTestHandler(builder)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/heatmap?tenant=tenant-a&from=2026-03-02&to=2026-03-02", nil)
	rec := httptest.NewRecorder()
	handler.GetHeatmap(rec, req)

	var sparse []types.HeatmapCell
	if err := json.NewDecoder(rec.Body).Decode(&sparse); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sparse) != 1 {
		t.Errorf("sparse cells = %d, want 1", len(sparse))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/heatmap?tenant=tenant-a&from=2026-03-02&to=2026-03-02&fill=1", nil)
	rec = httptest.NewRecorder()
	handler.GetHeatmap(rec, req)

	var full []types.HeatmapCell
	if err := json.NewDecoder(rec.Body).Decode(&full); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(full) != 7*24 {
		t.Errorf("filled cells = %d, want %d", len(full), 7*24)
	}
}

func TestGetTrendMode(t *testing.T) {
	builder := &stubBuilder{points: []types.TrendPoint{{Label: "2026-03-02"}}}
	handler := newTestHandler(builder)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/trend?tenant=tenant-a&from=2026-03-02&to=2026-03-03&mode=daily", nil)
	rec := httptest.NewRecorder()
	handler.GetTrend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if builder.lastMode != report.ModeDaily {
		t.Errorf("mode = %q, want daily", builder.lastMode)
	}

	// Unset mode passes through empty for auto-selection.
	req = httptest.NewRequest(http.MethodGet, "/api/reports/trend?tenant=tenant-a&from=2026-03-02&to=2026-03-03", nil)
	rec = httptest.NewRecorder()
	handler.GetTrend(rec, req)
	if builder.lastMode != "" {
		t.Errorf("mode = %q, want empty", builder.lastMode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/trend?tenant=tenant-a&from=2026-03-02&to=2026-03-03&mode=weekly", nil)
	rec = httptest.NewRecorder()
	handler.GetTrend(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown mode", rec.Code)
	}
}

func TestGetTrendEmptySeries(t *testing.T) {
	handler := newTestHandler(&stubBuilder{})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/trend?tenant=tenant-a&from=2026-03-02&to=2026-03-03", nil)
	rec := httptest.NewRecorder()
	handler.GetTrend(rec, req)

	// nil series encodes as an empty array, not null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestGetInsights(t *testing.T) {
	builder := &stubBuilder{report: &types.Report{
		Insights:   []types.Insight{{Kind: "info", Message: "observación"}},
		Priorities: []types.PriorityItem{{ID: "missed_calls", Impact: types.ImpactHigh}},
	}}
	handler := newTestHandler(builder)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/insights?tenant=tenant-a&from=2026-03-02&to=2026-03-03", nil)
	rec := httptest.NewRecorder()
	handler.GetInsights(rec, req)

	var got struct {
		Insights   []types.Insight      `json:"insights"`
		Priorities []types.PriorityItem `json:"priorities"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Insights) != 1 || got.Insights[0].Kind != "info" {
		t.Errorf("insights = %v", got.Insights)
	}
	if len(got.Priorities) != 1 || got.Priorities[0].ID != "missed_calls" {
		t.Errorf("priorities = %v", got.Priorities)
	}
}
