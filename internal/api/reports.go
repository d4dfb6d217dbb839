package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/report"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

const dateLayout = "2006-01-02"

// ReportBuilder is the engine contract the handlers depend on.
type ReportBuilder interface {
	BuildReport(ctx context.Context, tenantID string, from, to time.Time) (*types.Report, error)
	BuildTrendSeries(ctx context.Context, tenantID string, from, to time.Time, mode report.Mode) ([]types.TrendPoint, error)
}

// ReportHandler provides REST endpoints for computed reports
type ReportHandler struct {
	builder ReportBuilder
	resolve labels.Resolver
	logger  zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(builder ReportBuilder, resolve labels.Resolver, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		builder: builder,
		resolve: resolve,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// GetReport returns the full report for a tenant and date range
// GET /api/reports?tenant=...&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	tenant, from, to, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	rep, err := h.builder.BuildReport(r.Context(), tenant, from, to)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to build report")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, rep)
}

// GetHeatmap returns the report's heatmap, optionally filled to the
// complete 7x24 grid
// GET /api/reports/heatmap?tenant=...&from=...&to=...&fill=1
func (h *ReportHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	tenant, from, to, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	rep, err := h.builder.BuildReport(r.Context(), tenant, from, to)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to build heatmap")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	cells := rep.Heatmap
	if r.URL.Query().Get("fill") == "1" {
		cells = report.FillHeatmap(cells, h.resolve)
	}
	if cells == nil {
		cells = []types.HeatmapCell{}
	}

	writeJSON(w, cells)
}

// GetTrend returns the dense trend series for a tenant and range
// GET /api/reports/trend?tenant=...&from=...&to=...&mode=hourly|daily
func (h *ReportHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	tenant, from, to, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	var mode report.Mode
	switch r.URL.Query().Get("mode") {
	case "hourly":
		mode = report.ModeHourly
	case "daily":
		mode = report.ModeDaily
	case "":
		// auto-selected from the range
	default:
		http.Error(w, "mode must be hourly or daily", http.StatusBadRequest)
		return
	}

	points, err := h.builder.BuildTrendSeries(r.Context(), tenant, from, to, mode)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to build trend")
		http.Error(w, "failed to build trend", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []types.TrendPoint{}
	}

	writeJSON(w, points)
}

// GetInsights returns only the insight and priority lists
// GET /api/reports/insights?tenant=...&from=...&to=...
func (h *ReportHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	tenant, from, to, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	rep, err := h.builder.BuildReport(r.Context(), tenant, from, to)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to build insights")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"insights":   rep.Insights,
		"priorities": rep.Priorities,
	})
}

// parseQuery extracts tenant and the inclusive [from, to] range. from is
// anchored to start of day and to to end of day.
func (h *ReportHandler) parseQuery(w http.ResponseWriter, r *http.Request) (string, time.Time, time.Time, bool) {
	q := r.URL.Query()

	tenant := q.Get("tenant")
	if tenant == "" {
		http.Error(w, "tenant is required", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}

	fromStr := q.Get("from")
	toStr := q.Get("to")
	if fromStr == "" || toStr == "" {
		http.Error(w, "from and to query parameters are required (YYYY-MM-DD)", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}

	from, err := time.ParseInLocation(dateLayout, fromStr, time.Local)
	if err != nil {
		http.Error(w, "invalid from date (YYYY-MM-DD)", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation(dateLayout, toStr, time.Local)
	if err != nil {
		http.Error(w, "invalid to date (YYYY-MM-DD)", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}
	to = endOfDay(to)

	if to.Before(from) {
		http.Error(w, "to must not be before from", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}

	return tenant, from, to, true
}

// endOfDay returns 23:59:59 on t's calendar date. Computed via AddDate so
// the anchor holds on days where a DST change makes the day longer than 24h.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Second)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
