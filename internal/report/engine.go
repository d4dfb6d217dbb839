package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/metrics"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/records"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// Engine turns raw records for a tenant and date range into a full Report.
// It holds no per-request state: every report is computed fresh and
// discarded after the response, and the current and previous periods never
// share accumulator state.
type Engine struct {
	store    records.Store
	settings config.ReportSettings
	resolve  labels.Resolver
	logger   zerolog.Logger
}

// NewEngine creates a report engine. resolve may be nil to use the
// built-in default labels.
func NewEngine(store records.Store, settings config.ReportSettings, resolve labels.Resolver, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		settings: settings,
		resolve:  resolve,
		logger:   logger.With().Str("component", "report_engine").Logger(),
	}
}

// periodRecords is one period's raw fetch result.
type periodRecords struct {
	calls   []types.CallRecord
	tickets []types.TicketRecord
}

// BuildReport computes the full report for [from, to]. The previous period
// is the equally sized window immediately before from.
//
// Fetches for the two periods run concurrently and independently. A fetch
// failure aborts the whole report: there is no partial-result contract.
func (e *Engine) BuildReport(ctx context.Context, tenantID string, from, to time.Time) (*types.Report, error) {
	start := time.Now()
	m := metrics.Get()

	span := to.Sub(from)
	prevTo := from.Add(-time.Second)
	prevFrom := prevTo.Add(-span)

	var current, previous periodRecords

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current.calls, err = e.store.FetchCalls(gctx, tenantID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		current.tickets, err = e.store.FetchTickets(gctx, tenantID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		previous.calls, err = e.store.FetchCalls(gctx, tenantID, prevFrom, prevTo)
		return err
	})
	g.Go(func() error {
		var err error
		previous.tickets, err = e.store.FetchTickets(gctx, tenantID, prevFrom, prevTo)
		return err
	})
	if err := g.Wait(); err != nil {
		m.RecordReportError()
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	report := e.aggregate(tenantID, from, to, current, previous)

	m.RecordReportBuilt(time.Since(start))
	e.logger.Info().
		Str("tenant_id", tenantID).
		Time("from", from).
		Time("to", to).
		Int("calls", len(current.calls)).
		Int("tickets", len(current.tickets)).
		Dur("duration", time.Since(start)).
		Msg("report built")

	return report, nil
}

// BuildTrendSeries fetches the current period's calls and builds the
// dense trend series. An empty mode auto-selects from the range.
func (e *Engine) BuildTrendSeries(ctx context.Context, tenantID string, from, to time.Time, mode Mode) ([]types.TrendPoint, error) {
	calls, err := e.store.FetchCalls(ctx, tenantID, from, to)
	if err != nil {
		metrics.Get().RecordReportError()
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	if mode == "" {
		mode = AutoMode(from, to)
	}
	return BuildTrend(calls, from, to, mode, e.settings.TrendWindow), nil
}

// aggregate runs the pure pipeline over already-fetched records.
func (e *Engine) aggregate(tenantID string, from, to time.Time, current, previous periodRecords) *types.Report {
	settings := e.settings

	report := &types.Report{
		TenantID:    tenantID,
		From:        from,
		To:          to,
		GeneratedAt: time.Now(),
	}

	report.Stats = Summarize(current.calls, current.tickets, settings)
	report.PreviousStats = Summarize(previous.calls, previous.tickets, settings)
	report.Calls = AnalyzeCalls(current.calls, settings.BusinessHours, e.resolve)
	report.PreviousCalls = AnalyzeCalls(previous.calls, settings.BusinessHours, e.resolve)

	kept := FilterExcluded(current.tickets, settings.ExcludedTicketKeywords)
	report.Statuses = SummarizeStatuses(kept)
	report.Services = SummarizeServices(kept, e.resolve)
	report.Agents = SummarizeAgents(kept, e.resolve)

	mode := AutoMode(from, to)
	report.Trend = BuildTrend(current.calls, from, to, mode, settings.TrendWindow)
	report.Heatmap = BuildHeatmap(current.calls, e.resolve)

	report.Economics = ComputeEconomics(report.Calls, report.PreviousCalls, report.Stats, settings.CostModel)

	report.Benchmarks = e.classifyBenchmarks(report)

	report.Metrics = BuildMetrics(MetricInput{
		Stats:     report.Stats,
		PrevStats: report.PreviousStats,
		Calls:     report.Calls,
		PrevCalls: report.PreviousCalls,
		Economics: report.Economics,
		Settings:  settings,
		Resolve:   e.resolve,
	})

	insightIn := InsightInput{
		Stats:     report.Stats,
		PrevStats: report.PreviousStats,
		Calls:     report.Calls,
		Statuses:  report.Statuses,
		Services:  report.Services,
		Agents:    report.Agents,
		Trend:     report.Trend,
		Economics: report.Economics,
		Currency:  settings.Currency,
		Resolve:   e.resolve,
	}
	report.Insights = BuildInsights(insightIn)
	report.Priorities = BuildPriorities(insightIn)

	return report
}

// classifyBenchmarks runs every configured benchmark metric the engine
// knows how to compute. Unknown configured metrics are skipped.
func (e *Engine) classifyBenchmarks(report *types.Report) []types.BenchmarkSummary {
	values := map[string]float64{
		"answer_rate":       report.Calls.AnsweredRate,
		"resolution_rate":   resolutionRate(report.Stats),
		"within_hours_rate": report.Calls.WithinHoursRate,
	}

	// Fixed order keeps output deterministic.
	order := []string{"answer_rate", "resolution_rate", "within_hours_rate"}

	summaries := make([]types.BenchmarkSummary, 0, len(order))
	for _, metric := range order {
		thresholds, ok := e.settings.Benchmarks[metric]
		if !ok {
			continue
		}
		summaries = append(summaries, Classify(metric, values[metric], thresholds, e.resolve))
	}
	return summaries
}
