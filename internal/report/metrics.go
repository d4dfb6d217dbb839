package report

import (
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// invertedTrendMetrics flips trend polarity for display: for these metric
// ids a mathematical decrease is favorable and shown as "up". The
// comparator itself always returns the raw direction.
var invertedTrendMetrics = map[string]bool{
	"avg_call_duration": true,
	"total_cost":        true,
	"open_tickets":      true,
}

// MetricInput carries everything the metric builder composes.
type MetricInput struct {
	Stats     types.DashboardStats
	PrevStats types.DashboardStats
	Calls     types.CallAnalysis
	PrevCalls types.CallAnalysis
	Economics types.EconomicSummary
	Settings  config.ReportSettings
	Resolve   labels.Resolver
}

// BuildMetrics assembles the ordered, formatted, delta-annotated metric
// list consumed by UI and export collaborators. Formatting contracts:
// counts use grouped thousands, currency is 0-decimal, percentages
// 1-decimal, durations render as "Xh Ym" above an hour.
func BuildMetrics(in MetricInput) []types.ReportMetric {
	currency := in.Settings.Currency

	defs := []struct {
		id       string
		current  float64
		previous *float64
		value    string
	}{
		{
			id:       "total_calls",
			current:  float64(in.Stats.TotalCalls),
			previous: ptr(float64(in.PrevStats.TotalCalls)),
			value:    numutil.FormatCount(in.Stats.TotalCalls),
		},
		{
			id:       "answered_rate",
			current:  in.Calls.AnsweredRate,
			previous: ptr(in.PrevCalls.AnsweredRate),
			value:    numutil.FormatPercent(in.Calls.AnsweredRate),
		},
		{
			id:       "avg_call_duration",
			current:  in.Stats.AvgCallDuration,
			previous: ptr(in.PrevStats.AvgCallDuration),
			value:    numutil.FormatDuration(in.Stats.AvgCallDuration),
		},
		{
			id:       "total_call_time",
			current:  in.Stats.TotalCallTime,
			previous: ptr(in.PrevStats.TotalCallTime),
			value:    numutil.FormatDuration(in.Stats.TotalCallTime),
		},
		{
			id:       "total_cost",
			current:  in.Stats.TotalCost,
			previous: ptr(in.PrevStats.TotalCost),
			value:    numutil.FormatCurrency(in.Stats.TotalCost, currency),
		},
		{
			id:       "total_tickets",
			current:  float64(in.Stats.TotalTickets),
			previous: ptr(float64(in.PrevStats.TotalTickets)),
			value:    numutil.FormatCount(in.Stats.TotalTickets),
		},
		{
			id:       "open_tickets",
			current:  float64(in.Stats.OpenTickets),
			previous: ptr(float64(in.PrevStats.OpenTickets)),
			value:    numutil.FormatCount(in.Stats.OpenTickets),
		},
		{
			id:       "resolved_tickets",
			current:  float64(in.Stats.ResolvedTickets),
			previous: ptr(float64(in.PrevStats.ResolvedTickets)),
			value:    numutil.FormatCount(in.Stats.ResolvedTickets),
		},
		{
			id:       "within_hours_rate",
			current:  in.Calls.WithinHoursRate,
			previous: ptr(in.PrevCalls.WithinHoursRate),
			value:    numutil.FormatPercent(in.Calls.WithinHoursRate),
		},
		{
			// Economics are only modeled for the current period, so this
			// metric carries no delta.
			id:      "net_impact",
			current: in.Economics.NetImpact,
			value:   numutil.FormatCurrency(in.Economics.NetImpact, currency),
		},
	}

	metrics := make([]types.ReportMetric, 0, len(defs))
	for _, def := range defs {
		cmp := Compare(def.current, def.previous)

		trend := cmp.Trend
		if invertedTrendMetrics[def.id] {
			trend = flipTrend(trend)
		}

		metrics = append(metrics, types.ReportMetric{
			ID:    def.id,
			Label: labels.Resolve(in.Resolve, "metric."+def.id),
			Value: def.value,
			Delta: cmp.Delta,
			Trend: trend,
			Hint:  hint(in.Resolve, def.id),
		})
	}
	return metrics
}

func flipTrend(trend string) string {
	switch trend {
	case types.TrendUp:
		return types.TrendDown
	case types.TrendDown:
		return types.TrendUp
	default:
		return trend
	}
}

// hint returns the metric's hint or empty when none is defined; an
// unresolved key must not leak into display output.
func hint(resolve labels.Resolver, id string) string {
	key := "metric." + id + ".hint"
	if s := labels.Resolve(resolve, key); s != key {
		return s
	}
	return ""
}

func ptr(v float64) *float64 { return &v }
