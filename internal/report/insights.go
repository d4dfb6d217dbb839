package report

import (
	"fmt"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// maxInsights caps the insight list. Rules fire in fixed precedence order,
// so when the cap truncates, the higher-precedence observations survive.
const maxInsights = 6

// backlogAlertPercentage is the open-ticket share that turns the backlog
// into a high-impact priority.
const backlogAlertPercentage = 30.0

// agentBacklogThreshold is the open-ticket count per agent above which a
// redistribution priority fires.
const agentBacklogThreshold = 5

// InsightInput carries the computed aggregates the generators read.
type InsightInput struct {
	Stats     types.DashboardStats
	PrevStats types.DashboardStats
	Calls     types.CallAnalysis
	Statuses  []types.TicketStatusSummary
	Services  []types.TicketServiceSummary
	Agents    []types.TicketAgentSummary
	Trend     []types.TrendPoint
	Economics types.EconomicSummary
	Currency  string
	Resolve   labels.Resolver
}

// BuildInsights produces ranked natural-language observations. Rule-based,
// not ML-based: each rule reads one already-computed aggregate.
func BuildInsights(in InsightInput) []types.Insight {
	var insights []types.Insight
	add := func(kind, key string, args ...any) {
		if len(insights) >= maxInsights {
			return
		}
		insights = append(insights, types.Insight{
			Kind:    kind,
			Message: fmt.Sprintf(labels.Resolve(in.Resolve, key), args...),
		})
	}

	// 1. Resolution-rate movement against the previous period.
	current := resolutionRate(in.Stats)
	previous := resolutionRate(in.PrevStats)
	if cmp := Compare(current, ptr(previous)); cmp.Delta != nil {
		switch cmp.Trend {
		case types.TrendUp:
			add("positive", "insight.resolution_up", numutil.FormatPercent(*cmp.Delta))
		case types.TrendDown:
			add("warning", "insight.resolution_down", numutil.FormatPercent(-*cmp.Delta))
		}
	}

	// 2. Open backlog.
	if in.Stats.OpenTickets > 0 {
		add("warning", "insight.backlog", in.Stats.OpenTickets)
	}

	// 3. Dominant service category.
	if len(in.Services) > 0 {
		top := in.Services[0]
		add("info", "insight.top_service", top.Service, numutil.FormatPercent(top.Percentage))
	}

	// 4. Peak volume bucket.
	for _, point := range in.Trend {
		if point.Peak {
			add("info", "insight.peak", point.Label)
			break
		}
	}

	// 5. Dominant ticket status.
	if status, ok := dominantStatus(in.Statuses); ok {
		add("info", "insight.dominant_status", labels.Resolve(in.Resolve, "status."+status))
	}

	// 6. Economic net impact sign.
	if in.Economics.NetImpact >= 0 {
		add("positive", "insight.net_positive", numutil.FormatCurrency(in.Economics.NetImpact, in.Currency))
	} else {
		add("warning", "insight.net_negative", numutil.FormatCurrency(in.Economics.NetImpact, in.Currency))
	}

	return insights
}

// BuildPriorities produces the prioritized action items, each from one
// fixed check with a fixed impact level.
func BuildPriorities(in InsightInput) []types.PriorityItem {
	var priorities []types.PriorityItem
	add := func(id, impact, refMetric, titleKey, descKey string, args ...any) {
		priorities = append(priorities, types.PriorityItem{
			ID:              id,
			Impact:          impact,
			Title:           labels.Resolve(in.Resolve, titleKey),
			Description:     fmt.Sprintf(labels.Resolve(in.Resolve, descKey), args...),
			ReferenceMetric: refMetric,
		})
	}

	if in.Calls.Missed > 0 {
		add("missed_calls", types.ImpactHigh, "answered_rate",
			"priority.missed_calls.title", "priority.missed_calls.desc", in.Calls.Missed)
	}

	openPct := numutil.Percentage(float64(in.Stats.OpenTickets), float64(in.Stats.TotalTickets))
	if openPct > backlogAlertPercentage {
		add("ticket_backlog", types.ImpactHigh, "open_tickets",
			"priority.ticket_backlog.title", "priority.ticket_backlog.desc", numutil.FormatPercent(openPct))
	}

	if len(in.Services) > 0 {
		top := in.Services[0]
		add("top_service", types.ImpactMedium, "total_tickets",
			"priority.top_service.title", "priority.top_service.desc", top.Service, top.Count)
	}

	if in.Economics.NetImpact < 0 {
		add("negative_impact", types.ImpactMedium, "net_impact",
			"priority.negative_impact.title", "priority.negative_impact.desc")
	}

	for _, agent := range in.Agents {
		if agent.Open > agentBacklogThreshold {
			add("agent_backlog", types.ImpactLow, "open_tickets",
				"priority.agent_backlog.title", "priority.agent_backlog.desc", agent.Agent, agent.Open)
			break
		}
	}

	return priorities
}

func resolutionRate(stats types.DashboardStats) float64 {
	if stats.TotalTickets == 0 {
		return 0
	}
	return float64(stats.ResolvedTickets) / float64(stats.TotalTickets) * 100
}

// dominantStatus returns the status holding a strict majority of tickets.
func dominantStatus(statuses []types.TicketStatusSummary) (string, bool) {
	best := ""
	bestCount := 0
	total := 0
	for _, s := range statuses {
		total += s.Count
		if s.Count > bestCount {
			best = s.Status
			bestCount = s.Count
		}
	}
	if total == 0 || bestCount*2 <= total {
		return "", false
	}
	return best, true
}
