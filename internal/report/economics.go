package report

import (
	"math"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// ComputeEconomics converts a period's call statistics into the tenant's
// cost/savings/ROI figures.
//
// Recovered revenue only counts missed calls the tenant stopped losing:
// when the previous period had fewer missed calls the recovery floors at
// zero instead of going negative. ROI is undefined (nil) when there is no
// missed-call cost to measure against.
func ComputeEconomics(current, previous types.CallAnalysis, stats types.DashboardStats, cm config.CostModel) types.EconomicSummary {
	summary := types.EconomicSummary{MissedCalls: current.Missed}

	total := float64(current.Total)
	summary.MissedCallCost = math.Round(float64(current.Missed) * cm.MissedCallCost)
	summary.AutomationSavings = math.Round(total * cm.AutomationCoverage * cm.AutomationSavingsPerCall)
	summary.HumanSavings = math.Round(total * cm.AutomationCoverage * (stats.AvgCallDuration / 3600) * cm.HourlyRate)

	recovered := previous.Missed - current.Missed
	if recovered < 0 {
		recovered = 0
	}
	summary.RecoveredRevenue = math.Round(float64(recovered) * cm.ConversionRate * cm.AvgTicketValue)

	summary.NetImpact = summary.AutomationSavings + summary.HumanSavings + summary.RecoveredRevenue - summary.MissedCallCost

	if summary.MissedCallCost > 0 {
		roi := numutil.Round2(summary.NetImpact / summary.MissedCallCost)
		summary.ROI = &roi
	}

	return summary
}
