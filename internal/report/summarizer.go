// Package report is the analytics engine: it reduces raw call and ticket
// records for a period into normalized statistics, period-over-period
// deltas, categorized breakdowns, temporal series, an economic impact
// model, benchmark cohorts and ranked insights. Every function here is
// pure; all I/O stays behind the records.Store boundary.
package report

import (
	"strings"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// resolvedKeywords mark a ticket status as closed. The portal serves
// tenants writing statuses in Spanish, Catalan and English, so the list is
// language-mixed on purpose.
var resolvedKeywords = []string{
	"closed",
	"resolved",
	"solved",
	"cerrado",
	"cerrada",
	"resuelto",
	"resuelta",
	"finalizado",
	"finalizada",
	"completado",
	"completada",
	"solucionado",
	"tancat",
	"tancada",
	"resolt",
	"finalitzat",
}

// Summarize reduces a period's records into DashboardStats.
//
// Call durations are summed only over records with a parseable positive
// duration, and that count is the average's denominator: a call with an
// unknown duration still counts toward TotalCalls but not toward
// AvgCallDuration. Tickets go through the exclusion filter first, so
// hangup artifacts never reach any ticket statistic.
func Summarize(calls []types.CallRecord, tickets []types.TicketRecord, settings config.ReportSettings) types.DashboardStats {
	stats := types.DashboardStats{TotalCalls: len(calls)}

	var withDuration int
	var scoreSum float64
	var scored int
	for _, call := range calls {
		if d := numutil.ParseFlexiblePtr(call.DurationSeconds); d > 0 {
			stats.TotalCallTime += d
			withDuration++
		}
		stats.TotalCost += numutil.ParseFlexiblePtr(call.Cost)
		if call.Score != nil {
			scoreSum += numutil.ParseFlexible(*call.Score)
			scored++
		}
	}
	if withDuration > 0 {
		stats.AvgCallDuration = stats.TotalCallTime / float64(withDuration)
	}
	if scored > 0 {
		avg := numutil.Round1(scoreSum / float64(scored))
		stats.AvgScore = &avg
	}

	kept := FilterExcluded(tickets, settings.ExcludedTicketKeywords)
	stats.TotalTickets = len(kept)
	for _, ticket := range kept {
		if IsResolved(ticket.TicketStatus) {
			stats.ResolvedTickets++
		}
	}
	stats.OpenTickets = stats.TotalTickets - stats.ResolvedTickets

	return stats
}

// FilterExcluded drops tickets whose type matches one of the tenant's
// excluded keyword substrings (case-insensitive). These rows model calls
// that hung up mid-flow and were logged as tickets; they are not real
// incidents and must not reach any ticket-derived statistic.
func FilterExcluded(tickets []types.TicketRecord, keywords []string) []types.TicketRecord {
	kept := make([]types.TicketRecord, 0, len(tickets))
	for _, ticket := range tickets {
		if isExcluded(ticket.TicketType, keywords) {
			continue
		}
		kept = append(kept, ticket)
	}
	return kept
}

func isExcluded(ticketType *string, keywords []string) bool {
	if ticketType == nil {
		return false
	}
	lower := strings.ToLower(*ticketType)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsResolved reports whether a raw status string names a closed state. It
// defers to ClassifyStatus so the dashboard counters and the status rollup
// never disagree on a ticket whose status mixes keywords.
func IsResolved(status *string) bool {
	return ClassifyStatus(status) == types.StatusClosed
}
