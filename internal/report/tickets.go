package report

import (
	"sort"
	"strings"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// statusRules classify a raw status string into a bucket. Evaluated in
// order, first match wins; anything unmatched defaults to open. Order is
// part of the contract: "pendiente de cierre" must hit in_progress before
// any broader match could claim it.
var statusRules = []struct {
	Status   string
	Keywords []string
}{
	{types.StatusInProgress, []string{
		"progress", "proceso", "curso", "tramit", "asignado", "asignada",
		"en espera", "pendiente de", "seguimiento",
	}},
	{types.StatusClosed, resolvedKeywords},
}

// ClassifyStatus buckets a raw ticket status into open/in_progress/closed.
// A missing or unmatched status is open, never an error.
func ClassifyStatus(status *string) string {
	if status == nil {
		return types.StatusOpen
	}
	lower := strings.ToLower(*status)
	for _, rule := range statusRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Status
			}
		}
	}
	return types.StatusOpen
}

// exactServices is the phase-1 dictionary: case-folded, trimmed raw type
// to canonical service category.
var exactServices = map[string]string{
	"averias":      "Averías",
	"averia":       "Averías",
	"avaries":      "Averías",
	"anular_cita":  "Anular Cita",
	"anular cita":  "Anular Cita",
	"cita_previa":  "Cita Previa",
	"cita previa":  "Cita Previa",
	"consulta":     "Consultas",
	"consultas":    "Consultas",
	"urgencia":     "Urgencias",
	"urgencias":    "Urgencias",
	"reclamacion":  "Reclamaciones",
	"reclamación":  "Reclamaciones",
	"facturacion":  "Facturación",
	"facturación":  "Facturación",
	"presupuesto":  "Presupuestos",
	"presupuestos": "Presupuestos",
}

// serviceRules is the phase-2 fallback: ordered (category, keyword-set)
// pairs, first category with any substring match wins. Order is load
// bearing: "averia urgente" must map to Urgencias, so Urgencias comes
// before Averías.
var serviceRules = []struct {
	Service  string
	Keywords []string
}{
	{"Urgencias", []string{"urgen", "emergencia"}},
	{"Averías", []string{"averi", "avaria", "fallo", "incidencia"}},
	{"Anular Cita", []string{"anula", "cancel"}},
	{"Cita Previa", []string{"cita", "agenda", "reserva"}},
	{"Reclamaciones", []string{"reclam", "queja"}},
	{"Facturación", []string{"factur", "cobro", "recibo"}},
	{"Presupuestos", []string{"presupuesto", "tarifa"}},
	{"Consultas", []string{"consult", "duda", "pregunta", "informacion", "información"}},
}

// MapService maps a raw free-text ticket type to a service category.
//
// Phase 1 is an exact dictionary hit on the case-folded trimmed label,
// phase 2 ordered keyword matching, and phase 3 keeps the trimmed label
// verbatim: unknown categories stay visible instead of collapsing into an
// "Other" bucket that would hide emerging incident types. A blank type
// maps to the uncategorized bucket.
func MapService(ticketType *string, resolve labels.Resolver) string {
	if ticketType == nil {
		return labels.Resolve(resolve, "service.uncategorized")
	}
	trimmed := strings.TrimSpace(*ticketType)
	if trimmed == "" {
		return labels.Resolve(resolve, "service.uncategorized")
	}

	folded := strings.ToLower(trimmed)
	if service, ok := exactServices[folded]; ok {
		return service
	}

	for _, rule := range serviceRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(folded, kw) {
				return rule.Service
			}
		}
	}

	return trimmed
}

// SummarizeStatuses counts tickets per status bucket. The slice order is
// the fixed enum order, not count order.
func SummarizeStatuses(tickets []types.TicketRecord) []types.TicketStatusSummary {
	counts := map[string]int{}
	for _, ticket := range tickets {
		counts[ClassifyStatus(ticket.TicketStatus)]++
	}

	total := float64(len(tickets))
	summaries := make([]types.TicketStatusSummary, 0, 3)
	for _, status := range []string{types.StatusOpen, types.StatusInProgress, types.StatusClosed} {
		summaries = append(summaries, types.TicketStatusSummary{
			Status:     status,
			Count:      counts[status],
			Percentage: numutil.Percentage(float64(counts[status]), total),
		})
	}
	return summaries
}

// SummarizeServices groups tickets by service category with nested status
// sub-splits. The sub-split percentages are computed against the service's
// own count, not the grand total. Sorted by count descending, then name.
func SummarizeServices(tickets []types.TicketRecord, resolve labels.Resolver) []types.TicketServiceSummary {
	byService := map[string]*types.TicketServiceSummary{}
	for _, ticket := range tickets {
		service := MapService(ticket.TicketType, resolve)
		summary := byService[service]
		if summary == nil {
			summary = &types.TicketServiceSummary{Service: service}
			byService[service] = summary
		}
		summary.Count++
		switch ClassifyStatus(ticket.TicketStatus) {
		case types.StatusClosed:
			summary.ClosedCount++
		case types.StatusInProgress:
			summary.InProgressCount++
		default:
			summary.OpenCount++
		}
	}

	total := float64(len(tickets))
	summaries := make([]types.TicketServiceSummary, 0, len(byService))
	for _, summary := range byService {
		own := float64(summary.Count)
		summary.Percentage = numutil.Percentage(float64(summary.Count), total)
		summary.ClosedPercentage = numutil.Percentage(float64(summary.ClosedCount), own)
		summary.PendingPercentage = numutil.Percentage(float64(summary.OpenCount+summary.InProgressCount), own)
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Service < summaries[j].Service
	})
	return summaries
}

// SummarizeAgents groups tickets by sanitized assignee. Blank or
// whitespace-only assignees collapse into the unassigned bucket. Sorted by
// count descending, then name.
func SummarizeAgents(tickets []types.TicketRecord, resolve labels.Resolver) []types.TicketAgentSummary {
	unassigned := labels.Resolve(resolve, "agent.unassigned")

	byAgent := map[string]*types.TicketAgentSummary{}
	for _, ticket := range tickets {
		agent := unassigned
		if ticket.Assignee != nil && strings.TrimSpace(*ticket.Assignee) != "" {
			agent = strings.TrimSpace(*ticket.Assignee)
		}
		summary := byAgent[agent]
		if summary == nil {
			summary = &types.TicketAgentSummary{Agent: agent}
			byAgent[agent] = summary
		}
		summary.Count++
		if ClassifyStatus(ticket.TicketStatus) == types.StatusClosed {
			summary.Resolved++
		} else {
			summary.Open++
		}
	}

	summaries := make([]types.TicketAgentSummary, 0, len(byAgent))
	for _, summary := range byAgent {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Agent < summaries[j].Agent
	})
	return summaries
}
