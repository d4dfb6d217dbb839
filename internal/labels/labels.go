// Package labels resolves semantic label keys to display strings. Callers
// may supply their own Resolver (for per-tenant wording or translations);
// when they don't, a built-in Spanish default table is used. The engine
// never hardcodes UI copy outside this table.
package labels

// Resolver maps a semantic key to a display string. An empty return falls
// back to the built-in defaults.
type Resolver func(key string) string

// Resolve looks up key through r, then the default table, then returns the
// key itself so unknown keys stay visible instead of vanishing.
func Resolve(r Resolver, key string) string {
	if r != nil {
		if s := r(key); s != "" {
			return s
		}
	}
	if s, ok := defaults[key]; ok {
		return s
	}
	return key
}

var defaults = map[string]string{
	"weekday.mon": "Lun",
	"weekday.tue": "Mar",
	"weekday.wed": "Mié",
	"weekday.thu": "Jue",
	"weekday.fri": "Vie",
	"weekday.sat": "Sáb",
	"weekday.sun": "Dom",

	"channel.other":         "Otros canales",
	"agent.unassigned":      "Sin asignar",
	"service.uncategorized": "Sin categorizar",

	"status.open":        "Abierto",
	"status.in_progress": "En curso",
	"status.closed":      "Cerrado",

	"metric.total_calls":       "Llamadas totales",
	"metric.answered_rate":     "Tasa de respuesta",
	"metric.avg_call_duration": "Duración media",
	"metric.total_call_time":   "Tiempo total en llamada",
	"metric.total_cost":        "Coste total",
	"metric.total_tickets":     "Tickets totales",
	"metric.open_tickets":      "Tickets abiertos",
	"metric.resolved_tickets":  "Tickets resueltos",
	"metric.within_hours_rate": "Atención en horario",
	"metric.net_impact":        "Impacto económico neto",

	"metric.answered_rate.hint":     "Porcentaje de llamadas atendidas sobre el total recibido",
	"metric.avg_call_duration.hint": "Media sobre llamadas con duración registrada",
	"metric.open_tickets.hint":      "Tickets sin resolver al cierre del periodo",
	"metric.within_hours_rate.hint": "Llamadas atendidas dentro del horario laboral",
	"metric.net_impact.hint":        "Ahorro estimado menos el coste de llamadas perdidas",

	"benchmark.answer_rate.top":           "Tasa de respuesta en el tramo alto del sector",
	"benchmark.answer_rate.average":       "Tasa de respuesta en la media del sector",
	"benchmark.answer_rate.bottom":        "Tasa de respuesta por debajo del sector",
	"benchmark.resolution_rate.top":       "Resolución de tickets en el tramo alto del sector",
	"benchmark.resolution_rate.average":   "Resolución de tickets en la media del sector",
	"benchmark.resolution_rate.bottom":    "Resolución de tickets por debajo del sector",
	"benchmark.within_hours_rate.top":     "Cobertura horaria en el tramo alto del sector",
	"benchmark.within_hours_rate.average": "Cobertura horaria en la media del sector",
	"benchmark.within_hours_rate.bottom":  "Cobertura horaria por debajo del sector",

	"insight.resolution_up":   "La tasa de resolución ha mejorado un %s respecto al periodo anterior",
	"insight.resolution_down": "La tasa de resolución ha caído un %s respecto al periodo anterior",
	"insight.backlog":         "Hay %d tickets abiertos pendientes de resolución",
	"insight.top_service":     "%s concentra el %s de los tickets del periodo",
	"insight.peak":            "El mayor volumen de llamadas se registró en %s",
	"insight.dominant_status": "La mayoría de los tickets está en estado %s",
	"insight.net_positive":    "La automatización genera un impacto neto positivo de %s",
	"insight.net_negative":    "El coste de llamadas perdidas supera el ahorro estimado (%s)",

	"priority.missed_calls.title":    "Recuperar llamadas perdidas",
	"priority.missed_calls.desc":     "Se perdieron %d llamadas en el periodo; revisa la cobertura y los desbordes",
	"priority.ticket_backlog.title":  "Reducir el backlog de tickets",
	"priority.ticket_backlog.desc":   "El %s de los tickets sigue abierto; prioriza los más antiguos",
	"priority.top_service.title":     "Revisar la categoría dominante",
	"priority.top_service.desc":      "%s acumula %d tickets; valora automatizar sus casos más repetidos",
	"priority.negative_impact.title": "Impacto económico negativo",
	"priority.negative_impact.desc":  "El coste de llamadas perdidas supera el ahorro estimado del periodo",
	"priority.agent_backlog.title":   "Redistribuir carga entre agentes",
	"priority.agent_backlog.desc":    "%s acumula %d tickets abiertos",
}
