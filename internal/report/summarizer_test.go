package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

func strPtr(s string) *string { return &s }

func makeCall(id string, created time.Time, duration *string) types.CallRecord {
	return types.CallRecord{
		TenantID:        "tenant-a",
		CallID:          id,
		SK:              created.Format(time.RFC3339) + "#" + id,
		CreatedAt:       created.Format(time.RFC3339),
		DurationSeconds: duration,
	}
}

func makeTicket(id string, ticketType, status *string) types.TicketRecord {
	created := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return types.TicketRecord{
		TenantID:     "tenant-a",
		TicketID:     id,
		SK:           created.Format(time.RFC3339) + "#" + id,
		CreatedAt:    created.Format(time.RFC3339),
		TicketType:   ticketType,
		TicketStatus: status,
	}
}

func TestSummarizeCallDurations(t *testing.T) {
	created := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	// 7 calls with 120s each (total 840) and 3 with no duration
	var calls []types.CallRecord
	for i := 0; i < 7; i++ {
		calls = append(calls, makeCall(fmt.Sprintf("c%d", i), created, strPtr("120")))
	}
	for i := 7; i < 10; i++ {
		calls = append(calls, makeCall(fmt.Sprintf("c%d", i), created, nil))
	}

	stats := Summarize(calls, nil, config.DefaultReportSettings())

	if stats.TotalCalls != 10 {
		t.Errorf("expected 10 total calls, got %d", stats.TotalCalls)
	}
	if stats.TotalCallTime != 840 {
		t.Errorf("expected total call time 840, got %v", stats.TotalCallTime)
	}
	if stats.AvgCallDuration != 120 {
		t.Errorf("expected avg duration 120, got %v", stats.AvgCallDuration)
	}
}

func TestSummarizeNoValidDurations(t *testing.T) {
	created := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	calls := []types.CallRecord{
		makeCall("c1", created, nil),
		makeCall("c2", created, strPtr("0")),
		makeCall("c3", created, strPtr("garbage")),
	}

	stats := Summarize(calls, nil, config.DefaultReportSettings())

	if stats.TotalCalls != 3 {
		t.Errorf("expected 3 total calls, got %d", stats.TotalCalls)
	}
	if stats.AvgCallDuration != 0 {
		t.Errorf("expected avg duration 0, got %v", stats.AvgCallDuration)
	}
}

func TestSummarizeTicketExclusion(t *testing.T) {
	tickets := []types.TicketRecord{
		makeTicket("t1", strPtr("averias"), strPtr("abierto")),
		makeTicket("t2", strPtr("averias"), strPtr("cerrado")),
		makeTicket("t3", strPtr("anular_cita"), strPtr("abierto")),
		makeTicket("t4", strPtr("llamada colgada"), strPtr("abierto")),
		makeTicket("t5", strPtr("consulta"), strPtr("resuelto")),
	}

	stats := Summarize(nil, tickets, config.DefaultReportSettings())

	if stats.TotalTickets != 4 {
		t.Errorf("expected 4 tickets after exclusion, got %d", stats.TotalTickets)
	}
	if stats.ResolvedTickets != 2 {
		t.Errorf("expected 2 resolved, got %d", stats.ResolvedTickets)
	}
	if stats.OpenTickets != 2 {
		t.Errorf("expected 2 open, got %d", stats.OpenTickets)
	}
}

func TestSummarizeTicketInvariant(t *testing.T) {
	statuses := []*string{
		strPtr("abierto"), strPtr("cerrado"), strPtr("en curso"), nil,
		strPtr("Tancat"), strPtr("RESUELTO"), strPtr("weird status"),
	}
	var tickets []types.TicketRecord
	for i, status := range statuses {
		tickets = append(tickets, makeTicket(fmt.Sprintf("t%d", i), strPtr("consulta"), status))
	}

	stats := Summarize(nil, tickets, config.DefaultReportSettings())

	if stats.OpenTickets+stats.ResolvedTickets != stats.TotalTickets {
		t.Errorf("invariant violated: open %d + resolved %d != total %d",
			stats.OpenTickets, stats.ResolvedTickets, stats.TotalTickets)
	}
}

func TestSummarizeAgreesWithStatusRollup(t *testing.T) {
	// The first status contains both an in-progress and a closed keyword.
	// The dashboard counters and the status rollup must bucket it the
	// same way.
	tickets := []types.TicketRecord{
		makeTicket("t1", strPtr("consulta"), strPtr("finalizado, pendiente de revisión")),
		makeTicket("t2", strPtr("consulta"), strPtr("cerrado")),
		makeTicket("t3", strPtr("consulta"), strPtr("abierto")),
	}

	stats := Summarize(nil, tickets, config.DefaultReportSettings())
	rollup := SummarizeStatuses(tickets)

	closed := 0
	for _, s := range rollup {
		if s.Status == types.StatusClosed {
			closed = s.Count
		}
	}
	if stats.ResolvedTickets != closed {
		t.Errorf("stats resolved %d, rollup closed %d", stats.ResolvedTickets, closed)
	}
	if stats.ResolvedTickets != 1 {
		t.Errorf("expected only the unambiguous closure to count, got %d", stats.ResolvedTickets)
	}
}

func TestSummarizeAvgScore(t *testing.T) {
	created := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	calls := []types.CallRecord{
		makeCall("c1", created, strPtr("60")),
		makeCall("c2", created, strPtr("60")),
	}
	calls[0].Score = strPtr("8")
	calls[1].Score = strPtr("6,5")

	stats := Summarize(calls, nil, config.DefaultReportSettings())

	if stats.AvgScore == nil {
		t.Fatal("expected avg score to be set")
	}
	if *stats.AvgScore != 7.3 {
		t.Errorf("expected avg score 7.3, got %v", *stats.AvgScore)
	}
}

func TestSummarizeNoScores(t *testing.T) {
	created := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	stats := Summarize([]types.CallRecord{makeCall("c1", created, strPtr("60"))}, nil, config.DefaultReportSettings())

	if stats.AvgScore != nil {
		t.Errorf("expected nil avg score, got %v", *stats.AvgScore)
	}
}

func TestFilterExcludedKeepsNilType(t *testing.T) {
	tickets := []types.TicketRecord{
		makeTicket("t1", nil, strPtr("abierto")),
		makeTicket("t2", strPtr("Llamada Colgada por cliente"), strPtr("abierto")),
	}

	kept := FilterExcluded(tickets, config.DefaultReportSettings().ExcludedTicketKeywords)

	if len(kept) != 1 {
		t.Fatalf("expected 1 kept ticket, got %d", len(kept))
	}
	if kept[0].TicketID != "t1" {
		t.Errorf("expected t1 to survive, got %s", kept[0].TicketID)
	}
}
