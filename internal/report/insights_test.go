package report

import (
	"strings"
	"testing"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

func TestBuildInsightsCapAndPrecedence(t *testing.T) {
	in := InsightInput{
		Stats:     types.DashboardStats{TotalTickets: 10, ResolvedTickets: 8, OpenTickets: 2},
		PrevStats: types.DashboardStats{TotalTickets: 10, ResolvedTickets: 5, OpenTickets: 5},
		Services: []types.TicketServiceSummary{
			{Service: "Averías", Count: 6, Percentage: 60},
			{Service: "Consultas", Count: 4, Percentage: 40},
		},
		Statuses: []types.TicketStatusSummary{
			{Status: types.StatusOpen, Count: 2},
			{Status: types.StatusInProgress, Count: 0},
			{Status: types.StatusClosed, Count: 8},
		},
		Trend:     []types.TrendPoint{{Label: "2026-03-02 10:00", Calls: 9, Peak: true}},
		Economics: types.EconomicSummary{NetImpact: 150},
		Currency:  "€",
	}

	insights := BuildInsights(in)

	if len(insights) > 6 {
		t.Fatalf("expected at most 6 insights, got %d", len(insights))
	}
	if len(insights) != 6 {
		t.Fatalf("all six rules fire here, got %d insights", len(insights))
	}

	// Precedence order: resolution delta, backlog, top service, peak,
	// dominant status, net impact.
	wantKinds := []string{"positive", "warning", "info", "info", "info", "positive"}
	for i, kind := range wantKinds {
		if insights[i].Kind != kind {
			t.Errorf("insight %d: kind = %q, want %q", i, insights[i].Kind, kind)
		}
	}

	if !strings.Contains(insights[2].Message, "Averías") {
		t.Errorf("top service insight missing service name: %q", insights[2].Message)
	}
	if !strings.Contains(insights[3].Message, "2026-03-02 10:00") {
		t.Errorf("peak insight missing bucket label: %q", insights[3].Message)
	}
	if !strings.Contains(insights[5].Message, "150 €") {
		t.Errorf("net impact insight missing amount: %q", insights[5].Message)
	}
}

func TestBuildInsightsQuietPeriod(t *testing.T) {
	// No previous data, no tickets, no peaks: only the net-impact rule
	// fires.
	insights := BuildInsights(InsightInput{Currency: "€"})

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Kind != "positive" {
		t.Errorf("expected positive net-impact insight, got %q", insights[0].Kind)
	}
}

func TestBuildInsightsNegativeImpact(t *testing.T) {
	insights := BuildInsights(InsightInput{
		Economics: types.EconomicSummary{NetImpact: -300},
		Currency:  "€",
	})

	last := insights[len(insights)-1]
	if last.Kind != "warning" {
		t.Errorf("expected warning for negative net impact, got %q", last.Kind)
	}
	if !strings.Contains(last.Message, "-300 €") {
		t.Errorf("expected amount in message, got %q", last.Message)
	}
}

func TestDominantStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []types.TicketStatusSummary
		want     string
		wantOK   bool
	}{
		{
			"strict majority",
			[]types.TicketStatusSummary{
				{Status: types.StatusOpen, Count: 6},
				{Status: types.StatusClosed, Count: 4},
			},
			types.StatusOpen, true,
		},
		{
			"exact half is not dominant",
			[]types.TicketStatusSummary{
				{Status: types.StatusOpen, Count: 5},
				{Status: types.StatusClosed, Count: 5},
			},
			"", false,
		},
		{
			"no tickets",
			[]types.TicketStatusSummary{{Status: types.StatusOpen, Count: 0}},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dominantStatus(tt.statuses)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("dominantStatus = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBuildPriorities(t *testing.T) {
	in := InsightInput{
		Stats: types.DashboardStats{TotalTickets: 10, OpenTickets: 4},
		Calls: types.CallAnalysis{Missed: 3},
		Services: []types.TicketServiceSummary{
			{Service: "Averías", Count: 6},
		},
		Economics: types.EconomicSummary{NetImpact: -50},
		Agents: []types.TicketAgentSummary{
			{Agent: "laura", Count: 8, Open: 7},
			{Agent: "marc", Count: 8, Open: 6},
		},
	}

	priorities := BuildPriorities(in)

	wantIDs := []string{"missed_calls", "ticket_backlog", "top_service", "negative_impact", "agent_backlog"}
	if len(priorities) != len(wantIDs) {
		t.Fatalf("expected %d priorities, got %d", len(wantIDs), len(priorities))
	}
	for i, id := range wantIDs {
		if priorities[i].ID != id {
			t.Errorf("priority %d: id = %q, want %q", i, priorities[i].ID, id)
		}
	}

	if priorities[0].Impact != types.ImpactHigh || priorities[0].ReferenceMetric != "answered_rate" {
		t.Errorf("missed_calls priority: %+v", priorities[0])
	}
	if priorities[1].Impact != types.ImpactHigh {
		t.Errorf("ticket_backlog impact = %q, want high", priorities[1].Impact)
	}
	if priorities[2].Impact != types.ImpactMedium {
		t.Errorf("top_service impact = %q, want medium", priorities[2].Impact)
	}
	if priorities[4].Impact != types.ImpactLow {
		t.Errorf("agent_backlog impact = %q, want low", priorities[4].Impact)
	}
	// Only the first overloaded agent produces an item.
	if !strings.Contains(priorities[4].Description, "laura") {
		t.Errorf("expected first overloaded agent in description, got %q", priorities[4].Description)
	}
}

func TestBuildPrioritiesBacklogThreshold(t *testing.T) {
	// Exactly 30% open is not above the alert threshold.
	in := InsightInput{
		Stats: types.DashboardStats{TotalTickets: 10, OpenTickets: 3},
	}
	for _, p := range BuildPriorities(in) {
		if p.ID == "ticket_backlog" {
			t.Error("backlog priority must not fire at exactly 30%")
		}
	}

	in.Stats.OpenTickets = 4
	found := false
	for _, p := range BuildPriorities(in) {
		if p.ID == "ticket_backlog" {
			found = true
		}
	}
	if !found {
		t.Error("backlog priority should fire above 30%")
	}
}
