package types

import "time"

// Trend direction for a compared metric.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Ticket status buckets.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// Priority impact levels.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// DashboardStats is the per-period aggregate computed fresh on every report
// request. Invariant: OpenTickets + ResolvedTickets == TotalTickets after
// exclusion filtering.
type DashboardStats struct {
	TotalCalls      int      `json:"totalCalls"`
	AvgCallDuration float64  `json:"avgCallDuration"` // seconds, over calls with duration > 0
	TotalCallTime   float64  `json:"totalCallTime"`   // seconds
	TotalCost       float64  `json:"totalCost"`
	AvgScore        *float64 `json:"avgScore,omitempty"`
	TotalTickets    int      `json:"totalTickets"`
	OpenTickets     int      `json:"openTickets"`
	ResolvedTickets int      `json:"resolvedTickets"`
}

// ResponseBucket is one response-time distribution bucket. Percentage is
// relative to total calls (answered + missed), not answered alone.
type ResponseBucket struct {
	Label      string  `json:"label"`
	Calls      int     `json:"calls"`
	Percentage float64 `json:"percentage"`
}

// ChannelSummary is a per-channel call rollup.
type ChannelSummary struct {
	Channel     string  `json:"channel"`
	Calls       int     `json:"calls"`
	AvgDuration float64 `json:"avgDuration"` // seconds
}

// CallAnalysis classifies a period's calls.
type CallAnalysis struct {
	Total                int              `json:"total"`
	Answered             int              `json:"answered"`
	Missed               int              `json:"missed"`
	AnsweredRate         float64          `json:"answeredRate"` // % of total
	AnsweredWithinHours  int              `json:"answeredWithinHours"`
	AnsweredOutsideHours int              `json:"answeredOutsideHours"`
	WithinHoursRate      float64          `json:"withinHoursRate"`  // % of answered
	OutsideHoursRate     float64          `json:"outsideHoursRate"` // % of answered
	Distribution         []ResponseBucket `json:"distribution"`
	Channels             []ChannelSummary `json:"channels"`
}

// TicketStatusSummary is a per-status ticket count.
type TicketStatusSummary struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // % of total tickets
}

// TicketServiceSummary is a per-service rollup. The sub-split percentages
// are relative to the service's own Count, not the grand total.
type TicketServiceSummary struct {
	Service           string  `json:"service"`
	Count             int     `json:"count"`
	Percentage        float64 `json:"percentage"` // % of total tickets
	ClosedCount       int     `json:"closedCount"`
	OpenCount         int     `json:"openCount"`
	InProgressCount   int     `json:"inProgressCount"`
	ClosedPercentage  float64 `json:"closedPercentage"`
	PendingPercentage float64 `json:"pendingPercentage"`
}

// TicketAgentSummary is a per-agent rollup.
type TicketAgentSummary struct {
	Agent    string `json:"agent"`
	Count    int    `json:"count"`
	Resolved int    `json:"resolved"`
	Open     int    `json:"open"`
}

// TrendPoint is one bucket of the call-volume trend series, in the
// caller-supplied (chronological) bucket order.
type TrendPoint struct {
	Label         string   `json:"label"`
	Calls         int      `json:"calls"`
	MovingAverage *float64 `json:"movingAverage,omitempty"`
	Peak          bool     `json:"peak"`
}

// HeatmapCell is one (weekday, hour) cell of the call-volume heatmap.
type HeatmapCell struct {
	Day         string  `json:"day"`
	Hour        int     `json:"hour"` // 0-23
	Calls       int     `json:"calls"`
	AvgDuration float64 `json:"avgDuration"` // seconds
	Peak        bool    `json:"peak"`
}

// Comparison is the period-over-period delta for one value. Delta is nil
// when the previous value is absent or zero.
type Comparison struct {
	Delta *float64 `json:"delta"` // percentage, rounded to one decimal
	Trend string   `json:"trend"`
}

// ReportMetric is one labeled, formatted, delta-annotated metric.
type ReportMetric struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Value string   `json:"value"`
	Delta *float64 `json:"delta,omitempty"`
	Trend string   `json:"trend"`
	Hint  string   `json:"hint,omitempty"`
}

// EconomicSummary is the automation cost/savings model output. ROI is nil
// when MissedCallCost is zero (undefined, not an error).
type EconomicSummary struct {
	MissedCalls       int      `json:"missedCalls"`
	MissedCallCost    float64  `json:"missedCallCost"`
	AutomationSavings float64  `json:"automationSavings"`
	HumanSavings      float64  `json:"humanSavings"`
	RecoveredRevenue  float64  `json:"recoveredRevenue"`
	NetImpact         float64  `json:"netImpact"`
	ROI               *float64 `json:"roi"`
}

// BenchmarkSummary places one metric into a cohort against configured
// thresholds.
type BenchmarkSummary struct {
	Metric     string  `json:"metric"`
	Percentile float64 `json:"percentile"`
	Cohort     string  `json:"cohort"` // top|average|bottom
	Message    string  `json:"message"`
}

// Insight is one generated natural-language observation.
type Insight struct {
	Kind    string `json:"kind"` // positive|warning|info
	Message string `json:"message"`
}

// PriorityItem is one prioritized action item. Generated per request,
// never stored.
type PriorityItem struct {
	ID              string `json:"id"`
	Impact          string `json:"impact"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ReferenceMetric string `json:"referenceMetric"`
}

// Report is the full engine output for one (tenant, period) request. Plain
// data with no behavior attached; rendering and export happen elsewhere.
type Report struct {
	TenantID    string    `json:"tenantId"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	GeneratedAt time.Time `json:"generatedAt"`

	Stats         DashboardStats         `json:"stats"`
	PreviousStats DashboardStats         `json:"previousStats"`
	Calls         CallAnalysis           `json:"calls"`
	PreviousCalls CallAnalysis           `json:"previousCalls"`
	Statuses      []TicketStatusSummary  `json:"ticketStatuses"`
	Services      []TicketServiceSummary `json:"ticketServices"`
	Agents        []TicketAgentSummary   `json:"ticketAgents"`
	Trend         []TrendPoint           `json:"trend"`
	Heatmap       []HeatmapCell          `json:"heatmap"`
	Economics     EconomicSummary        `json:"economics"`
	Benchmarks    []BenchmarkSummary     `json:"benchmarks"`
	Metrics       []ReportMetric         `json:"metrics"`
	Insights      []Insight              `json:"insights"`
	Priorities    []PriorityItem         `json:"priorities"`
}
