package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CostModel holds the tenant-tunable parameters of the economic impact
// model. All values are treated as non-negative.
type CostModel struct {
	MissedCallCost           float64 `json:"missedCallCost"`           // cost per missed call
	AutomationCoverage       float64 `json:"automationCoverage"`       // 0-1 share of calls automated
	AutomationSavingsPerCall float64 `json:"automationSavingsPerCall"` // saved per automated call
	HourlyRate               float64 `json:"hourlyRate"`               // agent cost per hour
	ConversionRate           float64 `json:"conversionRate"`           // 0-1 recovered call to sale
	AvgTicketValue           float64 `json:"avgTicketValue"`           // revenue per converted call
}

// BenchmarkThresholds are lower-bound cutoffs for one benchmarked metric.
type BenchmarkThresholds struct {
	Top     float64 `json:"top"`
	Average float64 `json:"average"`
	Bottom  float64 `json:"bottom"`
}

// BusinessHours defines the tenant's attended schedule. Hours are local to
// each record's timestamp; [StartHour, EndHour) on the listed weekdays.
type BusinessHours struct {
	Weekdays  []time.Weekday `json:"weekdays"`
	StartHour int            `json:"startHour"`
	EndHour   int            `json:"endHour"`
}

// Includes reports whether t falls inside business hours.
func (b BusinessHours) Includes(t time.Time) bool {
	match := false
	for _, d := range b.Weekdays {
		if t.Weekday() == d {
			match = true
			break
		}
	}
	if !match {
		return false
	}
	return t.Hour() >= b.StartHour && t.Hour() < b.EndHour
}

// ReportSettings is the versionable per-tenant report configuration. The
// engine assumes validated settings and does not defend against missing
// required fields beyond the defaults applied at load time.
type ReportSettings struct {
	Currency               string                         `json:"currency"`
	CostModel              CostModel                      `json:"costModel"`
	Benchmarks             map[string]BenchmarkThresholds `json:"benchmarks"`
	ExcludedTicketKeywords []string                       `json:"excludedTicketKeywords"`
	BusinessHours          BusinessHours                  `json:"businessHours"`
	TrendWindow            int                            `json:"trendWindow"`
}

// DefaultReportSettings returns the built-in settings used when no tenant
// override file is configured.
func DefaultReportSettings() ReportSettings {
	return ReportSettings{
		Currency: "€",
		CostModel: CostModel{
			MissedCallCost:           12,
			AutomationCoverage:       0.6,
			AutomationSavingsPerCall: 3,
			HourlyRate:               18,
			ConversionRate:           0.2,
			AvgTicketValue:           60,
		},
		Benchmarks: map[string]BenchmarkThresholds{
			"answer_rate":       {Top: 90, Average: 75, Bottom: 0},
			"resolution_rate":   {Top: 80, Average: 60, Bottom: 0},
			"within_hours_rate": {Top: 85, Average: 65, Bottom: 0},
		},
		// Hangup artifacts registered as tickets. The exact spellings vary
		// per tenant, so the list is configuration, not a constant.
		ExcludedTicketKeywords: []string{
			"llamada colgada",
			"llamada cortada",
			"trucada penjada",
			"colgado",
			"hangup",
			"hung up",
			"unfinished call",
		},
		BusinessHours: BusinessHours{
			Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			StartHour: 9,
			EndHour:   17,
		},
		TrendWindow: 7,
	}
}

// LoadReportSettings reads settings from the given JSON file, overlaying
// the defaults. An empty path returns the defaults as-is.
func LoadReportSettings(path string) (ReportSettings, error) {
	settings := DefaultReportSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read report settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse report settings: %w", err)
	}

	if settings.TrendWindow < 1 {
		settings.TrendWindow = 1
	}
	return settings, nil
}
