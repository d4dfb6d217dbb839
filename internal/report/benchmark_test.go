package report

import (
	"testing"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
)

func TestClassify(t *testing.T) {
	thresholds := config.BenchmarkThresholds{Top: 90, Average: 75}

	tests := []struct {
		name       string
		value      float64
		wantCohort string
	}{
		{"above top", 95.5, CohortTop},
		{"exactly top", 90, CohortTop},
		{"between", 80, CohortAverage},
		{"exactly average", 75, CohortAverage},
		{"below average", 60, CohortBottom},
		{"zero", 0, CohortBottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("answer_rate", tt.value, thresholds, nil)
			if got.Cohort != tt.wantCohort {
				t.Errorf("cohort = %q, want %q", got.Cohort, tt.wantCohort)
			}
			if got.Metric != "answer_rate" {
				t.Errorf("metric = %q, want answer_rate", got.Metric)
			}
		})
	}
}

func TestClassifyMessageAndPercentile(t *testing.T) {
	thresholds := config.BenchmarkThresholds{Top: 90, Average: 75}

	got := Classify("answer_rate", 92.37, thresholds, nil)

	if got.Percentile != 92.4 {
		t.Errorf("percentile = %v, want 92.4", got.Percentile)
	}
	if got.Message == "" || got.Message == "benchmark.answer_rate.top" {
		t.Errorf("expected resolved message, got %q", got.Message)
	}
}
