package report

import (
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// Benchmark cohorts.
const (
	CohortTop     = "top"
	CohortAverage = "average"
	CohortBottom  = "bottom"
)

// Classify places one computed ratio into a cohort against the metric's
// configured lower-bound thresholds. Pure and stateless: no learning, no
// historical adaptation.
func Classify(metric string, value float64, thresholds config.BenchmarkThresholds, resolve labels.Resolver) types.BenchmarkSummary {
	cohort := CohortBottom
	switch {
	case value >= thresholds.Top:
		cohort = CohortTop
	case value >= thresholds.Average:
		cohort = CohortAverage
	}

	return types.BenchmarkSummary{
		Metric:     metric,
		Percentile: numutil.Round1(value),
		Cohort:     cohort,
		Message:    labels.Resolve(resolve, "benchmark."+metric+"."+cohort),
	}
}
