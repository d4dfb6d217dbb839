package report

import (
	"math"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// Compare computes the period-over-period delta for one value.
//
// A missing or zero previous value makes percentage change undefined (not
// infinite), so delta is nil and trend is flat. Rounded deltas below 0.1
// in magnitude are treated as noise: delta 0, trend flat. The returned
// direction is always the raw mathematical one; per-metric polarity
// inversion is a presentation concern handled by the metric builder.
func Compare(current float64, previous *float64) types.Comparison {
	if previous == nil || *previous == 0 {
		return types.Comparison{Trend: types.TrendFlat}
	}

	delta := numutil.Round1((current - *previous) / math.Abs(*previous) * 100)
	if math.Abs(delta) < 0.1 {
		zero := 0.0
		return types.Comparison{Delta: &zero, Trend: types.TrendFlat}
	}

	trend := types.TrendUp
	if delta < 0 {
		trend = types.TrendDown
	}
	return types.Comparison{Delta: &delta, Trend: trend}
}
