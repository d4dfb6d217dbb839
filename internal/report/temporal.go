package report

import (
	"math"
	"sort"
	"time"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// Mode selects the trend bucket granularity.
type Mode string

const (
	ModeHourly Mode = "hourly"
	ModeDaily  Mode = "daily"
)

const (
	hourlyLabel = "2006-01-02 15:00"
	dailyLabel  = "2006-01-02"
)

// weekdayKeys in fixed Monday-first display order.
var weekdayKeys = []string{
	"weekday.mon", "weekday.tue", "weekday.wed", "weekday.thu",
	"weekday.fri", "weekday.sat", "weekday.sun",
}

// AutoMode picks daily buckets when the range spans more than one calendar
// day, hourly otherwise.
func AutoMode(from, to time.Time) Mode {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	if fy == ty && fm == tm && fd == td {
		return ModeHourly
	}
	return ModeDaily
}

// BuildTrend buckets calls across [from, to] and smooths the series with a
// trailing moving average of the given window.
//
// Every bucket in the range is materialized even at zero calls, so
// consumers get a dense, gap-free series. Buckets at or above the
// 75th-percentile count of the non-zero buckets are flagged as peaks.
func BuildTrend(calls []types.CallRecord, from, to time.Time, mode Mode, window int) []types.TrendPoint {
	var format string
	var start time.Time
	var next func(time.Time) time.Time

	switch mode {
	case ModeHourly:
		format = hourlyLabel
		start = from.Truncate(time.Hour)
		next = func(t time.Time) time.Time { return t.Add(time.Hour) }
	default:
		format = dailyLabel
		start = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
		// Step by calendar day, not 24h, so DST transition days do not
		// shift the series onto a repeated or skipped label.
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	}

	counts := map[string]int{}
	for _, call := range calls {
		t, ok := call.CreatedTime()
		if !ok {
			continue
		}
		counts[t.In(from.Location()).Format(format)]++
	}

	var points []types.TrendPoint
	for bucket := start; !bucket.After(to); bucket = next(bucket) {
		label := bucket.Format(format)
		points = append(points, types.TrendPoint{Label: label, Calls: counts[label]})
	}

	applyMovingAverage(points, window)
	flagTrendPeaks(points)
	return points
}

// applyMovingAverage sets each point's moving average to the mean of
// itself and up to window-1 preceding points. The window shrinks at the
// start of the series; there is no look-ahead and no wraparound.
func applyMovingAverage(points []types.TrendPoint, window int) {
	if window < 1 {
		window = 1
	}
	for i := range points {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		sum := 0
		for j := lo; j <= i; j++ {
			sum += points[j].Calls
		}
		avg := numutil.Round1(float64(sum) / float64(i-lo+1))
		points[i].MovingAverage = &avg
	}
}

func flagTrendPeaks(points []types.TrendPoint) {
	counts := make([]int, 0, len(points))
	for _, p := range points {
		counts = append(counts, p.Calls)
	}
	threshold, ok := peakThreshold(counts)
	if !ok {
		return
	}
	for i := range points {
		if points[i].Calls >= threshold && points[i].Calls > 0 {
			points[i].Peak = true
		}
	}
}

// peakThreshold returns the top-quartile cutoff over the non-zero counts:
// the value at position floor(0.25*n) of the descending sort. An all-zero
// series has no peaks.
func peakThreshold(counts []int) (int, bool) {
	nonZero := make([]int, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			nonZero = append(nonZero, c)
		}
	}
	if len(nonZero) == 0 {
		return 0, false
	}
	sort.Sort(sort.Reverse(sort.IntSlice(nonZero)))
	idx := int(math.Floor(0.25 * float64(len(nonZero))))
	return nonZero[idx], true
}

// BuildHeatmap groups calls by (weekday, hour) across the whole range.
// Only cells with calls appear; FillHeatmap materializes the complete
// 7x24 grid for rendering. Cells are sorted Monday-first, then by hour.
func BuildHeatmap(calls []types.CallRecord, resolve labels.Resolver) []types.HeatmapCell {
	type cellAgg struct {
		calls        int
		duration     float64
		withDuration int
	}
	cells := map[[2]int]*cellAgg{}

	for _, call := range calls {
		t, ok := call.CreatedTime()
		if !ok {
			continue
		}
		key := [2]int{mondayIndex(t.Weekday()), t.Hour()}
		agg := cells[key]
		if agg == nil {
			agg = &cellAgg{}
			cells[key] = agg
		}
		agg.calls++
		if d := numutil.ParseFlexiblePtr(call.DurationSeconds); d > 0 {
			agg.duration += d
			agg.withDuration++
		}
	}

	out := make([]types.HeatmapCell, 0, len(cells))
	counts := make([]int, 0, len(cells))
	for key, agg := range cells {
		avg := 0.0
		if agg.withDuration > 0 {
			avg = agg.duration / float64(agg.withDuration)
		}
		out = append(out, types.HeatmapCell{
			Day:         labels.Resolve(resolve, weekdayKeys[key[0]]),
			Hour:        key[1],
			Calls:       agg.calls,
			AvgDuration: avg,
		})
		counts = append(counts, agg.calls)
	}

	if threshold, ok := peakThreshold(counts); ok {
		for i := range out {
			if out[i].Calls >= threshold {
				out[i].Peak = true
			}
		}
	}

	dayRank := map[string]int{}
	for i, key := range weekdayKeys {
		dayRank[labels.Resolve(resolve, key)] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if dayRank[out[i].Day] != dayRank[out[j].Day] {
			return dayRank[out[i].Day] < dayRank[out[j].Day]
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// FillHeatmap expands a sparse heatmap to the full 7x24 grid, keeping the
// aggregated cells and zero-filling the rest.
func FillHeatmap(cells []types.HeatmapCell, resolve labels.Resolver) []types.HeatmapCell {
	existing := map[string]map[int]types.HeatmapCell{}
	for _, cell := range cells {
		if existing[cell.Day] == nil {
			existing[cell.Day] = map[int]types.HeatmapCell{}
		}
		existing[cell.Day][cell.Hour] = cell
	}

	out := make([]types.HeatmapCell, 0, 7*24)
	for _, key := range weekdayKeys {
		day := labels.Resolve(resolve, key)
		for hour := 0; hour < 24; hour++ {
			if cell, ok := existing[day][hour]; ok {
				out = append(out, cell)
				continue
			}
			out = append(out, types.HeatmapCell{Day: day, Hour: hour})
		}
	}
	return out
}

// mondayIndex converts time.Weekday (Sunday-first) to Monday-first.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
