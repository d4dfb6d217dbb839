package report

import (
	"sort"
	"strings"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/labels"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/numutil"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// responseBuckets are the fixed response-time bucket labels, in the order
// bucketIndex assigns them.
var responseBuckets = []string{"<30s", "30-60s", ">60s"}

// AnalyzeCalls classifies a period's calls. A call is answered iff its
// parsed duration is > 0; everything else is missed. Bucket percentages
// are relative to the total (answered + missed); the business-hours rates
// are relative to answered calls.
func AnalyzeCalls(calls []types.CallRecord, hours config.BusinessHours, resolve labels.Resolver) types.CallAnalysis {
	analysis := types.CallAnalysis{Total: len(calls)}

	bucketCounts := make([]int, len(responseBuckets))

	type channelAgg struct {
		calls        int
		duration     float64
		withDuration int
	}
	channels := make(map[string]*channelAgg)
	otherChannel := labels.Resolve(resolve, "channel.other")

	for _, call := range calls {
		duration := numutil.ParseFlexiblePtr(call.DurationSeconds)
		answered := duration > 0

		if answered {
			analysis.Answered++
			bucketCounts[bucketIndex(duration)]++

			if t, ok := call.CreatedTime(); ok && hours.Includes(t) {
				analysis.AnsweredWithinHours++
			} else {
				analysis.AnsweredOutsideHours++
			}
		} else {
			analysis.Missed++
		}

		name := otherChannel
		if call.ChannelID != nil && strings.TrimSpace(*call.ChannelID) != "" {
			name = strings.TrimSpace(*call.ChannelID)
		}
		agg := channels[name]
		if agg == nil {
			agg = &channelAgg{}
			channels[name] = agg
		}
		agg.calls++
		if duration > 0 {
			agg.duration += duration
			agg.withDuration++
		}
	}

	analysis.AnsweredRate = numutil.Percentage(float64(analysis.Answered), float64(analysis.Total))
	analysis.WithinHoursRate = numutil.Percentage(float64(analysis.AnsweredWithinHours), float64(analysis.Answered))
	analysis.OutsideHoursRate = numutil.Percentage(float64(analysis.AnsweredOutsideHours), float64(analysis.Answered))

	analysis.Distribution = make([]types.ResponseBucket, len(responseBuckets))
	for i, label := range responseBuckets {
		analysis.Distribution[i] = types.ResponseBucket{
			Label:      label,
			Calls:      bucketCounts[i],
			Percentage: numutil.Percentage(float64(bucketCounts[i]), float64(analysis.Total)),
		}
	}

	analysis.Channels = make([]types.ChannelSummary, 0, len(channels))
	for name, agg := range channels {
		avg := 0.0
		if agg.withDuration > 0 {
			avg = agg.duration / float64(agg.withDuration)
		}
		analysis.Channels = append(analysis.Channels, types.ChannelSummary{
			Channel:     name,
			Calls:       agg.calls,
			AvgDuration: avg,
		})
	}
	sort.Slice(analysis.Channels, func(i, j int) bool {
		if analysis.Channels[i].Calls != analysis.Channels[j].Calls {
			return analysis.Channels[i].Calls > analysis.Channels[j].Calls
		}
		return analysis.Channels[i].Channel < analysis.Channels[j].Channel
	})

	return analysis
}

// bucketIndex assigns the first matching threshold in ascending order.
func bucketIndex(duration float64) int {
	switch {
	case duration < 30:
		return 0
	case duration <= 60:
		return 1
	default:
		return 2
	}
}
