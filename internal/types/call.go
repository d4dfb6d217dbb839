package types

import "time"

// CallRecord is a raw call row as stored in the calls table. It is an
// immutable snapshot: the engine never mutates fetched records.
//
// Numeric columns arrive loosely typed from the source (string-encoded,
// sometimes with comma decimals), so they are kept as nullable strings and
// parsed at the aggregation boundary with a coerce-to-zero policy.
type CallRecord struct {
	TenantID        string  `json:"tenantId" dynamodbav:"TenantID"` // partition key
	SK              string  `json:"sk" dynamodbav:"SK"`             // sort key: <RFC3339 createdAt>#<callId>
	CallID          string  `json:"callId" dynamodbav:"CallID"`
	CreatedAt       string  `json:"createdAt" dynamodbav:"CreatedAt"` // RFC3339
	DurationSeconds *string `json:"durationSeconds,omitempty" dynamodbav:"DurationSeconds"`
	Cost            *string `json:"cost,omitempty" dynamodbav:"Cost"`
	Score           *string `json:"score,omitempty" dynamodbav:"Score"` // 0-10
	ChannelID       *string `json:"channelId,omitempty" dynamodbav:"ChannelID"`
}

// CreatedTime parses the record's timestamp. Records with unparseable
// timestamps are skipped by time-based aggregations.
func (c CallRecord) CreatedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, c.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
