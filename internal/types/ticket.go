package types

import "time"

// TicketRecord is a raw ticket row as stored in the tickets table. Same
// lifecycle as CallRecord: fetched per date range, never mutated.
type TicketRecord struct {
	TenantID     string  `json:"tenantId" dynamodbav:"TenantID"` // partition key
	SK           string  `json:"sk" dynamodbav:"SK"`             // sort key: <RFC3339 createdAt>#<ticketId>
	TicketID     string  `json:"ticketId" dynamodbav:"TicketID"`
	CreatedAt    string  `json:"createdAt" dynamodbav:"CreatedAt"` // RFC3339
	TicketType   *string `json:"ticketType,omitempty" dynamodbav:"TicketType"`
	TicketStatus *string `json:"ticketStatus,omitempty" dynamodbav:"TicketStatus"`
	Assignee     *string `json:"assignee,omitempty" dynamodbav:"Assignee"`
}

// CreatedTime parses the record's timestamp.
func (t TicketRecord) CreatedTime() (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
