// Package records is the collaborator boundary that supplies raw call and
// ticket rows for a tenant and date window. The engine depends only on the
// Store contract; pagination, rate limiting and defensive re-filtering all
// live behind it.
package records

import (
	"context"
	"time"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/types"
)

// Store defines the record fetch contract. Both fetches return every row
// in the inclusive [from, to] window.
type Store interface {
	FetchCalls(ctx context.Context, tenantID string, from, to time.Time) ([]types.CallRecord, error)
	FetchTickets(ctx context.Context, tenantID string, from, to time.Time) ([]types.TicketRecord, error)
}

// filterCallsByRange drops rows outside [from, to]. The source filters on
// the sort key, but rows carry their own timestamp and a re-filter keeps
// the window exact even when the two disagree. Rows with unparseable
// timestamps are kept; time-based aggregations skip them individually.
func filterCallsByRange(records []types.CallRecord, from, to time.Time) []types.CallRecord {
	filtered := make([]types.CallRecord, 0, len(records))
	for _, r := range records {
		t, ok := r.CreatedTime()
		if ok && (t.Before(from) || t.After(to)) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func filterTicketsByRange(records []types.TicketRecord, from, to time.Time) []types.TicketRecord {
	filtered := make([]types.TicketRecord, 0, len(records))
	for _, r := range records {
		t, ok := r.CreatedTime()
		if ok && (t.Before(from) || t.After(to)) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) FetchCalls(_ context.Context, _ string, _, _ time.Time) ([]types.CallRecord, error) {
	return nil, nil
}

func (s *NoopStore) FetchTickets(_ context.Context, _ string, _, _ time.Time) ([]types.TicketRecord, error) {
	return nil, nil
}
