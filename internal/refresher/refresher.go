// Package refresher periodically rebuilds the current-day report for the
// configured tenants and broadcasts each snapshot over the stream hub.
package refresher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/report"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/stream"
)

// Refresher drives the live report stream.
type Refresher struct {
	engine   *report.Engine
	hub      *stream.Hub
	tenants  []string
	interval time.Duration
	logger   zerolog.Logger
}

// New creates a refresher for the given tenants. With no tenants it is a
// no-op loop that only waits for cancellation.
func New(engine *report.Engine, hub *stream.Hub, tenants []string, interval time.Duration, logger zerolog.Logger) *Refresher {
	return &Refresher{
		engine:   engine,
		hub:      hub,
		tenants:  tenants,
		interval: interval,
		logger:   logger.With().Str("component", "refresher").Logger(),
	}
}

// Start runs the refresh loop until the context is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().
		Int("tenants", len(r.tenants)).
		Dur("interval", r.interval).
		Msg("refresher started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("refresher stopped")
			return

		case <-ticker.C:
			if r.hub.ClientCount() == 0 {
				continue
			}
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, tenant := range r.tenants {
		rep, err := r.engine.BuildReport(ctx, tenant, from, now)
		if err != nil {
			r.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to refresh report")
			continue
		}

		data, err := json.Marshal(rep)
		if err != nil {
			r.logger.Error().Err(err).Str("tenant_id", tenant).Msg("failed to marshal report")
			continue
		}

		r.hub.Broadcast(data)
		r.logger.Debug().
			Str("tenant_id", tenant).
			Int("clients", r.hub.ClientCount()).
			Msg("report broadcast")
	}
}
