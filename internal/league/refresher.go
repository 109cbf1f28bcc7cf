package league

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Refresher runs periodic league-wide roster sweeps. The clock is
// injected so tests can drive ticks with a fake.
type Refresher struct {
	app      *App
	clock    clockwork.Clock
	interval time.Duration
}

// NewRefresher creates a refresher sweeping at the given interval.
func NewRefresher(app *App, clock clockwork.Clock, interval time.Duration) *Refresher {
	return &Refresher{
		app:      app,
		clock:    clock,
		interval: interval,
	}
}

// Run sweeps the league on every tick until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	log.Info().Dur("interval", r.interval).Msg("league refresher started")

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("league refresher shutting down")
			return ctx.Err()
		case <-ticker.Chan():
			r.app.RefreshAll(ctx)
		}
	}
}
