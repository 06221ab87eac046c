package retention

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lifeec/go-backend/internal/repository"
)

// Purger deletes emergency alerts older than the retention window on a
// fixed interval. Deletion is unconditional on read state.
type Purger struct {
	alerts    repository.AlertRepository
	retention time.Duration
	interval  time.Duration
	wg        sync.WaitGroup
}

func NewPurger(alerts repository.AlertRepository, retention, interval time.Duration) *Purger {
	return &Purger{
		alerts:    alerts,
		retention: retention,
		interval:  interval,
	}
}

func (p *Purger) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Purger) run(ctx context.Context) {
	defer p.wg.Done()
	slog.Info("starting alert purger", "retention", p.retention, "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial sweep
	p.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("alert purger shutting down")
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	// Alert timestamps are stored in UTC; keep the cutoff in the same zone.
	cutoff := time.Now().UTC().Add(-p.retention)
	deleted, err := p.alerts.PurgeAlertsOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("alert purge failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("purged expired alerts", "deleted", deleted, "cutoff", cutoff)
	}
}

func (p *Purger) Stop() {
	p.wg.Wait()
	slog.Info("alert purger stopped")
}
