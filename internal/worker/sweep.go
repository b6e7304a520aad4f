package worker

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper removes expired cache records.
type Sweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// SweepWorker periodically evicts expired records from the cache. Sweep
// failures are logged and retried on the next tick; only cancellation
// stops the worker.
type SweepWorker struct {
	cache    Sweeper
	interval time.Duration
}

// NewSweepWorker creates a sweep worker running every interval.
func NewSweepWorker(cache Sweeper, interval time.Duration) *SweepWorker {
	return &SweepWorker{cache: cache, interval: interval}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (w *SweepWorker) Run(ctx context.Context) error {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SweepWorker) sweep(ctx context.Context) {
	removed, err := w.cache.CleanupExpired(ctx)
	if err != nil {
		slog.Error("cache sweep failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("cache sweep removed expired records", "count", removed)
	}
}
