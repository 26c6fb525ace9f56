// Package maintenance runs periodic background tasks as Go tickers.
// All scheduled work is driven from the API process since it is already a
// persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper retires custom grids past their retention window.
type Sweeper interface {
	DeleteExpiredCustom(ctx context.Context) (int64, error)
}

// Backfiller fills in answer counts for grids missing them.
type Backfiller interface {
	Backfill(ctx context.Context) (int, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CustomGridSweepInterval time.Duration // Expired custom grid removal
	BackfillSweepInterval   time.Duration // Answer counts for new grids
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CustomGridSweepInterval: 1 * time.Hour,
		BackfillSweepInterval:   6 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, sweeper Sweeper, backfiller Backfiller, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"custom_sweep", cfg.CustomGridSweepInterval,
		"backfill", cfg.BackfillSweepInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Custom grid retention: shared grids live 24 hours
	if cfg.CustomGridSweepInterval > 0 && sweeper != nil {
		t := time.NewTicker(cfg.CustomGridSweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweepCustomGrids(ctx, sweeper, logger) })
	}

	// Backfill: precompute answer counts for any grid still missing them
	if cfg.BackfillSweepInterval > 0 && backfiller != nil {
		t := time.NewTicker(cfg.BackfillSweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { backfillAnswers(ctx, backfiller, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func sweepCustomGrids(ctx context.Context, sweeper Sweeper, logger *slog.Logger) {
	n, err := sweeper.DeleteExpiredCustom(ctx)
	if err != nil {
		logger.Warn("Custom grid sweep: failed", "error", err)
	} else if n > 0 {
		logger.Info("Custom grid sweep: removed expired grids", "count", n)
	}
}

func backfillAnswers(ctx context.Context, backfiller Backfiller, logger *slog.Logger) {
	n, err := backfiller.Backfill(ctx)
	if err != nil {
		logger.Warn("Backfill sweep: failed", "error", err)
	} else if n > 0 {
		logger.Info("Backfill sweep: updated grids", "count", n)
	}
}
