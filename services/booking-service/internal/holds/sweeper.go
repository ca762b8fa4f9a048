package holds

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically rewrites lapsed holds to expired. Correctness never
// depends on it: expired holds are already ignored wherever they are read.
type Sweeper struct {
	manager   *Manager
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
}

func NewSweeper(manager *Manager, logger *slog.Logger, cfg SweeperConfig) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	return &Sweeper{manager: manager, logger: logger, interval: cfg.Interval, batchSize: cfg.BatchSize}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	for {
		n, err := s.manager.ExpireStale(ctx, s.batchSize)
		if err != nil {
			s.logger.Error("hold sweep failed", "err", err)
			return
		}
		if n > 0 {
			s.logger.Info("expired stale holds", "count", n)
		}
		if n < s.batchSize || ctx.Err() != nil {
			return
		}
	}
}
