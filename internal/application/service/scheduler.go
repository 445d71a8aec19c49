package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// BatchRunner runs one refresh batch over all tracked products.
type BatchRunner interface {
	Run(ctx context.Context) (model.BatchResult, error)
}

// RefreshScheduler triggers the refresh pipeline on a fixed interval.
// On-demand runs go through the HTTP layer directly; the scheduler only owns
// the recurring trigger.
type RefreshScheduler struct {
	runner BatchRunner
	logger *slog.Logger
	ticker *time.Ticker
	done   chan struct{}
	mu     sync.Mutex
}

func NewRefreshScheduler(runner BatchRunner, logger *slog.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		runner: runner,
		logger: logger,
	}
}

// Start launches the refresh loop with the given interval. If interval <= 0,
// one hour is used. A stopped scheduler may be started again; a running one
// is restarted with the new interval.
func (s *RefreshScheduler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Stop()
	}
	if s.done != nil {
		select {
		case <-s.done:
		default:
			close(s.done)
		}
	}
	s.ticker = time.NewTicker(interval)
	s.done = make(chan struct{})
	ticker, done := s.ticker, s.done
	s.mu.Unlock()

	s.logger.Info("refresh scheduler starting", "interval", interval.String())

	go s.loop(ctx, ticker, done)
}

// Stop halts the recurring trigger. An in-flight batch is left to finish on
// its own budget.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Stop()
	}
	if s.done != nil {
		select {
		case <-s.done:
		default:
			close(s.done)
		}
	}
	s.mu.Unlock()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshScheduler) loop(ctx context.Context, tick *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-tick.C:
			s.runOnce(ctx)
		case <-done:
			s.logger.Info("refresh loop stopping")
			return
		case <-ctx.Done():
			s.logger.Info("refresh loop cancelled by context")
			return
		}
	}
}

func (s *RefreshScheduler) runOnce(ctx context.Context) {
	s.logger.Info("starting scheduled refresh")
	start := time.Now()

	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled refresh failed", "error", err, "duration", time.Since(start))
		return
	}

	s.logger.Info("scheduled refresh completed",
		"run_id", result.RunID,
		"updated", result.Updated,
		"failed", result.Failed,
		"duration", result.Duration)
}
