// Package scheduler drives delivery firings from the durable next-fire times.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"store-fulfillment/internal/pkg/config"
)

// Firer applies every transition that is due.
type Firer interface {
	FireDue(ctx context.Context) (int, error)
}

// Scheduler polls on a fixed interval. Ticks never overlap: a slow round delays the next.
type Scheduler struct {
	firer    Firer
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(firer Firer, cfg config.Config) *Scheduler {
	return &Scheduler{firer: firer, interval: cfg.Lifecycle.SchedulerEvery}
}

func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	slog.Info("delivery scheduler started", "interval", s.interval)
	return nil
}

// Stop waits for the current round to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		slog.Info("delivery scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one round.
func (s *Scheduler) Tick(ctx context.Context) {
	fired, err := s.firer.FireDue(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("scheduler round failed", "error", err)
		}
		return
	}
	if fired > 0 {
		slog.Debug("scheduler round", "fired", fired)
	}
}
