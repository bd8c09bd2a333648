package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/live-corners/internal/platform/logging"
	"github.com/riskibarqy/live-corners/internal/platform/tracing"
)

// Refresher is the refresh operation driven by the scheduler.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (RefreshReport, error)
}

// DefaultSchedulerDrain bounds how long Run waits for an in-flight refresh
// once its context is cancelled.
const DefaultSchedulerDrain = 10 * time.Second

// RefreshScheduler fires a non-forced refresh on every tick. A single-slot
// non-blocking pool drops ticks that arrive while a refresh is still running.
type RefreshScheduler struct {
	refresher Refresher
	interval  time.Duration
	pool      *ants.Pool
	drain     time.Duration
	logger    *logging.Logger
}

func NewRefreshScheduler(refresher Refresher, interval time.Duration, logger *logging.Logger) (*RefreshScheduler, error) {
	if refresher == nil {
		return nil, fmt.Errorf("%w: refresher is required", ErrInvalidInput)
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Default()
	}

	p, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create refresh pool: %w", err)
	}

	return &RefreshScheduler{
		refresher: refresher,
		interval:  interval,
		pool:      p,
		drain:     DefaultSchedulerDrain,
		logger:    logger,
	}, nil
}

// Run blocks until ctx is cancelled and the refresh in flight, if any, has
// finished or the drain timeout has passed.
func (s *RefreshScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.release(ctx)

	s.logger.InfoContext(ctx, "live refresh scheduler started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "live refresh scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

func (s *RefreshScheduler) release(ctx context.Context) {
	if err := s.pool.ReleaseTimeout(s.drain); err != nil {
		s.logger.WarnContext(ctx, "refresh still running after drain timeout", "drain", s.drain.String(), "error", err)
	}
}

// Tick submits one refresh. It reports false when the previous one is still
// in flight and this tick was dropped.
func (s *RefreshScheduler) Tick(ctx context.Context) bool {
	err := s.pool.Submit(func() {
		ctx, span := usecaseTracer.Root(ctx, "usecase.RefreshScheduler.Tick")
		defer span.End()

		report, err := s.refresher.Refresh(ctx, false)
		if err != nil {
			tracing.RecordError(span, err)
			s.logger.WarnContext(ctx, "scheduled refresh failed", "error", err)
			return
		}
		s.logger.DebugContext(ctx, "scheduled refresh done", "report", report.String())
	})
	if err == nil {
		return true
	}
	if errors.Is(err, ants.ErrPoolOverload) {
		s.logger.WarnContext(ctx, "previous refresh still running, tick skipped")
		return false
	}
	s.logger.ErrorContext(ctx, "submit scheduled refresh failed", "error", err)
	return false
}
