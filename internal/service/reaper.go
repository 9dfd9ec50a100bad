package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/target/travelgo/internal/observability/metrics"
	"github.com/target/travelgo/internal/ports"
)

// MetricSessionsReaped counts expired sessions removed by the reaper.
const MetricSessionsReaped = metrics.SessionsReaped

const defaultReapInterval = 5 * time.Minute

// SessionSweeper removes expired sessions and reports how many it dropped.
// The in-memory session store implements it; Redis expires keys on its own.
type SessionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Sweeper  SessionSweeper    // Required
	Interval time.Duration     // Optional: defaults to 5m
	Logger   *slog.Logger      // Optional: structured logger
	Metrics  ports.MetricsSink // Optional: metrics sink (StatsD-compatible)
}

// ReaperService periodically sweeps expired sessions out of the in-memory store.
type ReaperService struct {
	sweeper  SessionSweeper
	interval time.Duration
	logger   *slog.Logger
	metrics  ports.MetricsSink
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("SessionSweeper is required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultReapInterval
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "session_reaper")
		logger.Debug("ReaperService initialized", "interval", interval)
	}

	return &ReaperService{
		sweeper:  opts.Sweeper,
		interval: interval,
		logger:   logger,
		metrics:  opts.Metrics,
	}, nil
}

// Run sweeps at the configured interval until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReaperService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting session reaper", "interval", s.interval)
	}

	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "session reaper stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep and returns the number of sessions removed.
// Failures are logged, not returned; the next tick tries again.
func (s *ReaperService) SweepOnce(ctx context.Context) int {
	start := time.Now()
	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		if s.logger != nil && !isContextCancellation(err) {
			s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
		}
		return n
	}

	if s.metrics != nil {
		s.metrics.Count(MetricSessionsReaped, int64(n), nil)
		s.metrics.Timing(metrics.SessionReapLatency, time.Since(start), nil)
	}
	if n > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "reaped expired sessions", "count", n)
	}
	return n
}

// waitWithJitter adds a random delay up to 10% of the interval so replicas
// started together do not sweep in lockstep.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
