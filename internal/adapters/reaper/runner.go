// Package reaper runs the session sweeper for the in-memory session backend.
package reaper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/travelgo/config"
	"github.com/target/travelgo/internal/ports"
	"github.com/target/travelgo/internal/service"
)

// Runner owns a ReaperService and runs its loop.
type Runner struct {
	reaper *service.ReaperService
	logger *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sweeper service.SessionSweeper
	Config  config.SessionConfig
	Logger  *slog.Logger
	Metrics ports.MetricsSink
}

// NewRunner validates opts and wires the reaper service.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("session sweeper is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	reaper, err := service.NewReaperService(service.ReaperServiceOptions{
		Sweeper:  opts.Sweeper,
		Interval: opts.Config.SweepInterval,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}

	return &Runner{reaper: reaper, logger: opts.Logger}, nil
}

// Run sweeps until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting session reaper runner")
	return r.reaper.Run(ctx)
}
