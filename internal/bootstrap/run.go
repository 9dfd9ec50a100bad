package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/travelgo/config"
)

const backgroundStopTimeout = 10 * time.Second

// RunConfig groups what RunWithShutdown needs.
type RunConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
	// Signals overrides SIGINT/SIGTERM (tests).
	Signals <-chan os.Signal
}

// RunWithShutdown serves HTTP and runs the session reaper until a signal
// arrives or a component fails, then stops both.
func RunWithShutdown(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("run config, app config and services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	}, errCh)
	if err != nil {
		return err
	}

	reaperDone := startReaper(runCtx, cfg.Services, errCh, logger)

	signals := cfg.Signals
	if signals == nil {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		signals = quit
	}

	var runErr error
	select {
	case sig := <-signals:
		logger.Info("shutting down", "signal", sig.String())
	case runErr = <-errCh:
		logger.Error("component failed", "error", runErr)
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err())
	}

	cancel()
	if err := stopAll(server, reaperDone, logger); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func startReaper(ctx context.Context, svc *ServiceContainer, errCh chan<- error, logger *slog.Logger) <-chan struct{} {
	if svc.Reaper == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.Reaper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("session reaper stopped", "error", err)
			errCh <- err
		}
	}()
	return done
}

func stopAll(server *http.Server, reaperDone <-chan struct{}, logger *slog.Logger) error {
	err := ShutdownHTTPServer(context.Background(), server, logger)
	if reaperDone != nil {
		select {
		case <-reaperDone:
			logger.Info("session reaper stopped")
		case <-time.After(backgroundStopTimeout):
			logger.Warn("timeout waiting for session reaper to stop")
		}
	}
	return err
}
