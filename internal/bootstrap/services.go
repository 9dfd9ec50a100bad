package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/target/travelgo/config"
	"github.com/target/travelgo/internal/adapters/memory"
	"github.com/target/travelgo/internal/adapters/reaper"
	redisadapter "github.com/target/travelgo/internal/adapters/redis"
	"github.com/target/travelgo/internal/adapters/travelapi"
	"github.com/target/travelgo/internal/observability/metrics"
	"github.com/target/travelgo/internal/observability/statsd"
	"github.com/target/travelgo/internal/ports"
	"github.com/target/travelgo/internal/service"
)

// Key prefixes shared with the admin CLI.
const (
	SessionKeyPrefix = "travelgo:session:"
	CacheKeyPrefix   = "travelgo:search:"
)

// ServiceDeps are the inputs to NewServices.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient is required when the session or cache backend is "redis".
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Travel   *service.TravelService
	Account  *service.AccountService
	API      *travelapi.Client
	Sessions ports.SessionStore
	Cache    ports.SearchCache // nil when caching is disabled

	// Reaper sweeps the in-memory session store; nil for Redis.
	Reaper *reaper.Runner

	Observability ObservabilityContainer
}

// ObservabilityContainer groups the metrics sinks.
type ObservabilityContainer struct {
	Sink           ports.MetricsSink // fan-out of StatsD and Prometheus; may be nil
	StatsD         *statsd.Client
	MetricsHandler http.Handler // serves /metrics
}

// Close flushes metric sinks.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	return c.Observability.StatsD.Close()
}

// NewServices builds stores, the upstream client and the services on top of them.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.NeedsRedis() && deps.RedisClient == nil {
		return nil, errors.New("redis client is required for the configured session or cache backend")
	}

	obs, err := newObservability(cfg.Observability.Metrics, logger)
	if err != nil {
		return nil, err
	}

	api, err := travelapi.NewClient(travelapi.Options{
		BaseURL:   cfg.TravelAPI.BaseURL,
		Timeout:   cfg.TravelAPI.Timeout,
		RateLimit: cfg.TravelAPI.RateLimit,
		Burst:     cfg.TravelAPI.Burst,
		ErrorExpr: cfg.TravelAPI.ErrorExpr,
		Metrics:   obs.Sink,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("travel api client: %w", err)
	}

	c := &ServiceContainer{API: api, Observability: obs}

	if err := c.wireSessions(cfg.Session, deps.RedisClient, logger); err != nil {
		return nil, err
	}
	c.Cache = newSearchCache(cfg.SearchCache, deps.RedisClient)

	c.Auth = service.NewAuthService(service.AuthServiceOptions{
		API:        api,
		Sessions:   c.Sessions,
		SessionTTL: cfg.Session.TTL,
		Metrics:    obs.Sink,
		Logger:     logger,
	})
	c.Travel = service.NewTravelService(service.TravelServiceOptions{
		API:      api,
		Cache:    c.Cache,
		CacheTTL: cfg.SearchCache.TTL,
		Metrics:  obs.Sink,
		Logger:   logger,
	})
	c.Account = service.NewAccountService(service.AccountServiceOptions{API: api, Logger: logger})

	logger.Info("services wired",
		"session_backend", cfg.Session.Backend,
		"search_cache", c.Cache != nil,
		"metrics", obs.Sink != nil,
	)
	return c, nil
}

func (c *ServiceContainer) wireSessions(cfg config.SessionConfig, client redis.UniversalClient, logger *slog.Logger) error {
	if cfg.Backend == config.SessionBackendRedis {
		c.Sessions = redisadapter.NewSessionStoreWithPrefix(client, SessionKeyPrefix)
		return nil
	}

	store := memory.NewSessionStore()
	runner, err := reaper.NewRunner(reaper.RunnerOptions{
		Sweeper: store,
		Config:  cfg,
		Logger:  logger,
		Metrics: c.Observability.Sink,
	})
	if err != nil {
		return fmt.Errorf("session reaper: %w", err)
	}
	c.Sessions = store
	c.Reaper = runner
	return nil
}

//nolint:ireturn // the cache backend is chosen at runtime.
func newSearchCache(cfg config.SearchCacheConfig, client redis.UniversalClient) ports.SearchCache {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Backend == config.SessionBackendRedis {
		return redisadapter.NewCacheRepoWithPrefix(client, CacheKeyPrefix)
	}
	return memory.NewCache()
}

// newObservability always registers the Prometheus collector and adds StatsD
// when it is enabled.
func newObservability(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (ObservabilityContainer, error) {
	collector := metrics.NewCollector()
	registry, err := metrics.NewRegistry(collector)
	if err != nil {
		return ObservabilityContainer{}, fmt.Errorf("prometheus registry: %w", err)
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return ObservabilityContainer{}, fmt.Errorf("statsd client: %w", err)
	}

	sinks := []metrics.Sink{collector}
	if client.Enabled() {
		sinks = append(sinks, client)
	}
	return ObservabilityContainer{
		Sink:           metrics.NewMulti(sinks...),
		StatsD:         client,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}

// PingUpstream checks the travel API once, for startup logging.
func PingUpstream(ctx context.Context, c *ServiceContainer, logger *slog.Logger) {
	if c == nil || c.API == nil {
		return
	}
	if err := c.API.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "travel api not reachable at startup", "error", err)
		return
	}
	logger.InfoContext(ctx, "travel api reachable")
}
