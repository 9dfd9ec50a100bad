package config

import (
	"log/slog"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server and cookie configuration
//   - travelapi.go: upstream travel API client configuration
//   - session.go: session storage, search cache and login throttling
//   - redis.go: Redis connection configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template hot reloading, detailed errors).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is the minimum slog level emitted (debug, info, warn, error).
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Upstream travel API
	TravelAPI TravelAPIConfig `envPrefix:"TRAVEL_API_"`

	// Session storage and search result caching
	Session     SessionConfig     `envPrefix:"SESSION_"`
	SearchCache SearchCacheConfig `envPrefix:"SEARCH_CACHE_"`
	LoginLimit  LoginLimitConfig  `envPrefix:"LOGIN_RATE_"`

	Redis RedisConfig `envPrefix:"REDIS_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.TravelAPI.Sanitize()
	c.Session.Sanitize()
	c.SearchCache.Sanitize()
	c.LoginLimit.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// NeedsRedis reports whether any configured component is backed by Redis.
func (c *AppConfig) NeedsRedis() bool {
	return c.Session.Backend == SessionBackendRedis ||
		(c.SearchCache.Enabled() && c.SearchCache.Backend == SessionBackendRedis)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
