package config

import (
	"strings"
	"time"
)

// Storage backends for sessions and the search cache.
const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// SessionConfig controls where browser sessions (and their upstream tokens) are stored.
type SessionConfig struct {
	// Backend selects the session store: "redis" (default) or "memory".
	Backend string `env:"BACKEND" envDefault:"redis"`

	// TTL is the maximum session lifetime. Sessions never outlive the upstream token.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// SweepInterval controls how often expired sessions are purged from the memory backend.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
}

// Sanitize normalises the backend name and lifetime values.
func (c *SessionConfig) Sanitize() {
	c.Backend = normalizeBackend(c.Backend)
	if c.TTL <= 0 {
		c.TTL = 24 * time.Hour
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

// SearchCacheConfig controls caching of anonymous search results.
type SearchCacheConfig struct {
	// TTL is how long a search result is reused. Zero disables caching.
	TTL time.Duration `env:"TTL" envDefault:"2m"`

	// Backend selects the cache store: "redis" (default) or "memory".
	Backend string `env:"BACKEND" envDefault:"redis"`
}

// Sanitize normalises cache settings.
func (c *SearchCacheConfig) Sanitize() {
	c.Backend = normalizeBackend(c.Backend)
	if c.TTL < 0 {
		c.TTL = 0
	}
}

// Enabled reports whether search results are cached.
func (c *SearchCacheConfig) Enabled() bool { return c.TTL > 0 }

// LoginLimitConfig throttles credential submissions per client address.
type LoginLimitConfig struct {
	// PerMinute is the sustained number of login/sign-up attempts per client. Zero disables throttling.
	PerMinute int `env:"PER_MINUTE" envDefault:"10"`

	// Burst allows short spikes above PerMinute.
	Burst int `env:"BURST" envDefault:"5"`
}

// Sanitize applies guardrails to throttling values.
func (c *LoginLimitConfig) Sanitize() {
	if c.PerMinute < 0 {
		c.PerMinute = 0
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
}

// Enabled reports whether login throttling is active.
func (c *LoginLimitConfig) Enabled() bool { return c.PerMinute > 0 }

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SessionBackendMemory:
		return SessionBackendMemory
	default:
		return SessionBackendRedis
	}
}
