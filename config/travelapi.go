package config

import (
	"strings"
	"time"
)

const (
	defaultTravelAPITimeout   = 15 * time.Second
	defaultTravelAPIErrorExpr = "error || message"
)

// TravelAPIConfig configures the client for the upstream travel booking API.
type TravelAPIConfig struct {
	// BaseURL is the upstream origin; request paths such as /api/flights/search are appended.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8081"`

	// Timeout bounds every upstream call. Timeouts surface as network errors.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// RateLimit is the sustained number of upstream requests per second shared by all users.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"20"`

	// Burst is the number of requests allowed above RateLimit momentarily.
	Burst int `env:"BURST" envDefault:"40"`

	// ErrorExpr is a JMESPath expression extracting the message from JSON error bodies.
	ErrorExpr string `env:"ERROR_EXPR" envDefault:"error || message"`
}

// Sanitize applies guardrails to upstream client values.
func (c *TravelAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = defaultTravelAPITimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 20
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.ErrorExpr = strings.TrimSpace(c.ErrorExpr); c.ErrorExpr == "" {
		c.ErrorExpr = defaultTravelAPIErrorExpr
	}
}
