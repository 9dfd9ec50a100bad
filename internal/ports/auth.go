package ports

// Package ports defines interfaces (hexagonal ports) for session and cache storage.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	apperrors "github.com/target/travelgo/internal/errors"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired sessions.
var ErrSessionNotFound error = apperrors.NotFound("session not found")

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionLister is implemented by stores that can enumerate and bulk-delete
// sessions. The admin CLI uses it.
type SessionLister interface {
	List(ctx context.Context) ([]domainauth.Session, error)
	Purge(ctx context.Context) (int, error)
}

// SearchCache stores serialized search results for a limited time.
// Get returns (nil, nil) on a miss.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MetricsSink receives counters and timings. It is satisfied by the statsd client.
type MetricsSink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}
