package redis

// Package redis provides Redis-based adapters for sessions and the search cache.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/ports"
)

const (
	defaultSessionPrefix = "session:"
	scanBatch            = 200
)

// ErrNotFound is returned when a session is missing or expired.
var ErrNotFound = ports.ErrSessionNotFound

// SessionStore is a Redis-based session store for production use.
// It handles TTL semantics automatically based on session ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionLister = (*SessionStore)(nil)
)

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, defaultSessionPrefix)
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Save stores sess until its ExpiresAt. Already-expired sessions are rejected.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get loads a session. Missing and expired sessions return ErrNotFound;
// expired ones are deleted on the way out.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

// Delete removes a session. Unknown IDs are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// List returns every live session ordered by expiry, soonest first.
func (s *SessionStore) List(ctx context.Context) ([]domainauth.Session, error) {
	keys, err := scanKeys(ctx, s.client, s.prefix+"*")
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]domainauth.Session, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		var sess domainauth.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		if sess.Expired(now) {
			continue
		}
		out = append(out, sess)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out, nil
}

// Purge deletes every session and reports how many keys were removed.
func (s *SessionStore) Purge(ctx context.Context) (int, error) {
	return deleteMatching(ctx, s.client, s.prefix+"*")
}

// scanKeys collects keys matching pattern. Cluster clients are scanned on every master.
func scanKeys(ctx context.Context, client redis.UniversalClient, pattern string) ([]string, error) {
	scanOne := func(ctx context.Context, c redis.Cmdable, collect func(string)) error {
		iter := c.Scan(ctx, 0, pattern, scanBatch).Iterator()
		for iter.Next(ctx) {
			collect(iter.Val())
		}
		return iter.Err()
	}

	var (
		mu   sync.Mutex
		keys []string
	)
	collect := func(k string) {
		mu.Lock()
		keys = append(keys, k)
		mu.Unlock()
	}

	if cc, ok := client.(*redis.ClusterClient); ok {
		err := cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return scanOne(ctx, node, collect)
		})
		if err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		return keys, nil
	}

	if err := scanOne(ctx, client, collect); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", pattern, err)
	}
	return keys, nil
}

// deleteMatching removes keys matching pattern one by one, which keeps it valid across cluster slots.
func deleteMatching(ctx context.Context, client redis.UniversalClient, pattern string) (int, error) {
	if strings.TrimSuffix(pattern, "*") == "" {
		return 0, errors.New("refusing to delete with an empty prefix")
	}

	keys, err := scanKeys(ctx, client, pattern)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		n, err := client.Del(ctx, key).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis del %s: %w", key, err)
		}
		deleted += int(n)
	}
	return deleted, nil
}
