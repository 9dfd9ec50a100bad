package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/travelgo/internal/ports"
)

const defaultCachePrefix = "search:"

// CacheRepo stores serialized search results in Redis under a key prefix.
type CacheRepo struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.SearchCache = (*CacheRepo)(nil)

// NewCacheRepo creates a CacheRepo using the default "search:" prefix.
func NewCacheRepo(client redis.UniversalClient) *CacheRepo {
	return NewCacheRepoWithPrefix(client, defaultCachePrefix)
}

// NewCacheRepoWithPrefix creates a CacheRepo with a custom key prefix.
func NewCacheRepoWithPrefix(client redis.UniversalClient, prefix string) *CacheRepo {
	return &CacheRepo{client: client, prefix: prefix}
}

// Set stores a value with the given TTL.
func (r *CacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Get retrieves a value by key. A miss returns (nil, nil).
func (r *CacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	result, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return result, nil
}

// Delete removes a key and reports whether it existed.
func (r *CacheRepo) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	result, err := r.client.Del(ctx, r.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return result > 0, nil
}

// Flush removes every cached entry under the repo prefix and returns the count.
func (r *CacheRepo) Flush(ctx context.Context) (int, error) {
	return deleteMatching(ctx, r.client, r.prefix+"*")
}

// Health checks the health of the Redis connection.
func (r *CacheRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
