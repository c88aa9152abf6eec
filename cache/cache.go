// Package cache is a keyed read-through cache over Redis. Consumers read
// through it with a staleness TTL; writers invalidate their keys after a
// successful mutation so the next read refetches.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"sufra/metrics"
)

const defaultMaxRetries = 3

// Loader fetches the value for a key when the cache cannot serve it.
type Loader func(ctx context.Context) (interface{}, error)

// Store wraps a Redis client with loader retry and request de-duplication.
// Concurrent reads of the same key share a single in-flight loader call.
type Store struct {
	rdb        *redis.Client
	group      singleflight.Group
	maxRetries int
}

// New creates a Store backed by the given Redis client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, maxRetries: defaultMaxRetries}
}

// GetJSON reads key into out, falling back to loader on a miss. The loaded
// value is stored with the given TTL. Loader failures are retried up to the
// retry bound before the error is surfaced. A Redis outage degrades to
// calling the loader directly rather than failing the read.
func (s *Store) GetJSON(ctx context.Context, key string, ttl time.Duration, out interface{}, loader Loader) error {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(val), out); jsonErr == nil {
			metrics.IncCacheRead("hit")
			return nil
		}
		// Corrupt entry: drop it and refetch.
		_ = s.rdb.Del(ctx, key).Err()
	} else if err != redis.Nil {
		metrics.IncCacheRead("error")
	}

	data, err, _ := s.group.Do(key, func() (interface{}, error) {
		fresh, loadErr := s.load(ctx, loader)
		if loadErr != nil {
			return nil, loadErr
		}
		encoded, encErr := json.Marshal(fresh)
		if encErr != nil {
			return nil, encErr
		}
		_ = s.rdb.Set(ctx, key, encoded, ttl).Err()
		return encoded, nil
	})
	if err != nil {
		metrics.IncCacheRead("load_error")
		return err
	}

	metrics.IncCacheRead("miss")
	return json.Unmarshal(data.([]byte), out)
}

func (s *Store) load(ctx context.Context, loader Loader) (interface{}, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}
		v, err := loader(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Invalidate forces the next read of key to bypass the cache and refetch.
func (s *Store) Invalidate(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
