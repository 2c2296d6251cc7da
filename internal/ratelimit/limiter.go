// Package ratelimit throttles login attempts with a fixed window counter
// kept in Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of redis.Cmdable the limiter needs.
type Store interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Limiter allows at most limit hits per key within each window.
// A nil *Limiter allows everything.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
	prefix string
}

func New(store Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, prefix: "ratelimit:login:"}
}

// NewClient connects to Redis at addr and checks the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (l *Limiter) Window() time.Duration {
	if l == nil {
		return 0
	}
	return l.window
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	k := l.prefix + key

	count, err := l.store.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	// First hit opens the window.
	if count == 1 {
		if err := l.store.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}

// Reset clears the counter, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	return l.store.Del(ctx, l.prefix+key).Err()
}
