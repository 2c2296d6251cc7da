package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	counts  map[string]int64
	expires map[string]time.Duration
	failAll bool
}

func newMemStore() *memStore {
	return &memStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if m.failAll {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	m.counts[key]++
	cmd.SetVal(m.counts[key])
	return cmd
}

func (m *memStore) Expire(ctx context.Context, key string, d time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key, d)
	m.expires[key] = d
	cmd.SetVal(true)
	return cmd
}

func (m *memStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	for _, k := range keys {
		delete(m.counts, k)
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestLimiter_BlocksAfterLimit(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := New(store, 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "sup1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.Allow(ctx, "sup1")
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, time.Minute, store.expires["ratelimit:login:sup1"])

	ok, err = l.Allow(ctx, "other")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLimiter_ResetClearsWindow(t *testing.T) {
	ctx := context.Background()
	l := New(newMemStore(), 1, time.Minute)

	ok, _ := l.Allow(ctx, "admin")
	require.True(t, ok)
	ok, _ = l.Allow(ctx, "admin")
	require.False(t, ok)

	require.NoError(t, l.Reset(ctx, "admin"))
	ok, _ = l.Allow(ctx, "admin")
	require.True(t, ok)
}

func TestLimiter_NilAllows(t *testing.T) {
	var l *Limiter
	ok, err := l.Allow(context.Background(), "x")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, l.Reset(context.Background(), "x"))
}

func TestLimiter_StoreErrorSurfaces(t *testing.T) {
	store := newMemStore()
	store.failAll = true
	_, err := New(store, 5, time.Minute).Allow(context.Background(), "x")
	require.Error(t, err)
}
