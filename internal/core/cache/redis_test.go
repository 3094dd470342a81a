package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	_, ok := s.Get(ctx, "missing")
	assert.False(t, ok)

	s.Set(ctx, "k", []byte("v"), time.Minute)
	val, ok := s.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestRedisStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	s.Set(ctx, "k", []byte("v"), time.Minute)
	s.Invalidate(ctx, "k")

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore("not-a-url")
	assert.Error(t, err)
}

func TestRedisStoreDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + srv.Addr())
	require.NoError(t, err)

	srv.Close()

	// A dead backend is a miss, never an error surfaced to callers.
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	store.Set(ctx, "k", []byte("v"), time.Minute)
	store.Invalidate(ctx, "k")
}
