package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok := s.Get(ctx, "missing")
	assert.False(t, ok)

	s.Set(ctx, "k", []byte("v"), time.Minute)
	val, ok := s.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	current := time.Now()
	s.now = func() time.Time { return current }

	s.Set(ctx, "k", []byte("v"), 5*time.Minute)

	current = current.Add(4 * time.Minute)
	_, ok := s.Get(ctx, "k")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok)

	// The expired entry was dropped, not just hidden.
	s.mu.RLock()
	_, still := s.entries["k"]
	s.mu.RUnlock()
	assert.False(t, still)
}

func TestMemoryStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Set(ctx, "k", []byte("v"), time.Minute)
	s.Invalidate(ctx, "k")

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}
