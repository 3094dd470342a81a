// Package cache provides a small TTL cache with explicit per-key
// invalidation. Writers that change cached source data must call
// Invalidate for the affected key only; there is no blanket flush.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract. Values are opaque byte slices (callers
// marshal their own JSON). A miss or an expired entry returns ok=false.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}
