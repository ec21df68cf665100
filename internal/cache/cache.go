// Package cache provides the keyed TTL store backing the rate-limit
// counters and the price cache. The interface is small enough that a shared
// external store can replace the in-process default without touching callers.
package cache

import (
	"context"
	"time"
)

// Cache is a keyed byte store with per-entry TTL and a counter primitive.
type Cache interface {
	// Get returns the value at key, or ok=false when absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value at key for ttl. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// IncrementWithReset bumps the counter at key. When the key is absent or
	// its window has expired, the counter restarts at 1 with a fresh ttl;
	// otherwise the count grows and the window end stays put. Returns the
	// count after the increment.
	IncrementWithReset(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
