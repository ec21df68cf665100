// Package ratelimit throttles submission attempts per source identity.
package ratelimit

import (
	"context"
	"time"

	"badtakes/internal/cache"
)

// Limiter counts submission attempts per identity inside a fixed window.
// The first attempt from an identity (or the first after its window lapsed)
// opens a fresh window; once the count exceeds the limit, further attempts
// are rejected until the window ends.
type Limiter struct {
	store  cache.Cache
	limit  int64
	window time.Duration
}

// New creates a limiter allowing limit attempts per identity per window.
func New(store cache.Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records one attempt for identity and reports whether it is within
// the limit. Errors from the backing store fail open: a broken Redis must
// not take the submission form down.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	count, err := l.store.IncrementWithReset(ctx, "ratelimit:"+identity, l.window)
	if err != nil {
		return true, err
	}
	return count <= l.limit, nil
}
