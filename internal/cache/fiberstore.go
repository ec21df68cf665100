package cache

import (
	"context"
	"encoding/binary"
	"sync"
	"time"
)

// Storage is the subset of the gofiber/storage contract this adapter needs.
// The Redis storage (and every other gofiber/storage backend) satisfies it.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// FiberStore adapts a gofiber/storage backend (e.g. Redis) to the Cache
// interface, so counters and cached prices survive restarts and can be
// shared across instances.
//
// Increments are serialized per process with a mutex; across instances the
// read-modify-write can lose the odd count under contention, which for spam
// throttling errs on the permissive side and is acceptable.
type FiberStore struct {
	mu    sync.Mutex
	store Storage
	now   func() time.Time
}

// NewFiberStore wraps a gofiber/storage backend.
func NewFiberStore(store Storage) *FiberStore {
	return &FiberStore{store: store, now: time.Now}
}

// Get returns the value at key. gofiber storages report a miss as (nil, nil).
func (f *FiberStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, err := f.store.Get(key)
	if err != nil {
		return nil, false, err
	}
	if len(value) == 0 {
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores value at key for ttl.
func (f *FiberStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return f.store.Set(key, value, ttl)
}

// IncrementWithReset bumps the counter at key. The window end travels inside
// the stored value because fiber.Storage cannot report remaining TTL.
func (f *FiberStore) IncrementWithReset(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()

	raw, err := f.store.Get(key)
	if err != nil {
		return 0, err
	}

	count, windowEnd, ok := decodeCounter(raw)
	if !ok || now.After(windowEnd) {
		windowEnd = now.Add(ttl)
		if err := f.store.Set(key, encodeCounter(1, windowEnd), ttl); err != nil {
			return 0, err
		}
		return 1, nil
	}

	count++
	if err := f.store.Set(key, encodeCounter(count, windowEnd), windowEnd.Sub(now)); err != nil {
		return 0, err
	}
	return count, nil
}

func encodeCounter(count int64, windowEnd time.Time) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], uint64(count))
	binary.BigEndian.PutUint64(buf[8:], uint64(windowEnd.UnixNano()))
	return buf
}

func decodeCounter(raw []byte) (count int64, windowEnd time.Time, ok bool) {
	if len(raw) != 16 {
		return 0, time.Time{}, false
	}
	count = int64(binary.BigEndian.Uint64(raw[:8]))
	windowEnd = time.Unix(0, int64(binary.BigEndian.Uint64(raw[8:])))
	return count, windowEnd, true
}
