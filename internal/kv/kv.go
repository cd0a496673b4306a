package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested key does not exist or
	// has already expired.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable indicates the store backend is unreachable. Callers
	// must surface this as an infrastructure failure, never as a
	// business rejection.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the TTL key-value interface consumed by the engine. All
// durable state lives behind it; the engine itself holds no
// cross-request memory, so any number of engine instances may share one
// Store.
type Store interface {
	// Get returns the value at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// SetWithTTL writes value at key with the given expiry,
	// unconditionally replacing any prior value and its TTL.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// CheckAndIncrement atomically increments the counter at key unless
	// it already holds cap. On the first increment the counter's TTL is
	// set to ttl. Returns whether the increment was allowed, the counter
	// value after the call, and the counter's remaining TTL.
	CheckAndIncrement(ctx context.Context, key string, cap int, ttl time.Duration) (allowed bool, count int, remaining time.Duration, err error)

	// TTLRemaining reports the remaining lifetime of key, or ErrNotFound.
	TTLRemaining(ctx context.Context, key string) (time.Duration, error)
}
