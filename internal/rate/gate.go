package rate

import (
	"context"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/kv"
)

// Gate is the generic "check cap, atomically increment, report
// remaining" primitive. Both the request window and the failure counter
// are instances of it with different keys, caps, and TTLs.
type Gate struct {
	store kv.Store
}

// New creates a Gate over the given store.
func New(store kv.Store) *Gate {
	return &Gate{store: store}
}

// CheckAndIncrement increments the counter at key unless it already
// holds cap. The first increment starts the window by attaching ttl.
// Returns whether the increment was allowed, the counter value after
// the call, and the window's remaining lifetime. The entire decision is
// a single store operation; callers never observe the counter above cap.
func (g *Gate) CheckAndIncrement(ctx context.Context, key string, cap int, ttl time.Duration) (bool, int, time.Duration, error) {
	return g.store.CheckAndIncrement(ctx, key, cap, ttl)
}

// Reset deletes the counter at key, restarting its window on next use.
func (g *Gate) Reset(ctx context.Context, key string) error {
	return g.store.Delete(ctx, key)
}
