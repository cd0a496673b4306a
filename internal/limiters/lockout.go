package limiters

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/kv"
)

const lockoutKeyPrefix = "pol:"

// LockoutConfig holds the lockout duration.
type LockoutConfig struct {
	Duration time.Duration
}

// LockoutGuard installs and inspects the per-phone lockout flag. There
// is deliberately no unlock operation: a lockout ends only by TTL
// expiry, so probing cannot reveal any unlock logic beyond the fixed
// window.
type LockoutGuard struct {
	store  kv.Store
	config LockoutConfig
}

// NewLockoutGuard creates a lockout guard over the given store.
func NewLockoutGuard(store kv.Store, cfg LockoutConfig) *LockoutGuard {
	return &LockoutGuard{store: store, config: cfg}
}

func (g *LockoutGuard) key(phone string) string {
	return lockoutKeyPrefix + phone
}

// IsLocked reports whether the phone is under lockout and, if so, how
// long until the flag expires.
func (g *LockoutGuard) IsLocked(ctx context.Context, phone string) (bool, time.Duration, error) {
	remaining, err := g.store.TTLRemaining(ctx, g.key(phone))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, remaining, nil
}

// Trip installs the lockout flag for the configured duration. The flag
// is a presence marker; its value carries no information.
func (g *LockoutGuard) Trip(ctx context.Context, phone string) error {
	return g.store.SetWithTTL(ctx, g.key(phone), "1", g.config.Duration)
}
