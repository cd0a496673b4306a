package limiters

import (
	"context"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/rate"
)

const failureKeyPrefix = "pof:"

// FailureConfig holds the failed-verification counter parameters.
type FailureConfig struct {
	MaxAttempts int
	CounterTTL  time.Duration
}

// FailureCounter tracks wrong-code verification attempts per phone.
// Reaching the cap is the only path to a lockout. The counter is NOT
// reset when a new challenge is requested: partial failure history
// carries across challenges for as long as the counter TTL lasts.
type FailureCounter struct {
	gate   *rate.Gate
	config FailureConfig
}

// NewFailureCounter creates a failure counter over the given gate.
func NewFailureCounter(gate *rate.Gate, cfg FailureConfig) *FailureCounter {
	return &FailureCounter{gate: gate, config: cfg}
}

func (c *FailureCounter) key(phone string) string {
	return failureKeyPrefix + phone
}

// Record counts one failed attempt. Returns the attempt count after the
// call and whether the cap has been reached (caller should trip the
// lockout). A counter found already at cap also reports tripped; that
// state only occurs if a previous trip's cleanup was interrupted, and
// the answer is the same either way.
func (c *FailureCounter) Record(ctx context.Context, phone string) (count int, tripped bool, err error) {
	allowed, count, _, err := c.gate.CheckAndIncrement(ctx, c.key(phone), c.config.MaxAttempts, c.config.CounterTTL)
	if err != nil {
		return 0, false, err
	}
	return count, !allowed || count >= c.config.MaxAttempts, nil
}

// Remaining reports the attempts left before lockout after count
// failures.
func (c *FailureCounter) Remaining(count int) int {
	remaining := c.config.MaxAttempts - count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the failure history for the phone.
func (c *FailureCounter) Reset(ctx context.Context, phone string) error {
	return c.gate.Reset(ctx, c.key(phone))
}
