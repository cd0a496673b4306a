package limiters

import (
	"context"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/rate"
)

const requestKeyPrefix = "por:"

// RequestConfig holds the request-frequency window parameters.
type RequestConfig struct {
	MaxRequests int
	Window      time.Duration
}

// RequestLimiter bounds how often one phone may be issued a new
// challenge inside a fixed window.
type RequestLimiter struct {
	gate   *rate.Gate
	config RequestConfig
}

// NewRequestLimiter creates a request limiter over the given gate.
func NewRequestLimiter(gate *rate.Gate, cfg RequestConfig) *RequestLimiter {
	return &RequestLimiter{gate: gate, config: cfg}
}

func (l *RequestLimiter) key(phone string) string {
	return requestKeyPrefix + phone
}

// Check consumes one request slot for the phone if any remain. Returns
// whether the request may proceed, the slots used so far, and the time
// until the window resets.
func (l *RequestLimiter) Check(ctx context.Context, phone string) (bool, int, time.Duration, error) {
	return l.gate.CheckAndIncrement(ctx, l.key(phone), l.config.MaxRequests, l.config.Window)
}

// Remaining reports the request slots left after count are used.
func (l *RequestLimiter) Remaining(count int) int {
	remaining := l.config.MaxRequests - count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the window for the phone. Called after a successful
// verification so the next login starts from a clean slate.
func (l *RequestLimiter) Reset(ctx context.Context, phone string) error {
	return l.gate.Reset(ctx, l.key(phone))
}
