package phoneAuth

import (
	"context"
	"strings"
)

// Outcome classifies the business result of a RequestOtp or VerifyOtp
// call. Infrastructure failures are not outcomes; they surface as
// errors wrapping [ErrStoreUnavailable].
//
//	Docs: docs/functionality-outcomes.md
type Outcome uint8

const (
	// OutcomeSuccess is an exported constant or variable used by the OTP engine.
	OutcomeSuccess Outcome = iota
	// OutcomeRateLimited is an exported constant or variable used by the OTP engine.
	OutcomeRateLimited
	// OutcomeLockedOut is an exported constant or variable used by the OTP engine.
	OutcomeLockedOut
	// OutcomeChallengeMissing is an exported constant or variable used by the OTP engine.
	OutcomeChallengeMissing
	// OutcomeInvalidCode is an exported constant or variable used by the OTP engine.
	OutcomeInvalidCode
)

// RequestOtpResult defines a public type used by phoneAuth APIs.
//
// RequestOtpResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RequestOtpResult struct {
	Success bool
	Outcome Outcome
	Message string
	// RemainingAttempts is the request-window headroom left after this
	// call. Present on both accepted and rate-limited results.
	RemainingAttempts int
	// LockoutMinutes is set only when the result is rate-limited or
	// locked out: minutes until the window or lockout expires.
	LockoutMinutes int
}

// VerifyOtpResult defines a public type used by phoneAuth APIs.
//
// VerifyOtpResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VerifyOtpResult struct {
	Success bool
	Outcome Outcome
	Message string
}

// DeliveryEvent is the otp.requested event handed to the [Notifier]
// after a challenge is issued. Delivery is fire-and-forget: the engine
// neither awaits it nor rolls anything back if it fails.
type DeliveryEvent struct {
	EventID           string `json:"event_id"`
	Phone             string `json:"phone"`
	Code              string `json:"code"`
	RemainingAttempts int    `json:"remaining_attempts"`
}

// Notifier receives delivery events and is responsible for the actual
// SMS (or other channel) send. Implementations must be safe for
// concurrent use; slow sinks only ever delay or drop events, never the
// engine's responses.
type Notifier interface {
	Deliver(ctx context.Context, event DeliveryEvent)
}

// NoOpNotifier discards all delivery events.
type NoOpNotifier struct{}

// Deliver describes the deliver operation and its observable behavior.
func (NoOpNotifier) Deliver(context.Context, DeliveryEvent) {}

// ChannelNotifier forwards delivery events to a channel, mainly for
// tests and examples.
type ChannelNotifier struct {
	events chan DeliveryEvent
}

// NewChannelNotifier describes the newchannelnotifier operation and its observable behavior.
//
// NewChannelNotifier may return an error when input validation, dependency calls, or security checks fail.
// NewChannelNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		events: make(chan DeliveryEvent, buffer),
	}
}

// Deliver describes the deliver operation and its observable behavior.
func (n *ChannelNotifier) Deliver(ctx context.Context, event DeliveryEvent) {
	select {
	case n.events <- event:
	case <-ctx.Done():
	}
}

// Events describes the events operation and its observable behavior.
func (n *ChannelNotifier) Events() <-chan DeliveryEvent {
	return n.events
}

// CodeGenerator produces one-time passcodes. The production
// implementation draws from crypto/rand; tests may inject a fixed
// sequence.
type CodeGenerator interface {
	Generate() (string, error)
}

// NormalizePhone derives the canonical phone identity used as the key
// for every piece of per-phone state: whitespace and the characters
// "()-" are stripped. Two inputs differing only by those characters
// share all counters, challenges, and lockouts. Format validation is
// the caller's job; this only canonicalizes.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '(', ')', '-':
			return -1
		}
		return r
	}, phone)
}
