package phoneAuth

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the OTP engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrInvalidPhone is an exported constant or variable used by the OTP engine.
	ErrInvalidPhone = errors.New("invalid phone identity")
	// ErrStoreUnavailable wraps every infrastructure failure coming out
	// of the key-value store. It is never returned for a business
	// rejection: a rate limit, lockout, or wrong code produces a result
	// with Success=false and a nil error, so a store outage can never be
	// mistaken for "rate limited".
	ErrStoreUnavailable = errors.New("store unavailable")
)
