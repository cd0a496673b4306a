package phoneAuth

import (
	"errors"
	"time"

	"github.com/MrEthical07/phoneAuth/internal"
)

// Config defines a public type used by phoneAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	OTP          OTPConfig
	RequestLimit RequestLimitConfig
	Verification VerificationConfig
	Lockout      LockoutConfig
	Delivery     DeliveryConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig defines a public type used by phoneAuth APIs.
//
// OTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OTPConfig struct {
	// Digits is the passcode length. Codes are zero-padded decimal
	// strings, so 6 digits spans 000000–999999.
	Digits int
	// ChallengeTTL is how long an issued code stays verifiable. Every
	// new request restarts it; there is no extend operation.
	ChallengeTTL time.Duration
}

/*
====================================
REQUEST LIMIT CONFIG
====================================
*/

// RequestLimitConfig defines a public type used by phoneAuth APIs.
//
// RequestLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RequestLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

/*
====================================
VERIFICATION CONFIG
====================================
*/

// VerificationConfig defines a public type used by phoneAuth APIs.
//
// VerificationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VerificationConfig struct {
	// MaxFailedAttempts is the number of wrong codes tolerated inside
	// one FailureCounterTTL window before the phone is locked out.
	MaxFailedAttempts int
	// FailureCounterTTL bounds how long failed attempts are remembered.
	// The counter survives re-requests: asking for a fresh code does
	// not forgive earlier wrong guesses.
	FailureCounterTTL time.Duration
}

/*
====================================
LOCKOUT CONFIG
====================================
*/

// LockoutConfig defines a public type used by phoneAuth APIs.
//
// LockoutConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LockoutConfig struct {
	// Duration is the full lockout window. Lockouts end only by expiry;
	// no unlock API exists.
	Duration time.Duration
}

/*
====================================
DELIVERY CONFIG
====================================
*/

// DeliveryConfig defines a public type used by phoneAuth APIs.
//
// DeliveryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DeliveryConfig struct {
	BufferSize int
	DropIfFull bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by phoneAuth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by phoneAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the recommended production configuration: a
// 6-digit code valid for 10 minutes, 3 requests per hour, 3 failed
// attempts per 10 minutes, and a 30-minute lockout.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		OTP: OTPConfig{
			Digits:       6,
			ChallengeTTL: 10 * time.Minute,
		},
		RequestLimit: RequestLimitConfig{
			MaxRequests: 3,
			Window:      time.Hour,
		},
		Verification: VerificationConfig{
			MaxFailedAttempts: 3,
			FailureCounterTTL: 10 * time.Minute,
		},
		Lockout: LockoutConfig{
			Duration: 30 * time.Minute,
		},
		Delivery: DeliveryConfig{
			BufferSize: 1024,
			DropIfFull: true,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.OTP.Digits < internal.MinOTPDigits || c.OTP.Digits > internal.MaxOTPDigits {
		return errors.New("OTP Digits must be between 4 and 10")
	}
	if c.OTP.ChallengeTTL <= 0 {
		return errors.New("OTP ChallengeTTL must be positive")
	}
	if c.RequestLimit.MaxRequests <= 0 {
		return errors.New("RequestLimit MaxRequests must be positive")
	}
	if c.RequestLimit.Window <= 0 {
		return errors.New("RequestLimit Window must be positive")
	}
	if c.Verification.MaxFailedAttempts <= 0 {
		return errors.New("Verification MaxFailedAttempts must be positive")
	}
	if c.Verification.FailureCounterTTL <= 0 {
		return errors.New("Verification FailureCounterTTL must be positive")
	}
	if c.Lockout.Duration <= 0 {
		return errors.New("Lockout Duration must be positive")
	}
	if c.Delivery.BufferSize < 0 {
		return errors.New("Delivery BufferSize must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}
