package phoneAuth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrEthical07/phoneAuth/internal/stores"
)

const (
	auditEventVerify  = "otp.verify"
	auditEventLockout = "otp.lockout"
)

// VerifyOtp checks the submitted code against the phone's active
// challenge.
//
// On success the challenge, the failure counter, and the request-window
// counter are all cleared, so a freshly verified phone starts its next
// login from a clean slate. On the failure that reaches the attempt
// cap, the phone is locked out and the challenge consumed; the correct
// code is then rejected until the lockout expires on its own.
//
// The returned result is the business outcome; a non-nil error is
// always an infrastructure failure (or invalid input), never a
// rejection.
func (e *Engine) VerifyOtp(ctx context.Context, phone, code string) (*VerifyOtpResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	identity := NormalizePhone(phone)
	if identity == "" {
		return nil, ErrInvalidPhone
	}

	locked, remaining, err := e.lockout.IsLocked(ctx, identity)
	if err != nil {
		return nil, e.storeFailure(err)
	}
	if locked {
		minutes := ceilMinutes(remaining)
		e.metricInc(MetricVerifyLocked)
		e.emitAudit(ctx, auditEventVerify, identity, false, OutcomeLockedOut, map[string]string{
			"lockout_minutes": strconv.Itoa(minutes),
		})
		return &VerifyOtpResult{
			Success: false,
			Outcome: OutcomeLockedOut,
			Message: fmt.Sprintf("phone is locked, try again in %d minutes", minutes),
		}, nil
	}

	expected, err := e.challenges.Fetch(ctx, identity)
	if err != nil {
		if errors.Is(err, stores.ErrChallengeNotFound) {
			e.metricInc(MetricVerifyChallengeMissing)
			e.emitAudit(ctx, auditEventVerify, identity, false, OutcomeChallengeMissing, nil)
			return &VerifyOtpResult{
				Success: false,
				Outcome: OutcomeChallengeMissing,
				Message: "verification code expired or missing, request a new one",
			}, nil
		}
		return nil, e.storeFailure(err)
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
		// Challenge delete comes first so a racing second verify with
		// the same code finds nothing; counter resets after it are
		// best-effort, since a stale counter only costs leniency.
		if err := e.challenges.Invalidate(ctx, identity); err != nil {
			return nil, e.storeFailure(err)
		}
		_ = e.failures.Reset(ctx, identity)
		_ = e.requestLimiter.Reset(ctx, identity)

		e.metricInc(MetricVerifySuccess)
		e.emitAudit(ctx, auditEventVerify, identity, true, OutcomeSuccess, nil)
		return &VerifyOtpResult{
			Success: true,
			Outcome: OutcomeSuccess,
			Message: "phone number verified",
		}, nil
	}

	count, tripped, err := e.failures.Record(ctx, identity)
	if err != nil {
		return nil, e.storeFailure(err)
	}

	if tripped {
		// The flag is the safety-critical write and must land; the
		// cleanup deletes are best-effort because the lockout check
		// runs before anything can read what they leave behind.
		if err := e.lockout.Trip(ctx, identity); err != nil {
			return nil, e.storeFailure(err)
		}
		_ = e.challenges.Invalidate(ctx, identity)
		_ = e.failures.Reset(ctx, identity)

		minutes := ceilMinutes(e.config.Lockout.Duration)
		e.metricInc(MetricLockoutTripped)
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventLockout, identity, false, OutcomeLockedOut, map[string]string{
			"lockout_minutes": strconv.Itoa(minutes),
		})
		return &VerifyOtpResult{
			Success: false,
			Outcome: OutcomeLockedOut,
			Message: fmt.Sprintf("too many failed attempts, phone locked for %d minutes", minutes),
		}, nil
	}

	attemptsLeft := e.failures.Remaining(count)
	e.metricInc(MetricVerifyFailure)
	e.emitAudit(ctx, auditEventVerify, identity, false, OutcomeInvalidCode, map[string]string{
		"remaining_attempts": strconv.Itoa(attemptsLeft),
	})
	return &VerifyOtpResult{
		Success: false,
		Outcome: OutcomeInvalidCode,
		Message: fmt.Sprintf("invalid verification code, %d attempts remaining", attemptsLeft),
	}, nil
}
