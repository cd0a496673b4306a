package phoneAuth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const auditEventRequest = "otp.request"

// RequestOtp issues a fresh one-time passcode for the phone and emits
// an otp.requested delivery event for the host's notifier.
//
// The returned result is the business outcome; a non-nil error is
// always an infrastructure failure (or invalid input), never a
// rejection. Any prior challenge for the phone is overwritten outright
// and its clock restarted.
//
// RequestOtp may be called from any number of engine instances
// concurrently for the same phone: the request window is enforced by a
// single atomic store operation, so exactly MaxRequests calls succeed
// per window, never more.
func (e *Engine) RequestOtp(ctx context.Context, phone string) (*RequestOtpResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	defer e.observeLatency(start)

	identity := NormalizePhone(phone)
	if identity == "" {
		return nil, ErrInvalidPhone
	}

	// Lockout short-circuits everything else, counters included.
	locked, remaining, err := e.lockout.IsLocked(ctx, identity)
	if err != nil {
		return nil, e.storeFailure(err)
	}
	if locked {
		minutes := ceilMinutes(remaining)
		e.metricInc(MetricRequestLocked)
		e.emitAudit(ctx, auditEventRequest, identity, false, OutcomeLockedOut, map[string]string{
			"lockout_minutes": strconv.Itoa(minutes),
		})
		return &RequestOtpResult{
			Success:        false,
			Outcome:        OutcomeLockedOut,
			Message:        fmt.Sprintf("phone is locked, try again in %d minutes", minutes),
			LockoutMinutes: minutes,
		}, nil
	}

	allowed, used, windowLeft, err := e.requestLimiter.Check(ctx, identity)
	if err != nil {
		return nil, e.storeFailure(err)
	}
	if !allowed {
		minutes := ceilMinutes(windowLeft)
		e.metricInc(MetricRequestRateLimited)
		e.emitAudit(ctx, auditEventRequest, identity, false, OutcomeRateLimited, map[string]string{
			"retry_minutes": strconv.Itoa(minutes),
		})
		return &RequestOtpResult{
			Success:           false,
			Outcome:           OutcomeRateLimited,
			Message:           fmt.Sprintf("too many code requests, try again in %d minutes", minutes),
			RemainingAttempts: 0,
			LockoutMinutes:    minutes,
		}, nil
	}

	code, err := e.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	if err := e.challenges.Issue(ctx, identity, code); err != nil {
		return nil, e.storeFailure(err)
	}

	remainingAttempts := e.requestLimiter.Remaining(used)

	// Fire-and-forget: the notifier owns delivery, the engine does not
	// await it and issues no rollback if it fails.
	e.delivery.Emit(ctx, DeliveryEvent{
		EventID:           uuid.NewString(),
		Phone:             identity,
		Code:              code,
		RemainingAttempts: remainingAttempts,
	})

	e.metricInc(MetricRequestIssued)
	e.metricInc(MetricDeliveryEmitted)
	e.emitAudit(ctx, auditEventRequest, identity, true, OutcomeSuccess, map[string]string{
		"remaining_attempts": strconv.Itoa(remainingAttempts),
	})

	return &RequestOtpResult{
		Success:           true,
		Outcome:           OutcomeSuccess,
		Message:           "verification code sent",
		RemainingAttempts: remainingAttempts,
	}, nil
}
