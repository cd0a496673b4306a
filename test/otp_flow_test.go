//go:build integration
// +build integration

package test

import (
	"context"
	"testing"
	"time"

	phoneAuth "github.com/MrEthical07/phoneAuth"
)

func TestRequestVerifyHappyFlow(t *testing.T) {
	notifier := phoneAuth.NewChannelNotifier(8)
	engine, _ := newIntegrationEngine(t, notifier)
	ctx := context.Background()

	request, err := engine.RequestOtp(ctx, "+1 (555) 010-0001")
	if err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	if !request.Success {
		t.Fatalf("expected issued challenge, got %+v", request)
	}

	event := awaitDelivery(t, notifier.Events())
	if event.Phone != "+15550100001" {
		t.Fatalf("expected normalized phone in delivery, got %q", event.Phone)
	}
	if len(event.Code) != 6 {
		t.Fatalf("expected six digit code, got %q", event.Code)
	}

	// Differently formatted input resolves to the same identity.
	verify, err := engine.VerifyOtp(ctx, "+15550100001", event.Code)
	if err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}
	if !verify.Success {
		t.Fatalf("expected verification success, got %+v", verify)
	}

	// The challenge is consumed by success.
	again, err := engine.VerifyOtp(ctx, "+15550100001", event.Code)
	if err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}
	if again.Success || again.Outcome != phoneAuth.OutcomeChallengeMissing {
		t.Fatalf("expected consumed challenge, got %+v", again)
	}
}

func TestRequestWindowExhaustionAndRecovery(t *testing.T) {
	engine, mr := newIntegrationEngine(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := engine.RequestOtp(ctx, "+15550100002")
		if err != nil {
			t.Fatalf("RequestOtp %d failed: %v", i, err)
		}
		if !result.Success {
			t.Fatalf("expected request %d to succeed, got %+v", i, result)
		}
	}

	denied, err := engine.RequestOtp(ctx, "+15550100002")
	if err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	if denied.Success || denied.Outcome != phoneAuth.OutcomeRateLimited {
		t.Fatalf("expected rate limited, got %+v", denied)
	}

	mr.FastForward(time.Hour + time.Second)

	recovered, err := engine.RequestOtp(ctx, "+15550100002")
	if err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	if !recovered.Success {
		t.Fatalf("expected fresh window after expiry, got %+v", recovered)
	}
}

func TestLockoutFlow(t *testing.T) {
	notifier := phoneAuth.NewChannelNotifier(8)
	engine, mr := newIntegrationEngine(t, notifier)
	ctx := context.Background()

	if _, err := engine.RequestOtp(ctx, "+15550100003"); err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	event := awaitDelivery(t, notifier.Events())
	wrong := wrongCode(event.Code)

	for i := 0; i < 2; i++ {
		result, err := engine.VerifyOtp(ctx, "+15550100003", wrong)
		if err != nil {
			t.Fatalf("VerifyOtp failed: %v", err)
		}
		if result.Outcome != phoneAuth.OutcomeInvalidCode {
			t.Fatalf("expected invalid code outcome, got %+v", result)
		}
	}

	locked, err := engine.VerifyOtp(ctx, "+15550100003", wrong)
	if err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}
	if locked.Outcome != phoneAuth.OutcomeLockedOut {
		t.Fatalf("expected lockout on third failure, got %+v", locked)
	}

	// The lockout wall also rejects the correct code and new requests.
	walled, err := engine.VerifyOtp(ctx, "+15550100003", event.Code)
	if err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}
	if walled.Outcome != phoneAuth.OutcomeLockedOut {
		t.Fatalf("expected lockout to reject correct code, got %+v", walled)
	}
	deniedRequest, err := engine.RequestOtp(ctx, "+15550100003")
	if err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	if deniedRequest.Outcome != phoneAuth.OutcomeLockedOut {
		t.Fatalf("expected lockout to reject new requests, got %+v", deniedRequest)
	}

	mr.FastForward(30*time.Minute + time.Second)

	released, err := engine.RequestOtp(ctx, "+15550100003")
	if err != nil {
		t.Fatalf("RequestOtp failed: %v", err)
	}
	if !released.Success {
		t.Fatalf("expected lockout to expire by TTL, got %+v", released)
	}
}

// wrongCode returns a code guaranteed to differ from the given one.
func wrongCode(code string) string {
	if len(code) == 0 {
		return "000000"
	}
	b := []byte(code)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}
