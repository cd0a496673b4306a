package test

import (
	"context"
	"testing"

	phoneAuth "github.com/MrEthical07/phoneAuth"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = phoneAuth.New

	var _ *phoneAuth.Engine
	var _ phoneAuth.Config
	var _ phoneAuth.RequestOtpResult
	var _ phoneAuth.VerifyOtpResult
	var _ phoneAuth.DeliveryEvent
	var _ phoneAuth.Outcome
	var _ phoneAuth.Notifier
	var _ phoneAuth.CodeGenerator
	var _ phoneAuth.AuditSink
	var _ phoneAuth.MetricsSnapshot

	var _ error = phoneAuth.ErrEngineNotReady
	var _ error = phoneAuth.ErrInvalidPhone
	var _ error = phoneAuth.ErrStoreUnavailable

	var _ func(*phoneAuth.Engine, context.Context, string) (*phoneAuth.RequestOtpResult, error) = (*phoneAuth.Engine).RequestOtp
	var _ func(*phoneAuth.Engine, context.Context, string, string) (*phoneAuth.VerifyOtpResult, error) = (*phoneAuth.Engine).VerifyOtp
	var _ func(*phoneAuth.Engine) phoneAuth.MetricsSnapshot = (*phoneAuth.Engine).MetricsSnapshot
	var _ func(*phoneAuth.Engine) = (*phoneAuth.Engine).Close
}
