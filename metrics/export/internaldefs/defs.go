package internaldefs

import (
	phoneAuth "github.com/MrEthical07/phoneAuth"
)

// CounterDef defines a public type used by phoneAuth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   phoneAuth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by phoneAuth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   phoneAuth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the OTP engine.
var CounterDefs = []CounterDef{
	{ID: phoneAuth.MetricRequestIssued, Name: "phoneauth_request_issued_total", Help: "Issued OTP challenges."},
	{ID: phoneAuth.MetricRequestRateLimited, Name: "phoneauth_request_rate_limited_total", Help: "OTP requests denied by the request window."},
	{ID: phoneAuth.MetricRequestLocked, Name: "phoneauth_request_locked_total", Help: "OTP requests denied by an active lockout."},
	{ID: phoneAuth.MetricVerifySuccess, Name: "phoneauth_verify_success_total", Help: "Successful code verifications."},
	{ID: phoneAuth.MetricVerifyFailure, Name: "phoneauth_verify_failure_total", Help: "Failed code verifications."},
	{ID: phoneAuth.MetricVerifyLocked, Name: "phoneauth_verify_locked_total", Help: "Verifications denied by an active lockout."},
	{ID: phoneAuth.MetricVerifyChallengeMissing, Name: "phoneauth_verify_challenge_missing_total", Help: "Verifications with no active challenge."},
	{ID: phoneAuth.MetricLockoutTripped, Name: "phoneauth_lockout_tripped_total", Help: "Lockouts installed after reaching the failure cap."},
	{ID: phoneAuth.MetricDeliveryEmitted, Name: "phoneauth_delivery_emitted_total", Help: "Delivery events handed to the notifier dispatcher."},
	{ID: phoneAuth.MetricStoreError, Name: "phoneauth_store_error_total", Help: "Store round-trips that failed as infrastructure errors."},
}

// HistogramDefs is an exported constant or variable used by the OTP engine.
var HistogramDefs = []HistogramDef{
	{ID: phoneAuth.MetricRequestLatency, Name: "phoneauth_request_latency_seconds", Help: "RequestOtp latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the OTP engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the OTP engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
