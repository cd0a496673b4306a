// Package phoneAuth authenticates possession of a phone number with
// short-lived numeric one-time passcodes, enforcing exact abuse caps on
// top of nothing more than a shared TTL key-value store.
//
// # Model
//
// Per phone there is at most one active challenge, a request-frequency
// counter, a failed-attempt counter, and possibly a lockout flag. All
// four are keyed by the normalized phone identity and expire on their
// own. The caps (requests per window, failed attempts) are enforced by
// a single atomic check-and-increment in the store, so they hold under
// any number of concurrent callers and engine instances.
//
// # Usage
//
//	engine, err := phoneAuth.New().
//		WithRedis(rdb).
//		WithNotifier(smsSender).
//		Build()
//	if err != nil {
//		// ...
//	}
//	defer engine.Close()
//
//	res, err := engine.RequestOtp(ctx, "+1 (555) 010-9988")
//
// RequestOtp and VerifyOtp return business outcomes as typed results;
// a non-nil error always means infrastructure trouble (store down),
// never a rejection.
//
// # Out of scope
//
// Routing, token/session issuance, user accounts, phone format
// validation, and the actual SMS send all belong to the host
// application. The engine emits otp.requested events to a Notifier and
// stops there.
package phoneAuth
