// Package limiters holds the domain policies that gate the OTP
// lifecycle: the per-phone request window, the failed-verification
// counter, and the lockout guard. Each is a thin policy over the
// internal/rate gate or the kv store; none of them knows about the
// engine's result types.
package limiters
