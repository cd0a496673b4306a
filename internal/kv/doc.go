// Package kv abstracts the TTL key-value store used for all durable
// phoneAuth state: challenges, counters, and lockout flags.
//
// # Atomicity
//
// CheckAndIncrement is the load-bearing primitive. It must read the
// counter, compare it to the cap, and increment in one indivisible
// store operation; a get-then-incr sequence lets two concurrent callers
// both observe a value below cap and overshoot it. The Redis
// implementation uses a server-side Lua script for this reason.
//
// # What this package must NOT do
//
//   - Know about phones, challenges, or lockout policy (those live in
//     internal/limiters and internal/stores).
//   - Be imported outside the phoneAuth module.
package kv
