// Package rate provides the atomic counter gate that backs both the
// request-frequency window and the failed-verification counter.
//
// # Window semantics
//
// Fixed-window counters: one store-side check-and-increment per call,
// EXPIRE applied on the first hit only. The gate itself is policy-free;
// key prefixes and caps belong to internal/limiters.
//
// # What this package must NOT do
//
//   - Implement domain-specific policies (those live in internal/limiters).
//   - Be imported outside the phoneAuth module.
package rate
