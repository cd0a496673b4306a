// Package internal contains helper utilities that are intentionally private
// to phoneAuth, chiefly secure one-time passcode generation.
//
// # Sub-packages
//
//   - kv — TTL key-value store interface plus Redis and in-memory backends
//   - rate — the atomic check-and-increment counter gate
//   - limiters — request-window, failure-count, and lockout policies
//   - stores — the per-phone challenge store
//
// # What this package must NOT do
//
//   - Export types that appear in the public phoneAuth API.
//   - Be imported by any package outside the phoneAuth module.
package internal
