// Package securestore defines the durable key-value contract the Manager
// persists sessions through, plus two implementations: an in-process map for
// tests and simulators, and a Redis-backed store for device farms and
// integration rigs where the platform keychain is not available.
//
// # Architecture boundaries
//
// This package owns storage mechanics only. Key names, value formats, and
// the decision of what to persist belong to the Manager.
//
// # What this package must NOT do
//
//   - Import authcore or session (no upward imports).
//   - Interpret stored values; everything is an opaque string.
//   - Swallow the distinction between "missing" and "failed": a missing key
//     is always [ErrNotFound].
package securestore
