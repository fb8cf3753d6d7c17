// Package authcore is the client-side authentication and session lifecycle
// manager for the Bazr mobile apps (marketplace + news reader). It owns
// credential submission, multi-provider login, registration with email
// verification, the three-step password reset protocol, session persistence,
// and onboarding-state tracking.
//
// The package is the public surface. It exposes [Manager], [Builder],
// [Config], and value types (SocialResult, ResetCredential, MetricsSnapshot).
// Session state lives in the session sub-package, the secure key-value store
// contract in securestore, and the REST envelope client in transport.
//
// Manager methods are safe to call from multiple goroutines after
// initialization through [Builder.Build], though the intended caller is a
// single UI loop; concurrent duplicate submissions of the same operation are
// coalesced by a per-operation single-flight guard.
//
// # What this package must NOT do
//
//   - Verify token signatures or schedule token refresh — the backend is
//     authoritative; the client only stores, clears, and peeks at tokens.
//   - Let a transport or store failure escape as a panic or an unwrapped
//     error: every flow failure maps to a sentinel in errors.go and a
//     human-readable string via [UserMessage].
//   - Mutate session state on a failed flow (logout excepted, which always
//     clears in-memory state).
package authcore
