// Package session holds the in-memory authentication state the UI renders
// from: the signed-in user, tokens, the loading flag, and the onboarding and
// new-user markers.
//
// # Architecture boundaries
//
// This package owns the [State] container and its change notification
// mechanism. It does NOT talk to the network, read or write the secure
// store, or decide when state changes — the Manager drives all mutations.
//
// # What this package must NOT do
//
//   - Import authcore, securestore, or transport (no upward imports).
//   - Persist anything: [State] is memory only and empty on construction.
//   - Invoke subscribers while holding the state lock.
package session
