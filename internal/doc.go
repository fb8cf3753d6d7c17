// Package internal contains helper utilities that are intentionally private to authcore,
// currently the client-side input validation helpers used before any network call.
//
// # What this package must NOT do
//
//   - Export types that appear in the public authcore API.
//   - Be imported by any package outside the authcore module.
//   - Perform network I/O; validation here is shape-checking only, the
//     backend remains authoritative.
package internal
