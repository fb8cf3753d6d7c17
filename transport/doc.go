// Package transport is the REST envelope client for the backend API. Every
// endpoint wraps its response in a success/data/message envelope; this
// package decodes it, normalizes the many shapes backend error bodies take
// into one [APIError], and separates network failure ([TransportError]) from
// backend rejection.
//
// # Error normalization
//
// Backend rejections arrive as "message", "error", or "detail" fields, with
// an optional machine code and, for verification endpoints, a remaining
// attempt count. Classification prefers the explicit code and falls back to
// substring matching on the message, so recognized conditions survive
// backend copy changes.
//
// # What this package must NOT do
//
//   - Import authcore, session, or securestore (no upward imports).
//   - Retry, queue, or cache requests.
//   - Map errors onto user-facing copy; that is the caller's concern.
package transport
