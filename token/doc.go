// Package token inspects JWT access tokens without verifying them. The
// backend is the only party that validates signatures; the client peeks at
// claims purely for display and expiry-adjacent UX hints.
package token
