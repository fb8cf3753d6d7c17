package authcore

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bazr-app/authcore/transport"
)

// flowError chains a flow sentinel over its cause so callers can branch with
// errors.Is on the sentinel and still reach the *transport.APIError (or
// *transport.TransportError) underneath with errors.As.
func flowError(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// UserMessage maps any error returned by a Manager operation to the string
// the UI should present. The mapping is resolved in a fixed order:
//
//  1. Known sentinels with fixed or templated copy.
//  2. Local validation messages, shown verbatim.
//  3. Network failure copy.
//  4. The backend's own message when one was extracted from the envelope.
//  5. Per-flow generic fallbacks.
//
// Backend strings are passed through verbatim only at step 4, so a
// recognized condition always renders the same copy regardless of backend
// phrasing drift. ErrEmailNotVerified is the one exception: its server
// message carries routing context the UI displays as-is when present.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *transport.APIError
	hasAPI := errors.As(err, &apiErr)

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid Credentials"
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid Email"
	case errors.Is(err, ErrEmailNotVerified):
		if hasAPI && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Email is not verified"
	case errors.Is(err, ErrEmailExists):
		return "An account with this email already exists"
	case errors.Is(err, ErrVerificationCodeInvalid):
		if hasAPI && apiErr.AttemptsRemaining >= 0 {
			return "Invalid verification code. " + strconv.Itoa(apiErr.AttemptsRemaining) + " attempts remaining."
		}
		return "Invalid verification code."
	case errors.Is(err, ErrVerificationAttempts):
		return "Too many failed attempts. Please request a new code."
	case errors.Is(err, ErrResetCodeInvalid):
		return "Invalid reset code"
	case errors.Is(err, ErrResetTokenExpired):
		return "Reset link has expired. Please request a new one."
	case errors.Is(err, ErrUnknownProvider):
		return "Unsupported login provider"
	case errors.Is(err, ErrStorePartial):
		return "Signed out, but some local data could not be removed"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Msg
	}

	var tErr *transport.TransportError
	if errors.As(err, &tErr) {
		return "Network request failed"
	}

	if hasAPI && apiErr.Message != "" {
		return apiErr.Message
	}

	switch {
	case errors.Is(err, ErrLoginFailed):
		return "Login failed"
	case errors.Is(err, ErrSocialLoginFailed):
		return "Social login failed"
	case errors.Is(err, ErrRegistrationFailed):
		return "Registration failed"
	case errors.Is(err, ErrVerificationFailed):
		return "Verification failed"
	case errors.Is(err, ErrPasswordResetFailed):
		return "Password reset failed"
	case errors.Is(err, ErrProfileFetchFailed):
		return "Could not load profile"
	}

	return "Something went wrong"
}
