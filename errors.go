package authcore

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects an
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail is returned when the backend rejects the email format.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrEmailNotVerified is returned when login is blocked pending email
	// verification. Callers branch on this to route into the verify flow.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrEmailExists is returned when registration hits an existing account.
	ErrEmailExists = errors.New("email already in use")
	// ErrVerificationCodeInvalid is returned when the 6-digit email
	// verification code is rejected.
	ErrVerificationCodeInvalid = errors.New("invalid verification code")
	// ErrVerificationAttempts is returned when the verification challenge has
	// been invalidated by too many failed attempts.
	ErrVerificationAttempts = errors.New("verification attempts exceeded")
	// ErrResetCodeInvalid is returned when the emailed password-reset code is
	// rejected by the backend.
	ErrResetCodeInvalid = errors.New("invalid password reset code")
	// ErrResetTokenExpired is returned when the (uidb64, reset_token) pair has
	// passed its server-side TTL. Expiry is only ever detected this way; no
	// local timer is kept.
	ErrResetTokenExpired = errors.New("password reset token expired")
	// ErrUnknownProvider is returned by social login for providers other than
	// google and apple, before any network call.
	ErrUnknownProvider = errors.New("unknown social login provider")
	// ErrTransport is returned when the HTTP client fails at the network
	// level. The underlying *transport.TransportError stays in the chain.
	ErrTransport = errors.New("transport failure")
	// ErrStorePartial is returned by Logout when one or more durable keys
	// could not be deleted. In-memory state is cleared regardless; treat this
	// as a warning, not a failed logout.
	ErrStorePartial = errors.New("secure store partially cleared")
	// ErrManagerNotReady is returned when a Manager is used before Build
	// wired its dependencies.
	ErrManagerNotReady = errors.New("manager not initialized")

	// ErrLoginFailed is the generic login fallback when the backend supplies
	// no usable message.
	ErrLoginFailed = errors.New("login failed")
	// ErrSocialLoginFailed is the generic social-login fallback.
	ErrSocialLoginFailed = errors.New("social login failed")
	// ErrRegistrationFailed is the generic registration fallback.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrVerificationFailed is the generic email-verification fallback.
	ErrVerificationFailed = errors.New("email verification failed")
	// ErrPasswordResetFailed is the generic fallback for all three password
	// reset steps.
	ErrPasswordResetFailed = errors.New("password reset failed")
	// ErrProfileFetchFailed is the generic profile-refresh fallback.
	ErrProfileFetchFailed = errors.New("profile fetch failed")
)

// ValidationError reports locally rejected input. It is produced before any
// network call and carries the fixed message the UI shows.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Is reports whether target is [ErrValidation].
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}
