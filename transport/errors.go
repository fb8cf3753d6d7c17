package transport

import (
	"fmt"
	"strings"
)

// ErrorCode is the normalized classification of a backend rejection.
type ErrorCode string

const (
	// CodeUnknown marks rejections that matched no known condition.
	CodeUnknown ErrorCode = "unknown"
	// CodeInvalidCredentials marks a rejected email/password pair.
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	// CodeInvalidEmail marks a rejected email format.
	CodeInvalidEmail ErrorCode = "invalid_email"
	// CodeEmailNotVerified marks a login blocked pending verification.
	CodeEmailNotVerified ErrorCode = "email_not_verified"
	// CodeEmailExists marks a duplicate registration.
	CodeEmailExists ErrorCode = "email_exists"
	// CodeVerificationCodeInvalid marks a rejected verification code.
	CodeVerificationCodeInvalid ErrorCode = "verification_code_invalid"
	// CodeVerificationAttemptsExceeded marks an exhausted verification challenge.
	CodeVerificationAttemptsExceeded ErrorCode = "verification_attempts_exceeded"
	// CodeResetCodeInvalid marks a rejected password reset code.
	CodeResetCodeInvalid ErrorCode = "reset_code_invalid"
	// CodeResetTokenExpired marks an expired reset credential.
	CodeResetTokenExpired ErrorCode = "reset_token_expired"
)

// APIError is a backend rejection: the request reached the server and the
// envelope reported failure. AttemptsRemaining is -1 when the body carried
// no count.
type APIError struct {
	Code              ErrorCode
	Message           string
	AttemptsRemaining int
	HTTPStatus        int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (http %d): %s", e.Code, e.HTTPStatus, e.Message)
}

// TransportError is a network-level failure: the request never produced a
// usable envelope. Op is "post" or "get".
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// explicit code strings the backend emits
var codeByWire = map[string]ErrorCode{
	"invalid_credentials":            CodeInvalidCredentials,
	"invalid_email":                  CodeInvalidEmail,
	"email_not_verified":             CodeEmailNotVerified,
	"email_exists":                   CodeEmailExists,
	"verification_code_invalid":      CodeVerificationCodeInvalid,
	"verification_attempts_exceeded": CodeVerificationAttemptsExceeded,
	"reset_code_invalid":             CodeResetCodeInvalid,
	"reset_token_expired":            CodeResetTokenExpired,
}

// classify resolves the normalized code for a rejection. The explicit wire
// code wins; otherwise the message is matched by substring, case-insensitive,
// so older backend builds with prose-only errors still classify.
func classify(wireCode, message string) ErrorCode {
	if code, ok := codeByWire[strings.ToLower(strings.TrimSpace(wireCode))]; ok {
		return code
	}

	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "invalid-credential"),
		strings.Contains(msg, "invalid credential"):
		return CodeInvalidCredentials
	case strings.Contains(msg, "invalid-email"),
		strings.Contains(msg, "invalid email"):
		return CodeInvalidEmail
	case strings.Contains(msg, "not verified"):
		return CodeEmailNotVerified
	case strings.Contains(msg, "already exists"),
		strings.Contains(msg, "already in use"),
		strings.Contains(msg, "already registered"):
		return CodeEmailExists
	case strings.Contains(msg, "too many") && strings.Contains(msg, "attempt"):
		return CodeVerificationAttemptsExceeded
	case strings.Contains(msg, "verification code"):
		return CodeVerificationCodeInvalid
	case strings.Contains(msg, "reset code"):
		return CodeResetCodeInvalid
	case strings.Contains(msg, "expired"):
		return CodeResetTokenExpired
	default:
		return CodeUnknown
	}
}
