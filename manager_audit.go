package authcore

import (
	"context"
	"errors"
)

const (
	auditEventLoginSuccess              = "login_success"
	auditEventLoginFailure              = "login_failure"
	auditEventSocialLoginSuccess        = "social_login_success"
	auditEventSocialLoginFailure        = "social_login_failure"
	auditEventRegisterSuccess           = "register_success"
	auditEventRegisterFailure           = "register_failure"
	auditEventEmailVerificationConfirm  = "email_verification_confirm"
	auditEventVerificationCodeResent    = "verification_code_resent"
	auditEventPasswordResetRequest      = "password_reset_request"
	auditEventPasswordResetCodeVerify   = "password_reset_code_verify"
	auditEventPasswordResetComplete     = "password_reset_complete"
	auditEventLogout                    = "logout"
	auditEventRehydrate                 = "rehydrate"
	auditEventProfileFetch              = "profile_fetch"
	auditEventOnboardingCompleted       = "onboarding_completed"
	auditEventOnboardingReset           = "onboarding_reset"
)

// AuditErrorCode defines a public type used by authcore APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredentials  AuditErrorCode = "invalid_credentials"
	auditErrInvalidEmail        AuditErrorCode = "invalid_email"
	auditErrEmailNotVerified    AuditErrorCode = "email_not_verified"
	auditErrDuplicate           AuditErrorCode = "duplicate"
	auditErrCodeInvalid         AuditErrorCode = "code_invalid"
	auditErrAttemptsExceeded    AuditErrorCode = "attempts_exceeded"
	auditErrResetTokenExpired   AuditErrorCode = "reset_token_expired"
	auditErrUnknownProvider     AuditErrorCode = "unknown_provider"
	auditErrTransport           AuditErrorCode = "transport_failure"
	auditErrStorePartial        AuditErrorCode = "store_partial_clear"
	auditErrValidation          AuditErrorCode = "validation_failed"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (m *Manager) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if m == nil || m.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	// Device id, app version, and timestamp are stamped by the dispatcher.
	event := AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	m.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrInvalidEmail):
		return auditErrInvalidEmail
	case errors.Is(err, ErrEmailNotVerified):
		return auditErrEmailNotVerified
	case errors.Is(err, ErrEmailExists):
		return auditErrDuplicate
	case errors.Is(err, ErrVerificationCodeInvalid),
		errors.Is(err, ErrResetCodeInvalid):
		return auditErrCodeInvalid
	case errors.Is(err, ErrVerificationAttempts):
		return auditErrAttemptsExceeded
	case errors.Is(err, ErrResetTokenExpired):
		return auditErrResetTokenExpired
	case errors.Is(err, ErrUnknownProvider):
		return auditErrUnknownProvider
	case errors.Is(err, ErrTransport):
		return auditErrTransport
	case errors.Is(err, ErrStorePartial):
		return auditErrStorePartial
	case errors.Is(err, ErrValidation):
		return auditErrValidation
	default:
		return auditErrInternal
	}
}
