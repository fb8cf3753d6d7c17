package authcore

import (
	"context"
	"errors"

	"github.com/bazr-app/authcore/internal"
)

// ForgotPassword describes the forgotpassword operation and its observable behavior.
//
// ForgotPassword may return an error when input validation, dependency calls, or security checks fail.
// ForgotPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if err := m.ready(); err != nil {
		return err
	}

	_, err := m.do("forgot_password", email, func() (any, error) {
		return nil, m.forgotPasswordInternal(ctx, email)
	})
	return err
}

func (m *Manager) forgotPasswordInternal(ctx context.Context, email string) error {
	if email == "" {
		return validationErr("Email is required")
	}
	if !internal.IsEmail(email) {
		return validationErr("Invalid Email")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	if err := m.transport.Post(ctx, m.config.Endpoints.ForgotPassword, map[string]string{
		"email": email,
	}, nil); err != nil {
		mapped := m.classifyTransportErr(err, ErrPasswordResetFailed)
		m.emitAudit(ctx, auditEventPasswordResetRequest, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return mapped
	}

	m.metricInc(MetricPasswordResetRequest)
	m.emitAudit(ctx, auditEventPasswordResetRequest, true, "", nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return nil
}

// VerifyPasswordResetCode describes the verifypasswordresetcode operation and its observable behavior.
//
// VerifyPasswordResetCode may return an error when input validation, dependency calls, or security checks fail.
// VerifyPasswordResetCode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) VerifyPasswordResetCode(ctx context.Context, email, code string) (*ResetCredential, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	v, err := m.do("verify_reset_code", email, func() (any, error) {
		return m.verifyResetCodeInternal(ctx, email, code)
	})
	if err != nil {
		return nil, err
	}
	cred, _ := v.(*ResetCredential)
	return cred, nil
}

func (m *Manager) verifyResetCodeInternal(ctx context.Context, email, code string) (*ResetCredential, error) {
	if email == "" || code == "" {
		return nil, validationErr("Email and reset code are required")
	}
	if !internal.IsNumericCode(code, 6) {
		return nil, validationErr("Reset code must be 6 digits")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	var cred ResetCredential
	if err := m.transport.Post(ctx, m.config.Endpoints.VerifyResetCode, map[string]string{
		"email": email,
		"code":  code,
	}, &cred); err != nil {
		mapped := m.classifyTransportErr(err, ErrPasswordResetFailed)
		if errors.Is(mapped, ErrResetCodeInvalid) {
			m.metricInc(MetricPasswordResetCodeRejected)
		}
		m.emitAudit(ctx, auditEventPasswordResetCodeVerify, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return nil, mapped
	}

	if cred.UIDB64 == "" || cred.ResetToken == "" {
		err := flowError(ErrPasswordResetFailed, errors.New("incomplete reset credential"))
		m.emitAudit(ctx, auditEventPasswordResetCodeVerify, false, "", err, func() map[string]string {
			return map[string]string{
				"email":  email,
				"reason": "incomplete_credential",
			}
		})
		return nil, err
	}

	m.metricInc(MetricPasswordResetCodeVerified)
	m.emitAudit(ctx, auditEventPasswordResetCodeVerify, true, "", nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return &cred, nil
}

// ResetPasswordComplete describes the resetpasswordcomplete operation and its observable behavior.
//
// ResetPasswordComplete may return an error when input validation, dependency calls, or security checks fail.
// ResetPasswordComplete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ResetPasswordComplete(ctx context.Context, cred *ResetCredential, newPassword string) error {
	if err := m.ready(); err != nil {
		return err
	}
	if cred == nil {
		return validationErr("Reset credential is required")
	}

	_, err := m.do("reset_complete", cred.UIDB64, func() (any, error) {
		return nil, m.resetCompleteInternal(ctx, cred, newPassword)
	})
	return err
}

func (m *Manager) resetCompleteInternal(ctx context.Context, cred *ResetCredential, newPassword string) error {
	if cred.UIDB64 == "" || cred.ResetToken == "" {
		return validationErr("Reset credential is incomplete")
	}
	if newPassword == "" {
		return validationErr("New password is required")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	if err := m.transport.Post(ctx, m.config.Endpoints.ResetComplete, map[string]string{
		"uidb64":   cred.UIDB64,
		"token":    cred.ResetToken,
		"password": newPassword,
	}, nil); err != nil {
		mapped := m.classifyTransportErr(err, ErrPasswordResetFailed)
		m.metricInc(MetricPasswordResetCompleteFailure)
		if errors.Is(mapped, ErrResetTokenExpired) {
			m.metricInc(MetricPasswordResetTokenExpired)
		}
		m.emitAudit(ctx, auditEventPasswordResetComplete, false, "", mapped, nil)
		return mapped
	}
	newPassword = ""

	m.metricInc(MetricPasswordResetCompleteSuccess)
	m.emitAudit(ctx, auditEventPasswordResetComplete, true, "", nil, nil)

	return nil
}
