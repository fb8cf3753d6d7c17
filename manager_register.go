package authcore

import (
	"context"
	"errors"
	"log"

	"github.com/bazr-app/authcore/internal"
)

// RegisterParams carries the registration form. Password confirmation is
// checked locally before any network call.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// On success it returns the server's confirmation message (typically a
// "check your email" prompt) for the UI to display.
func (m *Manager) Register(ctx context.Context, params RegisterParams) (string, error) {
	if err := m.ready(); err != nil {
		return "", err
	}

	v, err := m.do("register", params.Email, func() (any, error) {
		return m.registerInternal(ctx, params)
	})
	if err != nil {
		return "", err
	}
	msg, _ := v.(string)
	return msg, nil
}

func (m *Manager) registerInternal(ctx context.Context, params RegisterParams) (string, error) {
	if params.Username == "" || params.Email == "" || params.Password == "" {
		m.metricInc(MetricRegisterFailure)
		return "", validationErr("All fields are required")
	}
	if !internal.IsEmail(params.Email) {
		m.metricInc(MetricRegisterFailure)
		return "", validationErr("Invalid Email")
	}
	if params.ConfirmPassword != "" && params.Password != params.ConfirmPassword {
		m.metricInc(MetricRegisterFailure)
		return "", validationErr("Passwords do not match")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	var payload registerPayload
	if err := m.transport.Post(ctx, m.config.Endpoints.Register, map[string]string{
		"username": params.Username,
		"email":    params.Email,
		"password": params.Password,
	}, &payload); err != nil {
		mapped := m.classifyTransportErr(err, ErrRegistrationFailed)
		m.metricInc(MetricRegisterFailure)
		if errors.Is(mapped, ErrEmailExists) {
			m.metricInc(MetricRegisterDuplicate)
		}
		m.emitAudit(ctx, auditEventRegisterFailure, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": params.Email,
			}
		})
		return "", mapped
	}

	// Registration never authenticates. The account stays pending until the
	// emailed code is confirmed, after which the user logs in normally.
	m.state.SetNewUser(true)
	if err := m.store.Set(ctx, StoreKeyIsNewUser, "true"); err != nil {
		m.metricInc(MetricStoreWriteFailure)
		log.Print("authcore: new-user flag write failed")
	}

	m.metricInc(MetricRegisterSuccess)
	m.emitAudit(ctx, auditEventRegisterSuccess, true, "", nil, func() map[string]string {
		return map[string]string{
			"email": params.Email,
		}
	})

	return payload.Message, nil
}

// VerifyEmail describes the verifyemail operation and its observable behavior.
//
// VerifyEmail may return an error when input validation, dependency calls, or security checks fail.
// VerifyEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) VerifyEmail(ctx context.Context, email, code string) error {
	if err := m.ready(); err != nil {
		return err
	}

	_, err := m.do("verify_email", email, func() (any, error) {
		return nil, m.verifyEmailInternal(ctx, email, code)
	})
	return err
}

func (m *Manager) verifyEmailInternal(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		m.metricInc(MetricEmailVerificationFailure)
		return validationErr("Email and verification code are required")
	}
	if !internal.IsNumericCode(code, 6) {
		m.metricInc(MetricEmailVerificationFailure)
		return validationErr("Verification code must be 6 digits")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	if err := m.transport.Post(ctx, m.config.Endpoints.VerifyEmail, map[string]string{
		"email": email,
		"code":  code,
	}, nil); err != nil {
		mapped := m.classifyTransportErr(err, ErrVerificationFailed)
		m.metricInc(MetricEmailVerificationFailure)
		if errors.Is(mapped, ErrVerificationAttempts) {
			m.metricInc(MetricEmailVerificationAttemptsExceeded)
		}
		m.emitAudit(ctx, auditEventEmailVerificationConfirm, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return mapped
	}

	m.metricInc(MetricEmailVerificationSuccess)
	m.emitAudit(ctx, auditEventEmailVerificationConfirm, true, "", nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return nil
}

// ResendVerificationCode describes the resendverificationcode operation and its observable behavior.
//
// ResendVerificationCode may return an error when input validation, dependency calls, or security checks fail.
// ResendVerificationCode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) ResendVerificationCode(ctx context.Context, email string) error {
	if err := m.ready(); err != nil {
		return err
	}

	_, err := m.do("resend_code", email, func() (any, error) {
		return nil, m.resendCodeInternal(ctx, email)
	})
	return err
}

func (m *Manager) resendCodeInternal(ctx context.Context, email string) error {
	if email == "" {
		return validationErr("Email is required")
	}
	if !internal.IsEmail(email) {
		return validationErr("Invalid Email")
	}

	if err := m.transport.Post(ctx, m.config.Endpoints.ResendCode, map[string]string{
		"email": email,
	}, nil); err != nil {
		mapped := m.classifyTransportErr(err, ErrVerificationFailed)
		m.emitAudit(ctx, auditEventVerificationCodeResent, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return mapped
	}

	m.metricInc(MetricVerificationCodeResent)
	m.emitAudit(ctx, auditEventVerificationCodeResent, true, "", nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return nil
}
