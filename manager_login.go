package authcore

import (
	"context"
	"time"

	"github.com/bazr-app/authcore/internal"
	"github.com/bazr-app/authcore/session"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.ready(); err != nil {
		return err
	}

	_, err := m.do("login", email, func() (any, error) {
		return nil, m.loginInternal(ctx, email, password)
	})
	return err
}

func (m *Manager) loginInternal(ctx context.Context, email, password string) error {
	if m.metrics != nil && m.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			m.metrics.Observe(MetricLoginLatency, time.Since(start))
		}()
	}

	if email == "" || password == "" {
		m.metricInc(MetricLoginFailure)
		return validationErr("Email and password are required")
	}
	if !internal.IsEmail(email) {
		m.metricInc(MetricLoginFailure)
		return validationErr("Invalid Email")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	var payload loginPayload
	if err := m.transport.Post(ctx, m.config.Endpoints.Login, map[string]string{
		"email":    email,
		"password": password,
	}, &payload); err != nil {
		mapped := m.classifyTransportErr(err, ErrLoginFailed)
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, auditEventLoginFailure, false, "", mapped, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return mapped
	}
	password = ""

	if err := m.establishSession(ctx, payload); err != nil {
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, auditEventLoginFailure, false, payload.UserID, err, func() map[string]string {
			return map[string]string{
				"email":  email,
				"reason": "persist_failed",
			}
		})
		return err
	}

	m.metricInc(MetricLoginSuccess)
	m.emitAudit(ctx, auditEventLoginSuccess, true, payload.UserID, nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return nil
}

// LoginWithSocial describes the loginwithsocial operation and its observable behavior.
//
// LoginWithSocial may return an error when input validation, dependency calls, or security checks fail.
// LoginWithSocial does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) LoginWithSocial(ctx context.Context, provider SocialProvider, providerToken string) (*SocialResult, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	v, err := m.do("social_login", string(provider), func() (any, error) {
		return m.socialLoginInternal(ctx, provider, providerToken)
	})
	if err != nil {
		return nil, err
	}
	res, _ := v.(*SocialResult)
	return res, nil
}

func (m *Manager) socialLoginInternal(ctx context.Context, provider SocialProvider, providerToken string) (*SocialResult, error) {
	var path string
	switch provider {
	case ProviderGoogle:
		path = m.config.Endpoints.SocialGoogle
	case ProviderApple:
		path = m.config.Endpoints.SocialApple
	default:
		m.metricInc(MetricSocialUnknownProvider)
		m.emitAudit(ctx, auditEventSocialLoginFailure, false, "", ErrUnknownProvider, func() map[string]string {
			return map[string]string{
				"provider": string(provider),
			}
		})
		return nil, ErrUnknownProvider
	}

	if providerToken == "" {
		m.metricInc(MetricSocialLoginFailure)
		return nil, validationErr("Provider token is required")
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	var payload loginPayload
	if err := m.transport.Post(ctx, path, map[string]string{
		"auth_token": providerToken,
	}, &payload); err != nil {
		mapped := m.classifyTransportErr(err, ErrSocialLoginFailed)
		m.metricInc(MetricSocialLoginFailure)
		m.emitAudit(ctx, auditEventSocialLoginFailure, false, "", mapped, func() map[string]string {
			return map[string]string{
				"provider": string(provider),
			}
		})
		return nil, mapped
	}

	if err := m.establishSession(ctx, payload); err != nil {
		m.metricInc(MetricSocialLoginFailure)
		m.emitAudit(ctx, auditEventSocialLoginFailure, false, payload.UserID, err, func() map[string]string {
			return map[string]string{
				"provider": string(provider),
				"reason":   "persist_failed",
			}
		})
		return nil, err
	}

	m.metricInc(MetricSocialLoginSuccess)
	m.emitAudit(ctx, auditEventSocialLoginSuccess, true, payload.UserID, nil, func() map[string]string {
		return map[string]string{
			"provider": string(provider),
		}
	})

	return &SocialResult{IsNewUser: m.state.Snapshot().IsNewUser}, nil
}

// establishSession persists the durable record and flips in-memory state, in
// that order. A store failure leaves state untouched so a signed-in UI never
// outlives its stored credentials.
func (m *Manager) establishSession(ctx context.Context, payload loginPayload) error {
	rec := sessionRecord{
		AccessToken:  payload.Tokens.Access,
		RefreshToken: payload.Tokens.Refresh,
		UserID:       payload.UserID,
		Email:        payload.Email,
		Username:     payload.Username,
		FullName:     payload.FullName,
		PhoneNumber:  payload.PhoneNumber,
		Image:        payload.Image,
	}
	if err := m.persistSession(ctx, rec); err != nil {
		return flowError(ErrLoginFailed, err)
	}

	m.state.SetSession(session.User{
		ID:          payload.UserID,
		Email:       payload.Email,
		Username:    payload.Username,
		FullName:    payload.FullName,
		PhoneNumber: payload.PhoneNumber,
		Image:       payload.Image,
	}, payload.Tokens.Access, payload.Tokens.Refresh)

	return nil
}
