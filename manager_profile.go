package authcore

import (
	"context"
	"log"

	"github.com/bazr-app/authcore/session"
)

// FetchProfile describes the fetchprofile operation and its observable behavior.
//
// FetchProfile may return an error when input validation, dependency calls, or security checks fail.
// FetchProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) FetchProfile(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}

	snap := m.state.Snapshot()
	if !snap.IsAuthenticated {
		return validationErr("Not signed in")
	}

	_, err := m.do("fetch_profile", snap.User.ID, func() (any, error) {
		return nil, m.fetchProfileInternal(ctx, snap)
	})
	return err
}

func (m *Manager) fetchProfileInternal(ctx context.Context, snap session.Snapshot) error {
	var payload loginPayload
	if err := m.transport.Get(ctx, m.config.Endpoints.Profile, &payload); err != nil {
		mapped := m.classifyTransportErr(err, ErrProfileFetchFailed)
		m.metricInc(MetricProfileFetchFailure)
		m.emitAudit(ctx, auditEventProfileFetch, false, snap.User.ID, mapped, nil)
		return mapped
	}

	// The profile endpoint returns user fields only. Tokens stay as they
	// were; merge the refreshed identity over the current session.
	user := session.User{
		ID:          payload.UserID,
		Email:       payload.Email,
		Username:    payload.Username,
		FullName:    payload.FullName,
		PhoneNumber: payload.PhoneNumber,
		Image:       payload.Image,
	}
	if user.ID == "" {
		user.ID = snap.User.ID
	}
	m.state.SetSession(user, snap.AccessToken, snap.RefreshToken)

	rec := sessionRecord{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		Image:        user.Image,
	}
	if err := m.persistSession(ctx, rec); err != nil {
		log.Print("authcore: profile persist failed")
	}

	m.metricInc(MetricProfileFetchSuccess)
	m.emitAudit(ctx, auditEventProfileFetch, true, user.ID, nil, nil)

	return nil
}

// AccessToken returns the current in-memory access token, or "" when signed
// out.
func (m *Manager) AccessToken() string {
	if m == nil || m.state == nil {
		return ""
	}
	return m.state.Snapshot().AccessToken
}
