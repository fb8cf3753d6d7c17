package authcore

import (
	"context"
	"log"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}

	userID := m.state.Snapshot().User.ID

	// In-memory state is cleared unconditionally. Whatever happens to the
	// store, the UI must land on the signed-out screen.
	m.state.Reset()

	err := m.clearDurableKeys(ctx)
	m.metricInc(MetricLogout)
	if err != nil {
		m.metricInc(MetricLogoutPartialClear)
	}
	m.emitAudit(ctx, auditEventLogout, err == nil, userID, err, nil)

	return err
}

// CompleteOnboarding describes the completeonboarding operation and its observable behavior.
//
// CompleteOnboarding may return an error when input validation, dependency calls, or security checks fail.
// CompleteOnboarding does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) CompleteOnboarding(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}

	m.state.SetOnboarded(true)
	m.state.SetNewUser(false)

	if err := m.store.Set(ctx, StoreKeyOnboarding, "true"); err != nil {
		m.metricInc(MetricStoreWriteFailure)
		log.Print("authcore: onboarding flag write failed")
		return err
	}
	if err := m.store.Set(ctx, StoreKeyIsNewUser, "false"); err != nil {
		m.metricInc(MetricStoreWriteFailure)
		log.Print("authcore: new-user flag write failed")
	}

	m.metricInc(MetricOnboardingCompleted)
	m.emitAudit(ctx, auditEventOnboardingCompleted, true, m.state.Snapshot().User.ID, nil, nil)

	return nil
}

// ResetOnboarding describes the resetonboarding operation and its observable behavior.
//
// ResetOnboarding mutates in-memory session state only. The durable flag is
// left untouched so a restart still skips onboarding; this exists for UI-only
// state resets that must not force a logout.
func (m *Manager) ResetOnboarding() {
	if m == nil || m.state == nil {
		return
	}

	m.state.SetOnboarded(false)

	m.emitAudit(context.Background(), auditEventOnboardingReset, true, m.state.Snapshot().User.ID, nil, nil)
}
