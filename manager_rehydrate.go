package authcore

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/bazr-app/authcore/securestore"
	"github.com/bazr-app/authcore/session"
)

// Rehydrate restores a previous session from the secure store on app start.
// It never fails the launch: a missing or corrupt record just leaves the
// state signed out. The loading flag is lowered on every path so splash
// screens are guaranteed to resolve.
func (m *Manager) Rehydrate(ctx context.Context) {
	if m == nil || m.store == nil || m.state == nil {
		return
	}

	m.state.SetLoading(true)
	defer m.state.SetLoading(false)

	raw, err := m.store.Get(ctx, StoreKeyUserData)
	if err != nil {
		if !errors.Is(err, securestore.ErrNotFound) {
			log.Print("authcore: session record read failed")
		}
		m.metricInc(MetricRehydrateMiss)
		m.rehydrateFlags(ctx)
		m.emitAudit(ctx, auditEventRehydrate, false, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "no_record",
			}
		})
		return
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.AccessToken == "" {
		// Corrupt record: clear it so the next launch starts clean.
		if delErr := m.store.Delete(ctx, StoreKeyUserData); delErr != nil && !errors.Is(delErr, securestore.ErrNotFound) {
			log.Print("authcore: corrupt session record cleanup failed")
		}
		m.metricInc(MetricRehydrateMiss)
		m.rehydrateFlags(ctx)
		m.emitAudit(ctx, auditEventRehydrate, false, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "corrupt_record",
			}
		})
		return
	}

	m.state.SetSession(session.User{
		ID:          rec.UserID,
		Email:       rec.Email,
		Username:    rec.Username,
		FullName:    rec.FullName,
		PhoneNumber: rec.PhoneNumber,
		Image:       rec.Image,
	}, rec.AccessToken, rec.RefreshToken)
	m.rehydrateFlags(ctx)

	m.metricInc(MetricRehydrateHit)
	m.emitAudit(ctx, auditEventRehydrate, true, rec.UserID, nil, nil)
}

// rehydrateFlags restores the onboarding and new-user flags. Both default to
// false when unset or unreadable.
func (m *Manager) rehydrateFlags(ctx context.Context) {
	if v, err := m.store.Get(ctx, StoreKeyOnboarding); err == nil {
		m.state.SetOnboarded(v == "true")
	} else {
		m.state.SetOnboarded(false)
	}
	if v, err := m.store.Get(ctx, StoreKeyIsNewUser); err == nil {
		m.state.SetNewUser(v == "true")
	} else {
		m.state.SetNewUser(false)
	}
}
