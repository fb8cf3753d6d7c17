package authcore

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/bazr-app/authcore/securestore"
	"github.com/bazr-app/authcore/session"
	"github.com/bazr-app/authcore/transport"
)

// Manager defines a public type used by authcore APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config    Config
	transport Transport
	store     securestore.Store
	state     *session.State
	audit     *auditDispatcher
	metrics   *Metrics
	flight    singleflight.Group
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.audit != nil {
		m.audit.Close()
	}
}

// State returns the session state container the Manager mutates. UI layers
// subscribe to it for change notifications.
func (m *Manager) State() *session.State {
	if m == nil {
		return nil
	}
	return m.state
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) AuditDropped() uint64 {
	if m == nil || m.audit == nil {
		return 0
	}
	return m.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return m.metrics.Snapshot()
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

func (m *Manager) ready() error {
	if m == nil || m.transport == nil || m.store == nil || m.state == nil {
		return ErrManagerNotReady
	}
	return nil
}

// do coalesces concurrent duplicate submissions of the same operation for the
// same identifier. The key is op-scoped so a login for one account never
// blocks a password reset for another.
func (m *Manager) do(op, identifier string, fn func() (any, error)) (any, error) {
	if !m.config.SingleFlight.Enabled {
		return fn()
	}
	v, err, _ := m.flight.Do(op+":"+identifier, fn)
	return v, err
}

// sessionRecord is the composite JSON value stored under StoreKeyUserData.
// Rehydrate treats it as the atomic source of truth; the individually keyed
// mirrors are convenience copies and never consulted when the record exists.
type sessionRecord struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FullName     string `json:"full_name,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Image        string `json:"image,omitempty"`
}

// persistSession writes the composite record first, then mirrors the
// individual keys. Mirror failures are logged and do not fail the flow: the
// record alone is sufficient for rehydration.
func (m *Manager) persistSession(ctx context.Context, rec sessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, StoreKeyUserData, string(data)); err != nil {
		m.metricInc(MetricStoreWriteFailure)
		return err
	}

	mirrors := map[string]string{
		StoreKeyAccessToken:  rec.AccessToken,
		StoreKeyRefreshToken: rec.RefreshToken,
		StoreKeyEmail:        rec.Email,
		StoreKeyUsername:     rec.Username,
		StoreKeyUserID:       rec.UserID,
	}
	for key, value := range mirrors {
		if err := m.store.Set(ctx, key, value); err != nil {
			m.metricInc(MetricStoreWriteFailure)
			log.Print("authcore: session mirror write failed for " + key)
		}
	}
	return nil
}

// clearDurableKeys deletes every session key. Missing keys are not errors;
// anything else is collected so the caller can report a partial clear.
func (m *Manager) clearDurableKeys(ctx context.Context) error {
	var failed []string
	for _, key := range durableKeys {
		if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, securestore.ErrNotFound) {
			failed = append(failed, key)
		}
	}
	if len(failed) > 0 {
		return flowError(ErrStorePartial, errors.New("keys not cleared: "+joinKeys(failed)))
	}
	return nil
}

func joinKeys(keys []string) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k
	}
	return out
}

// classifyTransportErr maps a raw transport error onto the flow's sentinel
// taxonomy. API errors are matched by their normalized code first, leaving
// unrecognized backend rejections chained under the flow fallback.
// Network-level failures are counted here so every flow shares one tally.
func (m *Manager) classifyTransportErr(err error, fallback error) error {
	if err == nil {
		return nil
	}

	var tErr *transport.TransportError
	if errors.As(err, &tErr) {
		m.metricInc(MetricTransportFailure)
		return flowError(ErrTransport, err)
	}

	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case transport.CodeInvalidCredentials:
			return flowError(ErrInvalidCredentials, err)
		case transport.CodeInvalidEmail:
			return flowError(ErrInvalidEmail, err)
		case transport.CodeEmailNotVerified:
			return flowError(ErrEmailNotVerified, err)
		case transport.CodeEmailExists:
			return flowError(ErrEmailExists, err)
		case transport.CodeVerificationCodeInvalid:
			return flowError(ErrVerificationCodeInvalid, err)
		case transport.CodeVerificationAttemptsExceeded:
			return flowError(ErrVerificationAttempts, err)
		case transport.CodeResetCodeInvalid:
			return flowError(ErrResetCodeInvalid, err)
		case transport.CodeResetTokenExpired:
			return flowError(ErrResetTokenExpired, err)
		}
	}

	return flowError(fallback, err)
}
