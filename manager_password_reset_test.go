package authcore

import (
	"context"
	"errors"
	"testing"

	"github.com/bazr-app/authcore/transport"
)

func TestPasswordResetFullFlow(t *testing.T) {
	cfg := DefaultConfig()
	ft := newFakeTransport()
	ft.handle(cfg.Endpoints.ForgotPassword, func(any) (any, error) {
		return nil, nil
	})
	ft.handle(cfg.Endpoints.VerifyResetCode, func(any) (any, error) {
		return map[string]any{
			"uidb64":      "dXNlcjE",
			"reset_token": "tok-abc",
			"expires_in":  900,
		}, nil
	})
	ft.handle(cfg.Endpoints.ResetComplete, func(payload any) (any, error) {
		body, ok := payload.(map[string]string)
		if !ok {
			return nil, errors.New("unexpected payload shape")
		}
		if body["uidb64"] != "dXNlcjE" || body["token"] != "tok-abc" {
			return nil, apiErr(transport.CodeResetTokenExpired, "Token is not valid", -1)
		}
		return nil, nil
	})

	m, _, _ := newTestManager(t, ft)
	ctx := context.Background()

	if err := m.ForgotPassword(ctx, "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}

	cred, err := m.VerifyPasswordResetCode(ctx, "alice@example.com", "654321")
	if err != nil {
		t.Fatalf("VerifyPasswordResetCode failed: %v", err)
	}
	if cred.UIDB64 != "dXNlcjE" || cred.ResetToken != "tok-abc" || cred.ExpiresIn != 900 {
		t.Fatalf("unexpected credential: %+v", cred)
	}

	if err := m.ResetPasswordComplete(ctx, cred, "new-password-1"); err != nil {
		t.Fatalf("ResetPasswordComplete failed: %v", err)
	}

	counters := m.MetricsSnapshot().Counters
	if counters[MetricPasswordResetRequest] != 1 ||
		counters[MetricPasswordResetCodeVerified] != 1 ||
		counters[MetricPasswordResetCompleteSuccess] != 1 {
		t.Fatalf("unexpected counters: %v", counters)
	}
}

func TestVerifyPasswordResetCodeRejected(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.VerifyResetCode, func(any) (any, error) {
		return nil, apiErr(transport.CodeResetCodeInvalid, "Invalid reset code", -1)
	})

	m, _, _ := newTestManager(t, ft)

	_, err := m.VerifyPasswordResetCode(context.Background(), "alice@example.com", "111111")
	if !errors.Is(err, ErrResetCodeInvalid) {
		t.Fatalf("expected ErrResetCodeInvalid, got %v", err)
	}
	if got := UserMessage(err); got != "Invalid reset code" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestVerifyPasswordResetCodeIncompleteCredential(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.VerifyResetCode, func(any) (any, error) {
		return map[string]any{"uidb64": "dXNlcjE"}, nil
	})

	m, _, _ := newTestManager(t, ft)

	_, err := m.VerifyPasswordResetCode(context.Background(), "alice@example.com", "654321")
	if !errors.Is(err, ErrPasswordResetFailed) {
		t.Fatalf("expected ErrPasswordResetFailed, got %v", err)
	}
}

func TestResetPasswordCompleteExpiredToken(t *testing.T) {
	ft := newFakeTransport()
	ft.handle(DefaultConfig().Endpoints.ResetComplete, func(any) (any, error) {
		return nil, apiErr(transport.CodeResetTokenExpired, "Token has expired", -1)
	})

	m, _, _ := newTestManager(t, ft)

	cred := &ResetCredential{UIDB64: "dXNlcjE", ResetToken: "stale", ExpiresIn: 900}
	err := m.ResetPasswordComplete(context.Background(), cred, "new-password-1")
	if !errors.Is(err, ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}
	if got := UserMessage(err); got != "Reset link has expired. Please request a new one." {
		t.Fatalf("UserMessage = %q", got)
	}
	if got := m.MetricsSnapshot().Counters[MetricPasswordResetTokenExpired]; got != 1 {
		t.Fatalf("expired counter = %d", got)
	}
}

func TestResetPasswordCompleteRequiresCredential(t *testing.T) {
	ft := newFakeTransport()
	m, _, _ := newTestManager(t, ft)
	ctx := context.Background()

	if err := m.ResetPasswordComplete(ctx, nil, "new-password-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for nil credential, got %v", err)
	}
	if err := m.ResetPasswordComplete(ctx, &ResetCredential{}, "new-password-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty credential, got %v", err)
	}
	if got := ft.callCount(DefaultConfig().Endpoints.ResetComplete); got != 0 {
		t.Fatalf("local validation must not hit the network, %d calls", got)
	}
}
