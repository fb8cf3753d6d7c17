package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostDecodesSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("missing content type")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing request id")
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "alice@example.com" {
			t.Errorf("body = %v", body)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"user_id": "u1"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var out struct {
		UserID string `json:"user_id"`
	}
	err := c.Post(context.Background(), "/auth/login/", map[string]string{"email": "alice@example.com"}, &out)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if out.UserID != "u1" {
		t.Fatalf("out = %+v", out)
	}
}

func TestPostReturnsAPIErrorOnRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials, try again",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Post(context.Background(), "/auth/login/", map[string]string{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T %v", err, err)
	}
	if apiErr.Code != CodeInvalidCredentials {
		t.Fatalf("code = %s", apiErr.Code)
	}
	if apiErr.Message != "Invalid credentials, try again" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.AttemptsRemaining != -1 {
		t.Fatalf("attempts = %d", apiErr.AttemptsRemaining)
	}
	if apiErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("status = %d", apiErr.HTTPStatus)
	}
}

func TestPostExtractsAttemptsRemaining(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":            false,
			"error":              "Invalid verification code",
			"attempts_remaining": 2,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Post(context.Background(), "/auth/verify-email/", map[string]string{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != CodeVerificationCodeInvalid {
		t.Fatalf("code = %s", apiErr.Code)
	}
	if apiErr.AttemptsRemaining != 2 {
		t.Fatalf("attempts = %d", apiErr.AttemptsRemaining)
	}
}

func TestTransportErrorOnConnectionFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	err := c.Get(context.Background(), "/user/profile/", nil)
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %T %v", err, err)
	}
	if tErr.Op != "get" {
		t.Fatalf("op = %q", tErr.Op)
	}
}

func TestTransportErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Post(context.Background(), "/auth/login/", map[string]string{}, nil)
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError for non-JSON body, got %v", err)
	}
}

func TestAuthTokenHeaderAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithAuthToken(func() string { return "tok-1" }))

	if err := c.Get(context.Background(), "/user/profile/", nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
}

func TestClassifySubstringFallback(t *testing.T) {
	cases := []struct {
		message string
		want    ErrorCode
	}{
		{"Invalid credentials provided", CodeInvalidCredentials},
		{"invalid-credential", CodeInvalidCredentials},
		{"Invalid email format", CodeInvalidEmail},
		{"Email is not verified", CodeEmailNotVerified},
		{"User with this email already exists", CodeEmailExists},
		{"Too many failed attempts", CodeVerificationAttemptsExceeded},
		{"Invalid verification code", CodeVerificationCodeInvalid},
		{"Invalid reset code", CodeResetCodeInvalid},
		{"Token has expired", CodeResetTokenExpired},
		{"something else entirely", CodeUnknown},
	}

	for _, tc := range cases {
		if got := classify("", tc.message); got != tc.want {
			t.Errorf("classify(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestClassifyExplicitCodeWins(t *testing.T) {
	if got := classify("email_exists", "unrelated prose"); got != CodeEmailExists {
		t.Fatalf("classify = %s", got)
	}
}

func TestDataOnlyResponseTreatedAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"user_id": "u1"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var out struct {
		UserID string `json:"user_id"`
	}
	if err := c.Get(context.Background(), "/user/profile/", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.UserID != "u1" {
		t.Fatalf("out = %+v", out)
	}
}
