package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return s
}

func TestPeekReadsClaimsWithoutVerification(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s := signedToken(t, jwt.MapClaims{
		"sub":     "u1",
		"user_id": "u1",
		"email":   "alice@example.com",
		"exp":     exp.Unix(),
	})

	c, err := Peek(s)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if c.UserID != "u1" || c.Email != "alice@example.com" {
		t.Fatalf("claims = %+v", c)
	}
	if !c.ExpiresAt.Equal(exp) {
		t.Fatalf("exp = %v, want %v", c.ExpiresAt, exp)
	}
}

func TestPeekIgnoresSignature(t *testing.T) {
	s := signedToken(t, jwt.MapClaims{"sub": "u1"})

	// Corrupt the signature; Peek must still decode the claims.
	tampered := s[:len(s)-4] + "AAAA"
	c, err := Peek(tampered)
	if err != nil {
		t.Fatalf("Peek failed on tampered signature: %v", err)
	}
	if c.Subject != "u1" {
		t.Fatalf("subject = %q", c.Subject)
	}
}

func TestPeekMalformed(t *testing.T) {
	if _, err := Peek("not-a-jwt"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestExpiresWithin(t *testing.T) {
	soon := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(30 * time.Second).Unix()})
	if !ExpiresWithin(soon, time.Minute) {
		t.Fatal("expected token expiring in 30s to report true for 1m window")
	}
	if ExpiresWithin(soon, time.Second) {
		t.Fatal("expected token expiring in 30s to report false for 1s window")
	}

	noExp := signedToken(t, jwt.MapClaims{"sub": "u1"})
	if ExpiresWithin(noExp, time.Hour) {
		t.Fatal("token without exp must report false")
	}
}
