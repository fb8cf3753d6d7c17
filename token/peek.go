package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when the token cannot be parsed at all.
var ErrMalformed = errors.New("token: malformed")

// Claims is the unverified claim subset the client cares about.
type Claims struct {
	Subject   string
	UserID    string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type peekClaims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Peek decodes tokenStr without signature verification. The result must
// never gate access decisions; the backend rejects bad tokens server-side.
func Peek(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser()

	var pc peekClaims
	if _, _, err := parser.ParseUnverified(tokenStr, &pc); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}

	c := &Claims{
		Subject: pc.Subject,
		UserID:  pc.UserID,
		Email:   pc.Email,
	}
	if pc.ExpiresAt != nil {
		c.ExpiresAt = pc.ExpiresAt.Time
	}
	if pc.IssuedAt != nil {
		c.IssuedAt = pc.IssuedAt.Time
	}

	return c, nil
}

// ExpiresWithin reports whether the token's exp claim falls inside d from
// now. Tokens without an exp claim report false.
func ExpiresWithin(tokenStr string, d time.Duration) bool {
	c, err := Peek(tokenStr)
	if err != nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(c.ExpiresAt) <= d
}
