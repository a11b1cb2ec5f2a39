package authtoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields this client reads out of its bearer token. They are
// parsed without signature verification: the client does not hold the
// signing secret, and the backend remains the only authority on whether the
// token is accepted. Use them for display and diagnostics only.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

type rawClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Peek decodes the token's claims without verifying the signature.
func Peek(token string) (*Claims, error) {
	parser := jwt.NewParser()
	var raw rawClaims
	if _, _, err := parser.ParseUnverified(token, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims := &Claims{
		Subject: raw.Subject,
		Email:   raw.Email,
	}
	if raw.ExpiresAt != nil {
		claims.ExpiresAt = raw.ExpiresAt.Time
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
