package domain

import (
	"context"
	"fmt"
	"strings"
)

// Role is an application role carried on an Identity.
type Role string

const (
	RoleOrganiser Role = "organiser"
	RoleStartup   Role = "startup"
	RoleInvestor  Role = "investor"
)

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(s))) {
	case RoleOrganiser:
		return RoleOrganiser, nil
	case RoleStartup:
		return RoleStartup, nil
	case RoleInvestor:
		return RoleInvestor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the authenticated user as returned by the backend.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Credential is the opaque bearer token paired with an Identity.
type Credential string

// Session is the persisted pair of Identity and Credential. The two are
// stored and cleared together, never independently.
type Session struct {
	Identity *Identity  `json:"user"`
	Token    Credential `json:"token"`
}

// AuthResult is what the auth endpoints return on success.
type AuthResult struct {
	Token Credential `json:"access_token"`
	User  *Identity  `json:"user"`
}

// SessionStorage persists a Session across process restarts. Load returns
// (nil, nil) when no session is stored.
type SessionStorage interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

// SessionService holds the active session and exchanges credentials with the
// backend. Restore must complete before any gate decision is evaluated.
type SessionService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, email, password string, role Role, name string) (*Identity, error)
	Logout(ctx context.Context)
	Current() *Identity
	Ready() bool
	// Token feeds the gateway's Authorization header; empty when logged out.
	Token() Credential
}
