package services

import "launchgate/internal/domain"

// Decision is the access gate's verdict for one route entry.
type Decision int

const (
	// DecisionLoading means the session restore has not completed; render
	// nothing conclusive and do not redirect.
	DecisionLoading Decision = iota
	// DecisionLogin means no identity is present; send the user to login.
	DecisionLogin
	// DecisionUnauthorized means the identity's role is not permitted here.
	DecisionUnauthorized
	// DecisionAllow lets the guarded content render.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionLogin:
		return "login"
	case DecisionUnauthorized:
		return "unauthorized"
	default:
		return "allow"
	}
}

// Gate decides whether the current identity may enter a route restricted to
// the given roles. It is a pure function of its inputs; navigation is the
// caller's job.
func Gate(ready bool, identity *domain.Identity, allowed ...domain.Role) Decision {
	if !ready {
		return DecisionLoading
	}
	if identity == nil {
		return DecisionLogin
	}
	for _, role := range allowed {
		if identity.Role == role {
			return DecisionAllow
		}
	}
	return DecisionUnauthorized
}
