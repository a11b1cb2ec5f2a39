package domain

import "context"

// Gateway is the remote event-management API. One method per endpoint; paths
// and verbs are the backend's contract and must not drift.
type Gateway interface {
	// POST /auth/login
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// POST /auth/register
	Register(ctx context.Context, email, password string, role Role, name string) (*AuthResult, error)

	// GET /events
	ListEvents(ctx context.Context) ([]*Event, error)
	// GET /events/my
	ListMyEvents(ctx context.Context) ([]*Event, error)
	// POST /events
	CreateEvent(ctx context.Context, draft *EventDraft) error
	// POST /events/update-status
	UpdateEventStatus(ctx context.Context, eventName, status string) error

	// GET /enrollments/my
	ListMyEnrollments(ctx context.Context) ([]*Enrollment, error)
	// POST /enrollments
	CreateEnrollment(ctx context.Context, draft *EnrollmentDraft) error
	// GET /events/{name}/enrollments
	ListEventEnrollments(ctx context.Context, eventName string) ([]*Enrollment, error)

	// POST /investors/request-access
	RequestAccess(ctx context.Context, eventName string) error
	// GET /investors/event/{name}; 200 means approved, anything else denied
	GatedRoster(ctx context.Context, eventName string) ([]*Enrollment, error)
	// GET /investors/requests/{name}
	ListAccessRequests(ctx context.Context, eventName string) ([]*AccessRequest, error)
	// POST /investors/approve
	ApproveAccess(ctx context.Context, eventName, investorEmail string, approve bool) error
	// POST /investors/shortlist
	Shortlist(ctx context.Context, eventName, startupEmail string) error
}
