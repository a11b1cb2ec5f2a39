package domain

import "context"

// AccessRequest is an investor's ask to view an event's roster. There is no
// persisted rejected state distinct from unrequested: rejection just leaves
// approved=false.
type AccessRequest struct {
	EventName     string `json:"event_name"`
	InvestorEmail string `json:"investor_email"`
	Approved      bool   `json:"approved"`
}

// AccessState is the investor's derived standing for one event. The backend
// exposes no direct status query; the state is inferred on every load by
// attempting the gated roster read. A denial cannot distinguish "requested
// but pending" from "never requested", so the derivation takes a hint from
// the viewer's own actions in this process lifetime.
type AccessState int

const (
	AccessNone AccessState = iota
	AccessRequested
	AccessApproved
)

func (s AccessState) String() string {
	switch s {
	case AccessRequested:
		return "requested"
	case AccessApproved:
		return "approved"
	default:
		return "none"
	}
}

// EventView is the role-specific detail view of one event, re-derived from
// scratch on every load.
type EventView struct {
	Event *Event

	// startup viewer
	OwnEnrollment *Enrollment

	// organiser viewer (owner only)
	Enrollments    []*Enrollment
	AccessRequests []*AccessRequest

	// investor viewer
	Access AccessState
	Roster []*Enrollment
}

// WorkflowService is the event access workflow: view assembly plus every
// mutating action the detail views expose. Mutations never update local
// state; callers refetch the view afterwards.
type WorkflowService interface {
	FindEvent(ctx context.Context, name string) (*Event, error)
	EventView(ctx context.Context, viewer *Identity, name string, requestedHint bool) (*EventView, error)
	CreateEvent(ctx context.Context, draft *EventDraft) error
	CloseEvent(ctx context.Context, eventName string) error
	Enroll(ctx context.Context, draft *EnrollmentDraft) error
	RequestAccess(ctx context.Context, eventName string) error
	ApproveAccess(ctx context.Context, eventName, investorEmail string, approve bool) error
	Shortlist(ctx context.Context, eventName, startupEmail string) error
}
