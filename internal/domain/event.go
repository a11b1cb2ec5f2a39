package domain

import "context"

// Event statuses. An event only ever moves upcoming -> closed.
const (
	EventStatusUpcoming = "upcoming"
	EventStatusClosed   = "closed"
)

// Event represents a pitch event. Name is the human-readable key the backend
// uses everywhere; there is no separate id.
type Event struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	EventDatetime  string `json:"event_datetime"`
	Terms          string `json:"terms_and_conditions"`
	Status         string `json:"status"`
	OrganiserEmail string `json:"organiser_email"`
}

// IsUpcoming reports whether the event is still open for enrollment.
func (e *Event) IsUpcoming() bool { return e.Status == EventStatusUpcoming }

// IsClosed reports whether the event has been closed by its organiser.
func (e *Event) IsClosed() bool { return e.Status == EventStatusClosed }

// OwnedBy reports whether the given organiser email owns this event.
func (e *Event) OwnedBy(email string) bool { return e.OrganiserEmail == email }

// EventDraft is the organiser's input for creating an event.
type EventDraft struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	EventDatetime string `json:"event_datetime"`
	Terms         string `json:"terms_and_conditions"`
}

// EventSummary is an event annotated with viewer-specific listing state,
// e.g. the startup's own enrollment status on its dashboard.
type EventSummary struct {
	Event            *Event
	EnrollmentStatus string // empty when the viewer has no enrollment
}

// DashboardService lists events the way each role's dashboard does. Every
// call refetches from the backend; nothing is cached between calls.
type DashboardService interface {
	OrganiserEvents(ctx context.Context) ([]*Event, error)
	StartupEvents(ctx context.Context) ([]*EventSummary, error)
	InvestorEvents(ctx context.Context) ([]*Event, error)
}
