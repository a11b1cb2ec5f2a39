package domain

// Enrollment statuses. submitted -> shortlisted is the only transition and
// it is organiser-initiated.
const (
	EnrollmentStatusSubmitted   = "submitted"
	EnrollmentStatusShortlisted = "shortlisted"
)

// Enrollment is a startup's idea submitted to an event. The backend enforces
// at most one per (event, startup) pair. The gated roster the investor reads
// has the same shape.
type Enrollment struct {
	EventName       string `json:"event_name"`
	StartupEmail    string `json:"startup_email"`
	IdeaName        string `json:"idea_name"`
	IdeaDescription string `json:"idea_description"`
	TeamDetails     string `json:"team_details"`
	Status          string `json:"status"`
}

// IsShortlisted reports whether the organiser has shortlisted this idea.
func (e *Enrollment) IsShortlisted() bool { return e.Status == EnrollmentStatusShortlisted }

// EnrollmentDraft is the startup's input for enrolling in an event.
type EnrollmentDraft struct {
	EventName       string `json:"event_name"`
	IdeaName        string `json:"idea_name"`
	IdeaDescription string `json:"idea_description"`
	TeamDetails     string `json:"team_details"`
}
