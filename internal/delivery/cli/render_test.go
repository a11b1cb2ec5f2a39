package cli

import (
	"bytes"
	"testing"

	"launchgate/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFormatEventDatetime(t *testing.T) {
	assert.Equal(t, "January 1, 2025 at 10:00 AM", FormatEventDatetime("2025-01-01T10:00"))
	assert.Equal(t, "March 15, 2025 at 6:30 PM", FormatEventDatetime("2025-03-15T18:30:00"))
	// unparseable input falls back to the raw value
	assert.Equal(t, "soon", FormatEventDatetime("soon"))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "[UPCOMING]", StatusBadge(domain.EventStatusUpcoming))
	assert.Equal(t, "[SHORTLISTED]", StatusBadge(domain.EnrollmentStatusShortlisted))
}

func TestRenderEventCardNoImage(t *testing.T) {
	var buf bytes.Buffer
	RenderEventCard(&buf, &domain.Event{
		Name:          "DemoDay",
		Status:        domain.EventStatusUpcoming,
		EventDatetime: "2025-01-01T10:00",
	})
	out := buf.String()
	assert.Contains(t, out, "[UPCOMING] DemoDay")
	assert.Contains(t, out, "January 1, 2025")
	assert.Contains(t, out, "(no image)")
}

func TestRenderRosterEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderRoster(&buf, nil)
	assert.Contains(t, buf.String(), "No startups enrolled yet.")
}

func TestRenderInvestorAccessApprovedOpenEvent(t *testing.T) {
	var buf bytes.Buffer
	view := &domain.EventView{
		Event:  &domain.Event{Name: "DemoDay", Status: domain.EventStatusUpcoming},
		Access: domain.AccessApproved,
	}
	RenderInvestorAccess(&buf, view)
	assert.Contains(t, buf.String(), "visible after the event is closed")
}

func TestRenderInvestorAccessApprovedClosedEvent(t *testing.T) {
	var buf bytes.Buffer
	view := &domain.EventView{
		Event:  &domain.Event{Name: "DemoDay", Status: domain.EventStatusClosed},
		Access: domain.AccessApproved,
		Roster: []*domain.Enrollment{
			{IdeaName: "Foo", StartupEmail: "s@example.com", Status: domain.EnrollmentStatusSubmitted},
		},
	}
	RenderInvestorAccess(&buf, view)
	assert.Contains(t, buf.String(), "[SUBMITTED] Foo")
}

func TestRenderInvestorAccessRequested(t *testing.T) {
	var buf bytes.Buffer
	view := &domain.EventView{
		Event:  &domain.Event{Name: "DemoDay", Status: domain.EventStatusClosed},
		Access: domain.AccessRequested,
	}
	RenderInvestorAccess(&buf, view)
	assert.Contains(t, buf.String(), "Waiting for organiser approval")
}

func TestRenderInvestorAccessNone(t *testing.T) {
	var buf bytes.Buffer
	view := &domain.EventView{
		Event: &domain.Event{Name: "DemoDay", Status: domain.EventStatusClosed},
	}
	RenderInvestorAccess(&buf, view)
	assert.Contains(t, buf.String(), "request-access")
}

func TestRenderAccessRequests(t *testing.T) {
	var buf bytes.Buffer
	RenderAccessRequests(&buf, []*domain.AccessRequest{
		{InvestorEmail: "inv@example.com", Approved: true},
		{InvestorEmail: "other@example.com", Approved: false},
	})
	out := buf.String()
	assert.Contains(t, out, "[APPROVED] inv@example.com")
	assert.Contains(t, out, "[PENDING] other@example.com")
}
