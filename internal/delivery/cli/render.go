package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"launchgate/internal/domain"
)

// Accepted layouts for event_datetime. The backend stores what the creation
// form sent, so both the HTML datetime-local shape and RFC 3339 appear.
var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// FormatEventDatetime renders the stored datetime for display, falling back
// to the raw value when it doesn't parse.
func FormatEventDatetime(raw string) string {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006 at 3:04 PM")
		}
	}
	return raw
}

// StatusBadge renders an event or enrollment status as a fixed-width badge.
func StatusBadge(status string) string {
	return "[" + strings.ToUpper(status) + "]"
}

// RenderEventCard writes the summary card for one event.
func RenderEventCard(w io.Writer, event *domain.Event) {
	fmt.Fprintf(w, "%s %s\n", StatusBadge(event.Status), event.Name)
	fmt.Fprintf(w, "  Date & Time: %s\n", FormatEventDatetime(event.EventDatetime))
	if event.Description != "" {
		fmt.Fprintf(w, "  %s\n", event.Description)
	}
	if event.ImageURL == "" {
		fmt.Fprintf(w, "  (no image)\n")
	}
}

// RenderEventDetail writes the full detail header for one event.
func RenderEventDetail(w io.Writer, event *domain.Event) {
	RenderEventCard(w, event)
	fmt.Fprintf(w, "  Organiser: %s\n", event.OrganiserEmail)
	if event.Terms != "" {
		fmt.Fprintf(w, "  Terms and Conditions: %s\n", event.Terms)
	}
}

// RenderEnrollment writes a startup's own enrollment block.
func RenderEnrollment(w io.Writer, enrollment *domain.Enrollment) {
	fmt.Fprintf(w, "Your Enrollment %s\n", StatusBadge(enrollment.Status))
	fmt.Fprintf(w, "  Idea Name: %s\n", enrollment.IdeaName)
	fmt.Fprintf(w, "  Description: %s\n", enrollment.IdeaDescription)
	fmt.Fprintf(w, "  Team Details: %s\n", enrollment.TeamDetails)
}

// RenderRoster writes enrolled startups as the organiser and approved
// investor views show them.
func RenderRoster(w io.Writer, entries []*domain.Enrollment) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No startups enrolled yet.")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(w, "%s %s\n", StatusBadge(entry.Status), entry.IdeaName)
		fmt.Fprintf(w, "  Startup: %s\n", entry.StartupEmail)
		fmt.Fprintf(w, "  %s\n", entry.IdeaDescription)
		fmt.Fprintf(w, "  Team: %s\n", entry.TeamDetails)
	}
}

// RenderAccessRequests writes the organiser's access request list.
func RenderAccessRequests(w io.Writer, requests []*domain.AccessRequest) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No access requests yet.")
		return
	}
	for _, request := range requests {
		state := "pending"
		if request.Approved {
			state = "approved"
		}
		fmt.Fprintf(w, "%s %s\n", StatusBadge(state), request.InvestorEmail)
	}
}

// RenderInvestorAccess writes the investor's section of the detail view,
// driven entirely by the derived access state.
func RenderInvestorAccess(w io.Writer, view *domain.EventView) {
	switch view.Access {
	case domain.AccessApproved:
		fmt.Fprintln(w, "Enrolled Startups")
		if view.Event.IsClosed() {
			RenderRoster(w, view.Roster)
		} else {
			fmt.Fprintln(w, "Startups will be visible after the event is closed.")
		}
	case domain.AccessRequested:
		fmt.Fprintln(w, "Access request submitted. Waiting for organiser approval.")
	default:
		fmt.Fprintln(w, "No access yet. Run 'launchgate request-access' to ask the organiser.")
	}
}
