package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"launchgate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessions implements domain.SessionService.
type fakeSessions struct {
	identity *domain.Identity
	ready    bool
	loggedIn *domain.Identity
	loginErr error
}

func (f *fakeSessions) Restore(ctx context.Context) error { f.ready = true; return nil }
func (f *fakeSessions) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.identity = f.loggedIn
	return f.loggedIn, nil
}
func (f *fakeSessions) Register(ctx context.Context, email, password string, role domain.Role, name string) (*domain.Identity, error) {
	f.identity = f.loggedIn
	return f.loggedIn, nil
}
func (f *fakeSessions) Logout(ctx context.Context) { f.identity = nil }
func (f *fakeSessions) Current() *domain.Identity  { return f.identity }
func (f *fakeSessions) Ready() bool                { return f.ready }
func (f *fakeSessions) Token() domain.Credential   { return "" }

// fakeWorkflow implements domain.WorkflowService.
type fakeWorkflow struct {
	view     *domain.EventView
	viewErr  error
	hints    []bool
	requests []string
}

func (f *fakeWorkflow) FindEvent(ctx context.Context, name string) (*domain.Event, error) {
	if f.view != nil {
		return f.view.Event, nil
	}
	return nil, domain.ErrEventNotFound
}
func (f *fakeWorkflow) EventView(ctx context.Context, viewer *domain.Identity, name string, requestedHint bool) (*domain.EventView, error) {
	f.hints = append(f.hints, requestedHint)
	return f.view, f.viewErr
}
func (f *fakeWorkflow) CreateEvent(ctx context.Context, draft *domain.EventDraft) error { return nil }
func (f *fakeWorkflow) CloseEvent(ctx context.Context, eventName string) error          { return nil }
func (f *fakeWorkflow) Enroll(ctx context.Context, draft *domain.EnrollmentDraft) error { return nil }
func (f *fakeWorkflow) RequestAccess(ctx context.Context, eventName string) error {
	f.requests = append(f.requests, eventName)
	return nil
}
func (f *fakeWorkflow) ApproveAccess(ctx context.Context, eventName, investorEmail string, approve bool) error {
	return nil
}
func (f *fakeWorkflow) Shortlist(ctx context.Context, eventName, startupEmail string) error {
	return nil
}

// fakeDashboards implements domain.DashboardService.
type fakeDashboards struct {
	events    []*domain.Event
	summaries []*domain.EventSummary
}

func (f *fakeDashboards) OrganiserEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, nil
}
func (f *fakeDashboards) StartupEvents(ctx context.Context) ([]*domain.EventSummary, error) {
	return f.summaries, nil
}
func (f *fakeDashboards) InvestorEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, nil
}

func newTestApp(sessions *fakeSessions, workflow *fakeWorkflow, dashboards *fakeDashboards) (*App, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(sessions, workflow, dashboards, logger, &out, &errOut), &out, &errOut
}

func TestGuardedCommandWithoutSession(t *testing.T) {
	app, _, errOut := newTestApp(&fakeSessions{}, &fakeWorkflow{}, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"events"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Please log in first")
}

func TestGuardedCommandWrongRole(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "s@example.com", Role: domain.RoleStartup},
	}
	app, _, errOut := newTestApp(sessions, &fakeWorkflow{}, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"create-event", "-name", "X", "-datetime", "2025-01-01T10:00"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "not authorized")
}

func TestOrganiserEventsDashboard(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "org@example.com", Role: domain.RoleOrganiser},
	}
	dashboards := &fakeDashboards{events: []*domain.Event{
		{Name: "DemoDay", Status: domain.EventStatusUpcoming, EventDatetime: "2025-01-01T10:00"},
	}}
	app, out, _ := newTestApp(sessions, &fakeWorkflow{}, dashboards)

	code := app.Run(context.Background(), []string{"events"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "[UPCOMING] DemoDay")
}

func TestStartupDashboardShowsEnrollmentBadge(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "s@example.com", Role: domain.RoleStartup},
	}
	dashboards := &fakeDashboards{summaries: []*domain.EventSummary{
		{
			Event:            &domain.Event{Name: "DemoDay", Status: domain.EventStatusUpcoming},
			EnrollmentStatus: domain.EnrollmentStatusSubmitted,
		},
	}}
	app, out, _ := newTestApp(sessions, &fakeWorkflow{}, dashboards)

	code := app.Run(context.Background(), []string{"events"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Enrolled")
}

func TestEventNotFound(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "inv@example.com", Role: domain.RoleInvestor},
	}
	workflow := &fakeWorkflow{viewErr: domain.ErrEventNotFound}
	app, _, errOut := newTestApp(sessions, workflow, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"event", "-name", "Nope"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "event not found")
}

func TestRequestAccessReloadsViewWithHint(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "inv@example.com", Role: domain.RoleInvestor},
	}
	workflow := &fakeWorkflow{view: &domain.EventView{
		Event:  &domain.Event{Name: "DemoDay", Status: domain.EventStatusClosed},
		Access: domain.AccessRequested,
	}}
	app, out, _ := newTestApp(sessions, workflow, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"request-access", "-event", "DemoDay"})
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"DemoDay"}, workflow.requests)
	// the reload after the ask carries the just-requested hint
	assert.Equal(t, []bool{true}, workflow.hints)
	assert.Contains(t, out.String(), "Waiting for organiser approval")
}

func TestFreshEventViewHasNoHint(t *testing.T) {
	sessions := &fakeSessions{
		identity: &domain.Identity{Email: "inv@example.com", Role: domain.RoleInvestor},
	}
	workflow := &fakeWorkflow{view: &domain.EventView{
		Event:  &domain.Event{Name: "DemoDay", Status: domain.EventStatusClosed},
		Access: domain.AccessNone,
	}}
	app, _, _ := newTestApp(sessions, workflow, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"event", "-name", "DemoDay"})
	require.Equal(t, 0, code)
	assert.Equal(t, []bool{false}, workflow.hints)
}

func TestUnknownCommand(t *testing.T) {
	app, _, errOut := newTestApp(&fakeSessions{}, &fakeWorkflow{}, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"frobnicate"})
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown command")
}

func TestLoginCommand(t *testing.T) {
	sessions := &fakeSessions{
		loggedIn: &domain.Identity{Email: "a@b.co", Name: "A", Role: domain.RoleInvestor},
	}
	app, out, _ := newTestApp(sessions, &fakeWorkflow{}, &fakeDashboards{})

	code := app.Run(context.Background(), []string{"login", "-email", "a@b.co", "-password", "pass-word"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Logged in as A (investor)")
}
