package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"launchgate/internal/domain"
	"launchgate/internal/services"
)

// App routes subcommands to the services, running the access gate before
// any role-scoped command. It owns no state beyond the wiring: every command
// derives what it shows from fresh fetches.
type App struct {
	sessions   domain.SessionService
	workflow   domain.WorkflowService
	dashboards domain.DashboardService
	logger     *slog.Logger
	out        io.Writer
	errOut     io.Writer
}

// New wires the CLI delivery.
func New(sessions domain.SessionService, workflow domain.WorkflowService, dashboards domain.DashboardService, logger *slog.Logger, out, errOut io.Writer) *App {
	return &App{
		sessions:   sessions,
		workflow:   workflow,
		dashboards: dashboards,
		logger:     logger,
		out:        out,
		errOut:     errOut,
	}
}

// allowedRoles maps each guarded command to the roles that may run it.
// Commands absent from this map are public.
var allowedRoles = map[string][]domain.Role{
	"whoami":         {domain.RoleOrganiser, domain.RoleStartup, domain.RoleInvestor},
	"logout":         {domain.RoleOrganiser, domain.RoleStartup, domain.RoleInvestor},
	"events":         {domain.RoleOrganiser, domain.RoleStartup, domain.RoleInvestor},
	"event":          {domain.RoleOrganiser, domain.RoleStartup, domain.RoleInvestor},
	"create-event":   {domain.RoleOrganiser},
	"close-event":    {domain.RoleOrganiser},
	"approve":        {domain.RoleOrganiser},
	"reject":         {domain.RoleOrganiser},
	"shortlist":      {domain.RoleOrganiser},
	"enroll":         {domain.RoleStartup},
	"request-access": {domain.RoleInvestor},
}

// Run executes one command and returns the process exit code. The session is
// restored before any gate decision, so the gate never observes a loading
// store.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}
	command, rest := args[0], args[1:]

	if err := a.sessions.Restore(ctx); err != nil {
		a.logger.WarnContext(ctx, "session restore failed, continuing unauthenticated", "err", err)
	}

	if roles, guarded := allowedRoles[command]; guarded {
		switch services.Gate(a.sessions.Ready(), a.sessions.Current(), roles...) {
		case services.DecisionLoading:
			fmt.Fprintln(a.out, "Loading...")
			return 1
		case services.DecisionLogin:
			fmt.Fprintln(a.errOut, "Please log in first: launchgate login -email you@example.com -password ...")
			return 1
		case services.DecisionUnauthorized:
			fmt.Fprintln(a.errOut, "You are not authorized to access this page.")
			return 1
		}
	}

	var err error
	switch command {
	case "login":
		err = a.login(ctx, rest)
	case "register":
		err = a.register(ctx, rest)
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Fprintln(a.out, "Logged out.")
	case "whoami":
		a.whoami()
	case "events":
		err = a.events(ctx)
	case "event":
		err = a.eventDetails(ctx, rest)
	case "create-event":
		err = a.createEvent(ctx, rest)
	case "close-event":
		err = a.closeEvent(ctx, rest)
	case "enroll":
		err = a.enroll(ctx, rest)
	case "request-access":
		err = a.requestAccess(ctx, rest)
	case "approve":
		err = a.approveAccess(ctx, rest, true)
	case "reject":
		err = a.approveAccess(ctx, rest, false)
	case "shortlist":
		err = a.shortlist(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n", command)
		a.usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) usage() {
	fmt.Fprint(a.out, `Usage: launchgate <command> [flags]

Commands:
  login           -email -password
  register        -email -password -name -role (organiser|startup|investor)
  logout
  whoami
  events          role dashboard: your events, or all events
  event           -name <event>  role-specific detail view
  create-event    -name -datetime [-description -image-url -terms]   (organiser)
  close-event     -name                                              (organiser)
  enroll          -event -idea -description -team                    (startup)
  request-access  -event                                             (investor)
  approve|reject  -event -investor                                   (organiser)
  shortlist       -event -startup                                    (organiser)
`)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	identity, err := a.sessions.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", identity.Name, identity.Role)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	role := fs.String("role", "", "organiser, startup, or investor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	parsed, err := domain.ParseRole(*role)
	if err != nil {
		return err
	}
	identity, err := a.sessions.Register(ctx, *email, *password, parsed, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and logged in as %s (%s)\n", identity.Name, identity.Role)
	return nil
}

func (a *App) whoami() {
	identity := a.sessions.Current()
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", identity.Name, identity.Email, identity.Role)
}

// events renders the role dashboard: owner-scoped events for an organiser,
// all events (with own enrollment status) for a startup, all events for an
// investor.
func (a *App) events(ctx context.Context) error {
	identity := a.sessions.Current()
	switch identity.Role {
	case domain.RoleOrganiser:
		events, err := a.dashboards.OrganiserEvents(ctx)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(a.out, "No events created yet. Create your first event to get started!")
			return nil
		}
		for _, event := range events {
			RenderEventCard(a.out, event)
		}
	case domain.RoleStartup:
		summaries, err := a.dashboards.StartupEvents(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(a.out, "No events available.")
			return nil
		}
		for _, summary := range summaries {
			RenderEventCard(a.out, summary.Event)
			switch summary.EnrollmentStatus {
			case domain.EnrollmentStatusSubmitted:
				fmt.Fprintln(a.out, "  Enrolled")
			case domain.EnrollmentStatusShortlisted:
				fmt.Fprintln(a.out, "  Shortlisted")
			}
		}
	case domain.RoleInvestor:
		events, err := a.dashboards.InvestorEvents(ctx)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(a.out, "No events available.")
			return nil
		}
		for _, event := range events {
			RenderEventCard(a.out, event)
		}
	}
	return nil
}

// eventDetails renders the role-specific detail view, re-deriving all state
// from the backend on every invocation.
func (a *App) eventDetails(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("event", flag.ContinueOnError)
	name := fs.String("name", "", "event name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" && fs.NArg() > 0 {
		*name = fs.Arg(0)
	}
	if *name == "" {
		return fmt.Errorf("event name is required")
	}

	identity := a.sessions.Current()
	view, err := a.workflow.EventView(ctx, identity, *name, false)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return fmt.Errorf("event not found")
		}
		return err
	}
	a.renderView(identity, view)
	return nil
}

func (a *App) renderView(identity *domain.Identity, view *domain.EventView) {
	RenderEventDetail(a.out, view.Event)
	fmt.Fprintln(a.out)

	switch {
	case identity.Role == domain.RoleStartup:
		if view.OwnEnrollment != nil {
			RenderEnrollment(a.out, view.OwnEnrollment)
		} else if view.Event.IsUpcoming() {
			fmt.Fprintln(a.out, "You have not enrolled yet. Run 'launchgate enroll' to submit your idea.")
		} else {
			fmt.Fprintln(a.out, "This event is closed for enrollment.")
		}
	case identity.Role == domain.RoleInvestor:
		RenderInvestorAccess(a.out, view)
	case identity.Role == domain.RoleOrganiser && view.Event.OwnedBy(identity.Email):
		fmt.Fprintln(a.out, "Enrolled Startups")
		RenderRoster(a.out, view.Enrollments)
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Access Requests")
		RenderAccessRequests(a.out, view.AccessRequests)
	}
}

func (a *App) createEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-event", flag.ContinueOnError)
	name := fs.String("name", "", "event name")
	description := fs.String("description", "", "event description")
	imageURL := fs.String("image-url", "", "event image URL")
	datetime := fs.String("datetime", "", "event date and time, e.g. 2025-01-01T10:00")
	terms := fs.String("terms", "", "terms and conditions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	draft := &domain.EventDraft{
		Name:          *name,
		Description:   *description,
		ImageURL:      *imageURL,
		EventDatetime: *datetime,
		Terms:         *terms,
	}
	if err := a.workflow.CreateEvent(ctx, draft); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %q created.\n", draft.Name)
	return a.events(ctx)
}

func (a *App) closeEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("close-event", flag.ContinueOnError)
	name := fs.String("name", "", "event name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("event name is required")
	}
	if err := a.workflow.CloseEvent(ctx, *name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %q closed.\n", *name)
	return a.events(ctx)
}

func (a *App) enroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	event := fs.String("event", "", "event name")
	idea := fs.String("idea", "", "idea name")
	description := fs.String("description", "", "idea description")
	team := fs.String("team", "", "team details")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *event == "" {
		return fmt.Errorf("event name is required")
	}
	draft := &domain.EnrollmentDraft{
		EventName:       *event,
		IdeaName:        *idea,
		IdeaDescription: *description,
		TeamDetails:     *team,
	}
	if err := a.workflow.Enroll(ctx, draft); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Enrollment submitted.")
	return a.eventDetails(ctx, []string{"-name", *event})
}

// requestAccess submits the ask, then re-derives the view with the
// just-asked hint set so a denial renders as pending rather than absent.
// The hint lives only for this command; the next fresh load derives from
// scratch.
func (a *App) requestAccess(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("request-access", flag.ContinueOnError)
	event := fs.String("event", "", "event name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *event == "" {
		return fmt.Errorf("event name is required")
	}
	if err := a.workflow.RequestAccess(ctx, *event); err != nil {
		return err
	}
	identity := a.sessions.Current()
	view, err := a.workflow.EventView(ctx, identity, *event, true)
	if err != nil {
		return err
	}
	RenderInvestorAccess(a.out, view)
	return nil
}

func (a *App) approveAccess(ctx context.Context, args []string, approve bool) error {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	event := fs.String("event", "", "event name")
	investor := fs.String("investor", "", "investor email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *event == "" || *investor == "" {
		return fmt.Errorf("event name and investor email are required")
	}
	if err := a.workflow.ApproveAccess(ctx, *event, *investor, approve); err != nil {
		return err
	}
	if approve {
		fmt.Fprintf(a.out, "Approved access for %s.\n", *investor)
	} else {
		fmt.Fprintf(a.out, "Rejected access for %s.\n", *investor)
	}
	return a.eventDetails(ctx, []string{"-name", *event})
}

func (a *App) shortlist(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("shortlist", flag.ContinueOnError)
	event := fs.String("event", "", "event name")
	startup := fs.String("startup", "", "startup email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *event == "" || *startup == "" {
		return fmt.Errorf("event name and startup email are required")
	}
	if err := a.workflow.Shortlist(ctx, *event, *startup); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Shortlisted %s.\n", *startup)
	return a.eventDetails(ctx, []string{"-name", *event})
}
