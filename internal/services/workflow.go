package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"launchgate/internal/domain"
)

type workflowService struct {
	gateway        domain.Gateway
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewWorkflowService creates the event access workflow on top of the
// backend gateway.
func NewWorkflowService(gateway domain.Gateway, logger *slog.Logger, timeout time.Duration) domain.WorkflowService {
	return &workflowService{
		gateway:        gateway,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// FindEvent locates an event by name. The backend offers no single-event
// endpoint, so this scans the full listing the same way the dashboards do.
func (s *workflowService) FindEvent(ctx context.Context, name string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.gateway.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "failed to fetch event details"))
	}
	for _, event := range events {
		if event.Name == name {
			return event, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

// EventView assembles the role-specific detail view of one event. The view
// is derived from scratch on every call; nothing about a previous derivation
// survives. requestedHint marks that the viewer submitted an access request
// during this process lifetime, which is the only way to tell a pending
// request apart from a generic denial.
func (s *workflowService) EventView(ctx context.Context, viewer *domain.Identity, name string, requestedHint bool) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.FindEvent(ctx, name)
	if err != nil {
		return nil, err
	}
	view := &domain.EventView{Event: event}

	switch {
	case viewer.Role == domain.RoleStartup:
		if err := s.loadStartupView(ctx, view); err != nil {
			return nil, err
		}
	case viewer.Role == domain.RoleOrganiser && event.OwnedBy(viewer.Email):
		if err := s.loadOrganiserView(ctx, view); err != nil {
			return nil, err
		}
	case viewer.Role == domain.RoleInvestor:
		if err := s.loadInvestorView(ctx, view, requestedHint); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *workflowService) loadStartupView(ctx context.Context, view *domain.EventView) error {
	enrollments, err := s.gateway.ListMyEnrollments(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRejected) {
			return err
		}
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to fetch event details"))
	}
	for _, enrollment := range enrollments {
		if enrollment.EventName == view.Event.Name {
			view.OwnEnrollment = enrollment
			break
		}
	}
	return nil
}

// loadOrganiserView fetches enrollments and access requests concurrently and
// waits for both before the view renders. A 404 means no data yet; any other
// failure is logged and leaves that list empty rather than failing the view.
func (s *workflowService) loadOrganiserView(ctx context.Context, view *domain.EventView) error {
	g, gctx := errgroup.WithContext(ctx)
	var (
		enrollments []*domain.Enrollment
		requests    []*domain.AccessRequest
	)
	g.Go(func() (err error) {
		enrollments, err = s.gateway.ListEventEnrollments(gctx, view.Event.Name)
		return err
	})
	g.Go(func() (err error) {
		requests, err = s.gateway.ListAccessRequests(gctx, view.Event.Name)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrAuthRejected) {
			return err
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to fetch organiser data",
				"event", view.Event.Name, "err", err)
		}
		// joint completion or nothing: a partial result never renders
		return nil
	}
	view.Enrollments = enrollments
	view.AccessRequests = requests
	return nil
}

// loadInvestorView attempts the gated roster read and interprets the result.
// A 200 is the only signal for approved; everything else is a denial. The
// backend cannot tell the client "requested but pending" directly, so a
// denial renders as requested when it was an explicit 403 or when the viewer
// asked during this process lifetime, and as no access otherwise.
func (s *workflowService) loadInvestorView(ctx context.Context, view *domain.EventView, requestedHint bool) error {
	roster, err := s.gateway.GatedRoster(ctx, view.Event.Name)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRejected) {
			return err
		}
		if errors.Is(err, domain.ErrAccessDenied) || requestedHint {
			view.Access = domain.AccessRequested
		} else {
			view.Access = domain.AccessNone
		}
		return nil
	}
	view.Access = domain.AccessApproved
	view.Roster = roster
	return nil
}

func (s *workflowService) CreateEvent(ctx context.Context, draft *domain.EventDraft) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if strings.TrimSpace(draft.EventDatetime) == "" {
		return fmt.Errorf("event date and time are required")
	}
	if err := s.gateway.CreateEvent(ctx, draft); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to create event"))
	}
	return nil
}

// CloseEvent moves an event to closed. There is no way back: the client
// never issues any other status transition.
func (s *workflowService) CloseEvent(ctx context.Context, eventName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.gateway.UpdateEventStatus(ctx, eventName, domain.EventStatusClosed); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to update status"))
	}
	return nil
}

func (s *workflowService) Enroll(ctx context.Context, draft *domain.EnrollmentDraft) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(draft.IdeaName) == "" ||
		strings.TrimSpace(draft.IdeaDescription) == "" ||
		strings.TrimSpace(draft.TeamDetails) == "" {
		return fmt.Errorf("idea name, idea description, and team details are required")
	}
	if err := s.gateway.CreateEnrollment(ctx, draft); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to enroll"))
	}
	return nil
}

// RequestAccess submits the investor's ask. A duplicate request is rejected
// by the backend and surfaces as an ordinary error here, never a crash.
func (s *workflowService) RequestAccess(ctx context.Context, eventName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.gateway.RequestAccess(ctx, eventName); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to request access"))
	}
	return nil
}

func (s *workflowService) ApproveAccess(ctx context.Context, eventName, investorEmail string, approve bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.gateway.ApproveAccess(ctx, eventName, investorEmail, approve); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to update approval"))
	}
	return nil
}

// Shortlist marks an enrollment shortlisted. No event-status precondition is
// checked here: the backend decides, and shortlisting an already-shortlisted
// enrollment leaves it shortlisted.
func (s *workflowService) Shortlist(ctx context.Context, eventName, startupEmail string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.gateway.Shortlist(ctx, eventName, startupEmail); err != nil {
		return fmt.Errorf("%s", domain.ErrorDetail(err, "failed to shortlist"))
	}
	return nil
}
