package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"launchgate/internal/domain"
)

type dashboardService struct {
	gateway        domain.Gateway
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewDashboardService creates the role dashboard service. Dashboards fetch
// fresh collections on every call; after a mutation the caller simply calls
// again.
func NewDashboardService(gateway domain.Gateway, logger *slog.Logger, timeout time.Duration) domain.DashboardService {
	return &dashboardService{
		gateway:        gateway,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// OrganiserEvents lists only the events the caller owns.
func (s *dashboardService) OrganiserEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.gateway.ListMyEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "failed to fetch events"))
	}
	return events, nil
}

// StartupEvents lists all events annotated with the caller's own enrollment
// status. The two collections are fetched concurrently and awaited jointly
// before anything renders.
func (s *dashboardService) StartupEvents(ctx context.Context) ([]*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var (
		events      []*domain.Event
		enrollments []*domain.Enrollment
	)
	g.Go(func() (err error) {
		events, err = s.gateway.ListEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		enrollments, err = s.gateway.ListMyEnrollments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "failed to fetch data"))
	}

	statusByEvent := make(map[string]string, len(enrollments))
	for _, enrollment := range enrollments {
		statusByEvent[enrollment.EventName] = enrollment.Status
	}
	summaries := make([]*domain.EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, &domain.EventSummary{
			Event:            event,
			EnrollmentStatus: statusByEvent[event.Name],
		})
	}
	return summaries, nil
}

// InvestorEvents lists all events.
func (s *dashboardService) InvestorEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.gateway.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "failed to fetch events"))
	}
	return events, nil
}
