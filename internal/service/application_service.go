package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// ApplicationCreateInput describes the application payload after
// validation. The volunteer comes from the authenticated principal.
type ApplicationCreateInput struct {
	ProjectID string
	Message   *string
}

// ApplicationService coordinates the application lifecycle and the
// project-counter side effects that ride along with it.
type ApplicationService struct {
	applications   repository.ApplicationRepository
	projects       repository.ProjectRepository
	stats          repository.StatsRepository
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	legacyCounters bool
}

// ApplicationDependencies bundles requirements for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	ProjectRepo     repository.ProjectRepository
	StatsRepo       repository.StatsRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	// LegacyCounters reproduces the replaced system's no-op decrement when
	// an accepted application is rejected or withdrawn.
	LegacyCounters bool
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications:   deps.ApplicationRepo,
		projects:       deps.ProjectRepo,
		stats:          deps.StatsRepo,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		legacyCounters: deps.LegacyCounters,
	}
}

// Apply submits a volunteer's application to a project. At most one
// application per (project, volunteer) pair; the pre-check gives a friendly
// conflict message and the storage unique index closes the race.
func (s *ApplicationService) Apply(ctx context.Context, volunteerID string, input ApplicationCreateInput) (*domain.ApplicationDetail, error) {
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, apperrors.MapError(err)
	}

	exists, err := s.applications.ExistsForProject(ctx, input.ProjectID, volunteerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("you have already applied to this project", nil)
	}

	application := &domain.Application{
		ProjectID:   input.ProjectID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationStatusPending,
		Message:     input.Message,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, apperrors.MapError(err)
	}

	detail, err := s.applications.GetByID(ctx, application.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventApplicationCreated,
		Application: detail,
	})
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return detail, nil
}

// ListMine returns the volunteer's applications with projects embedded.
func (s *ApplicationService) ListMine(ctx context.Context, volunteerID string) ([]domain.ApplicationDetail, error) {
	applications, err := s.applications.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return applications, nil
}

// ListForProject returns a project's applications to its owning
// organization.
func (s *ApplicationService) ListForProject(ctx context.Context, callerID, projectID string) ([]domain.ApplicationDetail, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if project.OrganizationID != callerID {
		return nil, apperrors.NewForbidden("not authorized to view applications for this project")
	}

	applications, err := s.applications.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return applications, nil
}

// ListForOrganization returns applications across all of the caller's
// projects with project, organization and volunteer embedded.
func (s *ApplicationService) ListForOrganization(ctx context.Context, organizationID string) ([]domain.ApplicationDetail, error) {
	applications, err := s.applications.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return applications, nil
}

// UpdateStatus lets the owning organization decide an application. Moving
// into accepted adds a joined volunteer; moving an accepted application to
// rejected removes one (unless legacy compatibility keeps the old no-op).
func (s *ApplicationService) UpdateStatus(ctx context.Context, callerID, id string, status domain.ApplicationStatus) (*domain.ApplicationDetail, error) {
	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Project == nil || detail.Project.OrganizationID != callerID {
		return nil, apperrors.NewForbidden("not authorized to update this application")
	}

	if _, err := s.applications.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, apperrors.MapError(err)
	}

	joinedDelta := 0
	switch {
	case status == domain.ApplicationStatusAccepted && detail.Status != domain.ApplicationStatusAccepted:
		joinedDelta = 1
	case status == domain.ApplicationStatusRejected && detail.Status == domain.ApplicationStatusAccepted:
		if !s.legacyCounters {
			joinedDelta = -1
		}
	}
	if joinedDelta != 0 {
		if err := s.projects.IncrementCounters(ctx, detail.ProjectID, joinedDelta, 0); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	updated, err := s.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventApplicationUpdated,
		Application: updated,
	})
	if project, err := s.projects.GetByID(ctx, detail.ProjectID); err == nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventProjectUpdated,
			Project: project,
		})
	} else {
		s.logger.Warn("load project for broadcast", zap.Error(err), zap.String("project_id", detail.ProjectID))
	}
	return updated, nil
}

// Withdraw lets the applying volunteer delete their own application.
func (s *ApplicationService) Withdraw(ctx context.Context, callerID, id string) error {
	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return err
	}
	if detail.VolunteerID != callerID {
		return apperrors.NewForbidden("not authorized to withdraw this application")
	}

	if detail.Status == domain.ApplicationStatusAccepted && !s.legacyCounters {
		if err := s.projects.IncrementCounters(ctx, detail.ProjectID, -1, 0); err != nil {
			return apperrors.MapError(err)
		}
	}

	deleted, err := s.applications.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("application", nil)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:          events.EventApplicationDeleted,
		ApplicationID: id,
		ProjectID:     detail.ProjectID,
	})
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return nil
}

func (s *ApplicationService) getDetail(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	detail, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return detail, nil
}
