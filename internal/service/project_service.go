package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// ProjectCreateInput describes the project creation payload after
// validation. The owner comes from the authenticated principal, never the
// request body.
type ProjectCreateInput struct {
	Title            string
	Description      string
	Category         string
	Location         string
	State            string
	City             string
	SkillsRequired   []string
	TimeCommitment   string
	VolunteersNeeded int
	ImageURL         *string
	Status           domain.ProjectStatus
	StartDate        *time.Time
	EndDate          *time.Time
}

// ProjectService coordinates project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	stats      repository.StatsRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProjectDependencies bundles requirements for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	StatsRepo   repository.StatsRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		stats:      deps.StatsRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns active projects matching the public browse filters, with
// the owning organization embedded, newest first.
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.ProjectWithOrganization, error) {
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Get fetches one project with its owning organization embedded.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.ProjectWithOrganization, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// ListMine returns all of the organization's projects in every status.
func (s *ProjectService) ListMine(ctx context.Context, organizationID string) ([]domain.Project, error) {
	projects, err := s.projects.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Create posts a new project owned by the calling organization.
func (s *ProjectService) Create(ctx context.Context, owner *domain.User, input ProjectCreateInput) (*domain.Project, error) {
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}

	project := &domain.Project{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Category:         strings.TrimSpace(input.Category),
		Location:         strings.TrimSpace(input.Location),
		State:            strings.TrimSpace(input.State),
		City:             strings.TrimSpace(input.City),
		OrganizationID:   owner.ID,
		SkillsRequired:   trimSkills(input.SkillsRequired),
		TimeCommitment:   input.TimeCommitment,
		VolunteersNeeded: input.VolunteersNeeded,
		ImageURL:         input.ImageURL,
		Status:           status,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventProjectCreated,
		Project: &domain.ProjectWithOrganization{Project: *project, Organization: owner},
	})
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return project, nil
}

// Update applies a partial patch to a project owned by the caller.
func (s *ProjectService) Update(ctx context.Context, callerID, id string, patch repository.ProjectPatch) (*domain.Project, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OrganizationID != callerID {
		return nil, apperrors.NewForbidden("not authorized to update this project")
	}

	project, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventProjectUpdated,
		Project: &domain.ProjectWithOrganization{Project: *project, Organization: existing.Organization},
	})
	return project, nil
}

// Delete removes a project owned by the caller along with its dependent
// applications.
func (s *ProjectService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.OrganizationID != callerID {
		return apperrors.NewForbidden("not authorized to delete this project")
	}

	deleted, err := s.projects.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("project", nil)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventProjectDeleted,
		ProjectID: id,
	})
	publishStatsUpdate(ctx, s.dispatcher, s.stats, s.logger)
	return nil
}
