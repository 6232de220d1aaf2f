package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
)

// recordingDispatcher captures published events in order.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		result = append(result, e.Type)
	}
	return result
}

type fakeStatsRepo struct {
	stats    domain.Stats
	computes int
}

func (r *fakeStatsRepo) Compute(context.Context) (domain.Stats, error) {
	r.computes++
	return r.stats, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.Location != nil {
		user.Location = patch.Location
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.Skills != nil {
		user.Skills = *patch.Skills
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = patch.ProfilePicture
	}
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProjectRepo struct {
	projects map[string]*domain.Project
	owners   *fakeUserRepo
}

func newFakeProjectRepo(owners *fakeUserRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*domain.Project{}, owners: owners}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, id string, patch repository.ProjectPatch) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	if patch.VolunteersNeeded != nil {
		project.VolunteersNeeded = *patch.VolunteersNeeded
	}
	project.UpdatedAt = time.Now()
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*domain.ProjectWithOrganization, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	result := &domain.ProjectWithOrganization{Project: *project}
	if r.owners != nil {
		if owner, err := r.owners.GetByID(ctx, project.OrganizationID); err == nil {
			result.Organization = owner
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, _ repository.ProjectFilter) ([]domain.ProjectWithOrganization, error) {
	var result []domain.ProjectWithOrganization
	for id, project := range r.projects {
		if project.Status != domain.ProjectStatusActive {
			continue
		}
		joined, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *joined)
	}
	return result, nil
}

func (r *fakeProjectRepo) ListByOrganization(_ context.Context, organizationID string) ([]domain.Project, error) {
	var result []domain.Project
	for _, project := range r.projects {
		if project.OrganizationID == organizationID {
			result = append(result, *project)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) IncrementCounters(_ context.Context, id string, joinedDelta, applicationsDelta int) error {
	project, ok := r.projects[id]
	if !ok {
		return pgx.ErrNoRows
	}
	project.VolunteersJoined += joinedDelta
	project.TotalApplications += applicationsDelta
	return nil
}

type fakeApplicationRepo struct {
	applications map[string]*domain.Application
	projects     *fakeProjectRepo
	volunteers   *fakeUserRepo
}

func newFakeApplicationRepo(projects *fakeProjectRepo, volunteers *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: map[string]*domain.Application{},
		projects:     projects,
		volunteers:   volunteers,
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *domain.Application) error {
	application.ID = uuid.NewString()
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	clone := *application
	r.applications[application.ID] = &clone
	if project, ok := r.projects.projects[application.ProjectID]; ok {
		project.TotalApplications++
	}
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	application.Status = status
	application.UpdatedAt = time.Now()
	clone := *application
	return &clone, nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id string) (bool, error) {
	application, ok := r.applications[id]
	if !ok {
		return false, nil
	}
	if project, pok := r.projects.projects[application.ProjectID]; pok && project.TotalApplications > 0 {
		project.TotalApplications--
	}
	delete(r.applications, id)
	return true, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.detail(ctx, application), nil
}

func (r *fakeApplicationRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ApplicationDetail, error) {
	var result []domain.ApplicationDetail
	for _, application := range r.applications {
		if application.ProjectID == projectID {
			result = append(result, *r.detail(ctx, application))
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByVolunteer(ctx context.Context, volunteerID string) ([]domain.ApplicationDetail, error) {
	var result []domain.ApplicationDetail
	for _, application := range r.applications {
		if application.VolunteerID == volunteerID {
			result = append(result, *r.detail(ctx, application))
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByOrganization(ctx context.Context, organizationID string) ([]domain.ApplicationDetail, error) {
	var result []domain.ApplicationDetail
	for _, application := range r.applications {
		project, ok := r.projects.projects[application.ProjectID]
		if !ok || project.OrganizationID != organizationID {
			continue
		}
		detail := r.detail(ctx, application)
		if owner, err := r.volunteers.GetByID(ctx, project.OrganizationID); err == nil {
			detail.Organization = owner
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (r *fakeApplicationRepo) ExistsForProject(_ context.Context, projectID, volunteerID string) (bool, error) {
	for _, application := range r.applications {
		if application.ProjectID == projectID && application.VolunteerID == volunteerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) detail(ctx context.Context, application *domain.Application) *domain.ApplicationDetail {
	detail := &domain.ApplicationDetail{Application: *application}
	if project, ok := r.projects.projects[application.ProjectID]; ok {
		clone := *project
		detail.Project = &clone
	}
	if volunteer, err := r.volunteers.GetByID(ctx, application.VolunteerID); err == nil {
		detail.Volunteer = volunteer
	}
	return detail
}
