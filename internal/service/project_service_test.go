package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
)

func newTestProjectService(t *testing.T) (*ProjectService, *fakeProjectRepo, *fakeUserRepo, *recordingDispatcher) {
	t.Helper()
	users := newFakeUserRepo()
	projects := newFakeProjectRepo(users)
	dispatcher := &recordingDispatcher{}
	svc := NewProjectService(ProjectDependencies{
		ProjectRepo: projects,
		StatsRepo:   &fakeStatsRepo{},
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
	return svc, projects, users, dispatcher
}

func seedOrganization(t *testing.T, users *fakeUserRepo, email string) *domain.User {
	t.Helper()
	org := &domain.User{Email: email, FirstName: "Org", LastName: "Owner", Role: domain.RoleOrganization}
	require.NoError(t, users.Create(context.Background(), org))
	return org
}

func TestCreateProjectDefaultsToActive(t *testing.T) {
	svc, _, users, dispatcher := newTestProjectService(t)
	org := seedOrganization(t, users, "org@example.com")

	project, err := svc.Create(context.Background(), org, ProjectCreateInput{
		Title:            "  Beach Cleanup ",
		Description:      "pick up litter",
		Category:         "environment",
		Location:         "Shoreline Park",
		State:            "CA",
		City:             "Santa Cruz",
		TimeCommitment:   "weekends",
		VolunteersNeeded: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup", project.Title)
	assert.Equal(t, domain.ProjectStatusActive, project.Status)
	assert.Equal(t, org.ID, project.OrganizationID)
	assert.Equal(t, []events.EventType{events.EventProjectCreated, events.EventStatsUpdate}, dispatcher.types())
}

func TestUpdateProjectOwnershipEnforced(t *testing.T) {
	svc, _, users, dispatcher := newTestProjectService(t)
	owner := seedOrganization(t, users, "owner@example.com")
	other := seedOrganization(t, users, "other@example.com")

	project, err := svc.Create(context.Background(), owner, ProjectCreateInput{
		Title: "Tutoring", Description: "d", Category: "education",
		Location: "l", State: "NY", City: "NYC",
		TimeCommitment: "evenings", VolunteersNeeded: 2,
	})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), other.ID, project.ID, repository.ProjectPatch{Title: &title})
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))

	updated, err := svc.Update(context.Background(), owner.ID, project.ID, repository.ProjectPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)
	assert.Equal(t, []events.EventType{
		events.EventProjectCreated, events.EventStatsUpdate,
		events.EventProjectUpdated,
	}, dispatcher.types())
}

func TestDeleteProjectPublishesDeletionAndStats(t *testing.T) {
	svc, projects, users, dispatcher := newTestProjectService(t)
	owner := seedOrganization(t, users, "owner@example.com")

	project, err := svc.Create(context.Background(), owner, ProjectCreateInput{
		Title: "Food Drive", Description: "d", Category: "community",
		Location: "l", State: "TX", City: "Austin",
		TimeCommitment: "once", VolunteersNeeded: 3,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "stranger", project.ID)
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))

	require.NoError(t, svc.Delete(context.Background(), owner.ID, project.ID))
	assert.Empty(t, projects.projects)
	assert.Equal(t, []events.EventType{
		events.EventProjectCreated, events.EventStatsUpdate,
		events.EventProjectDeleted, events.EventStatsUpdate,
	}, dispatcher.types())

	err = svc.Delete(context.Background(), owner.ID, project.ID)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestGetUnknownProject(t *testing.T) {
	svc, _, _, _ := newTestProjectService(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
