package dto

import (
	"time"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Category         string               `json:"category"`
	Location         string               `json:"location"`
	State            string               `json:"state"`
	City             string               `json:"city"`
	SkillsRequired   []string             `json:"skillsRequired"`
	TimeCommitment   string               `json:"timeCommitment"`
	VolunteersNeeded int                  `json:"volunteersNeeded"`
	ImageURL         *string              `json:"imageUrl"`
	Status           domain.ProjectStatus `json:"status"`
	StartDate        *time.Time           `json:"startDate"`
	EndDate          *time.Time           `json:"endDate"`
}

// UpdateProjectRequest carries a partial project patch; counters are not
// accepted here.
type UpdateProjectRequest struct {
	Title            *string               `json:"title"`
	Description      *string               `json:"description"`
	Category         *string               `json:"category"`
	Location         *string               `json:"location"`
	State            *string               `json:"state"`
	City             *string               `json:"city"`
	SkillsRequired   *[]string             `json:"skillsRequired"`
	TimeCommitment   *string               `json:"timeCommitment"`
	VolunteersNeeded *int                  `json:"volunteersNeeded"`
	ImageURL         *string               `json:"imageUrl"`
	Status           *domain.ProjectStatus `json:"status"`
	StartDate        *time.Time            `json:"startDate"`
	EndDate          *time.Time            `json:"endDate"`
}

// ProjectResponse is the project shape for detail, list and broadcast
// payloads; Organization is populated on joined views.
type ProjectResponse struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Category          string               `json:"category"`
	Location          string               `json:"location"`
	State             string               `json:"state"`
	City              string               `json:"city"`
	OrganizationID    string               `json:"organizationId"`
	SkillsRequired    []string             `json:"skillsRequired"`
	TimeCommitment    string               `json:"timeCommitment"`
	VolunteersNeeded  int                  `json:"volunteersNeeded"`
	VolunteersJoined  int                  `json:"volunteersJoined"`
	TotalApplications int                  `json:"totalApplications"`
	ImageURL          *string              `json:"imageUrl,omitempty"`
	Status            domain.ProjectStatus `json:"status"`
	StartDate         *time.Time           `json:"startDate,omitempty"`
	EndDate           *time.Time           `json:"endDate,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
	Organization      *UserResponse        `json:"organization,omitempty"`
}

// NewProjectResponse maps a bare project.
func NewProjectResponse(project *domain.Project) *ProjectResponse {
	if project == nil {
		return nil
	}
	skills := project.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return &ProjectResponse{
		ID:                project.ID,
		Title:             project.Title,
		Description:       project.Description,
		Category:          project.Category,
		Location:          project.Location,
		State:             project.State,
		City:              project.City,
		OrganizationID:    project.OrganizationID,
		SkillsRequired:    skills,
		TimeCommitment:    project.TimeCommitment,
		VolunteersNeeded:  project.VolunteersNeeded,
		VolunteersJoined:  project.VolunteersJoined,
		TotalApplications: project.TotalApplications,
		ImageURL:          project.ImageURL,
		Status:            project.Status,
		StartDate:         project.StartDate,
		EndDate:           project.EndDate,
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}
}

// NewProjectWithOrganizationResponse maps a project joined with its owner.
func NewProjectWithOrganizationResponse(project *domain.ProjectWithOrganization) *ProjectResponse {
	if project == nil {
		return nil
	}
	resp := NewProjectResponse(&project.Project)
	resp.Organization = NewUserResponse(project.Organization)
	return resp
}
