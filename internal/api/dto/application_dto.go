package dto

import (
	"time"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// CreateApplicationRequest payload.
type CreateApplicationRequest struct {
	ProjectID string  `json:"projectId"`
	Message   *string `json:"message"`
}

// UpdateApplicationRequest carries the status decision.
type UpdateApplicationRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// ApplicationResponse is the application shape for detail, list and
// broadcast payloads. AppliedAt mirrors the creation time under the name
// the front-end views expect.
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	ProjectID   string                   `json:"projectId"`
	VolunteerID string                   `json:"volunteerId"`
	Status      domain.ApplicationStatus `json:"status"`
	Message     *string                  `json:"message,omitempty"`
	AppliedAt   time.Time                `json:"appliedAt"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	Project     *ProjectResponse         `json:"project,omitempty"`
	Volunteer   *UserResponse            `json:"volunteer,omitempty"`
}

// NewApplicationResponse maps a bare application.
func NewApplicationResponse(application *domain.Application) *ApplicationResponse {
	if application == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:          application.ID,
		ProjectID:   application.ProjectID,
		VolunteerID: application.VolunteerID,
		Status:      application.Status,
		Message:     application.Message,
		AppliedAt:   application.CreatedAt,
		CreatedAt:   application.CreatedAt,
		UpdatedAt:   application.UpdatedAt,
	}
}

// NewApplicationDetailResponse maps an application joined with its project
// and volunteer; the organization, when present, nests under the project.
func NewApplicationDetailResponse(detail *domain.ApplicationDetail) *ApplicationResponse {
	if detail == nil {
		return nil
	}
	resp := NewApplicationResponse(&detail.Application)
	if detail.Project != nil {
		resp.Project = NewProjectResponse(detail.Project)
		if detail.Organization != nil {
			resp.Project.Organization = NewUserResponse(detail.Organization)
		}
	}
	resp.Volunteer = NewUserResponse(detail.Volunteer)
	return resp
}
