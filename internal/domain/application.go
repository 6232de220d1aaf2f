package domain

import "time"

// ApplicationStatus enumerates application outcomes.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether the status is a known value.
func (s ApplicationStatus) Valid() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application is a volunteer's request to join a project. At most one
// application exists per (project, volunteer) pair.
type Application struct {
	ID          string
	ProjectID   string
	VolunteerID string
	Status      ApplicationStatus
	Message     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationDetail joins an application with the related project and
// volunteer rows needed by the list and detail views. Organization is only
// populated on the cross-project organization view.
type ApplicationDetail struct {
	Application
	Project      *Project
	Volunteer    *User
	Organization *User
}
