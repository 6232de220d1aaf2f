package domain

import "time"

// ProjectStatus enumerates lifecycle states for projects.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusPaused    ProjectStatus = "paused"
)

// Valid reports whether the status is a known value.
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusActive || s == ProjectStatusCompleted || s == ProjectStatusPaused
}

// Project is a volunteer opportunity posted by one organization.
// VolunteersJoined and TotalApplications are derived counters maintained by
// the application workflow, never set directly by clients.
type Project struct {
	ID                string
	Title             string
	Description       string
	Category          string
	Location          string
	State             string
	City              string
	OrganizationID    string
	SkillsRequired    []string
	TimeCommitment    string
	VolunteersNeeded  int
	VolunteersJoined  int
	TotalApplications int
	ImageURL          *string
	Status            ProjectStatus
	StartDate         *time.Time
	EndDate           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProjectWithOrganization joins a project with its owning organization.
type ProjectWithOrganization struct {
	Project
	Organization *User
}
