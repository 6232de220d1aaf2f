package domain

import "time"

// UserRole distinguishes volunteers from organizations.
type UserRole string

const (
	RoleVolunteer    UserRole = "volunteer"
	RoleOrganization UserRole = "organization"
)

// Valid reports whether the role is one of the two known values.
func (r UserRole) Valid() bool {
	return r == RoleVolunteer || r == RoleOrganization
}

// User is the domain model for volunteer and organization accounts.
// The role is set at registration and never changed by any update path.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Role           UserRole
	Phone          *string
	Location       *string
	Skills         []string
	Bio            *string
	ProfilePicture *string
	Verified       bool
	LegacyAuthID   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
