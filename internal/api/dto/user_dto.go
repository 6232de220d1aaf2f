package dto

import (
	"time"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	UserType  domain.UserRole `json:"userType"`
	Phone     *string         `json:"phone"`
	Location  *string         `json:"location"`
	Skills    []string        `json:"skills"`
	Bio       *string         `json:"bio"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest carries the whitelisted self-service profile fields.
type ProfileUpdateRequest struct {
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Phone     *string   `json:"phone"`
	Location  *string   `json:"location"`
	Bio       *string   `json:"bio"`
	Skills    *[]string `json:"skills"`
}

// UserResponse is the account shape returned by every endpoint. The
// credential and migration identifier have no field here, so they can never
// appear in a response at any nesting depth.
type UserResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	UserType       domain.UserRole `json:"userType"`
	Phone          *string         `json:"phone,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Skills         []string        `json:"skills"`
	Bio            *string         `json:"bio,omitempty"`
	ProfilePicture *string         `json:"profilePicture,omitempty"`
	Verified       bool            `json:"verified"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
	Token   string        `json:"token"`
}

// NewUserResponse maps a domain user to its redacted response shape.
func NewUserResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		UserType:       user.Role,
		Phone:          user.Phone,
		Location:       user.Location,
		Skills:         skills,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Verified:       user.Verified,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
