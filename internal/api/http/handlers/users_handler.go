package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/config"
	"github.com/spec-kit/volunteerhub/internal/service"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// Field length bounds for self-service profile edits.
const (
	maxNameLen     = 50
	maxPhoneLen    = 30
	maxLocationLen = 100
	maxBioLen      = 500
)

// UsersHandler exposes profile update and picture upload endpoints.
type UsersHandler struct {
	auth    *service.AuthService
	uploads config.UploadConfig
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, uploads config.UploadConfig) *UsersHandler {
	return &UsersHandler{auth: authService, uploads: uploads}
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateProfileUpdate(&req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), principal.User.ID, c.Params("id"), service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Location:  req.Location,
		Bio:       req.Bio,
		Skills:    req.Skills,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// UploadProfilePicture handles POST /api/users/:id/upload-profile-picture.
// Accepts a single multipart image up to the configured byte limit and
// stores it under a random name so uploads can never collide or traverse.
func (h *UsersHandler) UploadProfilePicture(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	file, err := c.FormFile("profilePicture")
	if err != nil {
		return apperrors.NewValidationError("profile picture file required", nil)
	}
	if file.Size > h.uploads.MaxBytes {
		return apperrors.NewValidationError("file exceeds the maximum allowed size", nil)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return apperrors.NewValidationError("only image files are allowed", nil)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.uploads.Dir, name)); err != nil {
		return apperrors.NewInternalError(err)
	}

	user, err := h.auth.SetProfilePicture(c.UserContext(), principal.User.ID, c.Params("id"), "/uploads/"+name)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile picture uploaded successfully",
		"user":    dto.NewUserResponse(user),
	})
}

func validateProfileUpdate(req *dto.ProfileUpdateRequest) error {
	details := map[string]any{}
	checkLen := func(field string, val *string, max int) {
		if val != nil && len(*val) > max {
			details[field] = "value too long"
		}
	}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		details["firstName"] = "first name cannot be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		details["lastName"] = "last name cannot be empty"
	}
	checkLen("firstName", req.FirstName, maxNameLen)
	checkLen("lastName", req.LastName, maxNameLen)
	checkLen("phone", req.Phone, maxPhoneLen)
	checkLen("location", req.Location, maxLocationLen)
	checkLen("bio", req.Bio, maxBioLen)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid profile payload", details)
	}
	return nil
}
