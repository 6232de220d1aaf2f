package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/service"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// AuthHandler exposes account registration, login and the current-user
// endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateRegister(&req); err != nil {
		return err
	}

	user, token, _, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      req.UserType,
		Phone:     req.Phone,
		Location:  req.Location,
		Skills:    req.Skills,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.NewUserResponse(user),
		Token:   token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
		Token:   token,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	user, err := h.auth.CurrentUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

func validateRegister(req *dto.RegisterRequest) error {
	details := map[string]any{}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "valid email required"
	}
	if len(req.Password) < 6 {
		details["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		details["firstName"] = "first name required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		details["lastName"] = "last name required"
	}
	if !req.UserType.Valid() {
		details["userType"] = "userType must be volunteer or organization"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid registration payload", details)
	}
	return nil
}
