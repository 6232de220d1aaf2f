package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/service"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// ApplicationsHandler exposes the application lifecycle endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService}
}

// Create handles POST /api/applications.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return apperrors.NewValidationError("projectId is required", nil)
	}

	detail, err := h.applications.Apply(c.UserContext(), principal.User.ID, service.ApplicationCreateInput{
		ProjectID: req.ProjectID,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": dto.NewApplicationDetailResponse(detail),
	})
}

// ListMine handles GET /api/my-applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	applications, err := h.applications.ListMine(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": detailResponses(applications)})
}

// ListByProject handles GET /api/projects/:id/applications.
func (h *ApplicationsHandler) ListByProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	applications, err := h.applications.ListForProject(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": detailResponses(applications)})
}

// ListByOrganization handles GET /api/organization/applications.
func (h *ApplicationsHandler) ListByOrganization(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	applications, err := h.applications.ListForOrganization(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": detailResponses(applications)})
}

// UpdateStatus handles PUT /api/applications/:id.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Status.Valid() {
		return apperrors.NewValidationError("status must be pending, accepted or rejected", nil)
	}

	detail, err := h.applications.UpdateStatus(c.UserContext(), principal.User.ID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Application status updated successfully",
		"application": dto.NewApplicationDetailResponse(detail),
	})
}

// Withdraw handles DELETE /api/applications/:id.
func (h *ApplicationsHandler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	if err := h.applications.Withdraw(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Application withdrawn successfully"})
}

func detailResponses(applications []domain.ApplicationDetail) []*dto.ApplicationResponse {
	responses := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, dto.NewApplicationDetailResponse(&applications[i]))
	}
	return responses
}
