package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/repository"
	"github.com/spec-kit/volunteerhub/internal/service"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// ProjectsHandler exposes project browsing and organization CRUD endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService}
}

// List handles GET /api/projects. Public; active projects only, joined
// with their organization, newest first.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProjectFilter{
		Category: queryParam(c, "category"),
		State:    queryParam(c, "state"),
		City:     queryParam(c, "city"),
		Location: queryParam(c, "location"),
		Search:   queryParam(c, "search"),
	}

	projects, err := h.projects.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, dto.NewProjectWithOrganizationResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"projects": responses})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"project": dto.NewProjectWithOrganizationResponse(project)})
}

// ListMine handles GET /api/my-projects; all statuses, caller's own only.
func (h *ProjectsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	projects, err := h.projects.ListMine(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"projects": responses})
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateCreateProject(&req); err != nil {
		return err
	}

	project, err := h.projects.Create(c.UserContext(), principal.User, service.ProjectCreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Location:         req.Location,
		State:            req.State,
		City:             req.City,
		SkillsRequired:   req.SkillsRequired,
		TimeCommitment:   req.TimeCommitment,
		VolunteersNeeded: req.VolunteersNeeded,
		ImageURL:         req.ImageURL,
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Project created successfully",
		"project": dto.NewProjectResponse(project),
	})
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VolunteersNeeded != nil && *req.VolunteersNeeded < 1 {
		return apperrors.NewValidationError("volunteersNeeded must be at least 1", nil)
	}
	if req.Status != nil && !req.Status.Valid() {
		return apperrors.NewValidationError("status must be active, completed or paused", nil)
	}

	project, err := h.projects.Update(c.UserContext(), principal.User.ID, c.Params("id"), repository.ProjectPatch{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Location:         req.Location,
		State:            req.State,
		City:             req.City,
		SkillsRequired:   req.SkillsRequired,
		TimeCommitment:   req.TimeCommitment,
		VolunteersNeeded: req.VolunteersNeeded,
		ImageURL:         req.ImageURL,
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Project updated successfully",
		"project": dto.NewProjectResponse(project),
	})
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access token required")
	}

	if err := h.projects.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Project deleted successfully"})
}

func validateCreateProject(req *dto.CreateProjectRequest) error {
	details := map[string]any{}
	required := map[string]string{
		"title":          req.Title,
		"description":    req.Description,
		"category":       req.Category,
		"location":       req.Location,
		"state":          req.State,
		"city":           req.City,
		"timeCommitment": req.TimeCommitment,
	}
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			details[field] = field + " is required"
		}
	}
	if req.VolunteersNeeded < 1 {
		details["volunteersNeeded"] = "volunteersNeeded must be at least 1"
	}
	if req.Status != "" && !req.Status.Valid() {
		details["status"] = "status must be active, completed or paused"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid project payload", details)
	}
	return nil
}

func queryParam(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}
