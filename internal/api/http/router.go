package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/api/http/handlers"
	"github.com/spec-kit/volunteerhub/internal/auth"
	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/realtime"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Applications   *handlers.ApplicationsHandler
	Stats          *handlers.StatsHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
	Hub            *realtime.Hub
	UploadDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use("/ws", realtime.UpgradeMiddleware())
	app.Get("/ws", cfg.Hub.Handler())

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Put("/:id", cfg.Users.Update)
	users.Post("/:id/upload-profile-picture", cfg.Users.UploadProfilePicture)

	api.Get("/projects", cfg.Projects.List)
	api.Get("/my-projects", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Projects.ListMine)
	api.Post("/projects", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Projects.Create)
	api.Get("/projects/:id/applications", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Applications.ListByProject)
	api.Get("/projects/:id", cfg.Projects.Get)
	api.Put("/projects/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Projects.Update)
	api.Delete("/projects/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Projects.Delete)

	api.Post("/applications", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleVolunteer), cfg.Applications.Create)
	api.Get("/my-applications", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleVolunteer), cfg.Applications.ListMine)
	api.Get("/organization/applications", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Applications.ListByOrganization)
	api.Put("/applications/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOrganization), cfg.Applications.UpdateStatus)
	api.Delete("/applications/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleVolunteer), cfg.Applications.Withdraw)

	api.Get("/stats", cfg.Stats.Get)
	api.Post("/contact", cfg.Contact.Submit)
}
