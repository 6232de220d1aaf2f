package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/domain"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// RequireRole ensures the authenticated caller carries the given role.
func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("access token required")
		}
		if principal.Role() != role {
			return apperrors.NewForbidden(fmt.Sprintf("%s role required", role))
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is authenticated with any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("access token required")
		}
		return c.Next()
	}
}
