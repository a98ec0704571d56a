package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/domain"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// RequireRole ensures the caller holds one of the allowed roles. Trusted
// service-to-service principals always pass.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Service || len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is authenticated, any role.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
