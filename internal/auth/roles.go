package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Capability is a permission derived from the caller's role.
type Capability func(domain.Role) bool

var (
	CanManageDictionaries Capability = domain.Role.CanManageDictionaries
	CanManageDepartments  Capability = domain.Role.CanManageDepartments
	CanManageTickets      Capability = domain.Role.CanManageTickets
	CanListUsers          Capability = domain.Role.CanListUsers
)

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// Require ensures the caller's role grants the capability.
func Require(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !capability(principal.Role()) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
