package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

const forbiddenMessage = "Insufficient permissions to access the specified resource"

// RequireRoles must run after the auth middleware.
func RequireRoles(roles ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := Caller(c)
		if caller == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": unauthorizedMessage})
		}
		if !caller.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": forbiddenMessage})
		}
		return c.Next()
	}
}
