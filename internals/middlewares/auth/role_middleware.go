package auth

import (
	"log"

	"assessku_backend/internals/constants"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

// RoleMiddlewareWithCustomError validasi role + custom error message
func RoleMiddlewareWithCustomError(allowedRoles []constants.Role, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helperAuth.GetRole(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if constants.HasRole(role, allowedRoles) {
			return c.Next()
		}

		log.Printf("[WARN] role %s ditolak di %s %s", role, c.Method(), c.Path())
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
