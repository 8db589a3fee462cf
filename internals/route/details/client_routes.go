package details

import (
	ClientRoutes "assessku_backend/internals/features/clients/clients/route"
	EngagementRoutes "assessku_backend/internals/features/clients/engagements/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN ===================== */
// Client & engagement hanya dikelola ADMIN.
func ClientAdminRoutes(r fiber.Router, db *gorm.DB) {
	ClientRoutes.ClientAdminRoutes(r, db)
	EngagementRoutes.EngagementAdminRoutes(r, db)
}
