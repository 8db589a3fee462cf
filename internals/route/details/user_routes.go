package details

import (
	userRoute "assessku_backend/internals/features/users/user/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN ===================== */
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(r, db)
}
