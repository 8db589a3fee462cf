package details

import (
	QuestionRoutes "assessku_backend/internals/features/questions/questions/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== USER (PRIVATE) ===================== */
func QuestionUserRoutes(r fiber.Router, db *gorm.DB) {
	QuestionRoutes.QuestionUserRoutes(r, db)
}

/* ===================== ADMIN ===================== */
func QuestionAdminRoutes(r fiber.Router, db *gorm.DB) {
	QuestionRoutes.QuestionAdminRoutes(r, db)
}
