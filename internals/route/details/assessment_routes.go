package details

import (
	AssessmentRoutes "assessku_backend/internals/features/assessments/assessments/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== USER (PRIVATE) ===================== */
// Akses per halaman dicek access.Guard (role × status × assignment).
func AssessmentUserRoutes(r fiber.Router, db *gorm.DB) {
	AssessmentRoutes.AssessmentUserRoutes(r, db)
}

/* ===================== ADMIN ===================== */
func AssessmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	AssessmentRoutes.AssessmentAdminRoutes(r, db)
}
