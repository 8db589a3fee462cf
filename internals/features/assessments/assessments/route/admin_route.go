package route

import (
	"assessku_backend/internals/features/assessments/assessments/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AssessmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	assessmentCtrl := controller.NewAssessmentController(db)

	// Group: /assessments
	assessments := admin.Group("/assessments")
	assessments.Post("/", assessmentCtrl.Create)             // ➕ Buat assessment dari bank soal
	assessments.Put("/:id/users", assessmentCtrl.AssignUsers) // 👥 Ganti user yang ditugaskan
}
