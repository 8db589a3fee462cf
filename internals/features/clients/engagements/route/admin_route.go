package route

import (
	"assessku_backend/internals/features/assessments/access"
	"assessku_backend/internals/features/clients/engagements/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EngagementAdminRoutes(admin fiber.Router, db *gorm.DB) {
	engagementCtrl := controller.NewEngagementController(db)

	// Group: /engagements
	engagements := admin.Group("/engagements", access.Guard(access.PageClients, nil))
	engagements.Get("/", engagementCtrl.List)         // 📄 Semua engagement (?client_id=)
	engagements.Post("/", engagementCtrl.Create)      // ➕ Tambah engagement
	engagements.Get("/:id", engagementCtrl.Get)       // 🔍 Detail engagement
	engagements.Patch("/:id", engagementCtrl.Patch)   // ✏️ Edit engagement
	engagements.Delete("/:id", engagementCtrl.Delete) // ❌ Hapus engagement
}
