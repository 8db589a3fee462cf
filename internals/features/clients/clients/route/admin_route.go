package route

import (
	"assessku_backend/internals/features/assessments/access"
	"assessku_backend/internals/features/clients/clients/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClientAdminRoutes(admin fiber.Router, db *gorm.DB) {
	clientCtrl := controller.NewClientController(db)

	// Group: /clients
	clients := admin.Group("/clients", access.Guard(access.PageClients, nil))
	clients.Get("/", clientCtrl.List)         // 📄 Semua client
	clients.Post("/", clientCtrl.Create)      // ➕ Tambah client
	clients.Get("/:id", clientCtrl.Get)       // 🔍 Detail client
	clients.Patch("/:id", clientCtrl.Patch)   // ✏️ Edit client
	clients.Delete("/:id", clientCtrl.Delete) // ❌ Hapus client
}
