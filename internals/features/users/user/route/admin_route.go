package route

import (
	"assessku_backend/internals/features/assessments/access"
	"assessku_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	// Group: /users
	users := admin.Group("/users", access.Guard(access.PageUsers, nil))
	users.Get("/", userCtrl.List)       // 📄 Semua user
	users.Post("/", userCtrl.Create)    // ➕ Tambah user
	users.Get("/:id", userCtrl.Get)     // 🔍 Detail user
	users.Patch("/:id", userCtrl.Patch) // ✏️ Role / nama / aktif / password
}
