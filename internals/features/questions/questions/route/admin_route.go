package route

import (
	"assessku_backend/internals/features/assessments/access"
	"assessku_backend/internals/features/questions/questions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuestionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	questionCtrl := controller.NewQuestionController(db)

	// Group: /questions
	questions := admin.Group("/questions", access.Guard(access.PageQuestionBank, nil))
	questions.Get("/", questionCtrl.List)                     // 📄 Bank soal
	questions.Post("/", questionCtrl.Create)                  // ➕ Tambah soal
	questions.Get("/:id", questionCtrl.Get)                   // 🔍 Detail soal
	questions.Patch("/:id", questionCtrl.Patch)               // ✏️ Edit soal (tercatat di changelog)
	questions.Delete("/:id", questionCtrl.Delete)             // ❌ Hapus soal (soft)
	questions.Put("/:id/ratings", questionCtrl.UpsertRatings) // 🧮 Rubrik level 1..5
	questions.Get("/:id/changelog", questionCtrl.History)     // 🕓 Riwayat perubahan
}
