package route

import (
	"assessku_backend/internals/features/questions/questions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuestionUserRoutes(user fiber.Router, db *gorm.DB) {
	questionCtrl := controller.NewQuestionController(db)

	user.Get("/questions/:id/ratings", questionCtrl.Ratings) // 📖 Rubrik (read-only)
}
