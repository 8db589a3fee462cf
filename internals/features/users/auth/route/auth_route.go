package route

import (
	"assessku_backend/internals/features/users/auth/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes: /api/auth (publik, login di-rate limit).
func AuthRoutes(app *fiber.App, db *gorm.DB, loginLimiter fiber.Handler, authJWT fiber.Handler) {
	authCtrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", loginLimiter, authCtrl.Login) // 🔐 Login email + password
	auth.Post("/logout", authJWT, authCtrl.Logout)    // 🚪 Logout (blacklist token)
}

// MeRoutes: /api/u/me
func MeRoutes(user fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)
	user.Get("/me", authCtrl.Me) // 👤 Profil user login
}
