package details

import (
	authRoute "assessku_backend/internals/features/users/auth/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, loginLimiter, authJWT fiber.Handler) {
	authRoute.AuthRoutes(app, db, loginLimiter, authJWT)
}

func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	authRoute.MeRoutes(r, db)
}
