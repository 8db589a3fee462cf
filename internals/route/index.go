// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"assessku_backend/internals/configs"
	"assessku_backend/internals/constants"
	middlewares "assessku_backend/internals/middlewares"
	authMiddleware "assessku_backend/internals/middlewares/auth"
	routeDetails "assessku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	authJWT := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		DB:                  db,
		AllowCookieFallback: true,
	})

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, middlewares.LoginRateLimiter(), authJWT)

	// ===================== GROUPS =====================

	// PRIVATE (USER) → semua role yang login; akses halaman dicek per route
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authJWT)

	// ADMIN → token + role ADMIN
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authJWT,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola data master"), constants.RoleAdmin),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting User routes...")
	routeDetails.AuthUserRoutes(private, db)
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Question routes...")
	routeDetails.QuestionUserRoutes(private, db)
	routeDetails.QuestionAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Client routes...")
	routeDetails.ClientAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Assessment routes...")
	routeDetails.AssessmentUserRoutes(private, db)
	routeDetails.AssessmentAdminRoutes(admin, db)

	log.Println("[INFO] All routes mounted ✅")
}
