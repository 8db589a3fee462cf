package middlewares

import (
	"time"

	"assessku_backend/internals/metrics"
	"assessku_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares: urutan penting, recovery paling luar.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestIDMiddleware(10 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(metrics.Middleware())
	app.Use(GlobalRateLimiter())
}
