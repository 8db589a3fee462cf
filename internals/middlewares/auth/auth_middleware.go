// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"assessku_backend/internals/features/assessments/workflow"
	authRepo "assessku_backend/internals/features/users/auth/repository"
	authService "assessku_backend/internals/features/users/auth/service"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthJWTOpts struct {
	Secret              string
	DB                  *gorm.DB
	Skew                time.Duration // toleransi exp
	AllowCookieFallback bool
	Now                 func() time.Time
}

// AuthJWT: verifikasi access token, cek blacklist + user aktif, isi locals user_id/userRole.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Skew == 0 {
		opts.Skew = 30 * time.Second
	}
	return func(c *fiber.Ctx) error {
		// 1) Ambil token
		tokenString, err := extractBearerToken(c, opts.AllowCookieFallback)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		if opts.Secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) Parse & verifikasi
		claims, err := authService.ParseAccessToken(tokenString, opts.Secret, opts.Now().UTC(), opts.Skew)
		if err != nil {
			if errors.Is(err, authService.ErrTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			log.Println("[WARN] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token invalid")
		}

		if opts.DB != nil {
			// 3) Blacklist (logout)
			black, err := authRepo.IsTokenBlacklisted(c.Context(), opts.DB, tokenString)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if black {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}

			// 4) User masih ada & aktif
			active, found, err := authRepo.IsUserActive(c.Context(), opts.DB, claims.UserID)
			if err != nil {
				log.Println("[ERROR] ensureUserActive:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if !found {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			if !active {
				return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			}
		}

		// 5) Locals
		helperAuth.SetActor(c, workflow.Actor{ID: claims.UserID, Role: claims.Role})
		c.Locals(helperAuth.LocJWTClaims, claims)
		c.Locals(helperAuth.LocToken, tokenString)
		return c.Next()
	}
}
