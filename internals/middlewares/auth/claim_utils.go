// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx, allowCookie bool) (string, error) {
	// 1) Authorization header, fallback cookie
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" && allowCookie {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// 2) toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}

	// 3) buang kutip di kiri/kanan
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}
