package helper

import (
	"strings"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key c.Locals yang diisi AuthJWT.
const (
	LocUserID    = "user_id"      // string UUID
	LocRole      = "userRole"     // string (constants.Role)
	LocJWTClaims = "jwt_claims"
	LocToken     = "access_token" // token mentah (untuk logout)
)

// GetUserIDFromToken: user_id dari locals. 401 kalau belum login, 400 kalau format rusak.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s = strings.TrimSpace(t)
	case []byte:
		s = strings.TrimSpace(string(t))
	case nil:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}

// GetRole: role dari locals; 401 kalau tidak ada / tidak dikenal.
func GetRole(c *fiber.Ctx) (constants.Role, error) {
	var raw string
	switch t := c.Locals(LocRole).(type) {
	case constants.Role:
		raw = string(t)
	case string:
		raw = t
	}
	r, ok := constants.ParseRole(raw)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Role tidak ditemukan di token")
	}
	return r, nil
}

// GetActor: {id, role} untuk dipakai service.
func GetActor(c *fiber.Ctx) (workflow.Actor, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	role, err := GetRole(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	return workflow.Actor{ID: id, Role: role}, nil
}

// SetActor dipakai middleware (dan test) untuk mengisi locals.
func SetActor(c *fiber.Ctx, a workflow.Actor) {
	c.Locals(LocUserID, a.ID.String())
	c.Locals(LocRole, string(a.Role))
}

// GetAccessToken: token mentah yang diverifikasi AuthJWT.
func GetAccessToken(c *fiber.Ctx) (string, error) {
	tok, _ := c.Locals(LocToken).(string)
	if strings.TrimSpace(tok) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	return tok, nil
}
