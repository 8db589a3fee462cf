package controller

import (
	"strings"

	"assessku_backend/internals/configs"
	"assessku_backend/internals/features/users/auth/service"
	userDto "assessku_backend/internals/features/users/user/dto"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	V   *validator.Validate
	Svc *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:  db,
		V:   validator.New(),
		Svc: service.NewAuthService(db, configs.JWTSecret, configs.AccessTokenTTL),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := ac.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ac.Svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": res.AccessToken,
		"token_type":   res.TokenType,
		"expires_at":   res.ExpiresAt,
		"user":         userDto.ToUserResponse(&res.User),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tok, err := helperAuth.GetAccessToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ac.Svc.Logout(c.Context(), tok); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/u/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := ac.Svc.Me(c.Context(), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", userDto.ToUserResponse(user))
}
