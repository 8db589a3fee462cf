package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	authRepo "assessku_backend/internals/features/users/auth/repository"
	userModel "assessku_backend/internals/features/users/user/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TTL: ttl, now: time.Now}
}

func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	cp := *s
	cp.now = now
	return &cp
}

type LoginResult struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        userModel.UserModel `json:"user"`
}

var errBadCredentials = fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")

/* ==========================
   LOGIN (email + password)
========================== */

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Email dan password wajib diisi")
	}

	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := CheckPasswordHash(user.Password, password); err != nil {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	now := s.now().UTC()
	tok, exp, err := IssueAccessToken(*user, s.Secret, s.TTL, now)
	if err != nil {
		return nil, err
	}
	if err := authRepo.TouchLastLogin(ctx, s.DB, user.ID, now); err != nil {
		log.Printf("[AuthService] touch last_login_at user=%s: %v", user.ID, err)
	}
	user.LastLoginAt = &now
	log.Printf("[AuthService] login user=%s role=%s", user.ID, user.Role)
	return &LoginResult{AccessToken: tok, TokenType: "Bearer", ExpiresAt: exp, User: *user}, nil
}

/* ==========================
   LOGOUT → blacklist token
========================== */

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := ParseAccessToken(token, s.Secret, s.now().UTC(), 0)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil
		}
		return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid")
	}
	return authRepo.BlacklistToken(ctx, s.DB, token, claims.ExpiresAt)
}

// Me: profil user saat ini.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return user, nil
}
