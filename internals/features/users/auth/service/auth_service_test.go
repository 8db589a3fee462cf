package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"assessku_backend/internals/constants"
	authModel "assessku_backend/internals/features/users/auth/model"
	authRepo "assessku_backend/internals/features/users/auth/repository"
	"assessku_backend/internals/features/users/auth/scheduler"
	userModel "assessku_backend/internals/features/users/user/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, role constants.Role, active bool) *userModel.UserModel {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u := &userModel.UserModel{UserName: "tester", Email: email, Password: hash, Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	if !active {
		require.NoError(t, db.Model(u).Update("is_active", false).Error)
	}
	return u
}

func fiberStatus(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "Lead@Example.com", "rahasia123", constants.RoleLeadAssessor, true)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := NewAuthService(db, testSecret, time.Hour).WithClock(func() time.Time { return now })

	res, err := svc.Login(context.Background(), " lead@example.com ", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, now.Add(time.Hour), res.ExpiresAt)

	claims, err := ParseAccessToken(res.AccessToken, testSecret, now, 0)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, constants.RoleLeadAssessor, claims.Role)

	stored, err := authRepo.FindUserByID(context.Background(), db, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginRejections(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "a@example.com", "rahasia123", constants.RoleAssessor, true)
	seedUser(t, db, "off@example.com", "rahasia123", constants.RoleAssessor, false)
	svc := NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@example.com", "salah12345")
	assert.Equal(t, fiber.StatusUnauthorized, fiberStatus(err))

	_, err = svc.Login(ctx, "nobody@example.com", "rahasia123")
	assert.Equal(t, fiber.StatusUnauthorized, fiberStatus(err))

	_, err = svc.Login(ctx, "off@example.com", "rahasia123")
	assert.Equal(t, fiber.StatusForbidden, fiberStatus(err))
}

func TestParseAccessTokenExpiryAndSignature(t *testing.T) {
	u := userModel.UserModel{ID: uuid.New(), Role: constants.RoleAdmin}
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tok, _, err := IssueAccessToken(u, testSecret, time.Minute, now)
	require.NoError(t, err)

	_, err = ParseAccessToken(tok, testSecret, now.Add(2*time.Minute), 30*time.Second)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = ParseAccessToken(tok, testSecret, now.Add(70*time.Second), 30*time.Second)
	assert.NoError(t, err)

	_, err = ParseAccessToken(tok, "other-secret", now, 0)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = IssueAccessToken(u, "", time.Minute, now)
	assert.Error(t, err)
}

func TestLogoutBlacklistsAndCleanupPurges(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "x@example.com", "rahasia123", constants.RoleAssessor, true)
	now := time.Now().UTC()
	svc := NewAuthService(db, testSecret, time.Hour).WithClock(func() time.Time { return now })
	ctx := context.Background()

	res, err := svc.Login(ctx, "x@example.com", "rahasia123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, res.AccessToken))
	// logout kedua idempotent
	require.NoError(t, svc.Logout(ctx, res.AccessToken))

	black, err := authRepo.IsTokenBlacklisted(ctx, db, res.AccessToken)
	require.NoError(t, err)
	assert.True(t, black)

	assert.EqualValues(t, 0, scheduler.RunBlacklistCleanup(ctx, db, now))
	assert.EqualValues(t, 1, scheduler.RunBlacklistCleanup(ctx, db, now.Add(2*time.Hour)))

	black, err = authRepo.IsTokenBlacklisted(ctx, db, res.AccessToken)
	require.NoError(t, err)
	assert.False(t, black)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("abcd1234"))
}
