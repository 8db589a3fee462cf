// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	authModel "assessku_backend/internals/features/users/auth/model"
	userModel "assessku_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).
		Where("email = ?", userModel.NormalizeEmail(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func TouchLastLogin(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

// IsUserActive: found=false kalau user tidak ada.
func IsUserActive(ctx context.Context, db *gorm.DB, userID uuid.UUID) (active bool, found bool, err error) {
	var row struct {
		IsActive bool
	}
	res := db.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Select("is_active").
		Where("id = ?", userID).
		Limit(1).
		Find(&row)
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, false, nil
	}
	return row.IsActive, true, nil
}

/* ====================== TOKEN BLACKLIST ====================== */

// HashToken: token disimpan sebagai sha256 hex.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func BlacklistToken(ctx context.Context, db *gorm.DB, token string, expiredAt time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&authModel.TokenBlacklist{
			Token:     HashToken(token),
			ExpiredAt: expiredAt,
		}).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ?", HashToken(token)).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpiredBlacklist: hapus permanen entri yang expired sebelum `before` (maks limit baris).
func PurgeExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time, limit int) (int64, error) {
	var ids []uint
	if err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Unscoped().
		Where("expired_at < ?", before).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
