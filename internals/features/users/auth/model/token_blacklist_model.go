package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist: access token yang sudah logout. Disimpan sebagai sha256 hex, bukan token mentah.
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"token"`
	ExpiredAt time.Time      `gorm:"index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
