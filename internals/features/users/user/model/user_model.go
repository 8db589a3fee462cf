package model

import (
	"strings"
	"time"

	"assessku_backend/internals/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string         `gorm:"size:100;not null" json:"user_name"`
	Email    string         `gorm:"size:255;uniqueIndex:uq_users_email;not null" json:"email"`
	Password string         `gorm:"not null" json:"-"`
	Role     constants.Role `gorm:"type:varchar(32);not null;default:'ASSESSOR';index" json:"role"`
	IsActive bool           `gorm:"not null;default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = constants.RoleAssessor
	}
	return nil
}

// NormalizeEmail: email dibandingkan case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
