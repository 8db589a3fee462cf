package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementModel: satu kontrak/periode kerja dengan client. Assessment menempel ke sini.
type EngagementModel struct {
	EngagementID       uuid.UUID  `gorm:"column:engagement_id;type:uuid;primaryKey" json:"engagement_id"`
	EngagementClientID uuid.UUID  `gorm:"column:engagement_client_id;type:uuid;not null;index" json:"engagement_client_id"`
	EngagementName     string     `gorm:"column:engagement_name;type:varchar(200);not null" json:"engagement_name"`
	EngagementStartAt  *time.Time `gorm:"column:engagement_start_at" json:"engagement_start_at,omitempty"`
	EngagementEndAt    *time.Time `gorm:"column:engagement_end_at" json:"engagement_end_at,omitempty"`
	EngagementNotes    *string    `gorm:"column:engagement_notes;type:text" json:"engagement_notes,omitempty"`

	EngagementCreatedAt time.Time      `gorm:"column:engagement_created_at;autoCreateTime" json:"engagement_created_at"`
	EngagementUpdatedAt time.Time      `gorm:"column:engagement_updated_at;autoUpdateTime" json:"engagement_updated_at"`
	EngagementDeletedAt gorm.DeletedAt `gorm:"column:engagement_deleted_at;index" json:"engagement_deleted_at,omitempty"`
}

func (EngagementModel) TableName() string { return "engagements" }

func (m *EngagementModel) BeforeCreate(tx *gorm.DB) error {
	if m.EngagementID == uuid.Nil {
		m.EngagementID = uuid.New()
	}
	return nil
}

// Within: tanggal t ada di rentang engagement (batas terbuka kalau nil).
func (m *EngagementModel) Within(t time.Time) bool {
	if m.EngagementStartAt != nil && t.Before(*m.EngagementStartAt) {
		return false
	}
	if m.EngagementEndAt != nil && t.After(*m.EngagementEndAt) {
		return false
	}
	return true
}
