package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientModel: organisasi yang di-assess.
type ClientModel struct {
	ClientID          uuid.UUID `gorm:"column:client_id;type:uuid;primaryKey" json:"client_id"`
	ClientName        string    `gorm:"column:client_name;type:varchar(160);not null;uniqueIndex:uq_clients_name" json:"client_name"`
	ClientIndustry    *string   `gorm:"column:client_industry;type:varchar(120)" json:"client_industry,omitempty"`
	ClientContactName *string   `gorm:"column:client_contact_name;type:varchar(120)" json:"client_contact_name,omitempty"`
	ClientContactMail *string   `gorm:"column:client_contact_email;type:varchar(255)" json:"client_contact_email,omitempty"`
	ClientIsActive    bool      `gorm:"column:client_is_active;not null;default:true" json:"client_is_active"`

	ClientCreatedAt time.Time      `gorm:"column:client_created_at;autoCreateTime" json:"client_created_at"`
	ClientUpdatedAt time.Time      `gorm:"column:client_updated_at;autoUpdateTime" json:"client_updated_at"`
	ClientDeletedAt gorm.DeletedAt `gorm:"column:client_deleted_at;index" json:"client_deleted_at,omitempty"`
}

func (ClientModel) TableName() string { return "clients" }

func (m *ClientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClientID == uuid.Nil {
		m.ClientID = uuid.New()
	}
	return nil
}
