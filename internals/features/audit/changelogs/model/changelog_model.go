// file: internals/features/audit/changelogs/model/changelog_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntityType string

const (
	EntityQuestion EntityType = "question"
	EntityAnswer   EntityType = "answer"
)

// EntityRef: baris yang dilacak changelog-nya.
type EntityRef struct {
	Type EntityType
	ID   uuid.UUID
}

func QuestionRef(id uuid.UUID) EntityRef { return EntityRef{Type: EntityQuestion, ID: id} }
func AnswerRef(id uuid.UUID) EntityRef   { return EntityRef{Type: EntityAnswer, ID: id} }

// ChangelogModel: append-only, tidak pernah di-update / delete.
type ChangelogModel struct {
	ChangelogID          uuid.UUID  `gorm:"column:changelog_id;type:uuid;primaryKey" json:"changelog_id"`
	ChangelogEntityType  EntityType `gorm:"column:changelog_entity_type;type:varchar(16);not null;index:idx_changelogs_entity,priority:1" json:"changelog_entity_type"`
	ChangelogEntityID    uuid.UUID  `gorm:"column:changelog_entity_id;type:uuid;not null;index:idx_changelogs_entity,priority:2" json:"changelog_entity_id"`
	ChangelogField       string     `gorm:"column:changelog_field;type:varchar(64);not null" json:"changelog_field"`
	ChangelogFormerValue *string    `gorm:"column:changelog_former_value;type:text" json:"changelog_former_value"`
	ChangelogNewValue    *string    `gorm:"column:changelog_new_value;type:text" json:"changelog_new_value"`
	ChangelogUpdatedAt   time.Time  `gorm:"column:changelog_updated_at;not null;index:idx_changelogs_entity,priority:3" json:"changelog_updated_at"`
	ChangelogUpdatedBy   uuid.UUID  `gorm:"column:changelog_updated_by;type:uuid;not null" json:"changelog_updated_by"`
}

func (ChangelogModel) TableName() string { return "changelogs" }

func (m *ChangelogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChangelogID == uuid.Nil {
		m.ChangelogID = uuid.New()
	}
	return nil
}

func (m *ChangelogModel) Ref() EntityRef {
	return EntityRef{Type: m.ChangelogEntityType, ID: m.ChangelogEntityID}
}
