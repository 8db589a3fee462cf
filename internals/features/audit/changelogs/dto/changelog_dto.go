// file: internals/features/audit/changelogs/dto/changelog_dto.go
package dto

import (
	"time"

	"assessku_backend/internals/features/audit/changelogs/model"

	"github.com/google/uuid"
)

type ChangelogResponse struct {
	ChangelogID          uuid.UUID `json:"changelog_id"`
	ChangelogEntityType  string    `json:"changelog_entity_type"`
	ChangelogEntityID    uuid.UUID `json:"changelog_entity_id"`
	ChangelogField       string    `json:"changelog_field"`
	ChangelogFormerValue *string   `json:"changelog_former_value"`
	ChangelogNewValue    *string   `json:"changelog_new_value"`
	ChangelogUpdatedAt   time.Time `json:"changelog_updated_at"`
	ChangelogUpdatedBy   uuid.UUID `json:"changelog_updated_by"`
}

func FromModel(m model.ChangelogModel) ChangelogResponse {
	return ChangelogResponse{
		ChangelogID:          m.ChangelogID,
		ChangelogEntityType:  string(m.ChangelogEntityType),
		ChangelogEntityID:    m.ChangelogEntityID,
		ChangelogField:       m.ChangelogField,
		ChangelogFormerValue: m.ChangelogFormerValue,
		ChangelogNewValue:    m.ChangelogNewValue,
		ChangelogUpdatedAt:   m.ChangelogUpdatedAt,
		ChangelogUpdatedBy:   m.ChangelogUpdatedBy,
	}
}

func FromModels(rows []model.ChangelogModel) []ChangelogResponse {
	out := make([]ChangelogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
