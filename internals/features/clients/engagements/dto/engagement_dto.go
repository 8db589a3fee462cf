package dto

import (
	"strings"
	"time"

	"assessku_backend/internals/features/clients/engagements/model"

	"github.com/google/uuid"
)

type CreateEngagementRequest struct {
	EngagementClientID uuid.UUID  `json:"engagement_client_id" validate:"required"`
	EngagementName     string     `json:"engagement_name" validate:"required,min=2,max=200"`
	EngagementStartAt  *time.Time `json:"engagement_start_at"`
	EngagementEndAt    *time.Time `json:"engagement_end_at"`
	EngagementNotes    *string    `json:"engagement_notes"`
}

func (r *CreateEngagementRequest) ToModel() *model.EngagementModel {
	return &model.EngagementModel{
		EngagementClientID: r.EngagementClientID,
		EngagementName:     strings.TrimSpace(r.EngagementName),
		EngagementStartAt:  r.EngagementStartAt,
		EngagementEndAt:    r.EngagementEndAt,
		EngagementNotes:    r.EngagementNotes,
	}
}

type UpdateEngagementRequest struct {
	EngagementName    *string    `json:"engagement_name" validate:"omitempty,min=2,max=200"`
	EngagementStartAt *time.Time `json:"engagement_start_at"`
	EngagementEndAt   *time.Time `json:"engagement_end_at"`
	EngagementNotes   *string    `json:"engagement_notes"`
}

// Apply: patch ke model (client tidak bisa dipindah).
func (r *UpdateEngagementRequest) Apply(m *model.EngagementModel) {
	if r.EngagementName != nil {
		m.EngagementName = strings.TrimSpace(*r.EngagementName)
	}
	if r.EngagementStartAt != nil {
		m.EngagementStartAt = r.EngagementStartAt
	}
	if r.EngagementEndAt != nil {
		m.EngagementEndAt = r.EngagementEndAt
	}
	if r.EngagementNotes != nil {
		m.EngagementNotes = r.EngagementNotes
	}
}

// ValidPeriod: end tidak boleh sebelum start.
func ValidPeriod(start, end *time.Time) bool {
	return start == nil || end == nil || !end.Before(*start)
}

type EngagementResponse struct {
	EngagementID        uuid.UUID  `json:"engagement_id"`
	EngagementClientID  uuid.UUID  `json:"engagement_client_id"`
	EngagementName      string     `json:"engagement_name"`
	EngagementStartAt   *time.Time `json:"engagement_start_at,omitempty"`
	EngagementEndAt     *time.Time `json:"engagement_end_at,omitempty"`
	EngagementNotes     *string    `json:"engagement_notes,omitempty"`
	EngagementIsRunning bool       `json:"engagement_is_running"`
	EngagementCreatedAt time.Time  `json:"engagement_created_at"`
	EngagementUpdatedAt time.Time  `json:"engagement_updated_at"`
}

func ToEngagementResponse(m *model.EngagementModel, now time.Time) EngagementResponse {
	return EngagementResponse{
		EngagementID:        m.EngagementID,
		EngagementClientID:  m.EngagementClientID,
		EngagementName:      m.EngagementName,
		EngagementStartAt:   m.EngagementStartAt,
		EngagementEndAt:     m.EngagementEndAt,
		EngagementNotes:     m.EngagementNotes,
		EngagementIsRunning: m.Within(now),
		EngagementCreatedAt: m.EngagementCreatedAt,
		EngagementUpdatedAt: m.EngagementUpdatedAt,
	}
}

func ToEngagementResponses(rows []model.EngagementModel, now time.Time) []EngagementResponse {
	out := make([]EngagementResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToEngagementResponse(&rows[i], now))
	}
	return out
}
