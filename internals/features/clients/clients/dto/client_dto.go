package dto

import (
	"strings"
	"time"

	"assessku_backend/internals/features/clients/clients/model"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	ClientName         string  `json:"client_name" validate:"required,min=2,max=160"`
	ClientIndustry     *string `json:"client_industry" validate:"omitempty,max=120"`
	ClientContactName  *string `json:"client_contact_name" validate:"omitempty,max=120"`
	ClientContactEmail *string `json:"client_contact_email" validate:"omitempty,email"`
}

func (r *CreateClientRequest) ToModel() *model.ClientModel {
	return &model.ClientModel{
		ClientName:        strings.TrimSpace(r.ClientName),
		ClientIndustry:    trimPtr(r.ClientIndustry),
		ClientContactName: trimPtr(r.ClientContactName),
		ClientContactMail: trimPtr(r.ClientContactEmail),
		ClientIsActive:    true,
	}
}

type UpdateClientRequest struct {
	ClientName         *string `json:"client_name" validate:"omitempty,min=2,max=160"`
	ClientIndustry     *string `json:"client_industry" validate:"omitempty,max=120"`
	ClientContactName  *string `json:"client_contact_name" validate:"omitempty,max=120"`
	ClientContactEmail *string `json:"client_contact_email" validate:"omitempty,email"`
	ClientIsActive     *bool   `json:"client_is_active"`
}

// ToUpdates: hanya kolom yang dikirim.
func (r *UpdateClientRequest) ToUpdates() map[string]any {
	up := map[string]any{}
	if r.ClientName != nil {
		up["client_name"] = strings.TrimSpace(*r.ClientName)
	}
	if r.ClientIndustry != nil {
		up["client_industry"] = trimPtr(r.ClientIndustry)
	}
	if r.ClientContactName != nil {
		up["client_contact_name"] = trimPtr(r.ClientContactName)
	}
	if r.ClientContactEmail != nil {
		up["client_contact_email"] = trimPtr(r.ClientContactEmail)
	}
	if r.ClientIsActive != nil {
		up["client_is_active"] = *r.ClientIsActive
	}
	return up
}

type ClientResponse struct {
	ClientID           uuid.UUID `json:"client_id"`
	ClientName         string    `json:"client_name"`
	ClientIndustry     *string   `json:"client_industry,omitempty"`
	ClientContactName  *string   `json:"client_contact_name,omitempty"`
	ClientContactEmail *string   `json:"client_contact_email,omitempty"`
	ClientIsActive     bool      `json:"client_is_active"`
	ClientCreatedAt    time.Time `json:"client_created_at"`
	ClientUpdatedAt    time.Time `json:"client_updated_at"`
}

func ToClientResponse(m *model.ClientModel) ClientResponse {
	return ClientResponse{
		ClientID:           m.ClientID,
		ClientName:         m.ClientName,
		ClientIndustry:     m.ClientIndustry,
		ClientContactName:  m.ClientContactName,
		ClientContactEmail: m.ClientContactMail,
		ClientIsActive:     m.ClientIsActive,
		ClientCreatedAt:    m.ClientCreatedAt,
		ClientUpdatedAt:    m.ClientUpdatedAt,
	}
}

func ToClientResponses(rows []model.ClientModel) []ClientResponse {
	out := make([]ClientResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToClientResponse(&rows[i]))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
