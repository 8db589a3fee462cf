package dto

import (
	"strings"
	"time"

	"assessku_backend/internals/constants"
	uModel "assessku_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest: create by admin
type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN ASSESSOR LEAD_ASSESSOR OVERSIGHT_ASSESSOR"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Normalize: trim & normalisasi dasar
func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = uModel.NormalizeEmail(r.Email)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

// ToModel: password belum di-hash (service yang hash)
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	m := &uModel.UserModel{
		UserName: r.UserName,
		Email:    r.Email,
		Password: r.Password,
		Role:     constants.Role(r.Role),
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest: partial update
type UpdateUserRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN ASSESSOR LEAD_ASSESSOR OVERSIGHT_ASSESSOR"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.Role != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserName    string     `json:"user_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToUserResponse(m *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:          m.ID,
		UserName:    m.UserName,
		Email:       m.Email,
		Role:        string(m.Role),
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserResponses(rows []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToUserResponse(&rows[i]))
	}
	return out
}
