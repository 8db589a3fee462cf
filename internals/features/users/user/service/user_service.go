package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"assessku_backend/internals/constants"
	authService "assessku_backend/internals/features/users/auth/service"
	"assessku_backend/internals/features/users/user/dto"
	"assessku_backend/internals/features/users/user/model"
	helper "assessku_backend/internals/helpers"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type ListFilter struct {
	Search   string
	Role     *constants.Role
	IsActive *bool
}

func (s *UserService) List(ctx context.Context, f ListFilter, order string, offset, limit int) ([]model.UserModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if v := strings.ToLower(strings.TrimSpace(f.Search)); v != "" {
		like := "%" + v + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	if err := q.Order(order).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var m model.UserModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s tidak ditemukan", id)
		}
		return nil, err
	}
	return &m, nil
}

// Create: password di-hash bcrypt; email unik.
func (s *UserService) Create(ctx context.Context, m *model.UserModel) error {
	if !m.Role.Valid() {
		return apperr.InvalidInput("role %q tidak dikenal", m.Role)
	}
	hash, err := authService.HashPassword(m.Password)
	if err != nil {
		return apperr.InvalidInput("%s", err.Error())
	}
	m.Password = hash
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Conflict("email %s sudah terdaftar", m.Email)
		}
		return err
	}
	log.Printf("[UserService] created user=%s role=%s", m.ID, m.Role)
	return nil
}

// Update: partial (nama, role, aktif, password).
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	up := map[string]any{}
	if req.UserName != nil {
		up["user_name"] = *req.UserName
	}
	if req.Role != nil {
		r, ok := constants.ParseRole(*req.Role)
		if !ok {
			return nil, apperr.InvalidInput("role %q tidak dikenal", *req.Role)
		}
		up["role"] = r
	}
	if req.IsActive != nil {
		up["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := authService.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.InvalidInput("%s", err.Error())
		}
		up["password"] = hash
	}
	if len(up) == 0 {
		return m, nil
	}
	if err := s.DB.WithContext(ctx).Model(m).Updates(up).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
