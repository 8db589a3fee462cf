package controller

import (
	"strconv"
	"strings"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/users/user/dto"
	"assessku_backend/internals/features/users/user/service"
	helper "assessku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	V   *validator.Validate
	Svc *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, V: validator.New(), Svc: service.NewUserService(db)}
}

// GET /api/a/users?q=&role=&is_active=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"user_name":  "user_name",
		"email":      "email",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	f := service.ListFilter{Search: c.Query("q")}
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		r, ok := constants.ParseRole(raw)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "role tidak dikenal")
		}
		f.Role = &r
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "is_active harus true/false")
		}
		f.IsActive = &b
	}

	rows, total, err := uc.Svc.List(c.Context(), f, order, p.Offset(), p.Limit())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToUserResponses(rows), helper.BuildMeta(total, p, len(rows)))
}

// GET /api/a/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user id tidak valid")
	}
	m, err := uc.Svc.Get(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(m))
}

// POST /api/a/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := uc.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := uc.Svc.Create(c.Context(), m); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.ToUserResponse(m))
}

// PATCH /api/a/users/:id
func (uc *UserController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user id tidak valid")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := uc.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := uc.Svc.Update(c.Context(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.ToUserResponse(m))
}
