package controller

import (
	"errors"
	"strconv"
	"strings"

	"assessku_backend/internals/features/clients/clients/dto"
	"assessku_backend/internals/features/clients/clients/model"
	ceModel "assessku_backend/internals/features/clients/engagements/model"
	helper "assessku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientController struct {
	DB *gorm.DB
	V  *validator.Validate
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db, V: validator.New()}
}

func (ctl *ClientController) findClient(c *fiber.Ctx) (*model.ClientModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "client id tidak valid")
	}
	var m model.ClientModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Client tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/a/clients?q=&is_active=&page=&per_page=&sort_by=&order=
func (ctl *ClientController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	order, err := p.SafeOrderClause(map[string]string{
		"name":       "client_name",
		"created_at": "client_created_at",
	}, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	q := ctl.DB.WithContext(c.Context()).Model(&model.ClientModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(client_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "is_active harus true/false")
		}
		q = q.Where("client_is_active = ?", b)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	var rows []model.ClientModel
	if err := q.Order(order).Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToClientResponses(rows), helper.BuildMeta(total, p, len(rows)))
}

// GET /api/a/clients/:id
func (ctl *ClientController) Get(c *fiber.Ctx) error {
	m, err := ctl.findClient(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToClientResponse(m))
}

// POST /api/a/clients
func (ctl *ClientController) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama client sudah dipakai")
		}
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Client berhasil dibuat", dto.ToClientResponse(m))
}

// PATCH /api/a/clients/:id
func (ctl *ClientController) Patch(c *fiber.Ctx) error {
	m, err := ctl.findClient(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	up := req.ToUpdates()
	if len(up) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan data", dto.ToClientResponse(m))
	}
	if err := ctl.DB.WithContext(c.Context()).Model(m).Updates(up).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama client sudah dipakai")
		}
		return helper.FromServiceError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).First(m, "client_id = ?", m.ClientID).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Client berhasil diperbarui", dto.ToClientResponse(m))
}

// DELETE /api/a/clients/:id (soft). Ditolak kalau masih punya engagement.
func (ctl *ClientController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findClient(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var n int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&ceModel.EngagementModel{}).
		Where("engagement_client_id = ?", m.ClientID).
		Count(&n).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Client masih memiliki engagement")
	}
	if err := ctl.DB.WithContext(c.Context()).Delete(m).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Client berhasil dihapus", fiber.Map{"client_id": m.ClientID})
}
