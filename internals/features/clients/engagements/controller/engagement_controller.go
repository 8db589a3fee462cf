package controller

import (
	"errors"
	"strings"
	"time"

	asmModel "assessku_backend/internals/features/assessments/assessments/model"
	clientModel "assessku_backend/internals/features/clients/clients/model"
	"assessku_backend/internals/features/clients/engagements/dto"
	"assessku_backend/internals/features/clients/engagements/model"
	helper "assessku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EngagementController struct {
	DB  *gorm.DB
	V   *validator.Validate
	now func() time.Time
}

func NewEngagementController(db *gorm.DB) *EngagementController {
	return &EngagementController{DB: db, V: validator.New(), now: time.Now}
}

func (ctl *EngagementController) findEngagement(c *fiber.Ctx) (*model.EngagementModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "engagement id tidak valid")
	}
	var m model.EngagementModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "engagement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Engagement tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/a/engagements?client_id=&q=&page=&per_page=
func (ctl *EngagementController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "start_at", "desc", helper.AdminOpts)
	order, err := p.SafeOrderClause(map[string]string{
		"start_at":   "engagement_start_at",
		"name":       "engagement_name",
		"created_at": "engagement_created_at",
	}, "start_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	q := ctl.DB.WithContext(c.Context()).Model(&model.EngagementModel{})
	if raw := strings.TrimSpace(c.Query("client_id")); raw != "" {
		cid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "client_id tidak valid")
		}
		q = q.Where("engagement_client_id = ?", cid)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(engagement_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	var rows []model.EngagementModel
	if err := q.Order(order).Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToEngagementResponses(rows, ctl.now()), helper.BuildMeta(total, p, len(rows)))
}

// GET /api/a/engagements/:id
func (ctl *EngagementController) Get(c *fiber.Ctx) error {
	m, err := ctl.findEngagement(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToEngagementResponse(m, ctl.now()))
}

// POST /api/a/engagements
func (ctl *EngagementController) Create(c *fiber.Ctx) error {
	var req dto.CreateEngagementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !dto.ValidPeriod(req.EngagementStartAt, req.EngagementEndAt) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "engagement_end_at tidak boleh sebelum engagement_start_at")
	}

	var n int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&clientModel.ClientModel{}).
		Where("client_id = ?", req.EngagementClientID).
		Count(&n).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Client tidak ditemukan")
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Engagement berhasil dibuat", dto.ToEngagementResponse(m, ctl.now()))
}

// PATCH /api/a/engagements/:id
func (ctl *EngagementController) Patch(c *fiber.Ctx) error {
	m, err := ctl.findEngagement(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateEngagementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(m)
	if !dto.ValidPeriod(m.EngagementStartAt, m.EngagementEndAt) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "engagement_end_at tidak boleh sebelum engagement_start_at")
	}
	if err := ctl.DB.WithContext(c.Context()).Save(m).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Engagement berhasil diperbarui", dto.ToEngagementResponse(m, ctl.now()))
}

// DELETE /api/a/engagements/:id (soft). Ditolak kalau sudah ada assessment.
func (ctl *EngagementController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findEngagement(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var n int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&asmModel.AssessmentModel{}).
		Where("assessment_engagement_id = ?", m.EngagementID).
		Count(&n).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Engagement sudah memiliki assessment")
	}
	if err := ctl.DB.WithContext(c.Context()).Delete(m).Error; err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Engagement berhasil dihapus", fiber.Map{"engagement_id": m.EngagementID})
}
