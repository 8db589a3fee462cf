// file: internals/features/questions/questions/controller/question_controller.go
package controller

import (
	"strconv"
	"strings"

	clController "assessku_backend/internals/features/audit/changelogs/controller"
	clDto "assessku_backend/internals/features/audit/changelogs/dto"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	"assessku_backend/internals/features/questions/questions/dto"
	"assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/features/questions/questions/service"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionController struct {
	DB        *gorm.DB
	V         *validator.Validate
	Svc       *service.QuestionService
	Changelog *clController.ChangelogController
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{
		DB:        db,
		V:         validator.New(),
		Svc:       service.NewQuestionService(db),
		Changelog: clController.NewChangelogController(db),
	}
}

func parseQuestionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "question id tidak valid")
	}
	return id, nil
}

// GET /api/a/questions?q=&pillar=&is_active=&page=&per_page=&sort_by=&order=
func (ctl *QuestionController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "number", "asc", helper.AdminOpts)
	order, err := p.SafeOrderClause(map[string]string{
		"number":     "question_number",
		"created_at": "question_created_at",
		"updated_at": "question_updated_at",
	}, "number")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	f := service.ListFilter{
		Search: c.Query("q"),
		Pillar: c.Query("pillar"),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "is_active harus true/false")
		}
		f.IsActive = &b
	}

	rows, total, err := ctl.Svc.List(c.Context(), f, order, p.Offset(), p.Limit())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToQuestionResponses(rows), helper.BuildMeta(total, p, len(rows)))
}

// GET /api/a/questions/:id
func (ctl *QuestionController) Get(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Svc.Get(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToQuestionResponse(m))
}

// POST /api/a/questions
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := ctl.Svc.Create(c.Context(), m); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Question berhasil dibuat", dto.ToQuestionResponse(m))
}

// PATCH /api/a/questions/:id
func (ctl *QuestionController) Patch(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PatchQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, changes, err := ctl.Svc.Update(c.Context(), id, req.Apply, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Question berhasil diperbarui", fiber.Map{
		"question": dto.ToQuestionResponse(m),
		"changes":  clDto.FromModels(changes),
	})
}

// DELETE /api/a/questions/:id
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Svc.Delete(c.Context(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Question berhasil dihapus", fiber.Map{"question_id": id})
}

// GET /api/u/questions/:id/ratings
func (ctl *QuestionController) Ratings(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Svc.Get(c.Context(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := ctl.Svc.Ratings(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", ratingsOut(rows))
}

// PUT /api/a/questions/:id/ratings
func (ctl *QuestionController) UpsertRatings(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpsertRatingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	rows, err := ctl.Svc.UpsertRatings(c.Context(), id, req.ToModels())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Rubrik rating disimpan", ratingsOut(rows))
}

// GET /api/a/questions/:id/changelog
func (ctl *QuestionController) History(c *fiber.Ctx) error {
	id, err := parseQuestionID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.Changelog.History(c, clModel.QuestionRef(id))
}

func ratingsOut(rows []model.RatingModel) []fiber.Map {
	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"rating_id":          r.RatingID,
			"rating_level":       r.RatingLevel,
			"rating_criteria":    r.RatingCriteria,
			"rating_progression": r.RatingProgression,
		})
	}
	return out
}
