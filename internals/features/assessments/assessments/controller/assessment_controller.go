// file: internals/features/assessments/assessments/controller/assessment_controller.go
package controller

import (
	"strings"

	"assessku_backend/internals/features/assessments/access"
	ansDto "assessku_backend/internals/features/assessments/answers/dto"
	ansRepo "assessku_backend/internals/features/assessments/answers/repository"
	ansService "assessku_backend/internals/features/assessments/answers/service"
	"assessku_backend/internals/features/assessments/assessments/dto"
	"assessku_backend/internals/features/assessments/assessments/repository"
	"assessku_backend/internals/features/assessments/assessments/service"
	"assessku_backend/internals/features/assessments/workflow"
	qService "assessku_backend/internals/features/questions/questions/service"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentController struct {
	DB          *gorm.DB
	V           *validator.Validate
	Lifecycle   *service.LifecycleService
	Aggregate   *service.AggregateService
	Answers     *ansService.AnswerService
	QuestionSvc *qService.QuestionService
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	store := repository.NewGormAssessmentStore(db)
	return &AssessmentController{
		DB:          db,
		V:           validator.New(),
		Lifecycle:   service.NewLifecycleService(store),
		Aggregate:   service.NewAggregateService(store),
		Answers:     ansService.NewAnswerService(ansRepo.NewGormAnswerStore(db)),
		QuestionSvc: qService.NewQuestionService(db),
	}
}

func parseUUIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, label+" tidak valid")
	}
	return id, nil
}

// ResolveTarget: dipakai access.Guard untuk route /assessments/:id/...
func (ctl *AssessmentController) ResolveTarget(c *fiber.Ctx, actor workflow.Actor) (*access.Target, error) {
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return nil, err
	}
	asm, err := ctl.Lifecycle.FindAssessment(c.Context(), id)
	if err != nil {
		return nil, err
	}
	member, err := ctl.Lifecycle.IsMember(c.Context(), id, actor)
	if err != nil {
		return nil, err
	}
	return &access.Target{Status: asm.AssessmentStatus, Assigned: member}, nil
}

/* =========================================================
   ADMIN
========================================================= */

// POST /api/a/assessments
func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	asm, err := ctl.Lifecycle.Create(c.Context(), req.ToInput(), actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Assessment berhasil dibuat", dto.ToAssessmentResponse(asm))
}

// PUT /api/a/assessments/:id/users
func (ctl *AssessmentController) AssignUsers(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AssignUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	users, err := ctl.Lifecycle.AssignUsers(c.Context(), id, req.UserIDs)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "User assessment diperbarui", fiber.Map{
		"assessment_id":     id,
		"assigned_user_ids": users,
	})
}

/* =========================================================
   USER
========================================================= */

// GET /api/u/assessments?status=&page=&per_page=
func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var status *workflow.Status
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := workflow.ParseStatus(raw)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
		}
		status = &st
	}
	p := helper.ParseFiber(c, "scheduled_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Lifecycle.ListForActor(c.Context(), actor, status, p.Offset(), p.Limit())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToAssessmentResponses(rows), helper.BuildMeta(total, p, len(rows)))
}

// GET /api/u/assessments/:id
func (ctl *AssessmentController) Detail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	asm, err := ctl.Lifecycle.Get(c.Context(), id, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	users, err := ctl.Lifecycle.AssignedUsers(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	history, err := ctl.Lifecycle.StatusHistory(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToDetailResponse(asm, users, history, actor))
}

// GET /api/u/assessments/:id/questions
func (ctl *AssessmentController) Questions(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := ctl.Aggregate.ListQuestions(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", list)
}

// GET /api/u/assessments/:id/questions/:questionId
func (ctl *AssessmentController) CurrentQuestion(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	qid, err := parseUUIDParam(c, "questionId", "question id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	asm, err := ctl.Lifecycle.FindAssessment(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	list, err := ctl.Aggregate.ListQuestions(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	cur, err := ctl.Aggregate.CurrentQuestion(c.Context(), id, qid)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	out := dto.CurrentQuestionResponse{
		Question:       cur,
		Total:          len(list),
		WritableStages: workflow.WritableStages(actor.Role, asm.AssessmentStatus),
	}
	if prev, ok := service.Step(list, qid, service.DirectionPrevious); ok {
		out.PreviousID = &prev.QuestionID
	}
	if next, ok := service.Step(list, qid, service.DirectionNext); ok {
		out.NextID = &next.QuestionID
	}

	answer, err := ctl.Answers.GetAnswer(c.Context(), id, qid)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	out.Answer = ansDto.ToAnswerResponse(answer)

	ratings, err := ctl.QuestionSvc.Ratings(c.Context(), qid)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	out.Ratings = dto.ToRatingResponses(ratings)

	return helper.JsonOK(c, "ok", out)
}

// GET /api/u/assessments/:id/questions/:questionId/:direction
func (ctl *AssessmentController) Navigate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	qid, err := parseUUIDParam(c, "questionId", "question id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	dir, ok := service.ParseDirection(c.Params("direction"))
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "direction harus previous / next")
	}

	ref, ok, err := ctl.Aggregate.Advance(c.Context(), id, qid, dir)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !ok {
		return helper.JsonOK(c, "Sudah di ujung daftar", dto.NavigationResponse{Boundary: true})
	}
	return helper.JsonOK(c, "ok", dto.NavigationResponse{Question: &ref})
}

// POST /api/u/assessments/:id/submit
func (ctl *AssessmentController) Submit(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id", "assessment id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ctl.Lifecycle.Submit(c.Context(), id, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Assessment berhasil disubmit", res)
}

// GET /api/u/assessments/:id/pages
func (ctl *AssessmentController) Pages(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	target, err := ctl.ResolveTarget(c, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.PagesResponse{
		Status: target.Status,
		Pages:  access.Pages(actor, target),
	})
}
