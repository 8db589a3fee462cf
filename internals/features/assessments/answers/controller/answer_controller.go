// file: internals/features/assessments/answers/controller/answer_controller.go
package controller

import (
	"assessku_backend/internals/features/assessments/answers/dto"
	"assessku_backend/internals/features/assessments/answers/repository"
	"assessku_backend/internals/features/assessments/answers/service"
	clController "assessku_backend/internals/features/audit/changelogs/controller"
	clDto "assessku_backend/internals/features/audit/changelogs/dto"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerController struct {
	DB        *gorm.DB
	V         *validator.Validate
	Svc       *service.AnswerService
	Changelog *clController.ChangelogController
}

func NewAnswerController(db *gorm.DB) *AnswerController {
	return &AnswerController{
		DB:        db,
		V:         validator.New(),
		Svc:       service.NewAnswerService(repository.NewGormAnswerStore(db)),
		Changelog: clController.NewChangelogController(db),
	}
}

func parseIDs(c *fiber.Ctx) (assessmentID, questionID uuid.UUID, err error) {
	assessmentID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "assessment id tidak valid")
	}
	questionID, err = uuid.Parse(c.Params("questionId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "question id tidak valid")
	}
	return assessmentID, questionID, nil
}

// PUT /api/u/assessments/:id/questions/:questionId/answer/:stage
func (ctl *AnswerController) WriteStage(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assessmentID, questionID, err := parseIDs(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.WriteStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.V.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Svc.WriteStage(c.Context(), service.WriteStageInput{
		AssessmentID:    assessmentID,
		QuestionID:      questionID,
		Stage:           c.Params("stage"),
		Payload:         req.ToPayload(),
		ExpectedVersion: req.ExpectedVersion,
	}, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	out := dto.WriteStageResponse{
		Answer:  dto.ToAnswerResponse(res.Answer),
		Changes: clDto.FromModels(res.Changes),
		Created: res.Created,
	}
	if res.Created {
		return helper.JsonCreated(c, "Jawaban berhasil disimpan", out)
	}
	return helper.JsonUpdated(c, "Jawaban berhasil diperbarui", out)
}

// GET /api/u/assessments/:id/questions/:questionId/answer/changelog
func (ctl *AnswerController) History(c *fiber.Ctx) error {
	assessmentID, questionID, err := parseIDs(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	answer, err := ctl.Svc.GetAnswer(c.Context(), assessmentID, questionID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if answer == nil {
		p := helper.ParseFiber(c, "changelog_updated_at", "asc", helper.ChangelogOpts)
		return helper.JsonList(c, "Belum ada perubahan", []clDto.ChangelogResponse{}, helper.BuildMeta(0, p, 0))
	}
	return ctl.Changelog.History(c, clModel.AnswerRef(answer.AnswerID))
}

// GET /api/u/assessments/:id/answers
func (ctl *AnswerController) List(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assessment id tidak valid")
	}
	rows, err := ctl.Svc.ListAnswers(c.Context(), assessmentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToAnswerResponses(rows))
}
