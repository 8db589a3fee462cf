// file: internals/features/assessments/answers/dto/answer_dto.go
package dto

import (
	"time"

	"assessku_backend/internals/features/assessments/answers/model"
	"assessku_backend/internals/features/assessments/workflow"
	clDto "assessku_backend/internals/features/audit/changelogs/dto"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST
========================================================= */

// WriteStageRequest: PUT .../answer/:stage
// Seluruh triple diganti; field yang tidak dikirim menjadi NULL.
type WriteStageRequest struct {
	Rating          *string `json:"rating" validate:"omitempty,oneof=1 2 3 4 5"`
	Explanation     *string `json:"explanation" validate:"omitempty,max=5000"`
	Evidence        *string `json:"evidence" validate:"omitempty,max=5000"`
	ExpectedVersion *int    `json:"expected_version" validate:"omitempty,gte=0"`
}

func (r *WriteStageRequest) ToPayload() model.StagePayload {
	return model.StagePayload{Rating: r.Rating, Explanation: r.Explanation, Evidence: r.Evidence}
}

/* =========================================================
   RESPONSE
========================================================= */

type AnswerResponse struct {
	AnswerID                   uuid.UUID                             `json:"answer_id"`
	AnswerAssessmentQuestionID uuid.UUID                             `json:"answer_assessment_question_id"`
	AnswerAssessmentID         uuid.UUID                             `json:"answer_assessment_id"`
	AnswerQuestionID           uuid.UUID                             `json:"answer_question_id"`
	AnswerStages               map[workflow.Stage]model.StagePayload `json:"answer_stages"`
	AnswerUserID               *uuid.UUID                            `json:"answer_user_id,omitempty"`
	AnswerVersion              int                                   `json:"answer_version"`
	AnswerCreatedAt            time.Time                             `json:"answer_created_at"`
	AnswerUpdatedAt            time.Time                             `json:"answer_updated_at"`
}

func ToAnswerResponse(m *model.AnswerModel) *AnswerResponse {
	if m == nil {
		return nil
	}
	stages := make(map[workflow.Stage]model.StagePayload, len(workflow.Stages))
	for _, st := range workflow.Stages {
		stages[st] = m.Stage(st)
	}
	return &AnswerResponse{
		AnswerID:                   m.AnswerID,
		AnswerAssessmentQuestionID: m.AnswerAssessmentQuestionID,
		AnswerAssessmentID:         m.AnswerAssessmentID,
		AnswerQuestionID:           m.AnswerQuestionID,
		AnswerStages:               stages,
		AnswerUserID:               m.AnswerUserID,
		AnswerVersion:              m.AnswerVersion,
		AnswerCreatedAt:            m.AnswerCreatedAt,
		AnswerUpdatedAt:            m.AnswerUpdatedAt,
	}
}

func ToAnswerResponses(rows []model.AnswerModel) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *ToAnswerResponse(&rows[i]))
	}
	return out
}

type WriteStageResponse struct {
	Answer  *AnswerResponse           `json:"answer"`
	Changes []clDto.ChangelogResponse `json:"changes"`
	Created bool                      `json:"created"`
}
