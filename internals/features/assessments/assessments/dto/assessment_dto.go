// file: internals/features/assessments/assessments/dto/assessment_dto.go
package dto

import (
	"time"

	"assessku_backend/internals/features/assessments/access"
	ansDto "assessku_backend/internals/features/assessments/answers/dto"
	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/assessments/service"
	"assessku_backend/internals/features/assessments/workflow"
	qModel "assessku_backend/internals/features/questions/questions/model"

	"github.com/google/uuid"
)

/* =========================================================
   REQUESTS
========================================================= */

type CreateAssessmentRequest struct {
	AssessmentEngagementID uuid.UUID   `json:"assessment_engagement_id" validate:"required"`
	AssessmentTitle        string      `json:"assessment_title" validate:"required,min=3,max=200"`
	AssessmentSiteName     string      `json:"assessment_site_name" validate:"omitempty,max=200"`
	AssessmentScheduledAt  *time.Time  `json:"assessment_scheduled_at" validate:"omitempty"`
	QuestionIDs            []uuid.UUID `json:"question_ids" validate:"omitempty,dive,required"`
	UserIDs                []uuid.UUID `json:"user_ids" validate:"omitempty,dive,required"`
}

func (r *CreateAssessmentRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		EngagementID: r.AssessmentEngagementID,
		Title:        r.AssessmentTitle,
		SiteName:     r.AssessmentSiteName,
		ScheduledAt:  r.AssessmentScheduledAt,
		QuestionIDs:  r.QuestionIDs,
		UserIDs:      r.UserIDs,
	}
}

type AssignUsersRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"dive,required"`
}

/* =========================================================
   RESPONSES
========================================================= */

type AssessmentResponse struct {
	AssessmentID           uuid.UUID       `json:"assessment_id"`
	AssessmentEngagementID uuid.UUID       `json:"assessment_engagement_id"`
	AssessmentTitle        string          `json:"assessment_title"`
	AssessmentSiteName     string          `json:"assessment_site_name"`
	AssessmentStatus       workflow.Status `json:"assessment_status"`
	AssessmentScheduledAt  *time.Time      `json:"assessment_scheduled_at,omitempty"`
	AssessmentCreatedBy    uuid.UUID       `json:"assessment_created_by"`
	AssessmentCreatedAt    time.Time       `json:"assessment_created_at"`
	AssessmentUpdatedAt    time.Time       `json:"assessment_updated_at"`
}

func ToAssessmentResponse(m *model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID:           m.AssessmentID,
		AssessmentEngagementID: m.AssessmentEngagementID,
		AssessmentTitle:        m.AssessmentTitle,
		AssessmentSiteName:     m.AssessmentSiteName,
		AssessmentStatus:       m.AssessmentStatus,
		AssessmentScheduledAt:  m.AssessmentScheduledAt,
		AssessmentCreatedBy:    m.AssessmentCreatedBy,
		AssessmentCreatedAt:    m.AssessmentCreatedAt,
		AssessmentUpdatedAt:    m.AssessmentUpdatedAt,
	}
}

func ToAssessmentResponses(rows []model.AssessmentModel) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAssessmentResponse(&rows[i]))
	}
	return out
}

type StatusHistoryResponse struct {
	From      workflow.Status `json:"from"`
	To        workflow.Status `json:"to"`
	ChangedBy uuid.UUID       `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
}

type AssessmentDetailResponse struct {
	AssessmentResponse
	AssignedUserIDs []uuid.UUID             `json:"assigned_user_ids"`
	WritableStages  []workflow.Stage        `json:"writable_stages"`
	CanSubmit       bool                    `json:"can_submit"`
	NextStatus      *workflow.Status        `json:"next_status,omitempty"`
	StatusHistory   []StatusHistoryResponse `json:"status_history"`
}

func ToDetailResponse(
	m *model.AssessmentModel,
	users []uuid.UUID,
	history []model.AssessmentStatusHistoryModel,
	actor workflow.Actor,
) AssessmentDetailResponse {
	out := AssessmentDetailResponse{
		AssessmentResponse: ToAssessmentResponse(m),
		AssignedUserIDs:    users,
		WritableStages:     workflow.WritableStages(actor.Role, m.AssessmentStatus),
		CanSubmit:          workflow.CanSubmit(actor.Role, m.AssessmentStatus),
		StatusHistory:      make([]StatusHistoryResponse, 0, len(history)),
	}
	if next, ok := m.AssessmentStatus.Next(); ok {
		out.NextStatus = &next
	}
	if out.AssignedUserIDs == nil {
		out.AssignedUserIDs = []uuid.UUID{}
	}
	for _, h := range history {
		out.StatusHistory = append(out.StatusHistory, StatusHistoryResponse{
			From:      h.AssessmentStatusHistoryFrom,
			To:        h.AssessmentStatusHistoryTo,
			ChangedBy: h.AssessmentStatusHistoryChangedBy,
			ChangedAt: h.AssessmentStatusHistoryChangedAt,
		})
	}
	return out
}

type RatingResponse struct {
	Level       int     `json:"level"`
	Criteria    string  `json:"criteria"`
	Progression *string `json:"progression,omitempty"`
}

func ToRatingResponses(rows []qModel.RatingModel) []RatingResponse {
	out := make([]RatingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RatingResponse{Level: r.RatingLevel, Criteria: r.RatingCriteria, Progression: r.RatingProgression})
	}
	return out
}

// CurrentQuestionResponse: satu langkah wizard.
type CurrentQuestionResponse struct {
	Question       service.QuestionRef    `json:"question"`
	Total          int                    `json:"total"`
	PreviousID     *uuid.UUID             `json:"previous_question_id"`
	NextID         *uuid.UUID             `json:"next_question_id"`
	Answer         *ansDto.AnswerResponse `json:"answer"`
	Ratings        []RatingResponse       `json:"ratings"`
	WritableStages []workflow.Stage       `json:"writable_stages"`
}

type NavigationResponse struct {
	Boundary bool                 `json:"boundary"`
	Question *service.QuestionRef `json:"question,omitempty"`
}

type PagesResponse struct {
	Status workflow.Status   `json:"status"`
	Pages  []access.MenuItem `json:"pages"`
}
