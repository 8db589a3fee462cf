// file: internals/features/questions/questions/dto/question_dto.go
package dto

import (
	"strings"
	"time"

	"assessku_backend/internals/features/questions/questions/model"

	"github.com/google/uuid"
)

/* =========================================================
   CREATE
========================================================= */

type CreateQuestionRequest struct {
	QuestionNumber       int    `json:"question_number" validate:"required,gte=1"`
	QuestionText         string `json:"question_text" validate:"required,min=3"`
	QuestionPillar       string `json:"question_pillar" validate:"omitempty,max=120"`
	QuestionPracticeArea string `json:"question_practice_area" validate:"omitempty,max=120"`
	QuestionTopicArea    string `json:"question_topic_area" validate:"omitempty,max=120"`
	QuestionPriority     string `json:"question_priority" validate:"omitempty,oneof=low medium high"`
	QuestionIsActive     *bool  `json:"question_is_active"`
}

func (r *CreateQuestionRequest) ToModel() *model.QuestionModel {
	prio := model.QuestionPriority(strings.ToLower(strings.TrimSpace(r.QuestionPriority)))
	if prio == "" {
		prio = model.QuestionPriorityMedium
	}
	active := true
	if r.QuestionIsActive != nil {
		active = *r.QuestionIsActive
	}
	return &model.QuestionModel{
		QuestionNumber:       r.QuestionNumber,
		QuestionText:         strings.TrimSpace(r.QuestionText),
		QuestionPillar:       strings.TrimSpace(r.QuestionPillar),
		QuestionPracticeArea: strings.TrimSpace(r.QuestionPracticeArea),
		QuestionTopicArea:    strings.TrimSpace(r.QuestionTopicArea),
		QuestionPriority:     prio,
		QuestionIsActive:     active,
	}
}

/* =========================================================
   PATCH (partial)
========================================================= */

type PatchQuestionRequest struct {
	QuestionNumber       *int    `json:"question_number" validate:"omitempty,gte=1"`
	QuestionText         *string `json:"question_text" validate:"omitempty,min=3"`
	QuestionPillar       *string `json:"question_pillar" validate:"omitempty,max=120"`
	QuestionPracticeArea *string `json:"question_practice_area" validate:"omitempty,max=120"`
	QuestionTopicArea    *string `json:"question_topic_area" validate:"omitempty,max=120"`
	QuestionPriority     *string `json:"question_priority" validate:"omitempty,oneof=low medium high"`
	QuestionIsActive     *bool   `json:"question_is_active"`
}

func (r *PatchQuestionRequest) Apply(m *model.QuestionModel) {
	if r.QuestionNumber != nil {
		m.QuestionNumber = *r.QuestionNumber
	}
	if r.QuestionText != nil {
		m.QuestionText = strings.TrimSpace(*r.QuestionText)
	}
	if r.QuestionPillar != nil {
		m.QuestionPillar = strings.TrimSpace(*r.QuestionPillar)
	}
	if r.QuestionPracticeArea != nil {
		m.QuestionPracticeArea = strings.TrimSpace(*r.QuestionPracticeArea)
	}
	if r.QuestionTopicArea != nil {
		m.QuestionTopicArea = strings.TrimSpace(*r.QuestionTopicArea)
	}
	if r.QuestionPriority != nil {
		m.QuestionPriority = model.QuestionPriority(strings.ToLower(strings.TrimSpace(*r.QuestionPriority)))
	}
	if r.QuestionIsActive != nil {
		m.QuestionIsActive = *r.QuestionIsActive
	}
}

/* =========================================================
   RATINGS
========================================================= */

type RatingItem struct {
	RatingLevel       int     `json:"rating_level" validate:"required,min=1,max=5"`
	RatingCriteria    string  `json:"rating_criteria" validate:"required"`
	RatingProgression *string `json:"rating_progression" validate:"omitempty"`
}

type UpsertRatingsRequest struct {
	Ratings []RatingItem `json:"ratings" validate:"required,min=1,max=5,dive"`
}

func (r *UpsertRatingsRequest) ToModels() []model.RatingModel {
	out := make([]model.RatingModel, 0, len(r.Ratings))
	for _, it := range r.Ratings {
		var prog *string
		if it.RatingProgression != nil {
			if v := strings.TrimSpace(*it.RatingProgression); v != "" {
				prog = &v
			}
		}
		out = append(out, model.RatingModel{
			RatingLevel:       it.RatingLevel,
			RatingCriteria:    strings.TrimSpace(it.RatingCriteria),
			RatingProgression: prog,
		})
	}
	return out
}

/* =========================================================
   RESPONSE
========================================================= */

type QuestionResponse struct {
	QuestionID           uuid.UUID `json:"question_id"`
	QuestionNumber       int       `json:"question_number"`
	QuestionText         string    `json:"question_text"`
	QuestionPillar       string    `json:"question_pillar"`
	QuestionPracticeArea string    `json:"question_practice_area"`
	QuestionTopicArea    string    `json:"question_topic_area"`
	QuestionPriority     string    `json:"question_priority"`
	QuestionIsActive     bool      `json:"question_is_active"`
	QuestionCreatedAt    time.Time `json:"question_created_at"`
	QuestionUpdatedAt    time.Time `json:"question_updated_at"`
}

func ToQuestionResponse(m *model.QuestionModel) QuestionResponse {
	return QuestionResponse{
		QuestionID:           m.QuestionID,
		QuestionNumber:       m.QuestionNumber,
		QuestionText:         m.QuestionText,
		QuestionPillar:       m.QuestionPillar,
		QuestionPracticeArea: m.QuestionPracticeArea,
		QuestionTopicArea:    m.QuestionTopicArea,
		QuestionPriority:     string(m.QuestionPriority),
		QuestionIsActive:     m.QuestionIsActive,
		QuestionCreatedAt:    m.QuestionCreatedAt,
		QuestionUpdatedAt:    m.QuestionUpdatedAt,
	}
}

func ToQuestionResponses(rows []model.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToQuestionResponse(&rows[i]))
	}
	return out
}
