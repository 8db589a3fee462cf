// file: internals/features/questions/questions/model/question_model.go
package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionPriority string

const (
	QuestionPriorityLow    QuestionPriority = "low"
	QuestionPriorityMedium QuestionPriority = "medium"
	QuestionPriorityHigh   QuestionPriority = "high"
)

type QuestionModel struct {
	QuestionID           uuid.UUID        `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionNumber       int              `gorm:"column:question_number;not null;uniqueIndex:uq_questions_number" json:"question_number"`
	QuestionText         string           `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionPillar       string           `gorm:"column:question_pillar;type:varchar(120)" json:"question_pillar"`
	QuestionPracticeArea string           `gorm:"column:question_practice_area;type:varchar(120)" json:"question_practice_area"`
	QuestionTopicArea    string           `gorm:"column:question_topic_area;type:varchar(120)" json:"question_topic_area"`
	QuestionPriority     QuestionPriority `gorm:"column:question_priority;type:varchar(16);not null;default:'medium'" json:"question_priority"`
	QuestionIsActive     bool             `gorm:"column:question_is_active;not null;default:true" json:"question_is_active"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"question_deleted_at,omitempty"`
}

func (QuestionModel) TableName() string { return "questions" }

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// TrackedFields: field yang perubahannya dicatat ke changelog.
func (m *QuestionModel) TrackedFields() map[string]*string {
	num := strconv.Itoa(m.QuestionNumber)
	active := strconv.FormatBool(m.QuestionIsActive)
	prio := string(m.QuestionPriority)
	return map[string]*string{
		"question_number":        &num,
		"question_text":          strPtr(m.QuestionText),
		"question_pillar":        strPtr(m.QuestionPillar),
		"question_practice_area": strPtr(m.QuestionPracticeArea),
		"question_topic_area":    strPtr(m.QuestionTopicArea),
		"question_priority":      &prio,
		"question_is_active":     &active,
	}
}

func strPtr(s string) *string { return &s }

/* =========================================================
   RATING (rubric level 1..5 per question)
========================================================= */

const (
	RatingMinLevel = 1
	RatingMaxLevel = 5
)

type RatingModel struct {
	RatingID          uuid.UUID `gorm:"column:rating_id;type:uuid;primaryKey" json:"rating_id"`
	RatingQuestionID  uuid.UUID `gorm:"column:rating_question_id;type:uuid;not null;uniqueIndex:uq_ratings_question_level,priority:1" json:"rating_question_id"`
	RatingLevel       int       `gorm:"column:rating_level;not null;uniqueIndex:uq_ratings_question_level,priority:2" json:"rating_level"`
	RatingCriteria    string    `gorm:"column:rating_criteria;type:text;not null" json:"rating_criteria"`
	RatingProgression *string   `gorm:"column:rating_progression;type:text" json:"rating_progression,omitempty"`

	RatingCreatedAt time.Time `gorm:"column:rating_created_at;autoCreateTime" json:"rating_created_at"`
	RatingUpdatedAt time.Time `gorm:"column:rating_updated_at;autoUpdateTime" json:"rating_updated_at"`
}

func (RatingModel) TableName() string { return "ratings" }

func (m *RatingModel) BeforeCreate(tx *gorm.DB) error {
	if m.RatingID == uuid.Nil {
		m.RatingID = uuid.New()
	}
	return nil
}
