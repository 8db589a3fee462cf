// file: internals/features/assessments/assessments/model/assessment_model.go
package model

import (
	"time"

	"assessku_backend/internals/features/assessments/workflow"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ASSESSMENT
========================================================= */

type AssessmentModel struct {
	AssessmentID           uuid.UUID       `gorm:"column:assessment_id;type:uuid;primaryKey" json:"assessment_id"`
	AssessmentEngagementID uuid.UUID       `gorm:"column:assessment_engagement_id;type:uuid;not null;index" json:"assessment_engagement_id"`
	AssessmentTitle        string          `gorm:"column:assessment_title;type:varchar(200);not null" json:"assessment_title"`
	AssessmentSiteName     string          `gorm:"column:assessment_site_name;type:varchar(200)" json:"assessment_site_name"`
	AssessmentStatus       workflow.Status `gorm:"column:assessment_status;type:varchar(24);not null;default:'created';index" json:"assessment_status"`
	AssessmentScheduledAt  *time.Time      `gorm:"column:assessment_scheduled_at" json:"assessment_scheduled_at,omitempty"`
	AssessmentCreatedBy    uuid.UUID       `gorm:"column:assessment_created_by;type:uuid;not null" json:"assessment_created_by"`

	AssessmentCreatedAt time.Time      `gorm:"column:assessment_created_at;autoCreateTime" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time      `gorm:"column:assessment_updated_at;autoUpdateTime" json:"assessment_updated_at"`
	AssessmentDeletedAt gorm.DeletedAt `gorm:"column:assessment_deleted_at;index" json:"assessment_deleted_at,omitempty"`
}

func (AssessmentModel) TableName() string { return "assessments" }

func (m *AssessmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentID == uuid.Nil {
		m.AssessmentID = uuid.New()
	}
	if m.AssessmentStatus == "" {
		m.AssessmentStatus = workflow.StatusCreated
	}
	return nil
}

/* =========================================================
   ASSESSMENT QUESTION (fixed at creation)
========================================================= */

type AssessmentQuestionModel struct {
	AssessmentQuestionID           uuid.UUID      `gorm:"column:assessment_question_id;type:uuid;primaryKey" json:"assessment_question_id"`
	AssessmentQuestionAssessmentID uuid.UUID      `gorm:"column:assessment_question_assessment_id;type:uuid;not null;uniqueIndex:uq_assessment_questions_pair,priority:1" json:"assessment_question_assessment_id"`
	AssessmentQuestionQuestionID   uuid.UUID      `gorm:"column:assessment_question_question_id;type:uuid;not null;uniqueIndex:uq_assessment_questions_pair,priority:2" json:"assessment_question_question_id"`
	AssessmentQuestionNumber       int            `gorm:"column:assessment_question_number;not null" json:"assessment_question_number"`
	AssessmentQuestionSnapshot     datatypes.JSON `gorm:"column:assessment_question_snapshot" json:"assessment_question_snapshot,omitempty"`
	AssessmentQuestionCreatedAt    time.Time      `gorm:"column:assessment_question_created_at;autoCreateTime" json:"assessment_question_created_at"`
}

func (AssessmentQuestionModel) TableName() string { return "assessment_questions" }

func (m *AssessmentQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentQuestionID == uuid.Nil {
		m.AssessmentQuestionID = uuid.New()
	}
	return nil
}

// QuestionSnapshot: isi assessment_question_snapshot.
type QuestionSnapshot struct {
	Number       int    `json:"number"`
	Text         string `json:"text"`
	Pillar       string `json:"pillar,omitempty"`
	PracticeArea string `json:"practice_area,omitempty"`
	TopicArea    string `json:"topic_area,omitempty"`
	Priority     string `json:"priority,omitempty"`
}

/* =========================================================
   ASSIGNED USERS
========================================================= */

type AssessmentUserModel struct {
	AssessmentUserAssessmentID uuid.UUID `gorm:"column:assessment_user_assessment_id;type:uuid;primaryKey" json:"assessment_user_assessment_id"`
	AssessmentUserUserID       uuid.UUID `gorm:"column:assessment_user_user_id;type:uuid;primaryKey;index" json:"assessment_user_user_id"`
	AssessmentUserCreatedAt    time.Time `gorm:"column:assessment_user_created_at;autoCreateTime" json:"assessment_user_created_at"`
}

func (AssessmentUserModel) TableName() string { return "assessment_users" }

/* =========================================================
   STATUS HISTORY
========================================================= */

type AssessmentStatusHistoryModel struct {
	AssessmentStatusHistoryID           uuid.UUID       `gorm:"column:assessment_status_history_id;type:uuid;primaryKey" json:"assessment_status_history_id"`
	AssessmentStatusHistoryAssessmentID uuid.UUID       `gorm:"column:assessment_status_history_assessment_id;type:uuid;not null;index" json:"assessment_status_history_assessment_id"`
	AssessmentStatusHistoryFrom         workflow.Status `gorm:"column:assessment_status_history_from;type:varchar(24);not null" json:"assessment_status_history_from"`
	AssessmentStatusHistoryTo           workflow.Status `gorm:"column:assessment_status_history_to;type:varchar(24);not null" json:"assessment_status_history_to"`
	AssessmentStatusHistoryChangedBy    uuid.UUID       `gorm:"column:assessment_status_history_changed_by;type:uuid;not null" json:"assessment_status_history_changed_by"`
	AssessmentStatusHistoryChangedAt    time.Time       `gorm:"column:assessment_status_history_changed_at;not null" json:"assessment_status_history_changed_at"`
}

func (AssessmentStatusHistoryModel) TableName() string { return "assessment_status_histories" }

func (m *AssessmentStatusHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentStatusHistoryID == uuid.Nil {
		m.AssessmentStatusHistoryID = uuid.New()
	}
	return nil
}
