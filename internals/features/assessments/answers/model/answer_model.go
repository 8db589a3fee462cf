// file: internals/features/assessments/answers/model/answer_model.go
package model

import (
	"time"

	"assessku_backend/internals/features/assessments/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerModel: satu baris per assessment_question (dibuat saat simpan pertama).
type AnswerModel struct {
	AnswerID                   uuid.UUID `gorm:"column:answer_id;type:uuid;primaryKey" json:"answer_id"`
	AnswerAssessmentQuestionID uuid.UUID `gorm:"column:answer_assessment_question_id;type:uuid;not null;uniqueIndex:uq_answers_assessment_question" json:"answer_assessment_question_id"`
	AnswerAssessmentID         uuid.UUID `gorm:"column:answer_assessment_id;type:uuid;not null;index" json:"answer_assessment_id"`
	AnswerQuestionID           uuid.UUID `gorm:"column:answer_question_id;type:uuid;not null" json:"answer_question_id"`

	AnswerAssessorRating      *string `gorm:"column:answer_assessor_rating;type:varchar(1)" json:"answer_assessor_rating"`
	AnswerAssessorExplanation *string `gorm:"column:answer_assessor_explanation;type:text" json:"answer_assessor_explanation"`
	AnswerAssessorEvidence    *string `gorm:"column:answer_assessor_evidence;type:text" json:"answer_assessor_evidence"`

	AnswerConsensusRating      *string `gorm:"column:answer_consensus_rating;type:varchar(1)" json:"answer_consensus_rating"`
	AnswerConsensusExplanation *string `gorm:"column:answer_consensus_explanation;type:text" json:"answer_consensus_explanation"`
	AnswerConsensusEvidence    *string `gorm:"column:answer_consensus_evidence;type:text" json:"answer_consensus_evidence"`

	AnswerOversightRating      *string `gorm:"column:answer_oversight_rating;type:varchar(1)" json:"answer_oversight_rating"`
	AnswerOversightExplanation *string `gorm:"column:answer_oversight_explanation;type:text" json:"answer_oversight_explanation"`
	AnswerOversightEvidence    *string `gorm:"column:answer_oversight_evidence;type:text" json:"answer_oversight_evidence"`

	AnswerClientRating      *string `gorm:"column:answer_client_rating;type:varchar(1)" json:"answer_client_rating"`
	AnswerClientExplanation *string `gorm:"column:answer_client_explanation;type:text" json:"answer_client_explanation"`
	AnswerClientEvidence    *string `gorm:"column:answer_client_evidence;type:text" json:"answer_client_evidence"`

	AnswerUserID    *uuid.UUID `gorm:"column:answer_user_id;type:uuid" json:"answer_user_id,omitempty"`
	AnswerVersion   int        `gorm:"column:answer_version;not null;default:0" json:"answer_version"`
	AnswerCreatedAt time.Time  `gorm:"column:answer_created_at;not null" json:"answer_created_at"`
	AnswerUpdatedAt time.Time  `gorm:"column:answer_updated_at;not null" json:"answer_updated_at"`
}

func (AnswerModel) TableName() string { return "answers" }

func (m *AnswerModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnswerID == uuid.Nil {
		m.AnswerID = uuid.New()
	}
	return nil
}

// StagePayload: triple (rating, explanation, evidence) satu stage.
type StagePayload struct {
	Rating      *string `json:"rating"`
	Explanation *string `json:"explanation"`
	Evidence    *string `json:"evidence"`
}

func (m *AnswerModel) fields(stage workflow.Stage) (rating, explanation, evidence **string) {
	switch stage {
	case workflow.StageAssessor:
		return &m.AnswerAssessorRating, &m.AnswerAssessorExplanation, &m.AnswerAssessorEvidence
	case workflow.StageConsensus:
		return &m.AnswerConsensusRating, &m.AnswerConsensusExplanation, &m.AnswerConsensusEvidence
	case workflow.StageOversight:
		return &m.AnswerOversightRating, &m.AnswerOversightExplanation, &m.AnswerOversightEvidence
	case workflow.StageClient:
		return &m.AnswerClientRating, &m.AnswerClientExplanation, &m.AnswerClientEvidence
	}
	return nil, nil, nil
}

// Stage: payload tersimpan untuk stage (salinan).
func (m *AnswerModel) Stage(stage workflow.Stage) StagePayload {
	r, e, v := m.fields(stage)
	if r == nil {
		return StagePayload{}
	}
	return StagePayload{Rating: clone(*r), Explanation: clone(*e), Evidence: clone(*v)}
}

// SetStage mengganti seluruh triple stage.
func (m *AnswerModel) SetStage(stage workflow.Stage, p StagePayload) {
	r, e, v := m.fields(stage)
	if r == nil {
		return
	}
	*r, *e, *v = clone(p.Rating), clone(p.Explanation), clone(p.Evidence)
}

// StageSnapshot: nama kolom → nilai, untuk diff changelog.
func (m *AnswerModel) StageSnapshot(stage workflow.Stage) map[string]*string {
	p := m.Stage(stage)
	prefix := string(stage) + "_"
	return map[string]*string{
		prefix + "rating":      p.Rating,
		prefix + "explanation": p.Explanation,
		prefix + "evidence":    p.Evidence,
	}
}

// StageColumns: kolom DB stage → nilai (nil ditulis NULL).
func (m *AnswerModel) StageColumns(stage workflow.Stage) map[string]any {
	p := m.Stage(stage)
	prefix := "answer_" + string(stage) + "_"
	return map[string]any{
		prefix + "rating":      p.Rating,
		prefix + "explanation": p.Explanation,
		prefix + "evidence":    p.Evidence,
	}
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
