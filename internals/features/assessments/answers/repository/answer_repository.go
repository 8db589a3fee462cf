// file: internals/features/assessments/answers/repository/answer_repository.go
package repository

import (
	"context"
	"errors"

	"assessku_backend/internals/features/assessments/answers/model"
	"assessku_backend/internals/features/assessments/answers/service"
	asmModel "assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	clRepo "assessku_backend/internals/features/audit/changelogs/repository"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnswerStore: service.Store di atas gorm. Changelog ditulis lewat store yang sama (tx yang sama).
type GormAnswerStore struct {
	*clRepo.GormChangelogStore
	DB *gorm.DB
}

var _ service.Store = (*GormAnswerStore)(nil)

func NewGormAnswerStore(db *gorm.DB) *GormAnswerStore {
	return &GormAnswerStore{GormChangelogStore: clRepo.NewGormChangelogStore(db), DB: db}
}

func (s *GormAnswerStore) FindAssessment(ctx context.Context, assessmentID uuid.UUID) (*asmModel.AssessmentModel, error) {
	var m asmModel.AssessmentModel
	err := s.DB.WithContext(ctx).First(&m, "assessment_id = ?", assessmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("assessment %s tidak ditemukan", assessmentID)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormAnswerStore) FindAssessmentQuestion(ctx context.Context, assessmentID, questionID uuid.UUID) (*asmModel.AssessmentQuestionModel, error) {
	var m asmModel.AssessmentQuestionModel
	err := s.DB.WithContext(ctx).
		Where("assessment_question_assessment_id = ? AND assessment_question_question_id = ?", assessmentID, questionID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("question %s bukan bagian dari assessment %s", questionID, assessmentID)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormAnswerStore) IsAssigned(ctx context.Context, assessmentID, userID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&asmModel.AssessmentUserModel{}).
		Where("assessment_user_assessment_id = ? AND assessment_user_user_id = ?", assessmentID, userID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormAnswerStore) FindAnswer(ctx context.Context, assessmentQuestionID uuid.UUID) (*model.AnswerModel, error) {
	var m model.AnswerModel
	err := s.DB.WithContext(ctx).
		Where("answer_assessment_question_id = ?", assessmentQuestionID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LockAnswer: seperti FindAnswer tapi SELECT ... FOR UPDATE (dipanggil di dalam Transaction).
func (s *GormAnswerStore) LockAnswer(ctx context.Context, assessmentQuestionID uuid.UUID) (*model.AnswerModel, error) {
	var m model.AnswerModel
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("answer_assessment_question_id = ?", assessmentQuestionID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateAnswer: INSERT ... ON CONFLICT DO NOTHING. false kalau baris untuk assessment_question sudah ada.
func (s *GormAnswerStore) CreateAnswer(ctx context.Context, a *model.AnswerModel) (bool, error) {
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "answer_assessment_question_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateAnswerStage: tulis triple satu stage + user/updated_at, answer_version dinaikkan di SQL.
// prevVersion nil → tanpa syarat versi (last write wins).
func (s *GormAnswerStore) UpdateAnswerStage(
	ctx context.Context,
	a *model.AnswerModel,
	stage workflow.Stage,
	prevVersion *int,
) (bool, error) {
	updates := a.StageColumns(stage)
	updates["answer_user_id"] = a.AnswerUserID
	updates["answer_updated_at"] = a.AnswerUpdatedAt
	updates["answer_version"] = gorm.Expr("answer_version + 1")

	q := s.DB.WithContext(ctx).
		Model(&model.AnswerModel{}).
		Where("answer_id = ?", a.AnswerID)
	if prevVersion != nil {
		q = q.Where("answer_version = ?", *prevVersion)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormAnswerStore) Transaction(ctx context.Context, fn func(tx service.Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormAnswerStore(tx))
	})
}

// ListByAssessment: semua answer dalam satu assessment (untuk ringkasan).
func (s *GormAnswerStore) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.AnswerModel, error) {
	var rows []model.AnswerModel
	err := s.DB.WithContext(ctx).
		Where("answer_assessment_id = ?", assessmentID).
		Order("answer_created_at ASC").
		Order("answer_id ASC").
		Find(&rows).Error
	return rows, err
}
