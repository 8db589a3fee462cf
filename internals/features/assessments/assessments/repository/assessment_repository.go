// file: internals/features/assessments/assessments/repository/assessment_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/assessments/service"
	"assessku_backend/internals/features/assessments/workflow"
	ceModel "assessku_backend/internals/features/clients/engagements/model"
	qModel "assessku_backend/internals/features/questions/questions/model"
	userModel "assessku_backend/internals/features/users/user/model"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormAssessmentStore struct {
	DB *gorm.DB
}

var _ service.Store = (*GormAssessmentStore)(nil)

func NewGormAssessmentStore(db *gorm.DB) *GormAssessmentStore {
	return &GormAssessmentStore{DB: db}
}

func (s *GormAssessmentStore) FindAssessment(ctx context.Context, id uuid.UUID) (*model.AssessmentModel, error) {
	var m model.AssessmentModel
	err := s.DB.WithContext(ctx).First(&m, "assessment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("assessment %s tidak ditemukan", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormAssessmentStore) ListAssessmentQuestions(ctx context.Context, assessmentID uuid.UUID) ([]model.AssessmentQuestionModel, error) {
	var rows []model.AssessmentQuestionModel
	err := s.DB.WithContext(ctx).
		Where("assessment_question_assessment_id = ?", assessmentID).
		Order("assessment_question_number ASC").
		Order("assessment_question_question_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormAssessmentStore) IsAssigned(ctx context.Context, assessmentID, userID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&model.AssessmentUserModel{}).
		Where("assessment_user_assessment_id = ? AND assessment_user_user_id = ?", assessmentID, userID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormAssessmentStore) ListAssignedUserIDs(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&model.AssessmentUserModel{}).
		Where("assessment_user_assessment_id = ?", assessmentID).
		Order("assessment_user_created_at ASC").
		Pluck("assessment_user_user_id", &ids).Error
	return ids, err
}

func (s *GormAssessmentStore) ListForUser(
	ctx context.Context,
	userID *uuid.UUID,
	status *workflow.Status,
	offset, limit int,
) ([]model.AssessmentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.AssessmentModel{})
	if userID != nil {
		q = q.Where("assessment_id IN (?)",
			s.DB.Model(&model.AssessmentUserModel{}).
				Select("assessment_user_assessment_id").
				Where("assessment_user_user_id = ?", *userID))
	}
	if status != nil {
		q = q.Where("assessment_status = ?", *status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.AssessmentModel
	if limit <= 0 {
		limit = -1
	}
	err := q.
		Order("assessment_scheduled_at DESC NULLS LAST").
		Order("assessment_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (s *GormAssessmentStore) EngagementExists(ctx context.Context, engagementID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&ceModel.EngagementModel{}).
		Where("engagement_id = ?", engagementID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormAssessmentStore) FindQuestions(ctx context.Context, ids []uuid.UUID) ([]qModel.QuestionModel, error) {
	q := s.DB.WithContext(ctx).Model(&qModel.QuestionModel{})
	if len(ids) > 0 {
		q = q.Where("question_id IN ?", ids)
	} else {
		q = q.Where("question_is_active = ?", true)
	}
	var rows []qModel.QuestionModel
	err := q.Order("question_number ASC").Find(&rows).Error
	return rows, err
}

func (s *GormAssessmentStore) CountActiveUsers(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("id IN ? AND is_active = ?", ids, true).
		Count(&n).Error
	return n, err
}

func (s *GormAssessmentStore) CreateAssessment(
	ctx context.Context,
	a *model.AssessmentModel,
	questions []model.AssessmentQuestionModel,
	userIDs []uuid.UUID,
) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.CreateInBatches(&questions, 200).Error; err != nil {
				return err
			}
		}
		return insertUsers(tx, a.AssessmentID, userIDs)
	})
}

func (s *GormAssessmentStore) ReplaceAssignedUsers(ctx context.Context, assessmentID uuid.UUID, userIDs []uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_user_assessment_id = ?", assessmentID).
			Delete(&model.AssessmentUserModel{}).Error; err != nil {
			return err
		}
		return insertUsers(tx, assessmentID, userIDs)
	})
}

func insertUsers(tx *gorm.DB, assessmentID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.AssessmentUserModel, 0, len(userIDs))
	for _, uid := range userIDs {
		rows = append(rows, model.AssessmentUserModel{
			AssessmentUserAssessmentID: assessmentID,
			AssessmentUserUserID:       uid,
		})
	}
	return tx.Create(&rows).Error
}

func (s *GormAssessmentStore) AdvanceStatus(
	ctx context.Context,
	assessmentID uuid.UUID,
	from, to workflow.Status,
	by uuid.UUID,
	at time.Time,
) (bool, error) {
	advanced := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AssessmentModel{}).
			Where("assessment_id = ? AND assessment_status = ?", assessmentID, from).
			Updates(map[string]any{
				"assessment_status":     to,
				"assessment_updated_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		advanced = true
		return tx.Create(&model.AssessmentStatusHistoryModel{
			AssessmentStatusHistoryAssessmentID: assessmentID,
			AssessmentStatusHistoryFrom:         from,
			AssessmentStatusHistoryTo:           to,
			AssessmentStatusHistoryChangedBy:    by,
			AssessmentStatusHistoryChangedAt:    at,
		}).Error
	})
	return advanced, err
}

func (s *GormAssessmentStore) ListStatusHistory(ctx context.Context, assessmentID uuid.UUID) ([]model.AssessmentStatusHistoryModel, error) {
	var rows []model.AssessmentStatusHistoryModel
	err := s.DB.WithContext(ctx).
		Where("assessment_status_history_assessment_id = ?", assessmentID).
		Order("assessment_status_history_changed_at ASC").
		Find(&rows).Error
	return rows, err
}
