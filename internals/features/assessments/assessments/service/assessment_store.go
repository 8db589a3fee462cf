// file: internals/features/assessments/assessments/service/assessment_store.go
package service

import (
	"context"
	"time"

	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	qModel "assessku_backend/internals/features/questions/questions/model"

	"github.com/google/uuid"
)

// Store: akses data untuk aggregate & lifecycle assessment.
type Store interface {
	FindAssessment(ctx context.Context, id uuid.UUID) (*model.AssessmentModel, error)
	// ListAssessmentQuestions: tanpa jaminan urutan.
	ListAssessmentQuestions(ctx context.Context, assessmentID uuid.UUID) ([]model.AssessmentQuestionModel, error)
	IsAssigned(ctx context.Context, assessmentID, userID uuid.UUID) (bool, error)
	ListAssignedUserIDs(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error)

	ListForUser(ctx context.Context, userID *uuid.UUID, status *workflow.Status, offset, limit int) ([]model.AssessmentModel, int64, error)

	EngagementExists(ctx context.Context, engagementID uuid.UUID) (bool, error)
	// FindQuestions: ids kosong → semua question aktif.
	FindQuestions(ctx context.Context, ids []uuid.UUID) ([]qModel.QuestionModel, error)
	CountActiveUsers(ctx context.Context, ids []uuid.UUID) (int64, error)

	CreateAssessment(ctx context.Context, a *model.AssessmentModel, questions []model.AssessmentQuestionModel, userIDs []uuid.UUID) error
	ReplaceAssignedUsers(ctx context.Context, assessmentID uuid.UUID, userIDs []uuid.UUID) error

	// AdvanceStatus: update bersyarat status = from; false kalau status sudah berubah.
	AdvanceStatus(ctx context.Context, assessmentID uuid.UUID, from, to workflow.Status, by uuid.UUID, at time.Time) (bool, error)
	ListStatusHistory(ctx context.Context, assessmentID uuid.UUID) ([]model.AssessmentStatusHistoryModel, error)
}
