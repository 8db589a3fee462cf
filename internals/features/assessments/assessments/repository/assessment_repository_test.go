package repository

import (
	"context"
	"testing"
	"time"

	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GormAssessmentStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.AssessmentModel{},
		&model.AssessmentQuestionModel{},
		&model.AssessmentUserModel{},
		&model.AssessmentStatusHistoryModel{},
	))
	return NewGormAssessmentStore(db)
}

func seedAssessment(t *testing.T, s *GormAssessmentStore, status workflow.Status, users ...uuid.UUID) *model.AssessmentModel {
	t.Helper()
	a := &model.AssessmentModel{
		AssessmentID:           uuid.New(),
		AssessmentEngagementID: uuid.New(),
		AssessmentTitle:        "Site audit",
		AssessmentStatus:       status,
		AssessmentCreatedBy:    uuid.New(),
	}
	qs := []model.AssessmentQuestionModel{
		{AssessmentQuestionAssessmentID: a.AssessmentID, AssessmentQuestionQuestionID: uuid.New(), AssessmentQuestionNumber: 3},
		{AssessmentQuestionAssessmentID: a.AssessmentID, AssessmentQuestionQuestionID: uuid.New(), AssessmentQuestionNumber: 1},
		{AssessmentQuestionAssessmentID: a.AssessmentID, AssessmentQuestionQuestionID: uuid.New(), AssessmentQuestionNumber: 2},
	}
	require.NoError(t, s.CreateAssessment(context.Background(), a, qs, users))
	return a
}

func TestCreateAssessmentStoresQuestionsAndUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := uuid.New()
	a := seedAssessment(t, s, workflow.StatusCreated, user)

	rows, err := s.ListAssessmentQuestions(ctx, a.AssessmentID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, i+1, r.AssessmentQuestionNumber)
	}

	ok, err := s.IsAssigned(ctx, a.AssessmentID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAssigned(ctx, a.AssessmentID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceAssignedUsersAndListForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	a := seedAssessment(t, s, workflow.StatusOngoing, alice)
	seedAssessment(t, s, workflow.StatusCreated, bob)

	require.NoError(t, s.ReplaceAssignedUsers(ctx, a.AssessmentID, []uuid.UUID{bob}))
	ids, err := s.ListAssignedUserIDs(ctx, a.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, ids)

	rows, total, err := s.ListForUser(ctx, &alice, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, rows)

	rows, total, err = s.ListForUser(ctx, &bob, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	ongoing := workflow.StatusOngoing
	rows, total, err = s.ListForUser(ctx, &bob, &ongoing, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, a.AssessmentID, rows[0].AssessmentID)

	_, total, err = s.ListForUser(ctx, nil, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestAdvanceStatusIsConditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedAssessment(t, s, workflow.StatusOngoing)
	lead := uuid.New()
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	ok, err := s.AdvanceStatus(ctx, a.AssessmentID, workflow.StatusOngoing, workflow.StatusOngoingReview, lead, at)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.FindAssessment(ctx, a.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusOngoingReview, got.AssessmentStatus)

	// status sudah bukan ongoing → tidak ada update, tidak ada history baru
	ok, err = s.AdvanceStatus(ctx, a.AssessmentID, workflow.StatusOngoing, workflow.StatusOngoingReview, lead, at.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	history, err := s.ListStatusHistory(ctx, a.AssessmentID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, workflow.StatusOngoing, history[0].AssessmentStatusHistoryFrom)
	assert.Equal(t, workflow.StatusOngoingReview, history[0].AssessmentStatusHistoryTo)
	assert.Equal(t, lead, history[0].AssessmentStatusHistoryChangedBy)
	assert.True(t, at.Equal(history[0].AssessmentStatusHistoryChangedAt))
}

func TestFindAssessmentMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindAssessment(context.Background(), uuid.New())
	assert.Error(t, err)
}
