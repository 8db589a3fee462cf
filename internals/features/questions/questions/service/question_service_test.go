package service

import (
	"context"
	"errors"
	"testing"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/workflow"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	"assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.QuestionModel{}, &model.RatingModel{}, &clModel.ChangelogModel{}))
	return db
}

func admin() workflow.Actor {
	return workflow.Actor{ID: uuid.New(), Role: constants.RoleAdmin}
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.QuestionModel{QuestionNumber: 1, QuestionText: "Ada kebijakan K3?"}))
	err := svc.Create(ctx, &model.QuestionModel{QuestionNumber: 1, QuestionText: "Duplikat"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUpdateRecordsChangedFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)
	ctx := context.Background()

	q := &model.QuestionModel{QuestionNumber: 3, QuestionText: "Lama", QuestionPillar: "Governance"}
	require.NoError(t, svc.Create(ctx, q))

	out, changes, err := svc.Update(ctx, q.QuestionID, func(m *model.QuestionModel) {
		m.QuestionText = "Baru"
	}, admin())
	require.NoError(t, err)
	assert.Equal(t, "Baru", out.QuestionText)
	require.Len(t, changes, 1)
	assert.Equal(t, "question_text", changes[0].ChangelogField)
	require.NotNil(t, changes[0].ChangelogFormerValue)
	assert.Equal(t, "Lama", *changes[0].ChangelogFormerValue)

	// tanpa perubahan → tidak ada changelog baru
	_, changes, err = svc.Update(ctx, q.QuestionID, func(m *model.QuestionModel) {}, admin())
	require.NoError(t, err)
	assert.Empty(t, changes)

	var n int64
	require.NoError(t, db.Model(&clModel.ChangelogModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpdateMissingQuestion(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))
	_, _, err := svc.Update(context.Background(), uuid.New(), func(m *model.QuestionModel) {}, admin())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpsertRatings(t *testing.T) {
	svc := NewQuestionService(newTestDB(t))
	ctx := context.Background()

	q := &model.QuestionModel{QuestionNumber: 7, QuestionText: "Rubrik"}
	require.NoError(t, svc.Create(ctx, q))

	rows, err := svc.UpsertRatings(ctx, q.QuestionID, []model.RatingModel{
		{RatingLevel: 3, RatingCriteria: "cukup"},
		{RatingLevel: 1, RatingCriteria: "belum ada"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].RatingLevel)
	assert.Equal(t, 3, rows[1].RatingLevel)

	// level yang sama → update, bukan baris baru
	rows, err = svc.UpsertRatings(ctx, q.QuestionID, []model.RatingModel{
		{RatingLevel: 3, RatingCriteria: "cukup baik"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "cukup baik", rows[1].RatingCriteria)

	_, err = svc.UpsertRatings(ctx, q.QuestionID, []model.RatingModel{{RatingLevel: 6, RatingCriteria: "x"}})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.UpsertRatings(ctx, q.QuestionID, []model.RatingModel{
		{RatingLevel: 2, RatingCriteria: "a"},
		{RatingLevel: 2, RatingCriteria: "b"},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.UpsertRatings(ctx, uuid.New(), []model.RatingModel{{RatingLevel: 1, RatingCriteria: "x"}})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteIsSoft(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)
	ctx := context.Background()

	q := &model.QuestionModel{QuestionNumber: 9, QuestionText: "Hapus"}
	require.NoError(t, svc.Create(ctx, q))
	require.NoError(t, svc.Delete(ctx, q.QuestionID))

	_, err := svc.Get(ctx, q.QuestionID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	var n int64
	require.NoError(t, db.Unscoped().Model(&model.QuestionModel{}).Where("question_id = ?", q.QuestionID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	assert.True(t, errors.Is(svc.Delete(ctx, q.QuestionID), apperr.ErrNotFound))
}
