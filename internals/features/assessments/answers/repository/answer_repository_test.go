package repository

import (
	"context"
	"testing"
	"time"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/answers/model"
	"assessku_backend/internals/features/assessments/answers/service"
	asmModel "assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	clModel "assessku_backend/internals/features/audit/changelogs/model"

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
	require.NoError(t, db.AutoMigrate(
		&model.AnswerModel{},
		&asmModel.AssessmentModel{},
		&asmModel.AssessmentQuestionModel{},
		&asmModel.AssessmentUserModel{},
		&clModel.ChangelogModel{},
	))
	return db
}

func sp(s string) *string { return &s }

func newAnswer(aqID, assessmentID uuid.UUID, at time.Time) *model.AnswerModel {
	return &model.AnswerModel{
		AnswerAssessmentQuestionID: aqID,
		AnswerAssessmentID:         assessmentID,
		AnswerQuestionID:           uuid.New(),
		AnswerAssessorRating:       sp("2"),
		AnswerAssessorExplanation:  sp("belum lengkap"),
		AnswerConsensusRating:      sp("3"),
		AnswerVersion:              1,
		AnswerCreatedAt:            at,
		AnswerUpdatedAt:            at,
	}
}

func TestCreateAnswerOnePerAssessmentQuestion(t *testing.T) {
	db := newTestDB(t)
	s := NewGormAnswerStore(db)
	ctx := context.Background()
	aqID, asmID := uuid.New(), uuid.New()
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	ok, err := s.CreateAnswer(ctx, newAnswer(aqID, asmID, at))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CreateAnswer(ctx, newAnswer(aqID, asmID, at.Add(time.Minute)))
	require.NoError(t, err)
	assert.False(t, ok)

	var n int64
	require.NoError(t, db.Model(&model.AnswerModel{}).Where("answer_assessment_question_id = ?", aqID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	got, err := s.FindAnswer(ctx, aqID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, at.Equal(got.AnswerCreatedAt))

	missing, err := s.LockAnswer(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateAnswerStageWritesOnlyThatStage(t *testing.T) {
	db := newTestDB(t)
	s := NewGormAnswerStore(db)
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	a := newAnswer(uuid.New(), uuid.New(), created)
	ok, err := s.CreateAnswer(ctx, a)
	require.NoError(t, err)
	require.True(t, ok)

	user := uuid.New()
	edit := *a
	edit.AnswerAssessorRating = sp("4")
	edit.AnswerAssessorExplanation = nil
	// kolom stage lain di salinan ini diabaikan
	edit.AnswerConsensusRating = sp("1")
	edit.AnswerUserID = &user
	edit.AnswerUpdatedAt = created.Add(time.Hour)

	prev := 1
	ok, err = s.UpdateAnswerStage(ctx, &edit, workflow.StageAssessor, &prev)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.FindAnswer(ctx, a.AnswerAssessmentQuestionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "4", *got.AnswerAssessorRating)
	assert.Nil(t, got.AnswerAssessorExplanation)
	assert.Equal(t, "3", *got.AnswerConsensusRating)
	assert.Equal(t, 2, got.AnswerVersion)
	assert.True(t, created.Equal(got.AnswerCreatedAt))
	assert.True(t, created.Add(time.Hour).Equal(got.AnswerUpdatedAt))
	require.NotNil(t, got.AnswerUserID)
	assert.Equal(t, user, *got.AnswerUserID)

	// versi lama → tidak ada baris yang berubah
	ok, err = s.UpdateAnswerStage(ctx, &edit, workflow.StageAssessor, &prev)
	require.NoError(t, err)
	assert.False(t, ok)

	// tanpa versi → selalu menimpa
	ok, err = s.UpdateAnswerStage(ctx, &edit, workflow.StageAssessor, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = s.LockAnswer(ctx, a.AnswerAssessmentQuestionID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AnswerVersion)
}

func TestListByAssessmentOrder(t *testing.T) {
	s := NewGormAnswerStore(newTestDB(t))
	ctx := context.Background()
	asmID := uuid.New()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	late := newAnswer(uuid.New(), asmID, base.Add(time.Hour))
	early := newAnswer(uuid.New(), asmID, base)
	other := newAnswer(uuid.New(), uuid.New(), base)
	for _, a := range []*model.AnswerModel{late, early, other} {
		ok, err := s.CreateAnswer(ctx, a)
		require.NoError(t, err)
		require.True(t, ok)
	}

	rows, err := s.ListByAssessment(ctx, asmID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, early.AnswerID, rows[0].AnswerID)
	assert.Equal(t, late.AnswerID, rows[1].AnswerID)
}

func TestWriteStageTwiceWithoutVersionOnGorm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	assessor := workflow.Actor{ID: uuid.New(), Role: constants.RoleAssessor}
	asm := &asmModel.AssessmentModel{
		AssessmentEngagementID: uuid.New(),
		AssessmentTitle:        "Gudang Cikarang",
		AssessmentStatus:       workflow.StatusOngoing,
		AssessmentCreatedBy:    uuid.New(),
	}
	require.NoError(t, db.Create(asm).Error)
	aq := &asmModel.AssessmentQuestionModel{
		AssessmentQuestionAssessmentID: asm.AssessmentID,
		AssessmentQuestionQuestionID:   uuid.New(),
		AssessmentQuestionNumber:       1,
	}
	require.NoError(t, db.Create(aq).Error)
	require.NoError(t, db.Create(&asmModel.AssessmentUserModel{
		AssessmentUserAssessmentID: asm.AssessmentID,
		AssessmentUserUserID:       assessor.ID,
	}).Error)

	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	svc := service.NewAnswerService(NewGormAnswerStore(db)).WithClock(func() time.Time { return now })

	in := service.WriteStageInput{
		AssessmentID: asm.AssessmentID,
		QuestionID:   aq.AssessmentQuestionQuestionID,
		Stage:        "assessor",
		Payload:      model.StagePayload{Rating: sp("2")},
	}
	res, err := svc.WriteStage(ctx, in, assessor)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Answer.AnswerVersion)

	now = now.Add(time.Minute)
	in.Payload = model.StagePayload{Rating: sp("5")}
	res, err = svc.WriteStage(ctx, in, assessor)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 2, res.Answer.AnswerVersion)

	rows, total, err := NewGormAnswerStore(db).ListChangelog(ctx, clModel.AnswerRef(res.Answer.AnswerID), now, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.NotNil(t, rows[1].ChangelogFormerValue)
	assert.Equal(t, "2", *rows[1].ChangelogFormerValue)
	assert.Equal(t, "5", *rows[1].ChangelogNewValue)
}
