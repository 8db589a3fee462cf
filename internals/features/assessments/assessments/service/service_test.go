package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	qModel "assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ========== stub store ========== */

type stubStore struct {
	assessments map[uuid.UUID]*model.AssessmentModel
	questions   map[uuid.UUID][]model.AssessmentQuestionModel
	assigned    map[uuid.UUID][]uuid.UUID
	history     []model.AssessmentStatusHistoryModel
	engagements map[uuid.UUID]bool
	bank        []qModel.QuestionModel
	activeUsers map[uuid.UUID]bool

	// raceTo: kalau diisi, status berubah "diam-diam" sebelum AdvanceStatus.
	raceTo workflow.Status
}

func newStubStore() *stubStore {
	return &stubStore{
		assessments: map[uuid.UUID]*model.AssessmentModel{},
		questions:   map[uuid.UUID][]model.AssessmentQuestionModel{},
		assigned:    map[uuid.UUID][]uuid.UUID{},
		engagements: map[uuid.UUID]bool{},
		activeUsers: map[uuid.UUID]bool{},
	}
}

func (s *stubStore) FindAssessment(_ context.Context, id uuid.UUID) (*model.AssessmentModel, error) {
	a, ok := s.assessments[id]
	if !ok {
		return nil, apperr.NotFound("assessment %s tidak ditemukan", id)
	}
	cp := *a
	return &cp, nil
}

func (s *stubStore) ListAssessmentQuestions(_ context.Context, id uuid.UUID) ([]model.AssessmentQuestionModel, error) {
	return append([]model.AssessmentQuestionModel(nil), s.questions[id]...), nil
}

func (s *stubStore) IsAssigned(_ context.Context, assessmentID, userID uuid.UUID) (bool, error) {
	for _, u := range s.assigned[assessmentID] {
		if u == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) ListAssignedUserIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return s.assigned[id], nil
}

func (s *stubStore) ListForUser(_ context.Context, userID *uuid.UUID, status *workflow.Status, _, _ int) ([]model.AssessmentModel, int64, error) {
	var out []model.AssessmentModel
	for id, a := range s.assessments {
		if userID != nil {
			ok, _ := s.IsAssigned(context.Background(), id, *userID)
			if !ok {
				continue
			}
		}
		if status != nil && a.AssessmentStatus != *status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *stubStore) EngagementExists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.engagements[id], nil
}

func (s *stubStore) FindQuestions(_ context.Context, ids []uuid.UUID) ([]qModel.QuestionModel, error) {
	var out []qModel.QuestionModel
	for _, q := range s.bank {
		if len(ids) == 0 {
			if q.QuestionIsActive {
				out = append(out, q)
			}
			continue
		}
		for _, id := range ids {
			if id == q.QuestionID {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (s *stubStore) CountActiveUsers(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if s.activeUsers[id] {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CreateAssessment(_ context.Context, a *model.AssessmentModel, qs []model.AssessmentQuestionModel, users []uuid.UUID) error {
	cp := *a
	s.assessments[a.AssessmentID] = &cp
	s.questions[a.AssessmentID] = qs
	s.assigned[a.AssessmentID] = users
	return nil
}

func (s *stubStore) ReplaceAssignedUsers(_ context.Context, id uuid.UUID, users []uuid.UUID) error {
	s.assigned[id] = users
	return nil
}

func (s *stubStore) AdvanceStatus(_ context.Context, id uuid.UUID, from, to workflow.Status, by uuid.UUID, at time.Time) (bool, error) {
	a := s.assessments[id]
	if s.raceTo != "" {
		a.AssessmentStatus = s.raceTo
	}
	if a.AssessmentStatus != from {
		return false, nil
	}
	a.AssessmentStatus = to
	s.history = append(s.history, model.AssessmentStatusHistoryModel{
		AssessmentStatusHistoryAssessmentID: id,
		AssessmentStatusHistoryFrom:         from,
		AssessmentStatusHistoryTo:           to,
		AssessmentStatusHistoryChangedBy:    by,
		AssessmentStatusHistoryChangedAt:    at,
	})
	return true, nil
}

func (s *stubStore) ListStatusHistory(_ context.Context, _ uuid.UUID) ([]model.AssessmentStatusHistoryModel, error) {
	return s.history, nil
}

/* ========== helpers ========== */

func seedAssessment(s *stubStore, status workflow.Status, numbers ...int) (uuid.UUID, []uuid.UUID) {
	id := uuid.New()
	s.assessments[id] = &model.AssessmentModel{AssessmentID: id, AssessmentStatus: status}
	qids := make([]uuid.UUID, 0, len(numbers))
	for _, n := range numbers {
		qid := uuid.New()
		snap, _ := json.Marshal(model.QuestionSnapshot{Number: n, Text: "Q"})
		s.questions[id] = append(s.questions[id], model.AssessmentQuestionModel{
			AssessmentQuestionID:           uuid.New(),
			AssessmentQuestionAssessmentID: id,
			AssessmentQuestionQuestionID:   qid,
			AssessmentQuestionNumber:       n,
			AssessmentQuestionSnapshot:     snap,
		})
		qids = append(qids, qid)
	}
	return id, qids
}

/* ========== aggregate ========== */

func TestListQuestionsOrderedRegardlessOfStorage(t *testing.T) {
	s := newStubStore()
	id, _ := seedAssessment(s, workflow.StatusOngoing, 7, 2, 9, 2, 1)
	agg := NewAggregateService(s)

	list, err := agg.ListQuestions(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Number, list[i].Number)
		assert.Equal(t, i+1, list[i].Position)
	}
	assert.Equal(t, "Q", list[0].Text)

	// restartable: hasil kedua identik
	again, err := agg.ListQuestions(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestListQuestionsMissingAssessment(t *testing.T) {
	_, err := NewAggregateService(newStubStore()).ListQuestions(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCurrentQuestionByCursor(t *testing.T) {
	s := newStubStore()
	id, qids := seedAssessment(s, workflow.StatusOngoing, 3, 1, 2)
	agg := NewAggregateService(s)

	cur, err := agg.CurrentQuestion(context.Background(), id, qids[0])
	require.NoError(t, err)
	assert.Equal(t, 3, cur.Number)
	assert.Equal(t, 3, cur.Position)

	_, err = agg.CurrentQuestion(context.Background(), id, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAdvanceBoundaries(t *testing.T) {
	s := newStubStore()
	id, qids := seedAssessment(s, workflow.StatusOngoing, 1, 2, 3)
	agg := NewAggregateService(s)
	ctx := context.Background()

	_, ok, err := agg.Advance(ctx, id, qids[0], DirectionPrevious)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = agg.Advance(ctx, id, qids[2], DirectionNext)
	require.NoError(t, err)
	assert.False(t, ok)

	next, ok, err := agg.Advance(ctx, id, qids[0], DirectionNext)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, qids[1], next.QuestionID)

	prev, ok, err := agg.Advance(ctx, id, qids[2], DirectionPrevious)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, qids[1], prev.QuestionID)

	for _, d := range []Direction{DirectionPrevious, DirectionNext} {
		_, ok, err = agg.Advance(ctx, id, uuid.New(), d)
		require.NoError(t, err)
		assert.False(t, ok, "unknown cursor %s", d)
	}
}

func TestStepSingleElement(t *testing.T) {
	only := QuestionRef{QuestionID: uuid.New(), Number: 1}
	_, ok := Step([]QuestionRef{only}, only.QuestionID, DirectionNext)
	assert.False(t, ok)
	_, ok = Step([]QuestionRef{only}, only.QuestionID, DirectionPrevious)
	assert.False(t, ok)
	_, ok = Step(nil, only.QuestionID, DirectionNext)
	assert.False(t, ok)
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("Prev")
	assert.True(t, ok)
	assert.Equal(t, DirectionPrevious, d)
	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}

/* ========== lifecycle ========== */

func TestSubmitAdvancesAndRecordsHistory(t *testing.T) {
	s := newStubStore()
	id, _ := seedAssessment(s, workflow.StatusOngoing, 1)
	assessor := workflow.Actor{ID: uuid.New(), Role: constants.RoleAssessor}
	s.assigned[id] = []uuid.UUID{assessor.ID}

	at := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewLifecycleService(s).WithClock(func() time.Time { return at })

	res, err := svc.Submit(context.Background(), id, assessor)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusOngoing, res.From)
	assert.Equal(t, workflow.StatusOngoingReview, res.To)
	assert.Equal(t, workflow.StatusOngoingReview, s.assessments[id].AssessmentStatus)
	require.Len(t, s.history, 1)
	assert.Equal(t, at, s.history[0].AssessmentStatusHistoryChangedAt)

	// sekarang hanya LEAD yang boleh submit
	_, err = svc.Submit(context.Background(), id, assessor)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestSubmitRules(t *testing.T) {
	s := newStubStore()
	svc := NewLifecycleService(s)
	ctx := context.Background()
	lead := workflow.Actor{ID: uuid.New(), Role: constants.RoleLeadAssessor}
	admin := workflow.Actor{ID: uuid.New(), Role: constants.RoleAdmin}

	done, _ := seedAssessment(s, workflow.StatusCompleted, 1)
	_, err := svc.Submit(ctx, done, admin)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	notMine, _ := seedAssessment(s, workflow.StatusCreated, 1)
	_, err = svc.Submit(ctx, notMine, lead)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	raced, _ := seedAssessment(s, workflow.StatusCreated, 1)
	s.assigned[raced] = []uuid.UUID{lead.ID}
	s.raceTo = workflow.StatusOngoing
	_, err = svc.Submit(ctx, raced, lead)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestCreateSnapshotsActiveQuestions(t *testing.T) {
	s := newStubStore()
	eng := uuid.New()
	s.engagements[eng] = true
	user := uuid.New()
	s.activeUsers[user] = true
	s.bank = []qModel.QuestionModel{
		{QuestionID: uuid.New(), QuestionNumber: 1, QuestionText: "Governance", QuestionIsActive: true, QuestionPriority: qModel.QuestionPriorityHigh},
		{QuestionID: uuid.New(), QuestionNumber: 2, QuestionText: "Retired", QuestionIsActive: false},
		{QuestionID: uuid.New(), QuestionNumber: 3, QuestionText: "Controls", QuestionIsActive: true},
	}
	admin := workflow.Actor{ID: uuid.New(), Role: constants.RoleAdmin}

	asm, err := NewLifecycleService(s).Create(context.Background(), CreateInput{
		EngagementID: eng,
		Title:        "  Site A  ",
		UserIDs:      []uuid.UUID{user, user},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Site A", asm.AssessmentTitle)
	assert.Equal(t, workflow.StatusCreated, asm.AssessmentStatus)
	assert.Equal(t, []uuid.UUID{user}, s.assigned[asm.AssessmentID])

	qs := s.questions[asm.AssessmentID]
	require.Len(t, qs, 2)
	var snap model.QuestionSnapshot
	require.NoError(t, json.Unmarshal(qs[0].AssessmentQuestionSnapshot, &snap))
	assert.Equal(t, "Governance", snap.Text)
	assert.Equal(t, "high", snap.Priority)
}

func TestCreateValidation(t *testing.T) {
	s := newStubStore()
	eng := uuid.New()
	s.engagements[eng] = true
	s.bank = []qModel.QuestionModel{{QuestionID: uuid.New(), QuestionNumber: 1, QuestionIsActive: true}}
	svc := NewLifecycleService(s)
	admin := workflow.Actor{ID: uuid.New(), Role: constants.RoleAdmin}
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{EngagementID: eng, Title: " "}, admin)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.Create(ctx, CreateInput{EngagementID: uuid.New(), Title: "x"}, admin)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Create(ctx, CreateInput{EngagementID: eng, Title: "x", QuestionIDs: []uuid.UUID{uuid.New()}}, admin)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Create(ctx, CreateInput{EngagementID: eng, Title: "x", UserIDs: []uuid.UUID{uuid.New()}}, admin)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestListForActorScopesByAssignment(t *testing.T) {
	s := newStubStore()
	mine, _ := seedAssessment(s, workflow.StatusOngoing, 1)
	seedAssessment(s, workflow.StatusOngoing, 1)
	u := workflow.Actor{ID: uuid.New(), Role: constants.RoleAssessor}
	s.assigned[mine] = []uuid.UUID{u.ID}
	svc := NewLifecycleService(s)

	rows, total, err := svc.ListForActor(context.Background(), u, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, mine, rows[0].AssessmentID)

	_, total, err = svc.ListForActor(context.Background(), workflow.Actor{ID: uuid.New(), Role: constants.RoleAdmin}, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
