package workflow

import (
	"errors"
	"testing"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/helpers/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanWriteTable(t *testing.T) {
	cases := []struct {
		name   string
		role   constants.Role
		status Status
		stage  Stage
		want   bool
	}{
		{"assessor writes assessor while ongoing", constants.RoleAssessor, StatusOngoing, StageAssessor, true},
		{"lead writes assessor while ongoing", constants.RoleLeadAssessor, StatusOngoing, StageAssessor, true},
		{"oversight cannot write assessor while ongoing", constants.RoleOversightAssessor, StatusOngoing, StageAssessor, false},
		{"nobody writes while created", constants.RoleLeadAssessor, StatusCreated, StageAssessor, false},
		{"assessor read-only in ongoing-review", constants.RoleAssessor, StatusOngoingReview, StageAssessor, false},
		{"lead writes consensus in ongoing-review", constants.RoleLeadAssessor, StatusOngoingReview, StageConsensus, true},
		{"assessor cannot write during oversight", constants.RoleAssessor, StatusOversight, StageAssessor, false},
		{"oversight writes oversight stage", constants.RoleOversightAssessor, StatusOversight, StageOversight, true},
		{"lead amends consensus in oversight-review", constants.RoleLeadAssessor, StatusOversightReview, StageConsensus, true},
		{"lead cannot write oversight stage", constants.RoleLeadAssessor, StatusOversightReview, StageOversight, false},
		{"completed is read-only for lead", constants.RoleLeadAssessor, StatusCompleted, StageConsensus, false},
		{"client stage is admin only", constants.RoleLeadAssessor, StatusCompleted, StageClient, false},
		{"admin overrides completed", constants.RoleAdmin, StatusCompleted, StageAssessor, true},
		{"admin writes client stage", constants.RoleAdmin, StatusOngoing, StageClient, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanWrite(tc.role, tc.status, tc.stage))
		})
	}
}

func TestWritableStages(t *testing.T) {
	assert.Equal(t, []Stage{StageConsensus}, WritableStages(constants.RoleLeadAssessor, StatusOngoingReview))
	assert.Empty(t, WritableStages(constants.RoleAssessor, StatusCompleted))
	assert.Equal(t, Stages, WritableStages(constants.RoleAdmin, StatusCreated))
}

func TestSubmitWalksLifecycle(t *testing.T) {
	steps := []struct {
		role constants.Role
		from Status
		to   Status
	}{
		{constants.RoleLeadAssessor, StatusCreated, StatusOngoing},
		{constants.RoleAssessor, StatusOngoing, StatusOngoingReview},
		{constants.RoleLeadAssessor, StatusOngoingReview, StatusOversight},
		{constants.RoleOversightAssessor, StatusOversight, StatusOversightReview},
		{constants.RoleLeadAssessor, StatusOversightReview, StatusCompleted},
	}
	for _, s := range steps {
		next, err := Submit(s.role, s.from)
		require.NoError(t, err, "submit from %s", s.from)
		assert.Equal(t, s.to, next)
	}
}

func TestSubmitRejections(t *testing.T) {
	_, err := Submit(constants.RoleAssessor, StatusOngoingReview)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = Submit(constants.RoleAdmin, StatusCompleted)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = Submit(constants.RoleAdmin, Status("archived"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	next, err := Submit(constants.RoleAdmin, StatusOversight)
	require.NoError(t, err)
	assert.Equal(t, StatusOversightReview, next)
}

func TestStageVisibility(t *testing.T) {
	assert.Equal(t, StatusOngoing, StageOpensAt(StageAssessor))
	assert.Equal(t, StatusOngoingReview, StageOpensAt(StageConsensus))
	assert.Equal(t, StatusOversight, StageOpensAt(StageOversight))
	assert.Equal(t, StatusCompleted, StageOpensAt(StageClient))

	assert.Equal(t,
		[]Status{StatusOversight, StatusOversightReview, StatusCompleted},
		StageVisibleIn(StageOversight))

	assert.ElementsMatch(t,
		[]constants.Role{constants.RoleAdmin, constants.RoleLeadAssessor},
		StageWriters(StageConsensus))
	assert.Equal(t, []constants.Role{constants.RoleAdmin}, StageWriters(StageClient))
}

func TestParseHelpers(t *testing.T) {
	st, ok := ParseStatus(" Ongoing-Review ")
	assert.True(t, ok)
	assert.Equal(t, StatusOngoingReview, st)

	_, ok = ParseStatus("draft")
	assert.False(t, ok)

	sg, ok := ParseStage("OVERSIGHT")
	assert.True(t, ok)
	assert.Equal(t, StageOversight, sg)

	_, ok = ParseStage("lead")
	assert.False(t, ok)
}
