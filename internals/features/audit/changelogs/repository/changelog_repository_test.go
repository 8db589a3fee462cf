package repository

import (
	"context"
	"testing"
	"time"

	"assessku_backend/internals/features/audit/changelogs/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GormChangelogStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ChangelogModel{}))
	return NewGormChangelogStore(db)
}

func entry(id string, ref model.EntityRef, field string, at time.Time) *model.ChangelogModel {
	v := field + "-new"
	return &model.ChangelogModel{
		ChangelogID:         uuid.MustParse(id),
		ChangelogEntityType: ref.Type,
		ChangelogEntityID:   ref.ID,
		ChangelogField:      field,
		ChangelogNewValue:   &v,
		ChangelogUpdatedAt:  at,
		ChangelogUpdatedBy:  uuid.New(),
	}
}

func fields(rows []model.ChangelogModel) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ChangelogField)
	}
	return out
}

func TestListChangelogSnapshotAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := model.AnswerRef(uuid.New())
	other := model.QuestionRef(uuid.New())
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t1.Add(time.Hour)

	// disisipkan acak; id menentukan urutan saat timestamp sama
	for _, e := range []*model.ChangelogModel{
		entry("00000000-0000-0000-0000-000000000004", ref, "assessor_evidence", t2),
		entry("00000000-0000-0000-0000-000000000003", ref, "assessor_explanation", t1),
		entry("00000000-0000-0000-0000-000000000002", ref, "assessor_rating", t1),
		entry("00000000-0000-0000-0000-000000000001", ref, "consensus_rating", t0),
		entry("00000000-0000-0000-0000-000000000005", other, "question_text", t0),
	} {
		require.NoError(t, s.AppendChangelog(ctx, e))
	}

	rows, total, err := s.ListChangelog(ctx, ref, t1, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"consensus_rating", "assessor_rating", "assessor_explanation"}, fields(rows))

	rows, total, err = s.ListChangelog(ctx, ref, t2, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, "assessor_evidence", rows[3].ChangelogField)

	rows, total, err = s.ListChangelog(ctx, ref, t0.Add(-time.Minute), 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, rows)
}

func TestListChangelogPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := model.QuestionRef(uuid.New())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ids := []string{
		"00000000-0000-0000-0000-00000000000a",
		"00000000-0000-0000-0000-00000000000b",
		"00000000-0000-0000-0000-00000000000c",
	}
	for i, id := range ids {
		require.NoError(t, s.AppendChangelog(ctx, entry(id, ref, []string{"a", "b", "c"}[i], base.Add(time.Duration(i)*time.Minute))))
	}

	rows, total, err := s.ListChangelog(ctx, ref, base.Add(time.Hour), 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"b"}, fields(rows))
}
