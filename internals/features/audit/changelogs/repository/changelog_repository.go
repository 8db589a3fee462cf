// file: internals/features/audit/changelogs/repository/changelog_repository.go
package repository

import (
	"context"
	"time"

	"assessku_backend/internals/features/audit/changelogs/model"

	"gorm.io/gorm"
)

// GormChangelogStore: implementasi service.Store di atas gorm.
type GormChangelogStore struct {
	DB *gorm.DB
}

func NewGormChangelogStore(db *gorm.DB) *GormChangelogStore {
	return &GormChangelogStore{DB: db}
}

func (s *GormChangelogStore) AppendChangelog(ctx context.Context, entry *model.ChangelogModel) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

// ListChangelog: entry milik ref dengan updated_at <= asOf, urut naik (id sebagai tiebreak).
func (s *GormChangelogStore) ListChangelog(
	ctx context.Context,
	ref model.EntityRef,
	asOf time.Time,
	offset, limit int,
) ([]model.ChangelogModel, int64, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.ChangelogModel{}).
		Where("changelog_entity_type = ? AND changelog_entity_id = ?", ref.Type, ref.ID).
		Where("changelog_updated_at <= ?", asOf).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ChangelogModel
	if limit <= 0 {
		limit = -1
	}
	if err := q.
		Order("changelog_updated_at ASC").
		Order("changelog_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
