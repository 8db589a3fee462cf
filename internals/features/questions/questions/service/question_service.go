// file: internals/features/questions/questions/service/question_service.go
package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"assessku_backend/internals/features/assessments/workflow"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	clRepo "assessku_backend/internals/features/audit/changelogs/repository"
	clService "assessku_backend/internals/features/audit/changelogs/service"
	"assessku_backend/internals/features/questions/questions/model"
	helper "assessku_backend/internals/helpers"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionService struct {
	DB       *gorm.DB
	recorder *clService.Recorder
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{
		DB:       db,
		recorder: clService.NewRecorder(clRepo.NewGormChangelogStore(db)),
	}
}

/* =========================================================
   READ
========================================================= */

type ListFilter struct {
	Search   string
	Pillar   string
	IsActive *bool
}

func (s *QuestionService) List(ctx context.Context, f ListFilter, order string, offset, limit int) ([]model.QuestionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.QuestionModel{})
	if v := strings.TrimSpace(f.Search); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(question_text) LIKE ? OR LOWER(question_topic_area) LIKE ?", like, like)
	}
	if v := strings.TrimSpace(f.Pillar); v != "" {
		q = q.Where("question_pillar = ?", v)
	}
	if f.IsActive != nil {
		q = q.Where("question_is_active = ?", *f.IsActive)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if order == "" {
		order = "question_number ASC"
	}
	var rows []model.QuestionModel
	err := q.Order(order).Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	return findQuestion(s.DB.WithContext(ctx), id)
}

func findQuestion(db *gorm.DB, id uuid.UUID) (*model.QuestionModel, error) {
	var m model.QuestionModel
	err := db.First(&m, "question_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("question %s tidak ditemukan", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   WRITE
========================================================= */

func (s *QuestionService) Create(ctx context.Context, m *model.QuestionModel) error {
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Conflict("nomor question %d sudah dipakai", m.QuestionNumber)
		}
		return err
	}
	log.Printf("[QuestionService] created question=%s number=%d", m.QuestionID, m.QuestionNumber)
	return nil
}

// Update menerapkan apply ke question lalu mencatat changelog per field yang berubah, satu transaksi.
func (s *QuestionService) Update(
	ctx context.Context,
	id uuid.UUID,
	apply func(m *model.QuestionModel),
	actor workflow.Actor,
) (*model.QuestionModel, []clModel.ChangelogModel, error) {
	var (
		out     *model.QuestionModel
		changes []clModel.ChangelogModel
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findQuestion(tx, id)
		if err != nil {
			return err
		}
		before := m.TrackedFields()
		apply(m)
		after := m.TrackedFields()

		if len(clService.Diff(before, after)) == 0 {
			out = m
			return nil
		}
		if err := tx.Save(m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return apperr.Conflict("nomor question %d sudah dipakai", m.QuestionNumber)
			}
			return err
		}
		changes, err = s.recorder.WithStore(clRepo.NewGormChangelogStore(tx)).
			RecordDiff(ctx, clModel.QuestionRef(m.QuestionID), before, after, actor)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, changes, nil
}

// Delete: soft delete.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.QuestionModel{}, "question_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("question %s tidak ditemukan", id)
	}
	return nil
}

/* =========================================================
   RATINGS
========================================================= */

func (s *QuestionService) Ratings(ctx context.Context, questionID uuid.UUID) ([]model.RatingModel, error) {
	var rows []model.RatingModel
	err := s.DB.WithContext(ctx).
		Where("rating_question_id = ?", questionID).
		Order("rating_level ASC").
		Find(&rows).Error
	return rows, err
}

// UpsertRatings: upsert per level (1..5) untuk satu question.
func (s *QuestionService) UpsertRatings(ctx context.Context, questionID uuid.UUID, rows []model.RatingModel) ([]model.RatingModel, error) {
	seen := map[int]bool{}
	for i := range rows {
		lvl := rows[i].RatingLevel
		if lvl < model.RatingMinLevel || lvl > model.RatingMaxLevel {
			return nil, apperr.InvalidInput("rating level %d di luar %d..%d", lvl, model.RatingMinLevel, model.RatingMaxLevel)
		}
		if seen[lvl] {
			return nil, apperr.InvalidInput("rating level %d dikirim dua kali", lvl)
		}
		seen[lvl] = true
		rows[i].RatingQuestionID = questionID
		if rows[i].RatingID == uuid.Nil {
			rows[i].RatingID = uuid.New()
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RatingLevel < rows[j].RatingLevel })

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findQuestion(tx, questionID); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rating_question_id"}, {Name: "rating_level"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating_criteria", "rating_progression", "rating_updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Ratings(ctx, questionID)
}
