package question_bank

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/features/questions/questions/service"
	"assessku_backend/internals/helpers/apperr"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type RatingSeed struct {
	Level       int    `yaml:"level"`
	Criteria    string `yaml:"criteria"`
	Progression string `yaml:"progression"`
}

type QuestionSeed struct {
	Number       int          `yaml:"number"`
	Text         string       `yaml:"text"`
	Pillar       string       `yaml:"pillar"`
	PracticeArea string       `yaml:"practice_area"`
	TopicArea    string       `yaml:"topic_area"`
	Priority     string       `yaml:"priority"`
	Active       *bool        `yaml:"active"`
	Ratings      []RatingSeed `yaml:"ratings"`
}

type QuestionBank struct {
	Questions []QuestionSeed `yaml:"questions"`
}

// ParseQuestionBank: decode + validasi (nomor unik, teks wajib, level rating 1..5 tanpa duplikat).
func ParseQuestionBank(raw []byte) (*QuestionBank, error) {
	var bank QuestionBank
	if err := yaml.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	seen := map[int]bool{}
	for i, q := range bank.Questions {
		if q.Number < 1 {
			return nil, fmt.Errorf("questions[%d]: number wajib >= 1", i)
		}
		if seen[q.Number] {
			return nil, fmt.Errorf("questions[%d]: number %d duplikat", i, q.Number)
		}
		seen[q.Number] = true
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %d: text kosong", q.Number)
		}
		switch model.QuestionPriority(strings.ToLower(q.Priority)) {
		case "", model.QuestionPriorityLow, model.QuestionPriorityMedium, model.QuestionPriorityHigh:
		default:
			return nil, fmt.Errorf("question %d: priority %q tidak dikenal", q.Number, q.Priority)
		}
		levels := map[int]bool{}
		for _, r := range q.Ratings {
			if r.Level < model.RatingMinLevel || r.Level > model.RatingMaxLevel {
				return nil, fmt.Errorf("question %d: rating level %d di luar 1..5", q.Number, r.Level)
			}
			if levels[r.Level] {
				return nil, fmt.Errorf("question %d: rating level %d duplikat", q.Number, r.Level)
			}
			levels[r.Level] = true
		}
	}
	return &bank, nil
}

func (q QuestionSeed) toModel() *model.QuestionModel {
	prio := model.QuestionPriority(strings.ToLower(strings.TrimSpace(q.Priority)))
	if prio == "" {
		prio = model.QuestionPriorityMedium
	}
	active := true
	if q.Active != nil {
		active = *q.Active
	}
	return &model.QuestionModel{
		QuestionNumber:       q.Number,
		QuestionText:         strings.TrimSpace(q.Text),
		QuestionPillar:       strings.TrimSpace(q.Pillar),
		QuestionPracticeArea: strings.TrimSpace(q.PracticeArea),
		QuestionTopicArea:    strings.TrimSpace(q.TopicArea),
		QuestionPriority:     prio,
		QuestionIsActive:     active,
	}
}

func (q QuestionSeed) ratingModels() []model.RatingModel {
	out := make([]model.RatingModel, 0, len(q.Ratings))
	for _, r := range q.Ratings {
		var prog *string
		if p := strings.TrimSpace(r.Progression); p != "" {
			prog = &p
		}
		out = append(out, model.RatingModel{
			RatingLevel:       r.Level,
			RatingCriteria:    strings.TrimSpace(r.Criteria),
			RatingProgression: prog,
		})
	}
	return out
}

// SeedQuestionBank: question yang nomornya sudah ada dilewati (idempotent).
func SeedQuestionBank(ctx context.Context, db *gorm.DB, bank *QuestionBank) (inserted, skipped int, err error) {
	svc := service.NewQuestionService(db)
	for _, q := range bank.Questions {
		m := q.toModel()
		if err := svc.Create(ctx, m); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				log.Printf("ℹ️ Question nomor %d sudah ada, dilewati.", q.Number)
				skipped++
				continue
			}
			return inserted, skipped, fmt.Errorf("question %d: %w", q.Number, err)
		}
		if len(q.Ratings) > 0 {
			if _, err := svc.UpsertRatings(ctx, m.QuestionID, q.ratingModels()); err != nil {
				return inserted, skipped, fmt.Errorf("ratings question %d: %w", q.Number, err)
			}
		}
		inserted++
	}
	return inserted, skipped, nil
}

func SeedQuestionBankFromYAML(ctx context.Context, db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file bank soal:", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	bank, err := ParseQuestionBank(raw)
	if err != nil {
		return err
	}
	inserted, skipped, err := SeedQuestionBank(ctx, db, bank)
	if err != nil {
		return err
	}
	log.Printf("✅ Bank soal: %d ditambah, %d dilewati", inserted, skipped)
	return nil
}
