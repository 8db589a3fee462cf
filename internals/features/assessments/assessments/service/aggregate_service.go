// file: internals/features/assessments/assessments/service/aggregate_service.go
package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
)

// QuestionRef: satu soal dalam daftar urut assessment.
type QuestionRef struct {
	AssessmentQuestionID uuid.UUID `json:"assessment_question_id"`
	QuestionID           uuid.UUID `json:"question_id"`
	Number               int       `json:"number"`
	Position             int       `json:"position"`
	Text                 string    `json:"text"`
	Pillar               string    `json:"pillar,omitempty"`
	PracticeArea         string    `json:"practice_area,omitempty"`
	TopicArea            string    `json:"topic_area,omitempty"`
	Priority             string    `json:"priority,omitempty"`
}

type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionPrevious, "prev":
		return DirectionPrevious, true
	case DirectionNext:
		return DirectionNext, true
	}
	return "", false
}

/* =========================================================
   AGGREGATE (read-only)
========================================================= */

type AggregateService struct {
	store Store
}

func NewAggregateService(store Store) *AggregateService {
	return &AggregateService{store: store}
}

// ListQuestions: urut nomor soal (tiebreak question id), tidak tergantung urutan storage.
func (s *AggregateService) ListQuestions(ctx context.Context, assessmentID uuid.UUID) ([]QuestionRef, error) {
	if _, err := s.store.FindAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	rows, err := s.store.ListAssessmentQuestions(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return OrderQuestions(rows), nil
}

// CurrentQuestion: cursor = question id (bukan index).
func (s *AggregateService) CurrentQuestion(ctx context.Context, assessmentID, cursor uuid.UUID) (QuestionRef, error) {
	list, err := s.ListQuestions(ctx, assessmentID)
	if err != nil {
		return QuestionRef{}, err
	}
	for _, q := range list {
		if q.QuestionID == cursor {
			return q, nil
		}
	}
	return QuestionRef{}, apperr.NotFound("question %s tidak ada di assessment %s", cursor, assessmentID)
}

// Advance: soal sebelum/sesudah cursor. ok=false berarti boundary (no-op).
func (s *AggregateService) Advance(ctx context.Context, assessmentID, cursor uuid.UUID, dir Direction) (QuestionRef, bool, error) {
	list, err := s.ListQuestions(ctx, assessmentID)
	if err != nil {
		return QuestionRef{}, false, err
	}
	ref, ok := Step(list, cursor, dir)
	return ref, ok, nil
}

// Step: navigasi murni di atas daftar urut. Cursor yang tidak ada di daftar → boundary.
func Step(list []QuestionRef, cursor uuid.UUID, dir Direction) (QuestionRef, bool) {
	idx := -1
	for i, q := range list {
		if q.QuestionID == cursor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return QuestionRef{}, false
	}
	switch dir {
	case DirectionPrevious:
		if idx == 0 {
			return QuestionRef{}, false
		}
		return list[idx-1], true
	case DirectionNext:
		if idx == len(list)-1 {
			return QuestionRef{}, false
		}
		return list[idx+1], true
	}
	return QuestionRef{}, false
}

// OrderQuestions: rows → QuestionRef urut (number, question_id) dengan posisi 1-based.
func OrderQuestions(rows []model.AssessmentQuestionModel) []QuestionRef {
	out := make([]QuestionRef, 0, len(rows))
	for _, r := range rows {
		ref := QuestionRef{
			AssessmentQuestionID: r.AssessmentQuestionID,
			QuestionID:           r.AssessmentQuestionQuestionID,
			Number:               r.AssessmentQuestionNumber,
		}
		if len(r.AssessmentQuestionSnapshot) > 0 {
			var snap model.QuestionSnapshot
			if err := json.Unmarshal(r.AssessmentQuestionSnapshot, &snap); err == nil {
				ref.Text = snap.Text
				ref.Pillar = snap.Pillar
				ref.PracticeArea = snap.PracticeArea
				ref.TopicArea = snap.TopicArea
				ref.Priority = snap.Priority
			}
		}
		out = append(out, ref)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].QuestionID.String() < out[j].QuestionID.String()
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
