// file: internals/features/assessments/answers/service/answer_service.go
package service

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"assessku_backend/internals/features/assessments/answers/model"
	asmModel "assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	clService "assessku_backend/internals/features/audit/changelogs/service"
	qModel "assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/helpers/apperr"
	"assessku_backend/internals/metrics"

	"github.com/google/uuid"
)

const (
	MaxExplanationLen = 5000
	MaxEvidenceLen    = 5000
)

/* =========================================================
   STORE
========================================================= */

// Store: semua akses data WriteStage. Transaction memberi Store yang terikat ke satu tx.
type Store interface {
	clService.Store

	FindAssessment(ctx context.Context, assessmentID uuid.UUID) (*asmModel.AssessmentModel, error)
	FindAssessmentQuestion(ctx context.Context, assessmentID, questionID uuid.UUID) (*asmModel.AssessmentQuestionModel, error)
	IsAssigned(ctx context.Context, assessmentID, userID uuid.UUID) (bool, error)

	// FindAnswer: nil, nil kalau belum ada.
	FindAnswer(ctx context.Context, assessmentQuestionID uuid.UUID) (*model.AnswerModel, error)
	// LockAnswer: FindAnswer + row lock sampai transaksi selesai.
	LockAnswer(ctx context.Context, assessmentQuestionID uuid.UUID) (*model.AnswerModel, error)
	// CreateAnswer: false kalau baris untuk assessment_question sudah ada (dibuat request lain).
	CreateAnswer(ctx context.Context, a *model.AnswerModel) (bool, error)
	// UpdateAnswerStage: tulis satu stage, versi +1. prevVersion != nil → false kalau versi di DB beda.
	UpdateAnswerStage(ctx context.Context, a *model.AnswerModel, stage workflow.Stage, prevVersion *int) (bool, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.AnswerModel, error)

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

/* =========================================================
   SERVICE
========================================================= */

type AnswerService struct {
	store    Store
	recorder *clService.Recorder
	now      func() time.Time
}

func NewAnswerService(store Store) *AnswerService {
	return &AnswerService{
		store:    store,
		recorder: clService.NewRecorder(store),
		now:      time.Now,
	}
}

// WithClock: untuk test.
func (s *AnswerService) WithClock(now func() time.Time) *AnswerService {
	cp := *s
	cp.now = now
	cp.recorder = s.recorder.WithClock(now)
	return &cp
}

type WriteStageInput struct {
	AssessmentID uuid.UUID
	QuestionID   uuid.UUID
	Stage        string
	Payload      model.StagePayload
	// ExpectedVersion: kalau diisi dan beda dengan versi tersimpan → Conflict. Kosong → last write wins.
	ExpectedVersion *int
}

type WriteStageResult struct {
	Answer  *model.AnswerModel
	Changes []clModel.ChangelogModel
	Created bool
}

// WriteStage menulis satu stage answer setelah dicek terhadap status assessment & role actor.
// Changelog per field yang berubah + simpan answer berjalan dalam satu transaksi.
func (s *AnswerService) WriteStage(ctx context.Context, in WriteStageInput, actor workflow.Actor) (*WriteStageResult, error) {
	stage, ok := workflow.ParseStage(in.Stage)
	if !ok {
		metrics.AnswerWrites.WithLabelValues("unknown", "invalid").Inc()
		return nil, apperr.InvalidInput("stage %q tidak dikenal", in.Stage)
	}

	res, err := s.writeStage(ctx, stage, in, actor)
	metrics.AnswerWrites.WithLabelValues(string(stage), outcome(err)).Inc()
	if err != nil {
		log.Printf("[AnswerService] WriteStage ditolak assessment=%s question=%s stage=%s actor=%s role=%s: %v",
			in.AssessmentID, in.QuestionID, stage, actor.ID, actor.Role, err)
		return nil, err
	}
	log.Printf("[AnswerService] WriteStage ok answer=%s stage=%s version=%d changes=%d created=%v",
		res.Answer.AnswerID, stage, res.Answer.AnswerVersion, len(res.Changes), res.Created)
	return res, nil
}

func (s *AnswerService) writeStage(ctx context.Context, stage workflow.Stage, in WriteStageInput, actor workflow.Actor) (*WriteStageResult, error) {
	var res *WriteStageResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		asm, err := tx.FindAssessment(ctx, in.AssessmentID)
		if err != nil {
			return err
		}
		if !workflow.CanWrite(actor.Role, asm.AssessmentStatus, stage) {
			return apperr.Forbidden("role %s tidak boleh menulis stage %s saat assessment %s", actor.Role, stage, asm.AssessmentStatus)
		}
		if !actor.IsAdmin() {
			assigned, err := tx.IsAssigned(ctx, asm.AssessmentID, actor.ID)
			if err != nil {
				return err
			}
			if !assigned {
				return apperr.Forbidden("user tidak ditugaskan pada assessment ini")
			}
		}

		payload, err := NormalizePayload(in.Payload)
		if err != nil {
			return err
		}

		aq, err := tx.FindAssessmentQuestion(ctx, asm.AssessmentID, in.QuestionID)
		if err != nil {
			return err
		}

		// percobaan kedua hanya terjadi kalau insert kalah balapan dengan request lain
		for attempt := 0; ; attempt++ {
			answer, err := tx.LockAnswer(ctx, aq.AssessmentQuestionID)
			if err != nil {
				return err
			}
			created := answer == nil
			prevVersion := 0
			if created {
				answer = &model.AnswerModel{
					AnswerID:                   uuid.New(),
					AnswerAssessmentQuestionID: aq.AssessmentQuestionID,
					AnswerAssessmentID:         asm.AssessmentID,
					AnswerQuestionID:           aq.AssessmentQuestionQuestionID,
				}
			} else {
				prevVersion = answer.AnswerVersion
			}
			if in.ExpectedVersion != nil && *in.ExpectedVersion != prevVersion {
				return apperr.Conflict("versi answer %d, request mengirim %d", prevVersion, *in.ExpectedVersion)
			}

			before := answer.StageSnapshot(stage)
			answer.SetStage(stage, payload)
			after := answer.StageSnapshot(stage)

			now := s.now().UTC()
			uid := actor.ID
			answer.AnswerUserID = &uid
			answer.AnswerUpdatedAt = now
			answer.AnswerVersion = prevVersion + 1

			if created {
				answer.AnswerCreatedAt = now
				inserted, err := tx.CreateAnswer(ctx, answer)
				if err != nil {
					return err
				}
				if !inserted {
					if in.ExpectedVersion != nil || attempt > 0 {
						return apperr.Conflict("answer untuk question ini baru saja dibuat oleh request lain")
					}
					continue
				}
			} else {
				var guard *int
				if in.ExpectedVersion != nil {
					guard = &prevVersion
				}
				ok, err := tx.UpdateAnswerStage(ctx, answer, stage, guard)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.Conflict("answer diubah oleh request lain, muat ulang lalu coba lagi")
				}
			}

			changes, err := s.recorder.WithStore(tx).WithClock(func() time.Time { return now }).
				RecordDiff(ctx, clModel.AnswerRef(answer.AnswerID), before, after, actor)
			if err != nil {
				return err
			}
			res = &WriteStageResult{Answer: answer, Changes: changes, Created: created}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetAnswer: answer untuk (assessment, question); nil kalau belum pernah disimpan.
func (s *AnswerService) GetAnswer(ctx context.Context, assessmentID, questionID uuid.UUID) (*model.AnswerModel, error) {
	aq, err := s.store.FindAssessmentQuestion(ctx, assessmentID, questionID)
	if err != nil {
		return nil, err
	}
	return s.store.FindAnswer(ctx, aq.AssessmentQuestionID)
}

// ListAnswers: semua answer tersimpan dalam satu assessment.
func (s *AnswerService) ListAnswers(ctx context.Context, assessmentID uuid.UUID) ([]model.AnswerModel, error) {
	if _, err := s.store.FindAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.store.ListByAssessment(ctx, assessmentID)
}

/* =========================================================
   VALIDATION
========================================================= */

// ValidRating: rating harus "1".."5".
func ValidRating(r string) bool {
	if len(r) != 1 {
		return false
	}
	lvl := int(r[0] - '0')
	return lvl >= qModel.RatingMinLevel && lvl <= qModel.RatingMaxLevel
}

// NormalizePayload: trim; string kosong → NULL; cek skala rating & panjang teks.
func NormalizePayload(p model.StagePayload) (model.StagePayload, error) {
	out := model.StagePayload{
		Rating:      trimToNil(p.Rating),
		Explanation: trimToNil(p.Explanation),
		Evidence:    trimToNil(p.Evidence),
	}
	if out.Rating != nil && !ValidRating(*out.Rating) {
		return out, apperr.InvalidInput("rating %q di luar skala %d..%d", *out.Rating, qModel.RatingMinLevel, qModel.RatingMaxLevel)
	}
	if out.Explanation != nil && utf8.RuneCountInString(*out.Explanation) > MaxExplanationLen {
		return out, apperr.InvalidInput("explanation maksimal %d karakter", MaxExplanationLen)
	}
	if out.Evidence != nil && utf8.RuneCountInString(*out.Evidence) > MaxEvidenceLen {
		return out, apperr.InvalidInput("evidence maksimal %d karakter", MaxEvidenceLen)
	}
	return out, nil
}

func trimToNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func outcome(err error) string {
	if err == nil {
		return "accepted"
	}
	k, ok := apperr.KindOf(err)
	if !ok {
		return "error"
	}
	switch k {
	case apperr.KindForbidden:
		return "forbidden"
	case apperr.KindNotFound:
		return "not_found"
	case apperr.KindInvalidInput:
		return "invalid"
	case apperr.KindConflict:
		return "conflict"
	}
	return "error"
}
