// file: internals/features/assessments/assessments/service/lifecycle_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"assessku_backend/internals/features/assessments/assessments/model"
	"assessku_backend/internals/features/assessments/workflow"
	"assessku_backend/internals/helpers/apperr"
	"assessku_backend/internals/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LifecycleService struct {
	store Store
	now   func() time.Time
}

func NewLifecycleService(store Store) *LifecycleService {
	return &LifecycleService{store: store, now: time.Now}
}

func (s *LifecycleService) WithClock(now func() time.Time) *LifecycleService {
	return &LifecycleService{store: s.store, now: now}
}

/* =========================================================
   CREATE
========================================================= */

type CreateInput struct {
	EngagementID uuid.UUID
	Title        string
	SiteName     string
	ScheduledAt  *time.Time
	QuestionIDs  []uuid.UUID // kosong → semua question aktif
	UserIDs      []uuid.UUID
}

// Create membuat assessment (status created), menyalin snapshot setiap question dan assign users.
// Keanggotaan question tidak berubah setelah ini.
func (s *LifecycleService) Create(ctx context.Context, in CreateInput, actor workflow.Actor) (*model.AssessmentModel, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.InvalidInput("judul assessment wajib diisi")
	}
	ok, err := s.store.EngagementExists(ctx, in.EngagementID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("engagement %s tidak ditemukan", in.EngagementID)
	}

	qids := uniqueIDs(in.QuestionIDs)
	questions, err := s.store.FindQuestions(ctx, qids)
	if err != nil {
		return nil, err
	}
	if len(qids) > 0 && len(questions) != len(qids) {
		return nil, apperr.NotFound("sebagian question tidak ditemukan (%d dari %d)", len(questions), len(qids))
	}
	if len(questions) == 0 {
		return nil, apperr.InvalidInput("tidak ada question aktif untuk assessment")
	}

	uids := uniqueIDs(in.UserIDs)
	if len(uids) > 0 {
		n, err := s.store.CountActiveUsers(ctx, uids)
		if err != nil {
			return nil, err
		}
		if n != int64(len(uids)) {
			return nil, apperr.InvalidInput("sebagian user tidak ditemukan / tidak aktif")
		}
	}

	asm := &model.AssessmentModel{
		AssessmentID:           uuid.New(),
		AssessmentEngagementID: in.EngagementID,
		AssessmentTitle:        title,
		AssessmentSiteName:     strings.TrimSpace(in.SiteName),
		AssessmentStatus:       workflow.StatusCreated,
		AssessmentScheduledAt:  in.ScheduledAt,
		AssessmentCreatedBy:    actor.ID,
	}

	aqs := make([]model.AssessmentQuestionModel, 0, len(questions))
	for _, q := range questions {
		snap, err := json.Marshal(model.QuestionSnapshot{
			Number:       q.QuestionNumber,
			Text:         q.QuestionText,
			Pillar:       q.QuestionPillar,
			PracticeArea: q.QuestionPracticeArea,
			TopicArea:    q.QuestionTopicArea,
			Priority:     string(q.QuestionPriority),
		})
		if err != nil {
			return nil, err
		}
		aqs = append(aqs, model.AssessmentQuestionModel{
			AssessmentQuestionID:           uuid.New(),
			AssessmentQuestionAssessmentID: asm.AssessmentID,
			AssessmentQuestionQuestionID:   q.QuestionID,
			AssessmentQuestionNumber:       q.QuestionNumber,
			AssessmentQuestionSnapshot:     datatypes.JSON(snap),
		})
	}

	if err := s.store.CreateAssessment(ctx, asm, aqs, uids); err != nil {
		return nil, err
	}
	log.Printf("[AssessmentLifecycle] created assessment=%s questions=%d users=%d by=%s",
		asm.AssessmentID, len(aqs), len(uids), actor.ID)
	return asm, nil
}

/* =========================================================
   ASSIGN
========================================================= */

func (s *LifecycleService) AssignUsers(ctx context.Context, assessmentID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.store.FindAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	uids := uniqueIDs(userIDs)
	if len(uids) > 0 {
		n, err := s.store.CountActiveUsers(ctx, uids)
		if err != nil {
			return nil, err
		}
		if n != int64(len(uids)) {
			return nil, apperr.InvalidInput("sebagian user tidak ditemukan / tidak aktif")
		}
	}
	if err := s.store.ReplaceAssignedUsers(ctx, assessmentID, uids); err != nil {
		return nil, err
	}
	return uids, nil
}

/* =========================================================
   SUBMIT (status transition)
========================================================= */

type SubmitResult struct {
	From workflow.Status `json:"from"`
	To   workflow.Status `json:"to"`
}

// Submit memajukan status satu langkah. Satu arah, tidak ada reversal.
func (s *LifecycleService) Submit(ctx context.Context, assessmentID uuid.UUID, actor workflow.Actor) (*SubmitResult, error) {
	asm, err := s.store.FindAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureMember(ctx, asm.AssessmentID, actor); err != nil {
		return nil, err
	}

	from := asm.AssessmentStatus
	to, err := workflow.Submit(actor.Role, from)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.AdvanceStatus(ctx, asm.AssessmentID, from, to, actor.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("status assessment sudah berubah, muat ulang halaman")
	}
	metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	log.Printf("[AssessmentLifecycle] submit assessment=%s %s → %s by=%s (%s)", asm.AssessmentID, from, to, actor.ID, actor.Role)
	return &SubmitResult{From: from, To: to}, nil
}

/* =========================================================
   READ
========================================================= */

// Get: detail assessment (hanya anggota / ADMIN).
func (s *LifecycleService) Get(ctx context.Context, assessmentID uuid.UUID, actor workflow.Actor) (*model.AssessmentModel, error) {
	asm, err := s.store.FindAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureMember(ctx, asm.AssessmentID, actor); err != nil {
		return nil, err
	}
	return asm, nil
}

// FindAssessment: tanpa cek keanggotaan (dipakai guard yang mengecek sendiri).
func (s *LifecycleService) FindAssessment(ctx context.Context, assessmentID uuid.UUID) (*model.AssessmentModel, error) {
	return s.store.FindAssessment(ctx, assessmentID)
}

// ListForActor: ADMIN lihat semua; role lain hanya yang ditugaskan.
func (s *LifecycleService) ListForActor(ctx context.Context, actor workflow.Actor, status *workflow.Status, offset, limit int) ([]model.AssessmentModel, int64, error) {
	if actor.IsAdmin() {
		return s.store.ListForUser(ctx, nil, status, offset, limit)
	}
	uid := actor.ID
	return s.store.ListForUser(ctx, &uid, status, offset, limit)
}

func (s *LifecycleService) AssignedUsers(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error) {
	return s.store.ListAssignedUserIDs(ctx, assessmentID)
}

func (s *LifecycleService) StatusHistory(ctx context.Context, assessmentID uuid.UUID) ([]model.AssessmentStatusHistoryModel, error) {
	return s.store.ListStatusHistory(ctx, assessmentID)
}

// IsMember: ADMIN dianggap anggota semua assessment.
func (s *LifecycleService) IsMember(ctx context.Context, assessmentID uuid.UUID, actor workflow.Actor) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	return s.store.IsAssigned(ctx, assessmentID, actor.ID)
}

func (s *LifecycleService) ensureMember(ctx context.Context, assessmentID uuid.UUID, actor workflow.Actor) error {
	ok, err := s.IsMember(ctx, assessmentID, actor)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("user tidak ditugaskan pada assessment ini")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
