// Package workflow is the single table of assessment statuses, answer stages and the roles allowed
// to act on them. The answer service, the submit action and the page guard all read from here.
package workflow

import (
	"strings"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/helpers/apperr"

	"github.com/google/uuid"
)

/* =========================================================
   STATUS
========================================================= */

type Status string

const (
	StatusCreated         Status = "created"
	StatusOngoing         Status = "ongoing"
	StatusOngoingReview   Status = "ongoing-review"
	StatusOversight       Status = "oversight"
	StatusOversightReview Status = "oversight-review"
	StatusCompleted       Status = "completed"
)

// Statuses dalam urutan lifecycle.
var Statuses = []Status{
	StatusCreated,
	StatusOngoing,
	StatusOngoingReview,
	StatusOversight,
	StatusOversightReview,
	StatusCompleted,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, x := range Statuses {
		if x == st {
			return st, true
		}
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

func (s Status) index() int {
	for i, x := range Statuses {
		if x == s {
			return i
		}
	}
	return -1
}

func (s Status) Terminal() bool { return s == StatusCompleted }

// Next: status berikutnya; false kalau terminal / tidak dikenal.
func (s Status) Next() (Status, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(Statuses) {
		return "", false
	}
	return Statuses[i+1], true
}

// AtOrAfter: true kalau s sudah mencapai (atau melewati) other.
func (s Status) AtOrAfter(other Status) bool {
	i, j := s.index(), other.index()
	return i >= 0 && j >= 0 && i >= j
}

/* =========================================================
   STAGE
========================================================= */

type Stage string

const (
	StageAssessor  Stage = "assessor"
	StageConsensus Stage = "consensus"
	StageOversight Stage = "oversight"
	StageClient    Stage = "client"
)

var Stages = []Stage{StageAssessor, StageConsensus, StageOversight, StageClient}

func ParseStage(s string) (Stage, bool) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	for _, x := range Stages {
		if x == st {
			return st, true
		}
	}
	return "", false
}

/* =========================================================
   ACTOR
========================================================= */

// Actor: user yang sedang bertindak (dari token).
type Actor struct {
	ID   uuid.UUID
	Role constants.Role
}

func (a Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

/* =========================================================
   TABLES
========================================================= */

// Grant: stage yang boleh ditulis oleh roles pada suatu status.
type Grant struct {
	Stage Stage
	Roles []constants.Role
}

var writeTable = map[Status][]Grant{
	StatusOngoing: {
		{Stage: StageAssessor, Roles: []constants.Role{constants.RoleAssessor, constants.RoleLeadAssessor}},
	},
	StatusOngoingReview: {
		{Stage: StageConsensus, Roles: []constants.Role{constants.RoleLeadAssessor}},
	},
	StatusOversight: {
		{Stage: StageOversight, Roles: []constants.Role{constants.RoleOversightAssessor}},
	},
	StatusOversightReview: {
		{Stage: StageConsensus, Roles: []constants.Role{constants.RoleLeadAssessor}},
	},
}

// submitTable: role (selain ADMIN) yang boleh memajukan status dari key.
var submitTable = map[Status][]constants.Role{
	StatusCreated:         {constants.RoleLeadAssessor},
	StatusOngoing:         {constants.RoleAssessor, constants.RoleLeadAssessor},
	StatusOngoingReview:   {constants.RoleLeadAssessor},
	StatusOversight:       {constants.RoleOversightAssessor},
	StatusOversightReview: {constants.RoleLeadAssessor},
}

// CanWrite: boleh role menulis stage pada status ini? ADMIN selalu boleh.
func CanWrite(role constants.Role, status Status, stage Stage) bool {
	if role == constants.RoleAdmin {
		return true
	}
	for _, g := range writeTable[status] {
		if g.Stage == stage && constants.HasRole(role, g.Roles) {
			return true
		}
	}
	return false
}

// WritableStages: stage yang bisa ditulis role pada status (urutan Stages).
func WritableStages(role constants.Role, status Status) []Stage {
	out := make([]Stage, 0, len(Stages))
	for _, st := range Stages {
		if CanWrite(role, status, st) {
			out = append(out, st)
		}
	}
	return out
}

func CanSubmit(role constants.Role, status Status) bool {
	if status.Terminal() || !status.Valid() {
		return false
	}
	if role == constants.RoleAdmin {
		return true
	}
	return constants.HasRole(role, submitTable[status])
}

// Submit memvalidasi transisi dan mengembalikan status tujuan.
func Submit(role constants.Role, status Status) (Status, error) {
	if !status.Valid() {
		return "", apperr.InvalidInput("status %q tidak dikenal", status)
	}
	next, ok := status.Next()
	if !ok {
		return "", apperr.Conflict("assessment sudah %s", status)
	}
	if !CanSubmit(role, status) {
		return "", apperr.Forbidden("role %s tidak boleh submit assessment berstatus %s", role, status)
	}
	return next, nil
}

// StageWriters: semua role non-admin yang pernah boleh menulis stage, plus ADMIN.
func StageWriters(stage Stage) []constants.Role {
	seen := map[constants.Role]bool{constants.RoleAdmin: true}
	out := []constants.Role{constants.RoleAdmin}
	for _, st := range Statuses {
		for _, g := range writeTable[st] {
			if g.Stage != stage {
				continue
			}
			for _, r := range g.Roles {
				if !seen[r] {
					seen[r] = true
					out = append(out, r)
				}
			}
		}
	}
	return out
}

// StageOpensAt: status pertama di mana stage bisa ditulis (non-admin).
// Stage client hanya untuk ADMIN, dianggap terbuka saat completed.
func StageOpensAt(stage Stage) Status {
	for _, st := range Statuses {
		for _, g := range writeTable[st] {
			if g.Stage == stage {
				return st
			}
		}
	}
	return StatusCompleted
}

// StageVisibleIn: status di mana halaman stage relevan (sejak dibuka sampai completed).
func StageVisibleIn(stage Stage) []Status {
	from := StageOpensAt(stage)
	out := make([]Status, 0, len(Statuses))
	for _, st := range Statuses {
		if st.AtOrAfter(from) {
			out = append(out, st)
		}
	}
	return out
}
