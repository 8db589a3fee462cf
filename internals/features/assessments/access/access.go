// Package access: satu tabel deklaratif role → halaman, dipakai route guard dan menu navigasi.
package access

import (
	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/workflow"
)

type Page string

const (
	PageAssessmentList   Page = "assessment-list"
	PageAssessmentDetail Page = "assessment-detail"
	PageAssessmentSubmit Page = "assessment-submit"
	PageQuestionBank     Page = "question-bank"
	PageUsers            Page = "users"
	PageClients          Page = "clients"
	PageAnswerChangelog  Page = "answer-changelog"
	PageStageAssessor    Page = "stage-assessor"
	PageStageConsensus   Page = "stage-consensus"
	PageStageOversight   Page = "stage-oversight"
	PageStageClient      Page = "stage-client"
)

// Rule: syarat membuka halaman.
type Rule struct {
	Roles []constants.Role
	// AssessmentScoped: user harus ditugaskan di assessment (ADMIN selalu lolos).
	AssessmentScoped bool
	// Statuses: kosong = semua status.
	Statuses []workflow.Status
}

// StagePage: halaman untuk satu stage answer.
func StagePage(stage workflow.Stage) Page {
	return Page("stage-" + string(stage))
}

var rules = buildRules()

func buildRules() map[Page]Rule {
	r := map[Page]Rule{
		PageAssessmentList:   {Roles: constants.AllRoles},
		PageAssessmentDetail: {Roles: constants.AllRoles, AssessmentScoped: true},
		PageAssessmentSubmit: {Roles: constants.AllRoles, AssessmentScoped: true},
		PageAnswerChangelog:  {Roles: constants.AllRoles, AssessmentScoped: true},
		PageQuestionBank:     {Roles: constants.AdminOnly},
		PageUsers:            {Roles: constants.AdminOnly},
		PageClients:          {Roles: constants.AdminOnly},
	}
	// halaman stage diturunkan dari tabel workflow
	for _, st := range workflow.Stages {
		r[StagePage(st)] = Rule{
			Roles:            workflow.StageWriters(st),
			AssessmentScoped: true,
			Statuses:         workflow.StageVisibleIn(st),
		}
	}
	return r
}

// Target: assessment yang sedang dibuka (nil untuk halaman non-assessment).
type Target struct {
	Status   workflow.Status
	Assigned bool
}

func RuleFor(p Page) (Rule, bool) {
	r, ok := rules[p]
	return r, ok
}

// CanAccess: role ∈ rule.Roles AND (scoped → assigned) AND status ∈ rule.Statuses.
// ADMIN tidak dibatasi status maupun penugasan.
func CanAccess(actor workflow.Actor, page Page, target *Target) bool {
	rule, ok := rules[page]
	if !ok {
		return false
	}
	if !constants.HasRole(actor.Role, rule.Roles) {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if rule.AssessmentScoped {
		if target == nil || !target.Assigned {
			return false
		}
	}
	if len(rule.Statuses) > 0 {
		if target == nil || !containsStatus(rule.Statuses, target.Status) {
			return false
		}
	}
	return true
}

// MenuItem: satu entri menu navigasi.
type MenuItem struct {
	Page     Page `json:"page"`
	Writable bool `json:"writable"`
}

// Pages: halaman yang boleh dibuka actor untuk target (menu navigasi).
// Writable hanya bermakna untuk halaman stage.
func Pages(actor workflow.Actor, target *Target) []MenuItem {
	order := []Page{
		PageAssessmentList, PageAssessmentDetail, PageAssessmentSubmit,
		PageStageAssessor, PageStageConsensus, PageStageOversight, PageStageClient,
		PageAnswerChangelog, PageQuestionBank, PageClients, PageUsers,
	}
	out := make([]MenuItem, 0, len(order))
	for _, p := range order {
		if !CanAccess(actor, p, target) {
			continue
		}
		item := MenuItem{Page: p}
		if st, ok := stageOf(p); ok && target != nil {
			item.Writable = workflow.CanWrite(actor.Role, target.Status, st)
		}
		out = append(out, item)
	}
	return out
}

func stageOf(p Page) (workflow.Stage, bool) {
	for _, st := range workflow.Stages {
		if StagePage(st) == p {
			return st, true
		}
	}
	return "", false
}

func containsStatus(list []workflow.Status, s workflow.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
