package access

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/assessments/workflow"
	helperAuth "assessku_backend/internals/helpers/auth"
	"assessku_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(role constants.Role) workflow.Actor {
	return workflow.Actor{ID: uuid.New(), Role: role}
}

func TestOversightPageClosedWhileOngoing(t *testing.T) {
	a := actor(constants.RoleOversightAssessor)
	target := &Target{Status: workflow.StatusOngoing, Assigned: true}

	assert.False(t, CanAccess(a, PageStageOversight, target))

	target.Status = workflow.StatusOversight
	assert.True(t, CanAccess(a, PageStageOversight, target))
}

func TestCanAccessRules(t *testing.T) {
	assigned := func(st workflow.Status) *Target { return &Target{Status: st, Assigned: true} }

	cases := []struct {
		name   string
		role   constants.Role
		page   Page
		target *Target
		want   bool
	}{
		{"assessor sees list", constants.RoleAssessor, PageAssessmentList, nil, true},
		{"assessor cannot open question bank", constants.RoleAssessor, PageQuestionBank, nil, false},
		{"admin opens question bank", constants.RoleAdmin, PageQuestionBank, nil, true},
		{"unassigned assessor denied detail", constants.RoleAssessor, PageAssessmentDetail, &Target{Status: workflow.StatusOngoing}, false},
		{"assigned assessor opens detail", constants.RoleAssessor, PageAssessmentDetail, assigned(workflow.StatusCreated), true},
		{"assessor stage open while ongoing", constants.RoleAssessor, PageStageAssessor, assigned(workflow.StatusOngoing), true},
		{"assessor stage closed before ongoing", constants.RoleAssessor, PageStageAssessor, assigned(workflow.StatusCreated), false},
		{"assessor stage still readable at completed", constants.RoleAssessor, PageStageAssessor, assigned(workflow.StatusCompleted), true},
		{"assessor cannot open consensus", constants.RoleAssessor, PageStageConsensus, assigned(workflow.StatusOngoingReview), false},
		{"lead opens consensus in review", constants.RoleLeadAssessor, PageStageConsensus, assigned(workflow.StatusOngoingReview), true},
		{"client stage admin only", constants.RoleLeadAssessor, PageStageClient, assigned(workflow.StatusCompleted), false},
		{"admin ignores status and assignment", constants.RoleAdmin, PageStageOversight, &Target{Status: workflow.StatusCreated}, true},
		{"scoped page without target", constants.RoleAssessor, PageAssessmentDetail, nil, false},
		{"unknown page", constants.RoleAdmin, Page("billing"), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAccess(actor(tc.role), tc.page, tc.target))
		})
	}
}

func TestPagesMenu(t *testing.T) {
	lead := actor(constants.RoleLeadAssessor)
	items := Pages(lead, &Target{Status: workflow.StatusOngoingReview, Assigned: true})

	pages := make([]Page, 0, len(items))
	writable := map[Page]bool{}
	for _, it := range items {
		pages = append(pages, it.Page)
		writable[it.Page] = it.Writable
	}
	assert.Equal(t, []Page{
		PageAssessmentList, PageAssessmentDetail, PageAssessmentSubmit,
		PageStageAssessor, PageStageConsensus, PageAnswerChangelog,
	}, pages)
	assert.False(t, writable[PageStageAssessor])
	assert.True(t, writable[PageStageConsensus])
}

func newGuardApp(a workflow.Actor, target *Target, resolveErr error) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetActor(c, a)
		return c.Next()
	})
	resolve := func(*fiber.Ctx, workflow.Actor) (*Target, error) { return target, resolveErr }
	app.Get("/a/:id/stage/:stage", GuardFunc(StageParamPage("stage"), resolve), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestGuardMiddleware(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		app := newGuardApp(actor(constants.RoleOversightAssessor), &Target{Status: workflow.StatusOversight, Assigned: true}, nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/a/1/stage/oversight", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("denied renders access denied", func(t *testing.T) {
		app := newGuardApp(actor(constants.RoleOversightAssessor), &Target{Status: workflow.StatusOngoing, Assigned: true}, nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/a/1/stage/oversight", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.True(t, strings.Contains(string(body), `"page":"stage-oversight"`), string(body))
	})

	t.Run("unknown stage", func(t *testing.T) {
		app := newGuardApp(actor(constants.RoleAdmin), nil, nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/a/1/stage/lead", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("missing assessment", func(t *testing.T) {
		app := newGuardApp(actor(constants.RoleAssessor), nil, apperr.NotFound("assessment tidak ditemukan"))
		resp, err := app.Test(httptest.NewRequest("GET", "/a/1/stage/assessor", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGuardRejectsPageWithoutRule(t *testing.T) {
	_, ok := RuleFor(Page("reports"))
	assert.False(t, ok)

	rule, ok := RuleFor(PageStageOversight)
	require.True(t, ok)
	assert.True(t, rule.AssessmentScoped)
	assert.Contains(t, rule.Statuses, workflow.StatusOversight)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetActor(c, actor(constants.RoleAdmin))
		return c.Next()
	})
	app.Get("/reports", Guard(Page("reports"), nil), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
