package access

import (
	"log"

	"assessku_backend/internals/features/assessments/workflow"
	helper "assessku_backend/internals/helpers"
	helperAuth "assessku_backend/internals/helpers/auth"
	"assessku_backend/internals/metrics"

	"github.com/gofiber/fiber/v2"
)

// TargetResolver: baca assessment dari request (mis. :id) → Target.
// Error apperr (NotFound dll) diteruskan apa adanya.
type TargetResolver func(c *fiber.Ctx, actor workflow.Actor) (*Target, error)

// PageFunc: halaman ditentukan dari request (mis. param :stage).
type PageFunc func(c *fiber.Ctx) (Page, bool)

type AccessDenied struct {
	Page   Page            `json:"page"`
	Role   string          `json:"role"`
	Status workflow.Status `json:"status,omitempty"`
}

// Guard menolak request (403 access denied) kalau CanAccess false.
func Guard(page Page, resolve TargetResolver) fiber.Handler {
	return GuardFunc(func(*fiber.Ctx) (Page, bool) { return page, true }, resolve)
}

func GuardFunc(pageOf PageFunc, resolve TargetResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := helperAuth.GetActor(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		page, ok := pageOf(c)
		if ok {
			_, ok = RuleFor(page)
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Halaman / stage tidak dikenal")
		}

		var target *Target
		if resolve != nil {
			target, err = resolve(c, actor)
			if err != nil {
				return helper.FromServiceError(c, err)
			}
		}

		if !CanAccess(actor, page, target) {
			metrics.AccessDenied.WithLabelValues(string(page)).Inc()
			log.Printf("[AccessGuard] denied page=%s user=%s role=%s", page, actor.ID, actor.Role)
			details := AccessDenied{Page: page, Role: string(actor.Role)}
			if target != nil {
				details.Status = target.Status
			}
			return helper.JsonErrorWithDetails(c, fiber.StatusForbidden, "Akses ditolak", details)
		}
		return c.Next()
	}
}

// StageParamPage: halaman stage dari param :stage.
func StageParamPage(param string) PageFunc {
	return func(c *fiber.Ctx) (Page, bool) {
		st, ok := workflow.ParseStage(c.Params(param))
		if !ok {
			return "", false
		}
		return StagePage(st), true
	}
}
