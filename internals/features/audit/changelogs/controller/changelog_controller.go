// file: internals/features/audit/changelogs/controller/changelog_controller.go
package controller

import (
	"strings"
	"time"

	"assessku_backend/internals/features/audit/changelogs/dto"
	"assessku_backend/internals/features/audit/changelogs/model"
	"assessku_backend/internals/features/audit/changelogs/repository"
	"assessku_backend/internals/features/audit/changelogs/service"
	helper "assessku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ChangelogController dipakai oleh controller lain (answers, questions) untuk render history.
type ChangelogController struct {
	Recorder *service.Recorder
}

func NewChangelogController(db *gorm.DB) *ChangelogController {
	return &ChangelogController{Recorder: service.NewRecorder(repository.NewGormChangelogStore(db))}
}

// ParseAsOf: ?as_of= (RFC3339 atau YYYY-MM-DD). Kosong → sekarang.
func ParseAsOf(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("as_of"))
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		// tanggal saja → sampai akhir hari (UTC)
		return d.Add(24*time.Hour - time.Nanosecond), nil
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "as_of harus RFC3339 atau YYYY-MM-DD")
}

// History: GET .../changelog?page=&per_page=&as_of=
func (ctl *ChangelogController) History(c *fiber.Ctx, ref model.EntityRef) error {
	asOf, err := ParseAsOf(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ParseFiber(c, "changelog_updated_at", "asc", helper.ChangelogOpts)

	rows, total, err := ctl.Recorder.History(c.Context(), ref, asOf, p.Offset(), p.Limit())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildMeta(total, p, len(rows)))
}
