// file: internals/features/audit/changelogs/service/changelog_service.go
package service

import (
	"context"
	"log"
	"sort"
	"time"

	"assessku_backend/internals/features/assessments/workflow"
	"assessku_backend/internals/features/audit/changelogs/model"
	"assessku_backend/internals/metrics"

	"github.com/google/uuid"
)

// Store: persistence minimal yang dibutuhkan Recorder.
type Store interface {
	AppendChangelog(ctx context.Context, entry *model.ChangelogModel) error
	ListChangelog(ctx context.Context, ref model.EntityRef, asOf time.Time, offset, limit int) ([]model.ChangelogModel, int64, error)
}

// FieldSnapshot: nilai field yang dilacak (nil = NULL).
type FieldSnapshot map[string]*string

/* =========================================================
   RECORDER
========================================================= */

type Recorder struct {
	store Store
	now   func() time.Time
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// WithClock dipakai test & transaksi agar semua entry satu write punya timestamp yang sama.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	return &Recorder{store: r.store, now: now}
}

// WithStore: recorder yang sama di atas store lain (mis. store di dalam transaksi).
func (r *Recorder) WithStore(store Store) *Recorder {
	return &Recorder{store: store, now: r.now}
}

// Record selalu append; entry identik tetap ditulis ulang.
func (r *Recorder) Record(
	ctx context.Context,
	ref model.EntityRef,
	field string,
	former, next *string,
	actor workflow.Actor,
) (*model.ChangelogModel, error) {
	entry := &model.ChangelogModel{
		ChangelogID:          uuid.New(),
		ChangelogEntityType:  ref.Type,
		ChangelogEntityID:    ref.ID,
		ChangelogField:       field,
		ChangelogFormerValue: copyPtr(former),
		ChangelogNewValue:    copyPtr(next),
		ChangelogUpdatedAt:   r.now().UTC(),
		ChangelogUpdatedBy:   actor.ID,
	}
	if err := r.store.AppendChangelog(ctx, entry); err != nil {
		log.Printf("[ChangelogRecorder] append gagal ref=%s/%s field=%s: %v", ref.Type, ref.ID, field, err)
		return nil, err
	}
	metrics.ChangelogEntries.WithLabelValues(string(ref.Type)).Inc()
	return entry, nil
}

// RecordDiff membandingkan before vs after dan menulis satu entry per field yang berubah
// (termasuk NULL → nilai). Field diproses urut nama agar hasil deterministik.
func (r *Recorder) RecordDiff(
	ctx context.Context,
	ref model.EntityRef,
	before, after FieldSnapshot,
	actor workflow.Actor,
) ([]model.ChangelogModel, error) {
	changed := Diff(before, after)
	out := make([]model.ChangelogModel, 0, len(changed))
	for _, field := range changed {
		e, err := r.Record(ctx, ref, field, before[field], after[field], actor)
		if err != nil {
			return out, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// History: snapshot read (asOf) urut naik. asOf zero → sekarang.
func (r *Recorder) History(
	ctx context.Context,
	ref model.EntityRef,
	asOf time.Time,
	offset, limit int,
) ([]model.ChangelogModel, int64, error) {
	if asOf.IsZero() {
		asOf = r.now()
	}
	if offset < 0 {
		offset = 0
	}
	return r.store.ListChangelog(ctx, ref, asOf.UTC(), offset, limit)
}

/* =========================================================
   HELPERS
========================================================= */

// Diff: nama field (urut) yang nilainya beda antara before & after.
func Diff(before, after FieldSnapshot) []string {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		if !samePtr(before[k], after[k]) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
