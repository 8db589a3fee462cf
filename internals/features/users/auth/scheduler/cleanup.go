package scheduler

import (
	"context"
	"log"
	"time"

	authRepo "assessku_backend/internals/features/users/auth/repository"

	"gorm.io/gorm"
)

// StartBlacklistCleanupScheduler: tiap `every`, buang token blacklist yang sudah lewat masa berlakunya.
// Berhenti saat ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			RunBlacklistCleanup(ctx, db, time.Now().UTC())
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

// RunBlacklistCleanup satu putaran; dipisah supaya bisa dites.
func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, now time.Time) int64 {
	var total int64
	for {
		n, err := authRepo.PurgeExpiredBlacklist(ctx, db, now, 100)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			return total
		}
		total += n
		if n < 100 {
			break
		}
	}
	if total > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", total)
	}
	return total
}
