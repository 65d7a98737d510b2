// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	chatstore "github.com/foliostack/folio/internal/app/store/chat"
	ledgerstore "github.com/foliostack/folio/internal/app/store/ledger"
	revisionstore "github.com/foliostack/folio/internal/app/store/revision"
	"github.com/foliostack/folio/internal/domain/sections"
	"go.uber.org/zap"
)

// RevisionTrimJob creates a job that trims each section's revision log to
// the configured retention depth. Writes also trim inline; this catches up
// after retention is lowered or a trim write failed.
func RevisionTrimJob(store *revisionstore.Store, keep int, logger *zap.Logger) Job {
	return Job{
		Name:     "revision-trim",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			var total int64
			for _, def := range sections.All() {
				n, err := store.Trim(ctx, def.Key, int64(keep))
				if err != nil {
					return err
				}
				total += n
			}
			if total > 0 {
				logger.Info("trimmed section revisions",
					zap.Int64("deleted", total),
					zap.Int("keep", keep))
			}
			return nil
		},
	}
}

// ChatCleanupJob creates a job that removes chat transcripts with no
// activity within ttl.
func ChatCleanupJob(store *chatstore.Store, ttl time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "chat-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			deleted, err := store.DeleteStale(ctx, ttl)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up stale chat transcripts",
					zap.Int64("deleted", deleted),
					zap.Duration("ttl", ttl))
			}
			return nil
		},
	}
}

// LedgerPurgeJob creates a job that removes request ledger entries older
// than the retention window.
func LedgerPurgeJob(store *ledgerstore.Store, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "ledger-purge",
		Interval: 12 * time.Hour,
		Run: func(ctx context.Context) error {
			deleted, err := store.Purge(ctx, retention)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("purged old ledger entries",
					zap.Int64("deleted", deleted),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}
