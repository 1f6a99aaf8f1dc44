package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rejsermedboern/feedsync/app/catalog"
	"github.com/rejsermedboern/feedsync/app/feed"
)

// SyncCatalogTask runs one full ingestion pass and reloads the catalog
// store so the serving path picks up the new snapshot.
type SyncCatalogTask struct {
	Task
	syncer *feed.Syncer
	store  *catalog.Store
}

func NewSyncCatalogTask(syncer *feed.Syncer, store *catalog.Store) *SyncCatalogTask {
	return &SyncCatalogTask{
		Task:   NewTask(TaskTypeSyncCatalog),
		syncer: syncer,
		store:  store,
	}
}

func (t *SyncCatalogTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	summary, err := t.syncer.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync run failed: %w", err)
	}

	if t.store != nil {
		if err := t.store.Reload(); err != nil {
			return fmt.Errorf("failed to reload catalog after sync: %w", err)
		}
	}

	failedFeeds := 0
	for _, outcome := range summary.Outcomes {
		if outcome.Err != nil {
			failedFeeds++
		}
	}

	slog.Info("Task completed",
		"type", "SyncCatalog",
		"duration", t.GetDuration(),
		"products", summary.Products,
		"feeds", len(summary.Outcomes),
		"failed_feeds", failedFeeds)

	return nil
}
