package contract

import (
	"context"

	"nettrailer-be/internal/entity"
)

type HistoryRepository interface {
	// Get returns the stored entries, empty when no document exists.
	Get(ctx context.Context, userID string) ([]entity.WatchEntry, error)

	// Save upserts the history document (merge write of history + updated_at).
	// Entries beyond entity.MaxHistoryEntries are truncated by the caller.
	Save(ctx context.Context, userID string, entries []entity.WatchEntry, updatedAt int64) error

	// Reset writes history: [] and stamps updated_at, with merge semantics.
	Reset(ctx context.Context, userID string, updatedAt int64) error
}
