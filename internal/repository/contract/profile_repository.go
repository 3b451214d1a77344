package contract

import (
	"context"

	"nettrailer-be/internal/entity"
)

type ProfileRepository interface {
	// Get returns nil (no error) when the user has no profile document yet.
	Get(ctx context.Context, userID string) (*entity.UserProfile, error)

	// Save upserts the profile document with merge semantics: only the list
	// columns and last_active are written, never a full-row replace.
	Save(ctx context.Context, userID string, profile *entity.UserProfile) error

	// Reset writes an empty-preferences document (all lists []) and stamps
	// last_active, with the same merge semantics as Save.
	Reset(ctx context.Context, userID string, lastActive int64) error
}
