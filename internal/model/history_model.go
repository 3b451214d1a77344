package model

import (
	"gorm.io/datatypes"
)

// WatchHistoryDocument stores a user's entire watch history as a single
// ordered jsonb array, capped at entity.MaxHistoryEntries.
type WatchHistoryDocument struct {
	UserID    string         `gorm:"type:varchar(128);primaryKey;column:user_id"`
	History   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	UpdatedAt int64          `gorm:"not null;default:0"` // epoch ms
}

func (WatchHistoryDocument) TableName() string {
	return "watch_history_documents"
}
