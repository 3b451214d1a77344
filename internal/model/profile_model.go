package model

import (
	"gorm.io/datatypes"
)

// ProfileDocument is the per-user preferences document. List columns are
// jsonb so partial (merge) writes update individual fields, never the row
// wholesale.
type ProfileDocument struct {
	UserID                string         `gorm:"type:varchar(128);primaryKey;column:user_id"`
	DefaultWatchlist      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	LikedMovies           datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	HiddenMovies          datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	UserCreatedWatchlists datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	LastActive            int64          `gorm:"not null;default:0"` // epoch ms
}

func (ProfileDocument) TableName() string {
	return "profile_documents"
}
