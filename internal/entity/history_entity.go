package entity

import (
	"strconv"

	"github.com/google/uuid"
)

// MaxHistoryEntries caps persisted watch history to prevent unbounded growth.
const MaxHistoryEntries = 500

// WatchEntry records one watched title. At most one entry exists per
// (ContentID, MediaType) pair; re-watching updates the entry in place.
type WatchEntry struct {
	ID              string    `json:"id"`
	ContentID       int       `json:"contentId"`
	MediaType       MediaType `json:"mediaType"`
	WatchedAt       int64     `json:"watchedAt"` // epoch ms
	Progress        float64   `json:"progress"`
	Duration        *float64  `json:"duration,omitempty"`
	WatchedDuration *float64  `json:"watchedDuration,omitempty"`
	Content         Content   `json:"content"`
}

// Key is the dedupe key for upserts and merges.
func (e WatchEntry) Key() string {
	return historyKey(e.ContentID, e.MediaType)
}

func historyKey(contentID int, mediaType MediaType) string {
	return string(mediaType) + ":" + strconv.Itoa(contentID)
}

func HistoryEntryKey(contentID int, mediaType MediaType) string {
	return historyKey(contentID, mediaType)
}

func NewWatchEntry(contentID int, mediaType MediaType, content Content, watchedAt int64) WatchEntry {
	return WatchEntry{
		ID:        uuid.NewString(),
		ContentID: contentID,
		MediaType: mediaType,
		WatchedAt: watchedAt,
		Content:   content,
	}
}
