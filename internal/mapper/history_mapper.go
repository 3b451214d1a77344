package mapper

import (
	"encoding/json"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/model"

	"gorm.io/datatypes"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ToEntries(doc *model.WatchHistoryDocument) ([]entity.WatchEntry, error) {
	if doc == nil || len(doc.History) == 0 {
		return []entity.WatchEntry{}, nil
	}
	entries := []entity.WatchEntry{}
	if err := json.Unmarshal(doc.History, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *HistoryMapper) ToModel(userID string, entries []entity.WatchEntry, updatedAt int64) (*model.WatchHistoryDocument, error) {
	if entries == nil {
		entries = []entity.WatchEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return &model.WatchHistoryDocument{
		UserID:    userID,
		History:   datatypes.JSON(data),
		UpdatedAt: updatedAt,
	}, nil
}
