package implementation

import (
	"context"
	"errors"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/mapper"
	"nettrailer-be/internal/model"
	"nettrailer-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HistoryMapper
}

func NewHistoryRepository(db *gorm.DB) contract.HistoryRepository {
	return &HistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewHistoryMapper(),
	}
}

func (r *HistoryRepositoryImpl) Get(ctx context.Context, userID string) ([]entity.WatchEntry, error) {
	var doc model.WatchHistoryDocument
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []entity.WatchEntry{}, nil
		}
		return nil, err
	}
	return r.mapper.ToEntries(&doc)
}

func (r *HistoryRepositoryImpl) Save(ctx context.Context, userID string, entries []entity.WatchEntry, updatedAt int64) error {
	doc, err := r.mapper.ToModel(userID, entries, updatedAt)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"history", "updated_at"}),
	}).Create(doc).Error
}

func (r *HistoryRepositoryImpl) Reset(ctx context.Context, userID string, updatedAt int64) error {
	return r.Save(ctx, userID, []entity.WatchEntry{}, updatedAt)
}
