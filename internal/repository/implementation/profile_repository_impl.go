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

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Get(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var doc model.ProfileDocument
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&doc)
}

func (r *ProfileRepositoryImpl) Save(ctx context.Context, userID string, profile *entity.UserProfile) error {
	doc, err := r.mapper.ToModel(userID, profile)
	if err != nil {
		return err
	}
	// Merge semantics: on conflict only the preference columns are assigned.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"default_watchlist",
			"liked_movies",
			"hidden_movies",
			"user_created_watchlists",
			"last_active",
		}),
	}).Create(doc).Error
}

func (r *ProfileRepositoryImpl) Reset(ctx context.Context, userID string, lastActive int64) error {
	empty := entity.EmptyProfile()
	empty.LastActive = lastActive
	return r.Save(ctx, userID, empty)
}
