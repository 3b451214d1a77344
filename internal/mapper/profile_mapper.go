package mapper

import (
	"encoding/json"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(doc *model.ProfileDocument) (*entity.UserProfile, error) {
	if doc == nil {
		return nil, nil
	}
	profile := entity.EmptyProfile()
	profile.LastActive = doc.LastActive

	if err := unmarshalList(doc.DefaultWatchlist, &profile.DefaultWatchlist); err != nil {
		return nil, err
	}
	if err := unmarshalList(doc.LikedMovies, &profile.LikedMovies); err != nil {
		return nil, err
	}
	if err := unmarshalList(doc.HiddenMovies, &profile.HiddenMovies); err != nil {
		return nil, err
	}
	if err := unmarshalList(doc.UserCreatedWatchlists, &profile.UserCreatedWatchlists); err != nil {
		return nil, err
	}
	return profile, nil
}

func (m *ProfileMapper) ToModel(userID string, profile *entity.UserProfile) (*model.ProfileDocument, error) {
	if profile == nil {
		return nil, nil
	}
	watchlist, err := marshalList(profile.DefaultWatchlist)
	if err != nil {
		return nil, err
	}
	liked, err := marshalList(profile.LikedMovies)
	if err != nil {
		return nil, err
	}
	hidden, err := marshalList(profile.HiddenMovies)
	if err != nil {
		return nil, err
	}
	lists, err := marshalList(profile.UserCreatedWatchlists)
	if err != nil {
		return nil, err
	}
	return &model.ProfileDocument{
		UserID:                userID,
		DefaultWatchlist:      watchlist,
		LikedMovies:           liked,
		HiddenMovies:          hidden,
		UserCreatedWatchlists: lists,
		LastActive:            profile.LastActive,
	}, nil
}

func unmarshalList(raw datatypes.JSON, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func marshalList(src interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
