package dto

import "nettrailer-be/internal/entity"

type ContentRequest struct {
	ID           int     `json:"id" validate:"required"`
	MediaType    string  `json:"media_type" validate:"required,oneof=movie tv"`
	Title        string  `json:"title" validate:"required"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
}

func (r ContentRequest) ToEntity() entity.Content {
	return entity.Content{
		ID:           r.ID,
		MediaType:    entity.MediaType(r.MediaType),
		Title:        r.Title,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		Overview:     r.Overview,
		ReleaseDate:  r.ReleaseDate,
		VoteAverage:  r.VoteAverage,
	}
}

type AddContentRequest struct {
	Content ContentRequest `json:"content" validate:"required"`
}

type RemoveContentRequest struct {
	ContentID int    `json:"content_id" validate:"required"`
	MediaType string `json:"media_type" validate:"required,oneof=movie tv"`
}

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CollectionItemRequest struct {
	Content ContentRequest `json:"content" validate:"required"`
}

type ProfileResponse struct {
	DefaultWatchlist      []entity.Content    `json:"defaultWatchlist"`
	LikedMovies           []entity.Content    `json:"likedMovies"`
	HiddenMovies          []entity.Content    `json:"hiddenMovies"`
	UserCreatedWatchlists []entity.CustomList `json:"userCreatedWatchlists"`
	LastActive            int64               `json:"lastActive"`
}
