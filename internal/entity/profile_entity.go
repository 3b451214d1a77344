package entity

import "github.com/google/uuid"

// CustomList is a user-created watchlist (collection).
type CustomList struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Items []Content `json:"items"`
}

// UserProfile holds the persisted preferences of a single session: the
// guest-local JSON blob and the remote profile document share this shape.
type UserProfile struct {
	DefaultWatchlist      []Content    `json:"defaultWatchlist"`
	LikedMovies           []Content    `json:"likedMovies"`
	HiddenMovies          []Content    `json:"hiddenMovies"`
	UserCreatedWatchlists []CustomList `json:"userCreatedWatchlists"`
	LastActive            int64        `json:"lastActive"` // epoch ms
}

// EmptyProfile returns a profile with all list fields set to empty slices,
// not nil, so a reset blob still serializes with the full structure.
func EmptyProfile() *UserProfile {
	return &UserProfile{
		DefaultWatchlist:      []Content{},
		LikedMovies:           []Content{},
		HiddenMovies:          []Content{},
		UserCreatedWatchlists: []CustomList{},
	}
}

func NewCustomList(name string) CustomList {
	return CustomList{
		ID:    uuid.NewString(),
		Name:  name,
		Items: []Content{},
	}
}
