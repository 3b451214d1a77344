package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/storage"
)

func TestGuestProfileStoredUnderNamespacedKey(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	_, err := svc.AddToWatchlist(ctx, session, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie, Title: "Some Movie"})
	assert.NoError(t, err)

	raw, found, _ := local.GetItem(ctx, "nettrailer_guest_data_v2_guest_1_abc")
	assert.True(t, found)

	var profile entity.UserProfile
	assert.NoError(t, json.Unmarshal([]byte(raw), &profile))
	assert.Len(t, profile.DefaultWatchlist, 1)

	// Guest writes never reach the document store.
	assert.NotContains(t, backend.Recorder.Snapshot(), "profile.Save")
}

func TestAuthenticatedProfilePersistsRemotely(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	_, err := svc.LikeContent(ctx, session, nil, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)

	stored := backend.Profiles.profiles["user-1"]
	assert.NotNil(t, stored)
	assert.Len(t, stored.LikedMovies, 1)
}

func TestProfileMutationRejectedWhileInitializing(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})

	_, err := svc.AddToWatchlist(context.Background(), entity.InitializingSession(), nil, entity.Content{ID: 100})
	assert.Error(t, err)

	var fe *fiber.Error
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestAddAndRemoveFromWatchlist(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	_, err := svc.AddToWatchlist(ctx, session, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)
	_, err = svc.AddToWatchlist(ctx, session, local, entity.Content{ID: 200, MediaType: entity.MediaTypeTV})
	assert.NoError(t, err)

	// Adding the same pair twice stays a single entry.
	_, err = svc.AddToWatchlist(ctx, session, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)

	profile, err := svc.RemoveFromWatchlist(ctx, session, local, 100, entity.MediaTypeMovie)
	assert.NoError(t, err)
	assert.Len(t, profile.DefaultWatchlist, 1)
	assert.Equal(t, 200, profile.DefaultWatchlist[0].ID)
}

func TestHiddenAndLikedAreIndependentLists(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	_, err := svc.LikeContent(ctx, session, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)
	profile, err := svc.HideContent(ctx, session, local, entity.Content{ID: 200, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)

	assert.Len(t, profile.LikedMovies, 1)
	assert.Len(t, profile.HiddenMovies, 1)
	assert.Empty(t, profile.DefaultWatchlist)
}

func TestCollectionLifecycle(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	profile, err := svc.CreateCollection(ctx, session, local, dto.CreateCollectionRequest{Name: "Horror Night"})
	assert.NoError(t, err)
	assert.Len(t, profile.UserCreatedWatchlists, 1)
	collectionID := profile.UserCreatedWatchlists[0].ID
	assert.NotEmpty(t, collectionID)

	profile, err = svc.AddItemToCollection(ctx, session, local, collectionID, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)
	assert.Len(t, profile.UserCreatedWatchlists[0].Items, 1)

	profile, err = svc.RemoveItemFromCollection(ctx, session, local, collectionID, 100, entity.MediaTypeMovie)
	assert.NoError(t, err)
	assert.Empty(t, profile.UserCreatedWatchlists[0].Items)

	profile, err = svc.DeleteCollection(ctx, session, local, collectionID)
	assert.NoError(t, err)
	assert.Empty(t, profile.UserCreatedWatchlists)
}

func TestCollectionNotFound(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	_, err := svc.AddItemToCollection(ctx, session, local, "missing", entity.Content{ID: 100})
	assert.Error(t, err)

	var fe *fiber.Error
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestResetPersistedWritesEmptyStructure(t *testing.T) {
	backend := newTestBackend()
	svc := NewProfileService(backend.Factory, nopLogger{})
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	_, err := svc.AddToWatchlist(ctx, session, nil, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)

	assert.NoError(t, svc.ResetPersisted(ctx, session, nil))

	stored := backend.Profiles.profiles["user-1"]
	assert.NotNil(t, stored)
	assert.Empty(t, stored.DefaultWatchlist)
	assert.NotNil(t, stored.DefaultWatchlist)
	assert.NotZero(t, stored.LastActive)
}
