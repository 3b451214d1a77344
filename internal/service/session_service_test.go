package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/storage"
)

func TestClassifyAuthenticated(t *testing.T) {
	svc := NewSessionService(nopLogger{})
	store := storage.NewMemoryLocal()

	session, err := svc.Classify(context.Background(), "user-123", store)

	assert.NoError(t, err)
	assert.Equal(t, entity.SessionKindAuthenticated, session.Kind)
	assert.Equal(t, "user-123", session.ID)
	assert.True(t, session.IsAuthenticated())

	flag, found, _ := store.GetItem(context.Background(), storage.SessionTypeKey)
	assert.True(t, found)
	assert.Equal(t, "authenticated", flag)
}

func TestClassifyWithoutStorageIsInitializing(t *testing.T) {
	svc := NewSessionService(nopLogger{})

	session, err := svc.Classify(context.Background(), "", nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.SessionKindInitializing, session.Kind)
	assert.Empty(t, session.ID)
	assert.False(t, session.Ready())
}

func TestClassifyGeneratesGuestID(t *testing.T) {
	svc := NewSessionService(nopLogger{})
	store := storage.NewMemoryLocal()

	session, err := svc.Classify(context.Background(), "", store)

	assert.NoError(t, err)
	assert.Equal(t, entity.SessionKindGuest, session.Kind)
	assert.True(t, strings.HasPrefix(session.ID, "guest_"))

	// The id and the session type flag are persisted for the next request.
	persisted, found, _ := store.GetItem(context.Background(), storage.GuestIDKey)
	assert.True(t, found)
	assert.Equal(t, session.ID, persisted)

	flag, _, _ := store.GetItem(context.Background(), storage.SessionTypeKey)
	assert.Equal(t, "guest", flag)
}

func TestClassifyReusesPersistedGuestID(t *testing.T) {
	svc := NewSessionService(nopLogger{})
	store := storage.NewMemoryLocal()
	ctx := context.Background()

	first, err := svc.Classify(ctx, "", store)
	assert.NoError(t, err)

	second, err := svc.Classify(ctx, "", store)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestClassifyRegeneratesMalformedGuestID(t *testing.T) {
	svc := NewSessionService(nopLogger{})
	store := storage.NewMemoryLocal()
	ctx := context.Background()

	// A corrupted value without the guest_ prefix must not become a session id.
	assert.NoError(t, store.SetItem(ctx, storage.GuestIDKey, "not-a-guest-id"))

	session, err := svc.Classify(ctx, "", store)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.ID, "guest_"))
	assert.NotEqual(t, "not-a-guest-id", session.ID)
}

func TestGuestIDFormat(t *testing.T) {
	id := newGuestID()

	parts := strings.SplitN(id, "_", 3)
	assert.Len(t, parts, 3)
	assert.Equal(t, "guest", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 9)
}
