package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/repository/memory"
	"nettrailer-be/internal/storage"
)

type accountFixture struct {
	backend  *testBackend
	memStore *memory.HistoryStore
	profiles IProfileService
	history  IHistoryService
	account  IAccountService
}

func newAccountFixture() *accountFixture {
	backend := newTestBackend()
	memStore := memory.NewHistoryStore()
	profiles := NewProfileService(backend.Factory, nopLogger{})
	history := NewHistoryService(memStore, backend.Factory, nil, nil, nopLogger{})
	account := NewAccountService(profiles, history, backend.Factory, nil, nil, nopLogger{})
	return &accountFixture{
		backend:  backend,
		memStore: memStore,
		profiles: profiles,
		history:  history,
		account:  account,
	}
}

func TestClearAuthenticatedRunsStepsInOrder(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	assert.NoError(t, f.account.ClearAccountData(ctx, session, nil))

	calls := f.backend.Recorder.Snapshot()
	assert.Equal(t, []string{"profile.Reset", "history.Reset", "notification.DeleteAll"}, calls)
}

func TestClearAbortsWhenPreferencesResetFails(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	f.backend.Profiles.ResetErr = fmt.Errorf("permission denied")

	err := f.account.ClearAccountData(ctx, session, nil)
	assert.Error(t, err)

	calls := f.backend.Recorder.Snapshot()
	assert.Equal(t, []string{"profile.Reset"}, calls)
}

func TestClearAbortsWhenHistoryResetFails(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	f.backend.Histories.ResetErr = fmt.Errorf("connection refused")

	err := f.account.ClearAccountData(ctx, session, nil)
	assert.Error(t, err)

	calls := f.backend.Recorder.Snapshot()
	assert.Equal(t, []string{"profile.Reset", "history.Reset"}, calls)
	assert.NotContains(t, calls, "notification.DeleteAll")
}

func TestClearGuestNeverTouchesRemote(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	// Seed guest data: profile blob plus history key.
	_, err := f.profiles.AddToWatchlist(ctx, session, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)
	_, err = f.history.AddEntry(ctx, session, local, addReq(100, "movie", 10))
	assert.NoError(t, err)
	f.backend.Recorder.Calls = nil

	assert.NoError(t, f.account.ClearAccountData(ctx, session, local))

	// Zero remote operations for a guest clear.
	assert.Empty(t, f.backend.Recorder.Snapshot())

	// The profile blob is overwritten in place under the same key, not removed.
	raw, found, _ := local.GetItem(ctx, storage.GuestDataKey("guest_1_abc"))
	assert.True(t, found)
	var profile entity.UserProfile
	assert.NoError(t, json.Unmarshal([]byte(raw), &profile))
	assert.Empty(t, profile.DefaultWatchlist)
	assert.NotNil(t, profile.DefaultWatchlist)
	assert.NotZero(t, profile.LastActive)

	// The history key is removed.
	_, found, _ = local.GetItem(ctx, storage.GuestHistoryKey("guest_1_abc"))
	assert.False(t, found)
}

func TestClearKeepsHistoryBoundToSession(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.GuestSession("guest_1_abc")
	local := storage.NewMemoryLocal()

	_, err := f.history.AddEntry(ctx, session, local, addReq(100, "movie", 10))
	assert.NoError(t, err)

	assert.NoError(t, f.account.ClearAccountData(ctx, session, local))

	state, ok := f.memStore.Get(session.ID)
	assert.True(t, ok)
	assert.Equal(t, session.ID, state.SessionID)
	assert.Empty(t, state.Entries)
}

func TestClearAuthenticatedHistoryStaysEmptyAfterReload(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	session := entity.AuthenticatedSession("user-1")

	// Existing remote history, loaded into memory the way a page visit would.
	f.backend.Histories.docs["user-1"] = []entity.WatchEntry{
		entity.NewWatchEntry(100, entity.MediaTypeMovie, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie}, 1000),
		entity.NewWatchEntry(200, entity.MediaTypeTV, entity.Content{ID: 200, MediaType: entity.MediaTypeTV}, 2000),
	}
	entries, err := f.history.Get(ctx, session, nil)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.NoError(t, f.account.ClearAccountData(ctx, session, nil))

	// Empty right away, served from the reset in-memory state.
	entries, err = f.history.Get(ctx, session, nil)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	// Simulate a reload: the in-memory state is gone, so the next read goes
	// back to the remote document, which was reset too.
	f.memStore.Delete(session.ID)
	entries, err = f.history.Get(ctx, session, nil)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, f.backend.Recorder.Snapshot(), "history.Get")
}

func TestClearIsNoOpWhileInitializing(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	assert.NoError(t, f.account.ClearAccountData(ctx, entity.InitializingSession(), nil))
	assert.Empty(t, f.backend.Recorder.Snapshot())
}

func TestClearGuestLeavesOtherGuestNamespacesIntact(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	local := storage.NewMemoryLocal()

	victim := entity.GuestSession("guest_1_aaa")
	bystander := entity.GuestSession("guest_2_bbb")

	_, err := f.profiles.AddToWatchlist(ctx, victim, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)
	_, err = f.profiles.AddToWatchlist(ctx, bystander, local, entity.Content{ID: 200, MediaType: entity.MediaTypeTV})
	assert.NoError(t, err)

	assert.NoError(t, f.account.ClearAccountData(ctx, victim, local))

	profile, err := f.profiles.Get(ctx, bystander, local)
	assert.NoError(t, err)
	assert.Len(t, profile.DefaultWatchlist, 1)
	assert.Equal(t, 200, profile.DefaultWatchlist[0].ID)
}

func TestClearAuthenticatedLeavesLocalStorageAlone(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	local := storage.NewMemoryLocal()

	// A guest's leftovers in the same client store must survive an
	// authenticated clear on that device.
	guest := entity.GuestSession("guest_1_abc")
	_, err := f.profiles.AddToWatchlist(ctx, guest, local, entity.Content{ID: 100, MediaType: entity.MediaTypeMovie})
	assert.NoError(t, err)

	session := entity.AuthenticatedSession("user-1")
	assert.NoError(t, f.account.ClearAccountData(ctx, session, local))

	_, found, _ := local.GetItem(ctx, storage.GuestDataKey("guest_1_abc"))
	assert.True(t, found)
}
