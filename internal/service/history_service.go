package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/repository/memory"
	"nettrailer-be/internal/repository/unitofwork"
	"nettrailer-be/internal/storage"
	"nettrailer-be/pkg/events"
	pktNats "nettrailer-be/pkg/nats"
)

type IHistoryService interface {
	// Get returns the session's history, loading it from the backing store
	// on first access after a reload or session switch.
	Get(ctx context.Context, session entity.Session, store storage.Local) ([]entity.WatchEntry, error)

	// AddEntry upserts by (contentId, mediaType) and stamps watchedAt. The
	// mirror write (guest-local key or remote document) is best-effort.
	AddEntry(ctx context.Context, session entity.Session, store storage.Local, req dto.AddHistoryRequest) (entity.WatchEntry, error)

	// Clear empties the in-memory sequence and forgets the session binding.
	Clear(session entity.Session)

	// ResetBinding empties the in-memory sequence but keeps it bound to the
	// given session, so subsequent reads don't spuriously show "no session".
	ResetBinding(session entity.Session)

	// ClearPersisted resets the session's persisted history: remote document
	// reset for authenticated sessions, key removal for guests.
	ClearPersisted(ctx context.Context, session entity.Session, store storage.Local) error

	// SyncWithRemote loads the remote history into memory when switching
	// into an authenticated session. tokenSubject must match the session id;
	// a mismatch means the auth token isn't ready yet and the sync is skipped.
	SyncWithRemote(ctx context.Context, session entity.Session, tokenSubject string) error

	// MigrateGuestToAuth merges the guest's history into the identity's
	// remote document (newer watchedAt wins per key) and removes the guest
	// local history key. Returns the merged entry count.
	MigrateGuestToAuth(ctx context.Context, guestID string, store storage.Local, authUserID string) (int, error)
}

type historyService struct {
	store          *memory.HistoryStore
	uowFactory     unitofwork.RepositoryFactory
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewHistoryService(
	store *memory.HistoryStore,
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IHistoryService {
	return &historyService{
		store:          store,
		uowFactory:     uowFactory,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *historyService) Get(ctx context.Context, session entity.Session, store storage.Local) ([]entity.WatchEntry, error) {
	if !session.Ready() {
		return []entity.WatchEntry{}, nil
	}
	if state, found := s.store.Get(session.ID); found {
		return state.Entries, nil
	}

	entries, err := s.loadPersisted(ctx, session, store)
	if err != nil {
		return nil, err
	}
	s.store.Save(&memory.HistoryState{SessionID: session.ID, Entries: entries})
	return entries, nil
}

func (s *historyService) AddEntry(ctx context.Context, session entity.Session, store storage.Local, req dto.AddHistoryRequest) (entity.WatchEntry, error) {
	if !session.Ready() {
		return entity.WatchEntry{}, fmt.Errorf("no active session")
	}

	entries, err := s.Get(ctx, session, store)
	if err != nil {
		return entity.WatchEntry{}, err
	}

	now := time.Now().UnixMilli()
	mediaType := entity.MediaType(req.MediaType)
	key := entity.HistoryEntryKey(req.ContentID, mediaType)

	var entry entity.WatchEntry
	updated := false
	rest := make([]entity.WatchEntry, 0, len(entries))
	for _, e := range entries {
		if e.Key() == key {
			// Update in place: same identity, fresh position and timestamp.
			e.WatchedAt = now
			e.Progress = req.Progress
			e.Duration = req.Duration
			e.WatchedDuration = req.WatchedDuration
			e.Content = req.Content.ToEntity()
			entry = e
			updated = true
			continue
		}
		rest = append(rest, e)
	}
	if !updated {
		entry = entity.NewWatchEntry(req.ContentID, mediaType, req.Content.ToEntity(), now)
		entry.Progress = req.Progress
		entry.Duration = req.Duration
		entry.WatchedDuration = req.WatchedDuration
	}

	entries = append([]entity.WatchEntry{entry}, rest...)
	if len(entries) > entity.MaxHistoryEntries {
		entries = entries[:entity.MaxHistoryEntries]
	}
	s.store.Save(&memory.HistoryState{SessionID: session.ID, Entries: entries})

	// Mirror writes are best-effort: the in-memory copy is already correct
	// and the next sync reconciles, so failures are logged, not surfaced.
	switch session.Kind {
	case entity.SessionKindGuest:
		if err := s.persistGuest(ctx, session.ID, store, entries); err != nil {
			s.logger.Warn("HistoryService", "Failed to persist guest history", map[string]interface{}{
				"guest_id": session.ID,
				"error":    err.Error(),
			})
		}
	case entity.SessionKindAuthenticated:
		go s.writeThrough(session.ID, entries)
	}

	return entry, nil
}

func (s *historyService) Clear(session entity.Session) {
	if session.ID == "" {
		return
	}
	s.store.Delete(session.ID)
}

func (s *historyService) ResetBinding(session entity.Session) {
	if session.ID == "" {
		return
	}
	s.store.Save(&memory.HistoryState{SessionID: session.ID, Entries: []entity.WatchEntry{}})
}

func (s *historyService) ClearPersisted(ctx context.Context, session entity.Session, store storage.Local) error {
	if !session.Ready() {
		return nil
	}

	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.HistoryRepository().Reset(ctx, session.ID, time.Now().UnixMilli()); err != nil {
			return fmt.Errorf("reset history document: %w", err)
		}
	case entity.SessionKindGuest:
		if store == nil {
			return fmt.Errorf("no storage handle for guest session")
		}
		if err := store.RemoveItem(ctx, storage.GuestHistoryKey(session.ID)); err != nil {
			return fmt.Errorf("remove guest history key: %w", err)
		}
	}

	s.ResetBinding(session)
	return nil
}

func (s *historyService) SyncWithRemote(ctx context.Context, session entity.Session, tokenSubject string) error {
	if !session.IsAuthenticated() {
		return nil
	}
	if tokenSubject != session.ID {
		// Auth token not ready yet; syncing now would hit permission errors.
		s.logger.Warn("HistoryService", "Skipping sync, token subject mismatch", map[string]interface{}{
			"session_id": session.ID,
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.HistoryRepository().Get(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load remote history: %w", err)
	}
	s.store.Save(&memory.HistoryState{SessionID: session.ID, Entries: entries})
	return nil
}

func (s *historyService) MigrateGuestToAuth(ctx context.Context, guestID string, store storage.Local, authUserID string) (int, error) {
	if guestID == "" || authUserID == "" {
		return 0, fmt.Errorf("guest id and user id are required")
	}
	if store == nil {
		return 0, fmt.Errorf("no storage handle for guest session")
	}

	guestEntries, err := s.readGuestHistory(ctx, guestID, store)
	if err != nil {
		return 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	remoteEntries, err := uow.HistoryRepository().Get(ctx, authUserID)
	if err != nil {
		return 0, fmt.Errorf("load remote history: %w", err)
	}

	merged := mergeEntries(guestEntries, remoteEntries)

	if err := uow.HistoryRepository().Save(ctx, authUserID, merged, time.Now().UnixMilli()); err != nil {
		// Remote write failed: the guest key stays in place so nothing is lost.
		return 0, fmt.Errorf("write merged history: %w", err)
	}

	if err := store.RemoveItem(ctx, storage.GuestHistoryKey(guestID)); err != nil {
		s.logger.Warn("HistoryService", "Failed to remove guest history key after migration", map[string]interface{}{
			"guest_id": guestID,
			"error":    err.Error(),
		})
	}

	s.store.Save(&memory.HistoryState{SessionID: authUserID, Entries: merged})

	s.publishMigrated(ctx, guestID, authUserID, len(merged))
	return len(merged), nil
}

// mergeEntries applies last-write-wins per (contentId, mediaType) over the
// concatenation of both lists. The remote entry survives a tie because the
// guest entry must be strictly newer to replace it. Final order is descending
// by watchedAt, capped at the history limit.
func mergeEntries(guest, remote []entity.WatchEntry) []entity.WatchEntry {
	byKey := make(map[string]entity.WatchEntry, len(guest)+len(remote))
	for _, e := range remote {
		byKey[e.Key()] = e
	}
	for _, e := range guest {
		if existing, ok := byKey[e.Key()]; ok && existing.WatchedAt >= e.WatchedAt {
			continue
		}
		byKey[e.Key()] = e
	}

	merged := make([]entity.WatchEntry, 0, len(byKey))
	for _, e := range byKey {
		merged = append(merged, e)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].WatchedAt > merged[j].WatchedAt
	})
	if len(merged) > entity.MaxHistoryEntries {
		merged = merged[:entity.MaxHistoryEntries]
	}
	return merged
}

func (s *historyService) loadPersisted(ctx context.Context, session entity.Session, store storage.Local) ([]entity.WatchEntry, error) {
	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		return uow.HistoryRepository().Get(ctx, session.ID)
	case entity.SessionKindGuest:
		return s.readGuestHistory(ctx, session.ID, store)
	}
	return []entity.WatchEntry{}, nil
}

func (s *historyService) readGuestHistory(ctx context.Context, guestID string, store storage.Local) ([]entity.WatchEntry, error) {
	if store == nil {
		return []entity.WatchEntry{}, nil
	}
	raw, found, err := store.GetItem(ctx, storage.GuestHistoryKey(guestID))
	if err != nil {
		return nil, fmt.Errorf("read guest history: %w", err)
	}
	if !found || raw == "" {
		return []entity.WatchEntry{}, nil
	}
	entries := []entity.WatchEntry{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode guest history: %w", err)
	}
	return entries, nil
}

func (s *historyService) persistGuest(ctx context.Context, guestID string, store storage.Local, entries []entity.WatchEntry) error {
	if store == nil {
		return fmt.Errorf("no storage handle")
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return store.SetItem(ctx, storage.GuestHistoryKey(guestID), string(data))
}

// writeThrough mirrors the in-memory history to the remote document.
// Fire-and-forget: runs detached from the request context.
func (s *historyService) writeThrough(userID string, entries []entity.WatchEntry) {
	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.HistoryRepository().Save(ctx, userID, entries, time.Now().UnixMilli()); err != nil {
		s.logger.Warn("HistoryService", "History write-through failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (s *historyService) publishMigrated(ctx context.Context, guestID, authUserID string, mergedCount int) {
	evt := events.NewBaseEvent(events.TypeHistoryMigrated, map[string]interface{}{
		"user_id":      authUserID,
		"guest_id":     guestID,
		"merged_count": mergedCount,
	})
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("HistoryService", "Failed to publish migration event", map[string]interface{}{"error": err.Error()})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("HistoryService", "Failed to publish migration event to NATS", map[string]interface{}{"error": err.Error()})
		}
	}
}
