package memory

import (
	"time"

	"nettrailer-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// HistoryState is the in-memory watch history bound to one session.
// SessionID is never empty once the state exists, even right after a clear.
type HistoryState struct {
	SessionID string
	Entries   []entity.WatchEntry
}

// HistoryStore keeps per-session watch-history state in memory. Entries are
// the authoritative copy while a session is active; the remote document and
// the guest-local key are mirrors.
type HistoryStore struct {
	cache *cache.Cache
}

func NewHistoryStore() *HistoryStore {
	// Sessions idle for a day are evicted; they reload from their backing
	// store on the next sync.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &HistoryStore{
		cache: c,
	}
}

func (s *HistoryStore) Save(state *HistoryState) {
	s.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (s *HistoryStore) Get(sessionID string) (*HistoryState, bool) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*HistoryState), true
	}
	return nil, false
}

func (s *HistoryStore) Delete(sessionID string) {
	s.cache.Delete(sessionID)
}
