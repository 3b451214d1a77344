package storage

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLocal is a non-expiring in-process Local store, used in development
// and tests where no Redis is available.
type MemoryLocal struct {
	items *cache.Cache
}

func NewMemoryLocal() *MemoryLocal {
	return &MemoryLocal{
		items: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (m *MemoryLocal) GetItem(_ context.Context, key string) (string, bool, error) {
	if v, found := m.items.Get(key); found {
		return v.(string), true, nil
	}
	return "", false, nil
}

func (m *MemoryLocal) SetItem(_ context.Context, key, value string) error {
	m.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *MemoryLocal) RemoveItem(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *MemoryLocal) Keys(_ context.Context) ([]string, error) {
	items := m.items.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys, nil
}

// MemoryProvider keeps one MemoryLocal per client id.
type MemoryProvider struct {
	// mu serializes ForClient so concurrent first requests for the same
	// client id resolve to a single store.
	mu     sync.Mutex
	stores *cache.Cache
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		stores: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (p *MemoryProvider) ForClient(clientID string) Local {
	if clientID == "" {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, found := p.stores.Get(clientID); found {
		return s.(*MemoryLocal)
	}
	s := NewMemoryLocal()
	p.stores.Set(clientID, s, cache.NoExpiration)
	return s
}
