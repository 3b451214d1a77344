package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyConstruction(t *testing.T) {
	// These literals are a wire contract shared with the web client.
	assert.Equal(t, "nettrailer_guest_data_v2_guest_1_abc", GuestDataKey("guest_1_abc"))
	assert.Equal(t, "nettrailer-watch-history_guest_guest_1_abc", GuestHistoryKey("guest_1_abc"))
	assert.Equal(t, "nettrailer_session_type", SessionTypeKey)
	assert.Equal(t, "nettrailer_guest_id", GuestIDKey)
}

func TestMemoryLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryLocal()

	_, found, err := local.GetItem(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, local.SetItem(ctx, "k", "v"))
	v, found, err := local.GetItem(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	assert.NoError(t, local.RemoveItem(ctx, "k"))
	_, found, _ = local.GetItem(ctx, "k")
	assert.False(t, found)
}

func TestMemoryProviderIsolatesClients(t *testing.T) {
	ctx := context.Background()
	provider := NewMemoryProvider()

	a := provider.ForClient("device-a")
	b := provider.ForClient("device-b")

	assert.NoError(t, a.SetItem(ctx, GuestIDKey, "guest_1_aaa"))

	_, found, err := b.GetItem(ctx, GuestIDKey)
	assert.NoError(t, err)
	assert.False(t, found)

	// Same client id resolves to the same underlying store.
	again := provider.ForClient("device-a")
	v, found, _ := again.GetItem(ctx, GuestIDKey)
	assert.True(t, found)
	assert.Equal(t, "guest_1_aaa", v)
}

func TestProviderReturnsNilWithoutClientID(t *testing.T) {
	provider := NewMemoryProvider()
	assert.Nil(t, provider.ForClient(""))
}

func TestMemoryProviderConcurrentFirstAccess(t *testing.T) {
	// Concurrent first requests for the same client id must all resolve to
	// one store, so no request writes into an orphaned copy.
	provider := NewMemoryProvider()

	const workers = 32
	stores := make([]Local, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = provider.ForClient("device-a")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, stores[0], stores[i])
	}

	ctx := context.Background()
	assert.NoError(t, stores[workers-1].SetItem(ctx, GuestIDKey, "guest_1_aaa"))
	v, found, err := provider.ForClient("device-a").GetItem(ctx, GuestIDKey)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "guest_1_aaa", v)
}

func TestGuestNamespacesShareOneStore(t *testing.T) {
	// Two guests on the same device share a store; isolation comes purely
	// from key construction.
	ctx := context.Background()
	local := NewMemoryLocal()

	assert.NoError(t, local.SetItem(ctx, GuestDataKey("guest_1_aaa"), `{"a":1}`))
	assert.NoError(t, local.SetItem(ctx, GuestDataKey("guest_2_bbb"), `{"b":2}`))

	va, _, _ := local.GetItem(ctx, GuestDataKey("guest_1_aaa"))
	vb, _, _ := local.GetItem(ctx, GuestDataKey("guest_2_bbb"))
	assert.Equal(t, `{"a":1}`, va)
	assert.Equal(t, `{"b":2}`, vb)

	keys, err := local.Keys(ctx)
	assert.NoError(t, err)
	assert.Len(t, keys, 2)
}
