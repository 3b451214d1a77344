package storage

import "context"

// Key layout is bit-exact with the web client's localStorage so that both
// renditions of the app can share a persisted client namespace.
const (
	GuestDataKeyPrefix    = "nettrailer_guest_data_v2_"
	GuestHistoryKeyPrefix = "nettrailer-watch-history_guest_"
	SessionTypeKey        = "nettrailer_session_type"
	GuestIDKey            = "nettrailer_guest_id"
)

// GuestDataKey namespaces the guest profile blob under the guest id.
// Isolation between guests is enforced purely through key construction.
func GuestDataKey(guestID string) string {
	return GuestDataKeyPrefix + guestID
}

// GuestHistoryKey namespaces the guest watch history under the guest id.
func GuestHistoryKey(guestID string) string {
	return GuestHistoryKeyPrefix + guestID
}

// Local is the per-client key-value store, mirroring the browser localStorage
// surface. Implementations: in-memory (go-cache) and Redis (hash per client).
type Local interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Provider hands out the Local store bound to one client device.
type Provider interface {
	ForClient(clientID string) Local
}
