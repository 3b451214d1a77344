package entity

type SessionKind string

const (
	SessionKindGuest         SessionKind = "guest"
	SessionKindAuthenticated SessionKind = "authenticated"
	SessionKindInitializing  SessionKind = "initializing"
)

// Session identifies whose storage namespace is active. Exactly one session
// is active per request; the Kind decides whether operations hit the remote
// document store or the client-local key-value store.
type Session struct {
	Kind SessionKind
	ID   string
}

func GuestSession(id string) Session {
	return Session{Kind: SessionKindGuest, ID: id}
}

func AuthenticatedSession(id string) Session {
	return Session{Kind: SessionKindAuthenticated, ID: id}
}

// InitializingSession is the placeholder returned while no storage handle is
// available yet (the server-side render case). No identifier is generated.
func InitializingSession() Session {
	return Session{Kind: SessionKindInitializing, ID: ""}
}

func (s Session) IsGuest() bool {
	return s.Kind == SessionKindGuest
}

func (s Session) IsAuthenticated() bool {
	return s.Kind == SessionKindAuthenticated
}

// Ready reports whether the session can be used for storage operations.
func (s Session) Ready() bool {
	return s.Kind != SessionKindInitializing && s.ID != ""
}
