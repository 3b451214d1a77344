package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/storage"

	"github.com/google/uuid"
)

type ISessionService interface {
	// Classify decides which storage namespace is active for the request.
	// authUserID is the JWT subject, empty when unauthenticated. store may
	// be nil when the client has no storage handle yet; classification then
	// returns the initializing placeholder without generating anything.
	Classify(ctx context.Context, authUserID string, store storage.Local) (entity.Session, error)
}

type sessionService struct {
	logger logger.ILogger
}

func NewSessionService(log logger.ILogger) ISessionService {
	return &sessionService{logger: log}
}

func (s *sessionService) Classify(ctx context.Context, authUserID string, store storage.Local) (entity.Session, error) {
	if authUserID != "" {
		if store != nil {
			if err := store.SetItem(ctx, storage.SessionTypeKey, string(entity.SessionKindAuthenticated)); err != nil {
				// The flag is a convenience marker; identity is already known.
				s.logger.Warn("SessionService", "Failed to persist session type flag", map[string]interface{}{"error": err.Error()})
			}
		}
		return entity.AuthenticatedSession(authUserID), nil
	}

	if store == nil {
		return entity.InitializingSession(), nil
	}

	guestID, found, err := store.GetItem(ctx, storage.GuestIDKey)
	if err != nil {
		return entity.Session{}, fmt.Errorf("read guest id: %w", err)
	}
	if !found || !strings.HasPrefix(guestID, "guest_") {
		guestID = newGuestID()
		if err := store.SetItem(ctx, storage.GuestIDKey, guestID); err != nil {
			return entity.Session{}, fmt.Errorf("persist guest id: %w", err)
		}
		s.logger.Info("SessionService", "Generated new guest identity", map[string]interface{}{"guest_id": guestID})
	}
	if err := store.SetItem(ctx, storage.SessionTypeKey, string(entity.SessionKindGuest)); err != nil {
		return entity.Session{}, fmt.Errorf("persist session type: %w", err)
	}

	return entity.GuestSession(guestID), nil
}

// newGuestID mirrors the client format: guest_<unix ms>_<random suffix>.
func newGuestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), suffix)
}
