package controller

import (
	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
)

// ClientIDHeader carries the client's storage handle. A request without it
// has no local storage namespace, so classification can only return the
// initializing placeholder for unauthenticated callers.
const ClientIDHeader = "X-Client-ID"

// resolveSession derives the active session for a request: the JWT subject
// set by the auth middleware (if any) plus the client's storage handle.
func resolveSession(ctx *fiber.Ctx, provider storage.Provider, sessionService service.ISessionService) (entity.Session, storage.Local, error) {
	userID, _ := ctx.Locals("user_id").(string)

	var store storage.Local
	if clientID := ctx.Get(ClientIDHeader); clientID != "" {
		store = provider.ForClient(clientID)
	}

	session, err := sessionService.Classify(ctx.Context(), userID, store)
	if err != nil {
		return entity.Session{}, nil, err
	}
	return session, store, nil
}
