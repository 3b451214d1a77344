package controller

import (
	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/pkg/serverutils"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	provider       storage.Provider
}

func NewSessionController(sessionService service.ISessionService, provider storage.Provider) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		provider:       provider,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("", c.Show)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, _, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	res := dto.SessionResponse{
		Kind: string(session.Kind),
		ID:   session.ID,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve session", res))
}
