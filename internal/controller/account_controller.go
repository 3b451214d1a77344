package controller

import (
	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/pkg/serverutils"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
)

type IAccountController interface {
	RegisterRoutes(r fiber.Router)
	ClearData(ctx *fiber.Ctx) error
}

type accountController struct {
	accountService service.IAccountService
	sessionService service.ISessionService
	provider       storage.Provider
}

func NewAccountController(
	accountService service.IAccountService,
	sessionService service.ISessionService,
	provider storage.Provider,
) IAccountController {
	return &accountController{
		accountService: accountService,
		sessionService: sessionService,
		provider:       provider,
	}
}

func (c *accountController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/account/v1")
	h.Use(serverutils.OptionalJwtMiddleware) // Guests clear their local namespace, users their account
	h.Delete("data", c.ClearData)
}

func (c *accountController) ClearData(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	if err := c.accountService.ClearAccountData(ctx.Context(), session, store); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear account data", nil))
}
