package controller

import (
	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/pkg/serverutils"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
	Migrate(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
	sessionService service.ISessionService
	provider       storage.Provider
}

func NewHistoryController(
	historyService service.IHistoryService,
	sessionService service.ISessionService,
	provider storage.Provider,
) IHistoryController {
	return &historyController{
		historyService: historyService,
		sessionService: sessionService,
		provider:       provider,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("", c.Show)
	h.Post("", c.Add)
	h.Delete("", c.Clear)

	// Sync and migration only make sense with a verified identity.
	h.Post("sync", serverutils.JwtMiddleware, c.Sync)
	h.Post("migrate", serverutils.JwtMiddleware, c.Migrate)
}

func (c *historyController) Show(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	entries, err := c.historyService.Get(ctx.Context(), session, store)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show history", dto.HistoryResponse{
		SessionID: session.ID,
		History:   entries,
	}))
}

func (c *historyController) Add(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.AddHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	entry, err := c.historyService.AddEntry(ctx.Context(), session, store, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add history entry", entry))
}

func (c *historyController) Clear(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	if err := c.historyService.ClearPersisted(ctx.Context(), session, store); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear history", nil))
}

func (c *historyController) Sync(ctx *fiber.Ctx) error {
	session, _, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	tokenSubject, _ := ctx.Locals("user_id").(string)
	if err := c.historyService.SyncWithRemote(ctx.Context(), session, tokenSubject); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success sync history", nil))
}

func (c *historyController) Migrate(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("user_id").(string)

	var req dto.MigrateHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var store storage.Local
	if clientID := ctx.Get(ClientIDHeader); clientID != "" {
		store = c.provider.ForClient(clientID)
	}

	count, err := c.historyService.MigrateGuestToAuth(ctx.Context(), req.GuestID, store, userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success migrate history", fiber.Map{"merged_count": count}))
}
