package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/pkg/serverutils"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	AddToWatchlist(ctx *fiber.Ctx) error
	RemoveFromWatchlist(ctx *fiber.Ctx) error
	Like(ctx *fiber.Ctx) error
	Unlike(ctx *fiber.Ctx) error
	Hide(ctx *fiber.Ctx) error
	Unhide(ctx *fiber.Ctx) error
	CreateCollection(ctx *fiber.Ctx) error
	DeleteCollection(ctx *fiber.Ctx) error
	AddCollectionItem(ctx *fiber.Ctx) error
	RemoveCollectionItem(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
	sessionService service.ISessionService
	provider       storage.Provider
}

func NewProfileController(
	profileService service.IProfileService,
	sessionService service.ISessionService,
	provider storage.Provider,
) IProfileController {
	return &profileController{
		profileService: profileService,
		sessionService: sessionService,
		provider:       provider,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.OptionalJwtMiddleware) // Guests and authenticated users both allowed
	h.Get("", c.Show)
	h.Post("watchlist", c.AddToWatchlist)
	h.Delete("watchlist", c.RemoveFromWatchlist)
	h.Post("likes", c.Like)
	h.Delete("likes", c.Unlike)
	h.Post("hidden", c.Hide)
	h.Delete("hidden", c.Unhide)
	h.Post("collections", c.CreateCollection)
	h.Delete("collections/:id", c.DeleteCollection)
	h.Post("collections/:id/items", c.AddCollectionItem)
	h.Delete("collections/:id/items", c.RemoveCollectionItem)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	profile, err := c.profileService.Get(ctx.Context(), session, store)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show profile", toProfileResponse(profile)))
}

func (c *profileController) AddToWatchlist(ctx *fiber.Ctx) error {
	return c.addContent(ctx, c.profileService.AddToWatchlist, "Success add to watchlist")
}

func (c *profileController) RemoveFromWatchlist(ctx *fiber.Ctx) error {
	return c.removeContent(ctx, c.profileService.RemoveFromWatchlist, "Success remove from watchlist")
}

func (c *profileController) Like(ctx *fiber.Ctx) error {
	return c.addContent(ctx, c.profileService.LikeContent, "Success like content")
}

func (c *profileController) Unlike(ctx *fiber.Ctx) error {
	return c.removeContent(ctx, c.profileService.UnlikeContent, "Success unlike content")
}

func (c *profileController) Hide(ctx *fiber.Ctx) error {
	return c.addContent(ctx, c.profileService.HideContent, "Success hide content")
}

func (c *profileController) Unhide(ctx *fiber.Ctx) error {
	return c.removeContent(ctx, c.profileService.UnhideContent, "Success unhide content")
}

func (c *profileController) CreateCollection(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.CreateCollectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := c.profileService.CreateCollection(ctx.Context(), session, store, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create collection", toProfileResponse(profile)))
}

func (c *profileController) DeleteCollection(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	profile, err := c.profileService.DeleteCollection(ctx.Context(), session, store, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete collection", toProfileResponse(profile)))
}

func (c *profileController) AddCollectionItem(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.CollectionItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := c.profileService.AddItemToCollection(ctx.Context(), session, store, ctx.Params("id"), req.Content.ToEntity())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add collection item", toProfileResponse(profile)))
}

func (c *profileController) RemoveCollectionItem(ctx *fiber.Ctx) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.RemoveContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := c.profileService.RemoveItemFromCollection(ctx.Context(), session, store, ctx.Params("id"), req.ContentID, entity.MediaType(req.MediaType))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove collection item", toProfileResponse(profile)))
}

type addContentOp func(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error)

type removeContentOp func(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error)

func (c *profileController) addContent(ctx *fiber.Ctx, op addContentOp, message string) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.AddContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := op(ctx.Context(), session, store, req.Content.ToEntity())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, toProfileResponse(profile)))
}

func (c *profileController) removeContent(ctx *fiber.Ctx, op removeContentOp, message string) error {
	session, store, err := resolveSession(ctx, c.provider, c.sessionService)
	if err != nil {
		return err
	}

	var req dto.RemoveContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	profile, err := op(ctx.Context(), session, store, req.ContentID, entity.MediaType(req.MediaType))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, toProfileResponse(profile)))
}

func toProfileResponse(profile *entity.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		DefaultWatchlist:      profile.DefaultWatchlist,
		LikedMovies:           profile.LikedMovies,
		HiddenMovies:          profile.HiddenMovies,
		UserCreatedWatchlists: profile.UserCreatedWatchlists,
		LastActive:            profile.LastActive,
	}
}
