package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"nettrailer-be/internal/dto"
	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/repository/unitofwork"
	"nettrailer-be/internal/storage"
)

type IProfileService interface {
	Get(ctx context.Context, session entity.Session, store storage.Local) (*entity.UserProfile, error)

	AddToWatchlist(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error)
	RemoveFromWatchlist(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error)
	LikeContent(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error)
	UnlikeContent(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error)
	HideContent(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error)
	UnhideContent(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error)

	CreateCollection(ctx context.Context, session entity.Session, store storage.Local, req dto.CreateCollectionRequest) (*entity.UserProfile, error)
	DeleteCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string) (*entity.UserProfile, error)
	AddItemToCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string, content entity.Content) (*entity.UserProfile, error)
	RemoveItemFromCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error)

	// ResetPersisted overwrites the session's persisted preferences with the
	// empty structure. For guests the blob is overwritten in place under the
	// same key; for authenticated sessions the remote document is reset.
	ResetPersisted(ctx context.Context, session entity.Session, store storage.Local) error
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IProfileService {
	return &profileService{uowFactory: uowFactory, logger: log}
}

func (s *profileService) Get(ctx context.Context, session entity.Session, store storage.Local) (*entity.UserProfile, error) {
	if !session.Ready() {
		return entity.EmptyProfile(), nil
	}
	return s.load(ctx, session, store)
}

func (s *profileService) AddToWatchlist(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.DefaultWatchlist = upsertContent(p.DefaultWatchlist, content)
	})
}

func (s *profileService) RemoveFromWatchlist(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.DefaultWatchlist = removeContent(p.DefaultWatchlist, contentID, mediaType)
	})
}

func (s *profileService) LikeContent(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.LikedMovies = upsertContent(p.LikedMovies, content)
	})
}

func (s *profileService) UnlikeContent(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.LikedMovies = removeContent(p.LikedMovies, contentID, mediaType)
	})
}

func (s *profileService) HideContent(ctx context.Context, session entity.Session, store storage.Local, content entity.Content) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.HiddenMovies = upsertContent(p.HiddenMovies, content)
	})
}

func (s *profileService) UnhideContent(ctx context.Context, session entity.Session, store storage.Local, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.HiddenMovies = removeContent(p.HiddenMovies, contentID, mediaType)
	})
}

func (s *profileService) CreateCollection(ctx context.Context, session entity.Session, store storage.Local, req dto.CreateCollectionRequest) (*entity.UserProfile, error) {
	return s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		p.UserCreatedWatchlists = append(p.UserCreatedWatchlists, entity.NewCustomList(req.Name))
	})
}

func (s *profileService) DeleteCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string) (*entity.UserProfile, error) {
	var found bool
	profile, err := s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		kept := make([]entity.CustomList, 0, len(p.UserCreatedWatchlists))
		for _, list := range p.UserCreatedWatchlists {
			if list.ID == collectionID {
				found = true
				continue
			}
			kept = append(kept, list)
		}
		p.UserCreatedWatchlists = kept
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "collection not found")
	}
	return profile, nil
}

func (s *profileService) AddItemToCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string, content entity.Content) (*entity.UserProfile, error) {
	var found bool
	profile, err := s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		for i, list := range p.UserCreatedWatchlists {
			if list.ID != collectionID {
				continue
			}
			found = true
			p.UserCreatedWatchlists[i].Items = upsertContent(list.Items, content)
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "collection not found")
	}
	return profile, nil
}

func (s *profileService) RemoveItemFromCollection(ctx context.Context, session entity.Session, store storage.Local, collectionID string, contentID int, mediaType entity.MediaType) (*entity.UserProfile, error) {
	var found bool
	profile, err := s.mutate(ctx, session, store, func(p *entity.UserProfile) {
		for i, list := range p.UserCreatedWatchlists {
			if list.ID != collectionID {
				continue
			}
			found = true
			p.UserCreatedWatchlists[i].Items = removeContent(list.Items, contentID, mediaType)
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "collection not found")
	}
	return profile, nil
}

func (s *profileService) ResetPersisted(ctx context.Context, session entity.Session, store storage.Local) error {
	if !session.Ready() {
		return nil
	}

	now := time.Now().UnixMilli()
	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ProfileRepository().Reset(ctx, session.ID, now); err != nil {
			return fmt.Errorf("reset profile document: %w", err)
		}
	case entity.SessionKindGuest:
		if store == nil {
			return fmt.Errorf("no storage handle for guest session")
		}
		empty := entity.EmptyProfile()
		empty.LastActive = now
		if err := s.persistGuest(ctx, session.ID, store, empty); err != nil {
			return fmt.Errorf("reset guest blob: %w", err)
		}
	}
	return nil
}

// mutate implements the shared read-modify-write cycle: load the profile for
// the session's namespace, apply fn, stamp lastActive, persist to the same
// namespace. Mutations on a not-ready session are rejected rather than lost.
func (s *profileService) mutate(ctx context.Context, session entity.Session, store storage.Local, fn func(*entity.UserProfile)) (*entity.UserProfile, error) {
	if !session.Ready() {
		return nil, fiber.NewError(fiber.StatusConflict, "session is still initializing")
	}

	profile, err := s.load(ctx, session, store)
	if err != nil {
		return nil, err
	}
	fn(profile)
	profile.LastActive = time.Now().UnixMilli()

	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ProfileRepository().Save(ctx, session.ID, profile); err != nil {
			return nil, fmt.Errorf("save profile document: %w", err)
		}
	case entity.SessionKindGuest:
		if err := s.persistGuest(ctx, session.ID, store, profile); err != nil {
			return nil, fmt.Errorf("save guest blob: %w", err)
		}
	}
	return profile, nil
}

func (s *profileService) load(ctx context.Context, session entity.Session, store storage.Local) (*entity.UserProfile, error) {
	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		profile, err := uow.ProfileRepository().Get(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("load profile document: %w", err)
		}
		if profile == nil {
			return entity.EmptyProfile(), nil
		}
		return profile, nil
	case entity.SessionKindGuest:
		if store == nil {
			return nil, fmt.Errorf("no storage handle for guest session")
		}
		raw, found, err := store.GetItem(ctx, storage.GuestDataKey(session.ID))
		if err != nil {
			return nil, fmt.Errorf("read guest blob: %w", err)
		}
		if !found || raw == "" {
			return entity.EmptyProfile(), nil
		}
		profile := entity.EmptyProfile()
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
			return nil, fmt.Errorf("decode guest blob: %w", err)
		}
		return profile, nil
	}
	return entity.EmptyProfile(), nil
}

func (s *profileService) persistGuest(ctx context.Context, guestID string, store storage.Local, profile *entity.UserProfile) error {
	if store == nil {
		return fmt.Errorf("no storage handle")
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return store.SetItem(ctx, storage.GuestDataKey(guestID), string(data))
}

func upsertContent(list []entity.Content, content entity.Content) []entity.Content {
	for i, c := range list {
		if c.ID == content.ID && c.MediaType == content.MediaType {
			list[i] = content
			return list
		}
	}
	return append(list, content)
}

func removeContent(list []entity.Content, contentID int, mediaType entity.MediaType) []entity.Content {
	kept := make([]entity.Content, 0, len(list))
	for _, c := range list {
		if c.ID == contentID && c.MediaType == mediaType {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
