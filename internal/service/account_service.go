package service

import (
	"context"
	"fmt"
	"time"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/repository/unitofwork"
	"nettrailer-be/internal/storage"
	"nettrailer-be/pkg/events"
	pktNats "nettrailer-be/pkg/nats"
)

type IAccountService interface {
	// ClearAccountData wipes the session's preferences, watch history and
	// notifications. Steps run sequentially and the first failure aborts the
	// rest, so a partial clear never silently looks complete. A not-ready
	// session is a no-op.
	ClearAccountData(ctx context.Context, session entity.Session, store storage.Local) error
}

type accountService struct {
	profileService IProfileService
	historyService IHistoryService
	uowFactory     unitofwork.RepositoryFactory
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAccountService(
	profileService IProfileService,
	historyService IHistoryService,
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAccountService {
	return &accountService{
		profileService: profileService,
		historyService: historyService,
		uowFactory:     uowFactory,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *accountService) ClearAccountData(ctx context.Context, session entity.Session, store storage.Local) error {
	if !session.Ready() {
		return nil
	}

	if err := s.profileService.ResetPersisted(ctx, session, store); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}

	if err := s.clearHistory(ctx, session, store); err != nil {
		return fmt.Errorf("clear watch history: %w", err)
	}

	if session.IsAuthenticated() {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.NotificationRepository().DeleteAllByUserID(ctx, session.ID); err != nil {
			return fmt.Errorf("clear notifications: %w", err)
		}
	}

	// The in-memory history stays bound to the session that was cleared,
	// so a read straight after the clear sees an empty list, not "no session".
	s.historyService.ResetBinding(session)

	s.logger.Info("AccountService", "Account data cleared", map[string]interface{}{
		"session_id":   session.ID,
		"session_kind": string(session.Kind),
	})
	s.publishCleared(ctx, session)
	return nil
}

func (s *accountService) clearHistory(ctx context.Context, session entity.Session, store storage.Local) error {
	switch session.Kind {
	case entity.SessionKindAuthenticated:
		uow := s.uowFactory.NewUnitOfWork(ctx)
		return uow.HistoryRepository().Reset(ctx, session.ID, time.Now().UnixMilli())
	case entity.SessionKindGuest:
		if store == nil {
			return fmt.Errorf("no storage handle for guest session")
		}
		return store.RemoveItem(ctx, storage.GuestHistoryKey(session.ID))
	}
	return nil
}

func (s *accountService) publishCleared(ctx context.Context, session entity.Session) {
	data := map[string]interface{}{
		"session_id":   session.ID,
		"session_kind": string(session.Kind),
	}
	if session.IsAuthenticated() {
		data["user_id"] = session.ID
	}
	evt := events.NewBaseEvent(events.TypeAccountCleared, data)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AccountService", "Failed to publish clear event", map[string]interface{}{"error": err.Error()})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AccountService", "Failed to publish clear event to NATS", map[string]interface{}{"error": err.Error()})
		}
	}
}
