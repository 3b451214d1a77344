package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"nettrailer-be/internal/model"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/repository/unitofwork"
	"nettrailer-be/pkg/events"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID string, notification model.Notification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		delivery:   delivery,
		logger:     log,
	}
}

// HandleEvent turns a domain event into a stored notification plus a
// real-time push. Only events carrying a persistent identity produce a
// stored row; guest events have no inbox to write to.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	userID, _ := payload["user_id"].(string)

	switch event.EventType() {
	case events.TypeHistoryMigrated:
		if userID == "" {
			s.logger.Warn("NotificationService", "Migration event without user_id", nil)
			return nil
		}
		count := 0
		switch v := payload["merged_count"].(type) {
		case int:
			count = v
		case float64:
			count = int(v)
		}
		notif := s.buildNotification(userID, event,
			"Watch history synced",
			fmt.Sprintf("Your guest watch history was merged into your account (%d titles).", count),
		)
		return s.deliver(ctx, notif)

	case events.TypeAccountCleared:
		kind, _ := payload["session_kind"].(string)
		if userID == "" || kind != "authenticated" {
			// Guest clears wipe the inbox-less namespace; nothing to store.
			return nil
		}
		notif := s.buildNotification(userID, event,
			"Account data cleared",
			"Your watchlists, watch history and notifications were removed.",
		)
		return s.deliver(ctx, notif)
	}

	return nil
}

func (s *NotificationService) deliver(ctx context.Context, notif model.Notification) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to store notification", map[string]interface{}{
			"user_id": notif.UserID,
			"error":   err.Error(),
		})
		return err
	}
	if s.delivery != nil {
		s.delivery.Send(notif.UserID, notif)
	}
	return nil
}

func (s *NotificationService) buildNotification(userID string, event events.Event, title, message string) model.Notification {
	metaJSON, _ := json.Marshal(event.Payload())
	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  event.EventType(),
		Title:     title,
		Message:   message,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]model.Notification, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().GetByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userID)
}
