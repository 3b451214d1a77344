package contract

import (
	"context"

	"nettrailer-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// DeleteAllByUserID removes every notification for the identity. Invoked
	// only for authenticated sessions during an account clear.
	DeleteAllByUserID(ctx context.Context, userID string) error
}
