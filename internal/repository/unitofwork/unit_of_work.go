package unitofwork

import (
	"context"

	"nettrailer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProfileRepository() contract.ProfileRepository
	HistoryRepository() contract.HistoryRepository
	NotificationRepository() contract.NotificationRepository
}
