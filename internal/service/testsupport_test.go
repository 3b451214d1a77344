package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"nettrailer-be/internal/entity"
	"nettrailer-be/internal/model"
	"nettrailer-be/internal/repository/contract"
	"nettrailer-be/internal/repository/unitofwork"
)

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// callRecorder tracks the order of remote operations across all fakes, so
// tests can assert the clear sequence and count remote calls.
type callRecorder struct {
	mu    sync.Mutex
	Calls []string
}

func (r *callRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, name)
}

func (r *callRecorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	copy(out, r.Calls)
	return out
}

type fakeProfileRepo struct {
	recorder *callRecorder
	mu       sync.Mutex
	profiles map[string]*entity.UserProfile

	SaveErr  error
	ResetErr error
}

func newFakeProfileRepo(rec *callRecorder) *fakeProfileRepo {
	return &fakeProfileRepo{recorder: rec, profiles: make(map[string]*entity.UserProfile)}
}

func (f *fakeProfileRepo) Get(_ context.Context, userID string) (*entity.UserProfile, error) {
	f.recorder.record("profile.Get")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) Save(_ context.Context, userID string, profile *entity.UserProfile) error {
	f.recorder.record("profile.Save")
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = profile
	return nil
}

func (f *fakeProfileRepo) Reset(_ context.Context, userID string, lastActive int64) error {
	f.recorder.record("profile.Reset")
	if f.ResetErr != nil {
		return f.ResetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	empty := entity.EmptyProfile()
	empty.LastActive = lastActive
	f.profiles[userID] = empty
	return nil
}

type fakeHistoryRepo struct {
	recorder *callRecorder
	mu       sync.Mutex
	docs     map[string][]entity.WatchEntry

	GetErr   error
	SaveErr  error
	ResetErr error
}

func newFakeHistoryRepo(rec *callRecorder) *fakeHistoryRepo {
	return &fakeHistoryRepo{recorder: rec, docs: make(map[string][]entity.WatchEntry)}
}

func (f *fakeHistoryRepo) Get(_ context.Context, userID string) ([]entity.WatchEntry, error) {
	f.recorder.record("history.Get")
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if entries, ok := f.docs[userID]; ok {
		out := make([]entity.WatchEntry, len(entries))
		copy(out, entries)
		return out, nil
	}
	return []entity.WatchEntry{}, nil
}

func (f *fakeHistoryRepo) Save(_ context.Context, userID string, entries []entity.WatchEntry, _ int64) error {
	f.recorder.record("history.Save")
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.WatchEntry, len(entries))
	copy(out, entries)
	f.docs[userID] = out
	return nil
}

func (f *fakeHistoryRepo) Reset(_ context.Context, userID string, _ int64) error {
	f.recorder.record("history.Reset")
	if f.ResetErr != nil {
		return f.ResetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[userID] = []entity.WatchEntry{}
	return nil
}

type fakeNotificationRepo struct {
	recorder *callRecorder
	mu       sync.Mutex
	rows     map[string][]model.Notification

	DeleteErr error
}

func newFakeNotificationRepo(rec *callRecorder) *fakeNotificationRepo {
	return &fakeNotificationRepo{recorder: rec, rows: make(map[string][]model.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.recorder.record("notification.Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[n.UserID] = append(f.rows[n.UserID], *n)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, userID string, limit, offset int) ([]model.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.rows[userID]
	return all, int64(len(all)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.rows[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, _ string) error { return nil }

func (f *fakeNotificationRepo) DeleteAllByUserID(_ context.Context, userID string) error {
	f.recorder.record("notification.DeleteAll")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

// fakeUnitOfWork wires the fakes behind the unitofwork interfaces.
type fakeUnitOfWork struct {
	profiles      *fakeProfileRepo
	histories     *fakeHistoryRepo
	notifications *fakeNotificationRepo
}

func (f *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                 { return nil }
func (f *fakeUnitOfWork) Rollback() error               { return nil }

func (f *fakeUnitOfWork) ProfileRepository() contract.ProfileRepository {
	return f.profiles
}

func (f *fakeUnitOfWork) HistoryRepository() contract.HistoryRepository {
	return f.histories
}

func (f *fakeUnitOfWork) NotificationRepository() contract.NotificationRepository {
	return f.notifications
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// testBackend bundles the fakes a service test needs.
type testBackend struct {
	Recorder      *callRecorder
	Profiles      *fakeProfileRepo
	Histories     *fakeHistoryRepo
	Notifications *fakeNotificationRepo
	Factory       *fakeFactory
}

func newTestBackend() *testBackend {
	rec := &callRecorder{}
	profiles := newFakeProfileRepo(rec)
	histories := newFakeHistoryRepo(rec)
	notifications := newFakeNotificationRepo(rec)
	return &testBackend{
		Recorder:      rec,
		Profiles:      profiles,
		Histories:     histories,
		Notifications: notifications,
		Factory: &fakeFactory{uow: &fakeUnitOfWork{
			profiles:      profiles,
			histories:     histories,
			notifications: notifications,
		}},
	}
}
