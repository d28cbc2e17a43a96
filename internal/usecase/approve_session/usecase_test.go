package approve_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	sessionRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/session"
	"github.com/meetsync/MS-SchedulingService/internal/integrations/meetprovider"
)

// fakeSessionRepo in-memory репозиторий сессий для тестов
type fakeSessionRepo struct {
	sessions map[int64]*domain.Session
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Confirm(_ context.Context, id int64) error {
	session, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	session.Confirmed = true
	return nil
}

func (f *fakeSessionRepo) DeletePendingOverlapping(_ context.Context, hostID int64, start, end time.Time, excludeID int64) ([]*domain.Session, error) {
	deleted := make([]*domain.Session, 0)
	for id, s := range f.sessions {
		if id == excludeID || s.HostID != hostID || s.IsConfirmed() {
			continue
		}
		if domain.IntervalsOverlap(s.StartTime, s.EndTime, start, end) {
			deleted = append(deleted, s)
			delete(f.sessions, id)
		}
	}
	return deleted, nil
}

func (f *fakeSessionRepo) SetMeetingURLs(_ context.Context, id int64, hostURL, guestURL string) error {
	session, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	session.HostURL = &hostURL
	session.GuestURL = &guestURL
	return nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeMeetClient управляемый провайдер встреч
type fakeMeetClient struct {
	meeting *meetprovider.Meeting
	err     error
	calls   int
}

func (f *fakeMeetClient) ProvisionMeeting(_ context.Context, _ string, _ time.Time) (*meetprovider.Meeting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meeting, nil
}

// notification одно отправленное уведомление
type notification struct {
	recipientID int64
	event       string
}

// fakeNotifier записывает отправленные уведомления
type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID int64, event string, _ map[string]string) {
	f.sent = append(f.sent, notification{recipientID: recipientID, event: event})
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func pendingSession(id, hostID, guestID int64, start, end time.Time) *domain.Session {
	return &domain.Session{
		ID: id, HostID: hostID, GuestID: guestID, ScheduleID: 1,
		StartTime: start, EndTime: end, Title: "Встреча", Confirmed: false,
	}
}

func newTestUseCase(sessions ...*domain.Session) (*UseCase, *fakeSessionRepo, *fakeMeetClient, *fakeNotifier) {
	repo := &fakeSessionRepo{sessions: map[int64]*domain.Session{}}
	for _, s := range sessions {
		repo.sessions[s.ID] = s
	}
	meet := &fakeMeetClient{meeting: &meetprovider.Meeting{HostURL: "https://meet/host", GuestURL: "https://meet/guest"}}
	notify := &fakeNotifier{}
	uc := NewUseCase(repo, meet, notify, &fakeTxManager{}, nopLogger{})
	return uc, repo, meet, notify
}

func TestExecute_ConfirmsPendingSession(t *testing.T) {
	uc, repo, meet, notify := newTestUseCase(
		pendingSession(1, 100, 200, at(10, 0), at(11, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 100})

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	require.NotNil(t, resp.HostURL)
	assert.Equal(t, "https://meet/host", *resp.HostURL)
	assert.Empty(t, resp.CancelledSessionIDs)
	assert.True(t, repo.sessions[1].IsConfirmed())
	assert.Equal(t, 1, meet.calls)
	assert.Equal(t, []notification{
		{recipientID: 100, event: domain.EventSessionConfirmed},
		{recipientID: 200, event: domain.EventSessionConfirmed},
	}, notify.sent)
}

func TestExecute_CascadeCancelsOverlappingPending(t *testing.T) {
	uc, repo, _, notify := newTestUseCase(
		pendingSession(1, 100, 200, at(10, 0), at(11, 0)),
		// Пересекается с подтверждаемым интервалом - должна быть удалена
		pendingSession(2, 100, 300, at(10, 30), at(11, 30)),
		// Граничит, но не пересекается - остается
		pendingSession(3, 100, 400, at(11, 0), at(11, 30)),
		// Пересекается, но у другого хоста - остается
		pendingSession(4, 999, 500, at(10, 0), at(11, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 100})

	require.NoError(t, err)
	assert.Equal(t, []int64{2}, resp.CancelledSessionIDs)
	assert.NotContains(t, repo.sessions, int64(2))
	assert.Contains(t, repo.sessions, int64(3))
	assert.Contains(t, repo.sessions, int64(4))

	// Гость отмененной заявки получает уведомление об отмене
	assert.Contains(t, notify.sent, notification{recipientID: 300, event: domain.EventSessionCancelled})
}

func TestExecute_AlreadyConfirmedIsNoOp(t *testing.T) {
	confirmed := pendingSession(1, 100, 200, at(10, 0), at(11, 0))
	confirmed.Confirmed = true

	uc, repo, meet, notify := newTestUseCase(
		confirmed,
		// Пересекающаяся pending-заявка: повторное подтверждение
		// не должно трогать ее
		pendingSession(2, 100, 300, at(10, 0), at(11, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 100})

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.Empty(t, resp.CancelledSessionIDs)
	assert.Contains(t, repo.sessions, int64(2))
	assert.Equal(t, 0, meet.calls)
	assert.Empty(t, notify.sent)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{SessionID: 42, HostID: 100})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_ForeignSessionLooksMissing(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(
		pendingSession(1, 100, 200, at(10, 0), at(11, 0)),
	)

	_, err := uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 999})

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, repo.sessions[1].IsConfirmed())
}

func TestExecute_ProvisioningFailureKeepsConfirmation(t *testing.T) {
	uc, repo, meet, notify := newTestUseCase(
		pendingSession(1, 100, 200, at(10, 0), at(11, 0)),
	)
	meet.err = errors.New("provider is down")

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 100})

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.Nil(t, resp.HostURL)
	assert.True(t, repo.sessions[1].IsConfirmed())
	// Уведомления о подтверждении уходят даже без ссылок на встречу
	assert.Len(t, notify.sent, 2)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{SessionID: 0, HostID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SessionID: 1, HostID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
