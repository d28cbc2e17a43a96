package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	sessionRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/session"
	"github.com/meetsync/MS-SchedulingService/internal/service/sessions/models"
	"github.com/meetsync/MS-SchedulingService/pkg/ptr"
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

func (f *fakeSessionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return sessionRepo.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) ListByFilter(_ context.Context, filter domain.SessionsFilter) ([]*domain.Session, error) {
	result := make([]*domain.Session, 0)
	for _, s := range f.sessions {
		if filter.Role != nil {
			if s.PartyID(*filter.Role) != filter.UserID {
				continue
			}
		} else if !s.InvolvesUser(filter.UserID) {
			continue
		}
		if filter.Confirmed != nil && s.Confirmed != *filter.Confirmed {
			continue
		}
		result = append(result, s)
	}
	return result, nil
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

func newTestService(sessions ...*domain.Session) (*Service, *fakeSessionRepo, *fakeNotifier) {
	repo := &fakeSessionRepo{sessions: map[int64]*domain.Session{}}
	for _, s := range sessions {
		repo.sessions[s.ID] = s
	}
	notify := &fakeNotifier{}
	return NewService(repo, notify, nopLogger{}), repo, notify
}

func session(id, hostID, guestID int64, confirmed bool) *domain.Session {
	return &domain.Session{
		ID: id, HostID: hostID, GuestID: guestID, ScheduleID: 1,
		StartTime: at(10, 0), EndTime: at(11, 0), Title: "Встреча", Confirmed: confirmed,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _, _ := newTestService(session(1, 100, 200, true))

	// Хост и гость видят сессию
	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, 200)
	assert.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListUserSessions_Filters(t *testing.T) {
	svc, _, _ := newTestService(
		session(1, 100, 200, true),  // user 100 как хост, confirmed
		session(2, 100, 300, false), // user 100 как хост, pending
		session(3, 400, 100, true),  // user 100 как гость, confirmed
		session(4, 400, 500, true),  // без участия user 100
	)

	// Без фильтров - обе роли, любой статус
	resp, err := svc.ListUserSessions(context.Background(), &models.ListSessionsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 3)

	// Только роль хоста
	resp, err = svc.ListUserSessions(context.Background(), &models.ListSessionsRequest{
		UserID: 100, Role: ptr.Ptr("host"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Sessions, 2)

	// Роль гостя + только подтвержденные
	resp, err = svc.ListUserSessions(context.Background(), &models.ListSessionsRequest{
		UserID: 100, Role: ptr.Ptr("guest"), Confirmed: ptr.Ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, int64(3), resp.Sessions[0].ID)
}

func TestListUserSessions_InvalidRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListUserSessions(context.Background(), &models.ListSessionsRequest{
		UserID: 100, Role: ptr.Ptr("moderator"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_NotifiesCounterparty(t *testing.T) {
	svc, repo, notify := newTestService(session(1, 100, 200, true))

	// Хост удаляет - уведомление гостю
	require.NoError(t, svc.Delete(context.Background(), 1, 100))
	assert.NotContains(t, repo.sessions, int64(1))
	assert.Equal(t, []notification{{recipientID: 200, event: domain.EventSessionCancelled}}, notify.sent)
}

func TestDelete_GuestCanCancel(t *testing.T) {
	svc, _, notify := newTestService(session(1, 100, 200, false))

	// Гость отзывает pending-заявку - уведомление хосту
	require.NoError(t, svc.Delete(context.Background(), 1, 200))
	assert.Equal(t, []notification{{recipientID: 100, event: domain.EventSessionCancelled}}, notify.sent)
}

func TestDelete_AccessDenied(t *testing.T) {
	svc, repo, notify := newTestService(session(1, 100, 200, true))

	err := svc.Delete(context.Background(), 1, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, repo.sessions, int64(1))
	assert.Empty(t, notify.sent)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
