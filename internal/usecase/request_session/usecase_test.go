package request_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	scheduleRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/schedule"
	"github.com/meetsync/MS-SchedulingService/internal/integrations/meetprovider"
)

// fakeScheduleRepo in-memory репозиторий расписаний для тестов
type fakeScheduleRepo struct {
	schedules map[int64]*domain.Schedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return schedule, nil
}

// fakeSessionRepo in-memory репозиторий сессий для тестов
type fakeSessionRepo struct {
	sessions []*domain.Session
	nextID   int64
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeSessionRepo) ListConfirmedByParty(_ context.Context, partyID int64, role domain.PartyRole) ([]*domain.Session, error) {
	result := make([]*domain.Session, 0)
	for _, s := range f.sessions {
		if s.IsConfirmed() && s.PartyID(role) == partyID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) ExistsForGuest(_ context.Context, scheduleID, guestID int64, start, end time.Time) (bool, error) {
	for _, s := range f.sessions {
		if s.ScheduleID == scheduleID && s.GuestID == guestID && s.StartTime.Equal(start) && s.EndTime.Equal(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionRepo) SetMeetingURLs(_ context.Context, id int64, hostURL, guestURL string) error {
	for _, s := range f.sessions {
		if s.ID == id {
			s.HostURL = &hostURL
			s.GuestURL = &guestURL
			return nil
		}
	}
	return errors.New("not found")
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

// fakeNotifier записывает отправленные уведомления
type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ int64, event string, _ map[string]string) {
	f.events = append(f.events, event)
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

// testSchedule окно 10:00-12:00, min=30, max=60
func testSchedule(autoApprove bool) *domain.Schedule {
	return &domain.Schedule{
		ID:                 1,
		HostID:             100,
		WindowStart:        at(10, 0),
		WindowEnd:          at(12, 0),
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
		AutoApprove:        autoApprove,
	}
}

func newTestUseCase(schedule *domain.Schedule, sessions *fakeSessionRepo) (*UseCase, *fakeMeetClient, *fakeNotifier) {
	meet := &fakeMeetClient{meeting: &meetprovider.Meeting{HostURL: "https://meet/host", GuestURL: "https://meet/guest"}}
	notify := &fakeNotifier{}

	schedRepo := &fakeScheduleRepo{schedules: map[int64]*domain.Schedule{}}
	if schedule != nil {
		schedRepo.schedules[schedule.ID] = schedule
	}

	uc := NewUseCase(schedRepo, sessions, meet, notify, &fakeTxManager{}, nopLogger{})
	return uc, meet, notify
}

func TestExecute_PendingWhenManualApproval(t *testing.T) {
	uc, meet, notify := newTestUseCase(testSchedule(false), &fakeSessionRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 45), Title: "Интервью",
	})

	require.NoError(t, err)
	assert.False(t, resp.Confirmed)
	assert.Nil(t, resp.HostURL)
	// Без auto-approve встреча не создается, хост получает заявку
	assert.Equal(t, 0, meet.calls)
	assert.Equal(t, []string{domain.EventSessionRequested}, notify.events)
}

func TestExecute_ConfirmedWhenAutoApprove(t *testing.T) {
	uc, meet, notify := newTestUseCase(testSchedule(true), &fakeSessionRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 45), Title: "Интервью",
	})

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	require.NotNil(t, resp.HostURL)
	assert.Equal(t, "https://meet/host", *resp.HostURL)
	assert.Equal(t, 1, meet.calls)
	assert.Equal(t, []string{domain.EventSessionConfirmed, domain.EventSessionConfirmed}, notify.events)
}

func TestExecute_DurationOutsideBounds(t *testing.T) {
	uc, _, _ := newTestUseCase(testSchedule(false), &fakeSessionRepo{})

	// 15 минут - меньше минимальной длительности 30
	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 15), Title: "Короткая",
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// 90 минут - больше максимальной длительности 60
	_, err = uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(11, 30), Title: "Длинная",
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_IntervalOutsideWindow(t *testing.T) {
	uc, _, _ := newTestUseCase(testSchedule(false), &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(11, 30), End: at(12, 30), Title: "Поздняя",
	})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_ScheduleMissing(t *testing.T) {
	uc, _, _ := newTestUseCase(nil, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 42, GuestID: 200, Start: at(10, 0), End: at(10, 30), Title: "Встреча",
	})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_DuplicateRequest(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc, _, _ := newTestUseCase(testSchedule(false), sessions)

	req := &Request{ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 30), Title: "Встреча"}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestExecute_HostUnavailable(t *testing.T) {
	sessions := &fakeSessionRepo{
		sessions: []*domain.Session{
			{ID: 90, HostID: 100, GuestID: 300, StartTime: at(10, 0), EndTime: at(11, 0), Confirmed: true},
		},
		nextID: 90,
	}
	uc, _, _ := newTestUseCase(testSchedule(false), sessions)

	// Пересечение с подтвержденной сессией хоста 10:00-11:00
	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 30), End: at(11, 30), Title: "Встреча",
	})
	assert.ErrorIs(t, err, ErrHostUnavailable)

	// Граничащий интервал 11:00-11:30 не конфликтует
	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(11, 0), End: at(11, 30), Title: "Встреча",
	})
	require.NoError(t, err)
	assert.False(t, resp.Confirmed)
}

func TestExecute_GuestUnavailable(t *testing.T) {
	sessions := &fakeSessionRepo{
		sessions: []*domain.Session{
			// Гость 200 уже занят подтвержденной сессией у другого хоста
			{ID: 91, HostID: 999, GuestID: 200, StartTime: at(10, 0), EndTime: at(11, 0), Confirmed: true},
		},
		nextID: 91,
	}
	uc, _, _ := newTestUseCase(testSchedule(false), sessions)

	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 30), End: at(11, 0), Title: "Встреча",
	})
	assert.ErrorIs(t, err, ErrGuestUnavailable)
}

func TestExecute_PendingSessionsDoNotBlock(t *testing.T) {
	sessions := &fakeSessionRepo{
		sessions: []*domain.Session{
			{ID: 92, HostID: 100, GuestID: 300, StartTime: at(10, 0), EndTime: at(10, 30), Confirmed: false},
		},
		nextID: 92,
	}
	uc, _, _ := newTestUseCase(testSchedule(false), sessions)

	// Pending-заявки не держат эксклюзивность: пересечение допустимо
	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 15), End: at(10, 45), Title: "Встреча",
	})
	require.NoError(t, err)
	assert.False(t, resp.Confirmed)
}

func TestExecute_ProvisioningFailureIsDegradedSuccess(t *testing.T) {
	uc, meet, notify := newTestUseCase(testSchedule(true), &fakeSessionRepo{})
	meet.err = errors.New("provider is down")

	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 30), Title: "Встреча",
	})

	// Сбой провайдера не откатывает бронирование
	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.Nil(t, resp.HostURL)
	assert.Equal(t, []string{domain.EventSessionConfirmed, domain.EventSessionConfirmed}, notify.events)
}

func TestExecute_InputValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(testSchedule(false), &fakeSessionRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero schedule id", &Request{GuestID: 200, Start: at(10, 0), End: at(10, 30), Title: "t"}},
		{"zero guest id", &Request{ScheduleID: 1, Start: at(10, 0), End: at(10, 30), Title: "t"}},
		{"end before start", &Request{ScheduleID: 1, GuestID: 200, Start: at(11, 0), End: at(10, 0), Title: "t"}},
		{"empty title", &Request{ScheduleID: 1, GuestID: 200, Start: at(10, 0), End: at(10, 30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
