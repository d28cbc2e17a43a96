package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	scheduleRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/schedule"
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
)

// fakeScheduleRepo in-memory репозиторий расписаний для тестов
type fakeScheduleRepo struct {
	schedules map[int64]*domain.Schedule
	slots     map[int64][]domain.Slot
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: map[int64]*domain.Schedule{},
		slots:     map[int64][]domain.Slot{},
	}
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	f.nextID++
	schedule.ID = f.nextID
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = schedule.CreatedAt
	f.schedules[schedule.ID] = schedule
	return schedule, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, schedule *domain.Schedule) error {
	if _, ok := f.schedules[schedule.ID]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	schedule.UpdatedAt = time.Now()
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleRepo) ListByHost(_ context.Context, hostID int64) ([]*domain.Schedule, error) {
	result := make([]*domain.Schedule, 0)
	for _, s := range f.schedules {
		if s.HostID == hostID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) FindOverlapping(_ context.Context, hostID int64, start, end time.Time, excludeID *int64) ([]*domain.Schedule, error) {
	result := make([]*domain.Schedule, 0)
	for _, s := range f.schedules {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if s.HostID == hostID && s.OverlapsWindow(start, end) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64, hostID int64) error {
	schedule, ok := f.schedules[id]
	if ok && schedule.HostID == hostID {
		delete(f.schedules, id)
		delete(f.slots, id)
	}
	return nil
}

func (f *fakeScheduleRepo) ReplaceSlots(_ context.Context, scheduleID int64, slots []domain.Slot) error {
	f.slots[scheduleID] = slots
	return nil
}

func (f *fakeScheduleRepo) ListSlots(_ context.Context, scheduleID int64) ([]*domain.Slot, error) {
	stored := f.slots[scheduleID]
	result := make([]*domain.Slot, len(stored))
	for i := range stored {
		slot := stored[i]
		slot.ScheduleID = scheduleID
		result[i] = &slot
	}
	return result, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeScheduleRepo) {
	repo := newFakeScheduleRepo()
	return NewService(repo, &fakeTxManager{}, nopLogger{}), repo
}

func createRequest() *models.CreateScheduleRequest {
	return &models.CreateScheduleRequest{
		HostID:             100,
		WindowStart:        at(10, 0),
		WindowEnd:          at(12, 0),
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
		AutoApprove:        false,
	}
}

func TestCreate_MaterializesSlots(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.HostID)

	// Окно 10:00-12:00 при шаге 30 минут дает 4 слота
	slots, err := svc.ListSlots(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, slots.Slots, 4)
	assert.Equal(t, at(10, 0), slots.Slots[0].SlotStart)
	assert.Equal(t, at(10, 30), slots.Slots[0].SlotEnd)
	assert.Equal(t, at(11, 30), slots.Slots[3].SlotStart)
	assert.Equal(t, at(12, 0), slots.Slots[3].SlotEnd)
	assert.Len(t, repo.slots[resp.ID], 4)
}

func TestCreate_WindowValidation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*models.CreateScheduleRequest)
		wantErr error
	}{
		{
			name:    "end before start",
			mutate:  func(r *models.CreateScheduleRequest) { r.WindowStart, r.WindowEnd = r.WindowEnd, r.WindowStart },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero length window",
			mutate:  func(r *models.CreateScheduleRequest) { r.WindowEnd = r.WindowStart },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "min exceeds max",
			mutate:  func(r *models.CreateScheduleRequest) { r.MinDurationMinutes = 90 },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "non-positive min",
			mutate:  func(r *models.CreateScheduleRequest) { r.MinDurationMinutes = 0 },
			wantErr: ErrInvalidDuration,
		},
		{
			name: "window shorter than min duration",
			mutate: func(r *models.CreateScheduleRequest) {
				r.WindowEnd = r.WindowStart.Add(20 * time.Minute)
			},
			wantErr: ErrWindowTooShort,
		},
		{
			name:    "missing host",
			mutate:  func(r *models.CreateScheduleRequest) { r.HostID = 0 },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_RejectsOverlappingWindow(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// Пересечение 11:00-13:00 с существующим 10:00-12:00
	req := createRequest()
	req.WindowStart = at(11, 0)
	req.WindowEnd = at(13, 0)
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleOverlap)

	// Граничащее окно 12:00-14:00 допустимо
	req = createRequest()
	req.WindowStart = at(12, 0)
	req.WindowEnd = at(14, 0)
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreate_OverlapIsPerHost(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// То же окно у другого хоста не конфликтует
	req := createRequest()
	req.HostID = 200
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestUpdate_RegeneratesSlots(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// Сужаем окно до 10:00-11:00 с шагом 20 минут
	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		ScheduleID:         created.ID,
		HostID:             100,
		WindowStart:        at(10, 0),
		WindowEnd:          at(11, 0),
		MinDurationMinutes: 20,
		MaxDurationMinutes: 40,
		AutoApprove:        true,
	})

	require.NoError(t, err)
	assert.True(t, resp.AutoApprove)
	assert.Len(t, repo.slots[created.ID], 3)
}

func TestUpdate_OverlapExcludesSelf(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// Обновление в то же место не конфликтует само с собой
	req := &models.UpdateScheduleRequest{
		ScheduleID:         created.ID,
		HostID:             100,
		WindowStart:        at(10, 30),
		WindowEnd:          at(12, 30),
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
	}
	_, err = svc.Update(context.Background(), req)
	assert.NoError(t, err)
}

func TestUpdate_NotFoundAndForeign(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	req := &models.UpdateScheduleRequest{
		ScheduleID:         42,
		HostID:             100,
		WindowStart:        at(10, 0),
		WindowEnd:          at(12, 0),
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
	}
	_, err = svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	// Чужое расписание неотличимо от несуществующего
	req.ScheduleID = created.ID
	req.HostID = 999
	_, err = svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 100))
	assert.NotContains(t, repo.schedules, created.ID)

	// Повторное удаление - не ошибка
	assert.NoError(t, svc.Delete(context.Background(), created.ID, 100))
}

func TestGet_ForeignScheduleLooksMissing(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), created.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.Get(context.Background(), created.ID, 999)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestList_ReturnsOnlyHostSchedules(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	other := createRequest()
	other.HostID = 200
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, int64(100), resp.Schedules[0].HostID)
}

func TestListSlots_UnknownSchedule(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListSlots(context.Background(), 42)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
