package schedules

import (
	"context"
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ListByHost(ctx context.Context, hostID int64) ([]*domain.Schedule, error)
	FindOverlapping(ctx context.Context, hostID int64, start, end time.Time, excludeID *int64) ([]*domain.Schedule, error)
	Delete(ctx context.Context, id int64, hostID int64) error
	ReplaceSlots(ctx context.Context, scheduleID int64, slots []domain.Slot) error
	ListSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
