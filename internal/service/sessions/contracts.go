package sessions

import (
	"context"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
	ListByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error)
}

// NotifierClient интерфейс клиента уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, recipientID int64, event string, payload map[string]string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
