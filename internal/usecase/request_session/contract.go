package request_session

import (
	"context"
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
	"github.com/meetsync/MS-SchedulingService/internal/integrations/meetprovider"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	ListConfirmedByParty(ctx context.Context, partyID int64, role domain.PartyRole) ([]*domain.Session, error)
	ExistsForGuest(ctx context.Context, scheduleID, guestID int64, start, end time.Time) (bool, error)
	SetMeetingURLs(ctx context.Context, id int64, hostURL, guestURL string) error
}

// MeetProviderClient интерфейс клиента провайдера видеовстреч
type MeetProviderClient interface {
	ProvisionMeeting(ctx context.Context, title string, startTime time.Time) (*meetprovider.Meeting, error)
}

// NotifierClient интерфейс клиента уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, recipientID int64, event string, payload map[string]string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
