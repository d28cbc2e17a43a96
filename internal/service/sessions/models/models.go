package models

import (
	"errors"
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidRole возвращается при некорректной роли в фильтре
	ErrInvalidRole = errors.New("invalid party role")
)

// Request модели

// ListSessionsRequest запрос на получение сессий пользователя
type ListSessionsRequest struct {
	UserID    int64
	Role      *string // "host" | "guest", nil - обе роли
	Confirmed *bool   // nil - любой статус
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSessionsRequest) ToDomainFilter() (domain.SessionsFilter, error) {
	filter := domain.SessionsFilter{
		UserID:    r.UserID,
		Confirmed: r.Confirmed,
	}

	if r.Role != nil {
		switch *r.Role {
		case string(domain.RoleHost):
			role := domain.RoleHost
			filter.Role = &role
		case string(domain.RoleGuest):
			role := domain.RoleGuest
			filter.Role = &role
		default:
			return filter, ErrInvalidRole
		}
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID         int64
	HostID     int64
	GuestID    int64
	ScheduleID int64
	StartTime  time.Time
	EndTime    time.Time
	Title      string
	Confirmed  bool
	HostURL    *string
	GuestURL   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionListResponse список сессий
type SessionListResponse struct {
	Sessions []*SessionResponse
}

// FromDomainSession конвертирует domain модель в response
func FromDomainSession(session *domain.Session) *SessionResponse {
	return &SessionResponse{
		ID:         session.ID,
		HostID:     session.HostID,
		GuestID:    session.GuestID,
		ScheduleID: session.ScheduleID,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Title:      session.Title,
		Confirmed:  session.Confirmed,
		HostURL:    session.HostURL,
		GuestURL:   session.GuestURL,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в response
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	result := make([]*SessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = FromDomainSession(session)
	}
	return &SessionListResponse{Sessions: result}
}
