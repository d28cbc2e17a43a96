package domain

import "time"

// PartyRole identifies which side of a session a user is on
type PartyRole string

const (
	RoleHost  PartyRole = "host"
	RoleGuest PartyRole = "guest"
)

// Session represents a booking request/commitment between a host
// and a guest, anchored to one schedule.
//
// A confirmed session holds a hard exclusivity lock on both the host's
// and the guest's calendars. A pending session holds no lock and may
// freely overlap other sessions until approved.
type Session struct {
	ID         int64
	HostID     int64
	GuestID    int64
	ScheduleID int64
	StartTime  time.Time // canonical UTC instant
	EndTime    time.Time // canonical UTC instant
	Title      string
	Confirmed  bool

	// Meeting URLs are filled by the meeting-link provider after confirmation
	HostURL  *string
	GuestURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the session holds calendar exclusivity
func (s *Session) IsConfirmed() bool {
	return s.Confirmed
}

// IsPending returns true if the session is awaiting host approval
func (s *Session) IsPending() bool {
	return !s.Confirmed
}

// Duration returns the session length
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// InvolvesUser returns true if userID is the host or the guest of the session
func (s *Session) InvolvesUser(userID int64) bool {
	return s.HostID == userID || s.GuestID == userID
}

// PartyID returns the session participant for the given role
func (s *Session) PartyID(role PartyRole) int64 {
	if role == RoleHost {
		return s.HostID
	}
	return s.GuestID
}

// SessionsFilter фильтр для выборки сессий пользователя
type SessionsFilter struct {
	UserID    int64      // Обязательный параметр
	Role      *PartyRole // Фильтр по роли (опционально, если nil - хост и гость)
	Confirmed *bool      // Фильтр по статусу (опционально)
}
