package approve_session

import "time"

// Request модель запроса на подтверждение сессии
type Request struct {
	SessionID int64 // ID сессии
	HostID    int64 // ID хоста (вызывающего пользователя)
}

// Response модель ответа с подтвержденной сессией
type Response struct {
	ID         int64
	HostID     int64
	GuestID    int64
	ScheduleID int64
	Start      time.Time
	End        time.Time
	Title      string
	Confirmed  bool
	HostURL    *string
	GuestURL   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// CancelledSessionIDs pending-заявки, удаленные каскадом
	// из-за пересечения с подтвержденным интервалом
	CancelledSessionIDs []int64
}
