package request_session

import "time"

// Request модель запроса на создание сессии
// Времена - канонические UTC-инстанты
type Request struct {
	ScheduleID int64     // ID расписания
	GuestID    int64     // ID гостя (вызывающего пользователя)
	Start      time.Time // Начало сессии
	End        time.Time // Конец сессии
	Title      string    // Название встречи
}

// Response модель ответа с созданной сессией
type Response struct {
	ID         int64
	HostID     int64
	GuestID    int64
	ScheduleID int64
	Start      time.Time
	End        time.Time
	Title      string
	Confirmed  bool

	// Ссылки на встречу (заполнены только для auto-approve расписаний
	// и только если провайдер успешно создал встречу)
	HostURL  *string
	GuestURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
