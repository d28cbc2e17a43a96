package request_session

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	// либо запрошенный интервал выходит за пределы его окна
	ErrScheduleNotFound = errors.New("request_session: schedule not found")

	// ErrInvalidDuration возвращается, когда длительность сессии
	// выходит за границы [min_duration, max_duration] расписания
	ErrInvalidDuration = errors.New("request_session: duration outside schedule bounds")

	// ErrDuplicateRequest возвращается, когда у гостя уже есть заявка
	// на точно такой же интервал этого расписания
	ErrDuplicateRequest = errors.New("request_session: duplicate request")

	// ErrHostUnavailable возвращается, когда интервал пересекается
	// с подтвержденной сессией хоста
	ErrHostUnavailable = errors.New("request_session: host is unavailable")

	// ErrGuestUnavailable возвращается, когда интервал пересекается
	// с подтвержденной сессией гостя
	ErrGuestUnavailable = errors.New("request_session: guest is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_session: internal error")
)
