package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedules: schedule not found")

	// ErrInvalidDuration возвращается при некорректных границах длительности
	// (min > max либо одна из границ не положительна)
	ErrInvalidDuration = errors.New("schedules: invalid duration bounds")

	// ErrWindowTooShort возвращается, когда окно короче минимальной длительности
	ErrWindowTooShort = errors.New("schedules: window is shorter than min duration")

	// ErrScheduleOverlap возвращается, когда окно пересекается с другим
	// расписанием того же хоста
	ErrScheduleOverlap = errors.New("schedules: window overlaps an existing schedule")

	// ErrInvalidWindow возвращается при некорректном окне (конец не позже начала)
	ErrInvalidWindow = errors.New("schedules: invalid window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedules: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedules: internal error")
)
