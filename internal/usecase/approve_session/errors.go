package approve_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	// или не принадлежит указанному хосту
	ErrSessionNotFound = errors.New("approve_session: session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_session: internal error")
)
