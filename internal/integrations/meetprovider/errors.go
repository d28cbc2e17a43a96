package meetprovider

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("meetprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("meetprovider client: invalid response")

	// ErrProvisionFailed возвращается, когда провайдер не смог создать встречу
	// Ошибка провайдера не откатывает уже подтвержденную сессию:
	// сессия остается без ссылок до фонового дозаполнения
	ErrProvisionFailed = errors.New("meetprovider client: failed to provision meeting")
)
