package meetprovider

import "time"

// ProvisionRequest запрос на создание встречи у провайдера видеосвязи
type ProvisionRequest struct {
	IdempotencyKey string    `json:"idempotencyKey"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"startTime"`
}

// Meeting ссылки на созданную встречу
type Meeting struct {
	HostURL  string `json:"hostUrl"`
	GuestURL string `json:"guestUrl"`
}
