package meetprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с провайдером видеовстреч
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера встреч
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ProvisionMeeting создает встречу и возвращает ссылки для хоста и гостя
// Каждый запрос получает уникальный idempotency key, чтобы повтор после
// сетевой ошибки не создал дубликат встречи у провайдера
func (c *Client) ProvisionMeeting(ctx context.Context, title string, startTime time.Time) (*Meeting, error) {
	url := fmt.Sprintf("%s/internal/meetings", c.baseURL)

	payload := ProvisionRequest{
		IdempotencyKey: uuid.NewString(),
		Title:          title,
		StartTime:      startTime,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrProvisionFailed, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrProvisionFailed, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var meeting Meeting
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if meeting.HostURL == "" || meeting.GuestURL == "" {
		return nil, fmt.Errorf("%w: provider returned empty meeting urls", ErrInvalidResponse)
	}

	return &meeting, nil
}
