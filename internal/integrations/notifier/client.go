package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client клиент сервиса уведомлений
// Уведомления отправляются в режиме fire-and-forget: ошибки доставки
// логируются, но никогда не пробрасываются вызывающему коду
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет уведомление получателю
// Никогда не возвращает ошибку наружу: неудачная доставка не должна
// влиять на результат операции бронирования
func (c *Client) Notify(ctx context.Context, recipientID int64, event string, payload map[string]string) {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(Notification{
		RecipientID: recipientID,
		Event:       event,
		Payload:     payload,
	})
	if err != nil {
		c.log.Warn("Notifier: failed to marshal notification for recipient=%d: %v", recipientID, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.log.Warn("Notifier: failed to create request for recipient=%d: %v", recipientID, err)
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Notifier: failed to deliver %s to recipient=%d: %v", event, recipientID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Warn("Notifier: delivery of %s to recipient=%d returned status %d", event, recipientID, resp.StatusCode)
		return
	}

	c.log.Info("Notifier: delivered %s to recipient=%d", event, recipientID)
}
