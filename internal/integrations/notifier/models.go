package notifier

// Notification событие для доставки пользователю
// Payload содержит детали события (интервал, название, ссылки)
type Notification struct {
	RecipientID int64             `json:"recipientId"`
	Event       string            `json:"event"`
	Payload     map[string]string `json:"payload,omitempty"`
}
