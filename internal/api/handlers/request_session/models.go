package request_session

import (
	"time"

	requestSession "github.com/meetsync/MS-SchedulingService/internal/usecase/request_session"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

// RequestSessionRequest HTTP request model
// Времена - локальные метки "YYYY-MM-DD HH:MM" в зоне timezone
type RequestSessionRequest struct {
	ScheduleID int64  `json:"scheduleId"`
	Start      string `json:"start"` // "2026-09-01 10:00"
	End        string `json:"end"`   // "2026-09-01 10:30"
	Timezone   string `json:"timezone,omitempty"`
	Title      string `json:"title"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID         int64   `json:"id"`
	HostID     int64   `json:"hostId"`
	GuestID    int64   `json:"guestId"`
	ScheduleID int64   `json:"scheduleId"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Timezone   string  `json:"timezone"`
	Title      string  `json:"title"`
	Confirmed  bool    `json:"confirmed"`
	HostURL    *string `json:"hostUrl,omitempty"`
	GuestURL   *string `json:"guestUrl,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestSessionRequest) ToUseCaseRequest(guestID int64) (*requestSession.Request, error) {
	start, err := timezone.ToCanonical(r.Start, r.Timezone)
	if err != nil {
		return nil, err
	}

	end, err := timezone.ToCanonical(r.End, r.Timezone)
	if err != nil {
		return nil, err
	}

	return &requestSession.Request{
		ScheduleID: r.ScheduleID,
		GuestID:    guestID,
		Start:      start,
		End:        end,
		Title:      r.Title,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestSession.Response, zone string) (*SessionResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	start, err := timezone.ToDisplay(resp.Start, zone)
	if err != nil {
		return nil, err
	}

	end, err := timezone.ToDisplay(resp.End, zone)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		ID:         resp.ID,
		HostID:     resp.HostID,
		GuestID:    resp.GuestID,
		ScheduleID: resp.ScheduleID,
		Start:      start,
		End:        end,
		Timezone:   zone,
		Title:      resp.Title,
		Confirmed:  resp.Confirmed,
		HostURL:    resp.HostURL,
		GuestURL:   resp.GuestURL,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}, nil
}
