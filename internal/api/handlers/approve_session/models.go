package approve_session

import (
	"time"

	approveSession "github.com/meetsync/MS-SchedulingService/internal/usecase/approve_session"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

// SessionResponse HTTP response model подтвержденной сессии
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

	// Pending-заявки, отмененные каскадом при подтверждении
	CancelledSessionIDs []int64 `json:"cancelledSessionIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveSession.Response, zone string) (*SessionResponse, error) {
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
		ID:                  resp.ID,
		HostID:              resp.HostID,
		GuestID:             resp.GuestID,
		ScheduleID:          resp.ScheduleID,
		Start:               start,
		End:                 end,
		Timezone:            zone,
		Title:               resp.Title,
		Confirmed:           resp.Confirmed,
		HostURL:             resp.HostURL,
		GuestURL:            resp.GuestURL,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
		CancelledSessionIDs: resp.CancelledSessionIDs,
	}, nil
}
