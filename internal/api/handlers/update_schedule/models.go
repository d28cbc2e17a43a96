package update_schedule

import (
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

// UpdateScheduleRequest HTTP request model
// Обновление полное: все поля задаются заново, слоты перегенерируются
type UpdateScheduleRequest struct {
	WindowStart        string `json:"windowStart"`
	WindowEnd          string `json:"windowEnd"`
	Timezone           string `json:"timezone,omitempty"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
	AutoApprove        bool   `json:"autoApprove"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ID                 int64  `json:"id"`
	HostID             int64  `json:"hostId"`
	WindowStart        string `json:"windowStart"`
	WindowEnd          string `json:"windowEnd"`
	Timezone           string `json:"timezone"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
	AutoApprove        bool   `json:"autoApprove"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(scheduleID, hostID int64) (*models.UpdateScheduleRequest, error) {
	windowStart, err := timezone.ToCanonical(r.WindowStart, r.Timezone)
	if err != nil {
		return nil, err
	}

	windowEnd, err := timezone.ToCanonical(r.WindowEnd, r.Timezone)
	if err != nil {
		return nil, err
	}

	return &models.UpdateScheduleRequest{
		ScheduleID:         scheduleID,
		HostID:             hostID,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		MinDurationMinutes: r.MinDurationMinutes,
		MaxDurationMinutes: r.MaxDurationMinutes,
		AutoApprove:        r.AutoApprove,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ScheduleResponse, zone string) (*ScheduleResponse, error) {
	windowStart, err := timezone.ToDisplay(resp.WindowStart, zone)
	if err != nil {
		return nil, err
	}

	windowEnd, err := timezone.ToDisplay(resp.WindowEnd, zone)
	if err != nil {
		return nil, err
	}

	if zone == "" {
		zone = timezone.DefaultZone
	}

	return &ScheduleResponse{
		ID:                 resp.ID,
		HostID:             resp.HostID,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		Timezone:           zone,
		MinDurationMinutes: resp.MinDurationMinutes,
		MaxDurationMinutes: resp.MaxDurationMinutes,
		AutoApprove:        resp.AutoApprove,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}, nil
}
