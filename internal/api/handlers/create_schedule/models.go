package create_schedule

import (
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

// CreateScheduleRequest HTTP request model
// Времена - локальные метки "YYYY-MM-DD HH:MM" в зоне timezone
type CreateScheduleRequest struct {
	WindowStart        string `json:"windowStart"` // "2026-09-01 10:00"
	WindowEnd          string `json:"windowEnd"`   // "2026-09-01 18:00"
	Timezone           string `json:"timezone,omitempty"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
	AutoApprove        bool   `json:"autoApprove"`
}

// ScheduleResponse HTTP response model
// Границы окна отдаются в той же зоне, в которой пришел запрос
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
// (с конвертацией локальных меток в канонические UTC-инстанты)
func (r *CreateScheduleRequest) ToServiceRequest(hostID int64) (*models.CreateScheduleRequest, error) {
	windowStart, err := timezone.ToCanonical(r.WindowStart, r.Timezone)
	if err != nil {
		return nil, err
	}

	windowEnd, err := timezone.ToCanonical(r.WindowEnd, r.Timezone)
	if err != nil {
		return nil, err
	}

	return &models.CreateScheduleRequest{
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
