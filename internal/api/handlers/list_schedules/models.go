package list_schedules

import (
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

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

// FromServiceResponse конвертирует список расписаний в HTTP response
func FromServiceResponse(resp *models.ScheduleListResponse, zone string) ([]*ScheduleResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	result := make([]*ScheduleResponse, len(resp.Schedules))
	for i, schedule := range resp.Schedules {
		windowStart, err := timezone.ToDisplay(schedule.WindowStart, zone)
		if err != nil {
			return nil, err
		}

		windowEnd, err := timezone.ToDisplay(schedule.WindowEnd, zone)
		if err != nil {
			return nil, err
		}

		result[i] = &ScheduleResponse{
			ID:                 schedule.ID,
			HostID:             schedule.HostID,
			WindowStart:        windowStart,
			WindowEnd:          windowEnd,
			Timezone:           zone,
			MinDurationMinutes: schedule.MinDurationMinutes,
			MaxDurationMinutes: schedule.MaxDurationMinutes,
			AutoApprove:        schedule.AutoApprove,
			CreatedAt:          schedule.CreatedAt.Format(time.RFC3339),
			UpdatedAt:          schedule.UpdatedAt.Format(time.RFC3339),
		}
	}

	return result, nil
}
