package list_slots

import (
	"context"

	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	ListSlots(ctx context.Context, scheduleID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
