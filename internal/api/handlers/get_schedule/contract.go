package get_schedule

import (
	"context"

	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	Get(ctx context.Context, scheduleID, hostID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
