package get_user_sessions

import (
	"context"

	"github.com/meetsync/MS-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	ListUserSessions(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
