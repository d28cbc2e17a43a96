package approve_session

import (
	"context"

	approveSession "github.com/meetsync/MS-SchedulingService/internal/usecase/approve_session"
)

type ApproveSessionUseCase interface {
	Execute(ctx context.Context, req *approveSession.Request) (*approveSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
