package request_session

import (
	"context"

	requestSession "github.com/meetsync/MS-SchedulingService/internal/usecase/request_session"
)

type RequestSessionUseCase interface {
	Execute(ctx context.Context, req *requestSession.Request) (*requestSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
