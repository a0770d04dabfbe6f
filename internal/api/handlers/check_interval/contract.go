package check_interval

import (
	"context"

	checkInterval "github.com/m04kA/PSB-BookingService/internal/usecase/check_interval"
)

type CheckIntervalUseCase interface {
	Execute(ctx context.Context, req *checkInterval.Request) (*checkInterval.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
