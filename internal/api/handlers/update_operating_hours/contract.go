package update_operating_hours

import (
	"context"

	"github.com/m04kA/PSB-BookingService/internal/service/studios/models"
)

type StudioService interface {
	UpdateOperatingHours(ctx context.Context, studioID int64, req *models.UpdateOperatingHoursRequest) (*models.OperatingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
