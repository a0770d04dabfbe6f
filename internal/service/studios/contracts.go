package studios

import (
	"context"

	"github.com/m04kA/PSB-BookingService/internal/domain"
)

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	UpdateOperatingHours(ctx context.Context, studioID int64, hours domain.OperatingHours) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
