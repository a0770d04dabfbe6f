package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetLiveByFacilityAndDate получает живые бронирования facility на дату.
	// Вызывается РОВНО один раз на запрос — результат переиспользуется
	// для всех кандидатных слотов.
	GetLiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.Reservation, error)
}

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
