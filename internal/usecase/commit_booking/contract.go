package commit_booking

import (
	"context"
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/integrations/notify"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetLiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.Reservation, error)
	CreateAddon(ctx context.Context, addon *domain.ReservationAddon) (*domain.ReservationAddon, error)
}

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
	GetAddonByID(ctx context.Context, id int64) (*domain.Addon, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	SendBookingConfirmationWithGracefulDegradation(ctx context.Context, notification notify.BookingNotification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
