package domain

// Default operating-hours policy.
// Применяется, когда у студии нет записи для дня недели. Значения
// переопределяются секцией [booking] в config.toml — дефолт должен быть
// явной конфигурацией, а не константой, зашитой в логику.
const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "21:00"
)

// Scheduling grid
const (
	DefaultSlotGranularityMinutes = 30
	MinBookingDurationMinutes     = 30
	MaxBookingDurationMinutes     = 720 // 12 hours
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses статусы, при которых бронирование занимает facility.
// Используется при выборке бронирований для проверки конфликтов.
var LiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses статусы, при которых бронирование не блокирует facility
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelledByUser,
	StatusCancelledByStudio,
}
