package check_interval

import (
	"time"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// Request модель запроса проверки одного интервала
type Request struct {
	FacilityID           int64            // ID facility
	Date                 time.Time        // Календарная дата (без времени)
	StartTime            types.TimeString // Начало интервала, "HH:MM"
	EndTime              types.TimeString // Конец интервала, "HH:MM"
	ExcludeReservationID *int64           // Исключить бронирование (редактирование существующего)
}

// Response результат проверки
type Response struct {
	FacilityID     int64      // ID facility
	Date           time.Time  // Дата проверки
	RequestedRange string     // Запрошенный интервал, "HH:MM-HH:MM"
	Available      bool       // Свободен ли интервал
	Conflicts      []Conflict // ВСЕ конфликтующие бронирования (пусто, если свободен)
}

// Conflict описание одного конфликтующего бронирования — достаточно деталей,
// чтобы объяснить отказ конечному пользователю
type Conflict struct {
	ReservationCode string // Клиентский референс, "PSB-42"
	CustomerName    string // Имя клиента, удерживающего интервал
	TimeRange       string // Занятый интервал, "HH:MM-HH:MM"
}
