package get_available_slots

import (
	"time"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StudioID             int64      // ID студии
	FacilityID           int64      // ID facility (помещение, гримёрка, оборудование)
	Date                 time.Time  // Календарная дата (без времени)
	DurationMinutes      int        // Запрошенная длительность услуги
	ExcludeReservationID *int64     // Исключить бронирование (редактирование существующего)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	StudioID        int64     // ID студии
	FacilityID      int64     // ID facility
	DurationMinutes int       // Длительность услуги
	Slots           []Slot    // Сетка слотов в хронологическом порядке
}

// Slot кандидатный слот с признаком доступности
type Slot struct {
	StartTime     types.TimeString // Время начала слота, "HH:MM"
	EndTime       types.TimeString // Время конца слота, "HH:MM"
	Available     bool             // Свободен ли слот
	ConflictsWith *string          // Код первого конфликтующего бронирования (для занятых)
}
