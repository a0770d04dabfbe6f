package update_operating_hours

import (
	"github.com/m04kA/PSB-BookingService/internal/service/studios/models"
)

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen bool   `json:"isOpen"`
}

// UpdateOperatingHoursRequest HTTP request model. Расписание заменяется
// целиком: дни без записи возвращаются к дефолтной политике.
type UpdateOperatingHoursRequest struct {
	Hours map[string]DaySchedule `json:"hours"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateOperatingHoursRequest) ToServiceRequest(userID int64) *models.UpdateOperatingHoursRequest {
	hours := make(map[string]models.DayScheduleDTO, len(r.Hours))
	for key, day := range r.Hours {
		hours[key] = models.DayScheduleDTO{
			Open:   day.Open,
			Close:  day.Close,
			IsOpen: day.IsOpen,
		}
	}

	return &models.UpdateOperatingHoursRequest{
		UserID: userID,
		Hours:  hours,
	}
}
