package models

import (
	"github.com/m04kA/PSB-BookingService/internal/domain"
)

// DayScheduleDTO расписание одного дня недели
type DayScheduleDTO struct {
	Open   string `json:"open"`    // "09:00"
	Close  string `json:"close"`   // "21:00"
	IsOpen bool   `json:"isOpen"`
}

// UpdateOperatingHoursRequest запрос на замену недельного расписания студии.
// Расписание заменяется целиком: дни, отсутствующие в запросе, возвращаются
// к дефолтной политике.
type UpdateOperatingHoursRequest struct {
	UserID int64                     `json:"userId"`
	Hours  map[string]DayScheduleDTO `json:"hours"`
}

// ToDomainHours конвертирует request в domain модель
func (r *UpdateOperatingHoursRequest) ToDomainHours() domain.OperatingHours {
	hours := make(domain.OperatingHours, len(r.Hours))
	for key, day := range r.Hours {
		hours[key] = domain.DaySchedule{
			Open:   day.Open,
			Close:  day.Close,
			IsOpen: day.IsOpen,
		}
	}
	return hours
}

// OperatingHoursResponse ответ с расписанием студии
type OperatingHoursResponse struct {
	StudioID int64                     `json:"studioId"`
	Hours    map[string]DayScheduleDTO `json:"hours"`
}

// FromDomainHours конвертирует domain модель в DTO
func FromDomainHours(studioID int64, hours domain.OperatingHours) *OperatingHoursResponse {
	resp := &OperatingHoursResponse{
		StudioID: studioID,
		Hours:    make(map[string]DayScheduleDTO, len(hours)),
	}
	for key, day := range hours {
		resp.Hours[key] = DayScheduleDTO{
			Open:   day.Open,
			Close:  day.Close,
			IsOpen: day.IsOpen,
		}
	}
	return resp
}
