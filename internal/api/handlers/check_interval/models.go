package check_interval

import (
	"github.com/m04kA/PSB-BookingService/internal/domain"
	checkInterval "github.com/m04kA/PSB-BookingService/internal/usecase/check_interval"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID     int64      `json:"facilityId"`
	Date           string     `json:"date"`
	RequestedRange string     `json:"requestedRange"`
	Available      bool       `json:"available"`
	Conflicts      []Conflict `json:"conflicts"`
}

// Conflict описание одного конфликтующего бронирования
type Conflict struct {
	ReservationCode string `json:"reservationCode"`
	CustomerName    string `json:"customerName"`
	TimeRange       string `json:"timeRange"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkInterval.Response) *AvailabilityResponse {
	conflicts := make([]Conflict, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = Conflict{
			ReservationCode: c.ReservationCode,
			CustomerName:    c.CustomerName,
			TimeRange:       c.TimeRange,
		}
	}

	return &AvailabilityResponse{
		FacilityID:     resp.FacilityID,
		Date:           resp.Date.Format(domain.DateFormat),
		RequestedRange: resp.RequestedRange,
		Available:      resp.Available,
		Conflicts:      conflicts,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(facilityID int64, dateStr, startStr, endStr string, excludeReservationID *int64) (*checkInterval.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &checkInterval.Request{
		FacilityID:           facilityID,
		Date:                 date,
		StartTime:            types.TimeString(startStr),
		EndTime:              types.TimeString(endStr),
		ExcludeReservationID: excludeReservationID,
	}, nil
}
