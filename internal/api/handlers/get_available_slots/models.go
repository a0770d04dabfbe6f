package get_available_slots

import (
	"github.com/m04kA/PSB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PSB-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	StudioID        int64           `json:"studioId"`
	FacilityID      int64           `json:"facilityId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель кандидатного слота
type AvailableSlot struct {
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Available     bool    `json:"available"`
	ConflictsWith *string `json:"conflictsWith,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:     slot.StartTime.String(),
			EndTime:       slot.EndTime.String(),
			Available:     slot.Available,
			ConflictsWith: slot.ConflictsWith,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StudioID:        resp.StudioID,
		FacilityID:      resp.FacilityID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(studioID, facilityID int64, dateStr string, durationMinutes int, excludeReservationID *int64) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		StudioID:             studioID,
		FacilityID:           facilityID,
		Date:                 date,
		DurationMinutes:      durationMinutes,
		ExcludeReservationID: excludeReservationID,
	}, nil
}
