package commit_booking

import (
	commitBooking "github.com/m04kA/PSB-BookingService/internal/usecase/commit_booking"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// CommitBookingRequest HTTP request model
type CommitBookingRequest struct {
	FacilityID int64  `json:"facilityId"`
	AddonID    int64  `json:"addonId"`
	Date       string `json:"date"`      // "2026-08-28"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "11:30"
	Quantity   int    `json:"quantity"`
}

// CommitBookingResponse HTTP response model
type CommitBookingResponse struct {
	State string               `json:"state"`
	Addon *CommittedAddonModel `json:"addon,omitempty"`
}

// CommittedAddonModel данные созданной позиции брони
type CommittedAddonModel struct {
	ID            int64   `json:"id"`
	ReservationID int64   `json:"reservationId"`
	FacilityID    int64   `json:"facilityId"`
	AddonID       int64   `json:"addonId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

// ConflictResponse тело 409 ответа со списком пересечений
type ConflictResponse struct {
	State     string          `json:"state"`
	Error     string          `json:"error"`
	Conflicts []ConflictModel `json:"conflicts"`
}

// ConflictModel описание одного пересечения
type ConflictModel struct {
	ReservationCode string `json:"reservationCode"`
	CustomerName    string `json:"customerName"`
	TimeRange       string `json:"timeRange"`
}

// ToUseCaseRequest создает запрос use case (с парсингом даты)
func (r *CommitBookingRequest) ToUseCaseRequest(reservationID, userID int64) (*commitBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	quantity := r.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return &commitBooking.Request{
		ReservationID: reservationID,
		UserID:        userID,
		FacilityID:    r.FacilityID,
		AddonID:       r.AddonID,
		Date:          date,
		StartTime:     types.TimeString(r.StartTime),
		EndTime:       types.TimeString(r.EndTime),
		Quantity:      quantity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *CommitBookingResponse {
	out := &CommitBookingResponse{
		State: string(resp.State),
	}
	if resp.Addon != nil {
		out.Addon = &CommittedAddonModel{
			ID:            resp.Addon.ID,
			ReservationID: resp.Addon.ReservationID,
			FacilityID:    resp.Addon.FacilityID,
			AddonID:       resp.Addon.AddonID,
			StartTime:     resp.Addon.StartTime.String(),
			EndTime:       resp.Addon.EndTime.String(),
			Quantity:      resp.Addon.Quantity,
			Price:         resp.Addon.Price,
		}
	}
	return out
}

// FromConflictError конвертирует отказ по конфликту в тело 409 ответа
func FromConflictError(msg string, conflictErr *commitBooking.SlotConflictError) *ConflictResponse {
	conflicts := make([]ConflictModel, len(conflictErr.Conflicts))
	for i, c := range conflictErr.Conflicts {
		conflicts[i] = ConflictModel{
			ReservationCode: c.ReservationCode,
			CustomerName:    c.CustomerName,
			TimeRange:       c.TimeRange,
		}
	}

	return &ConflictResponse{
		State:     string(commitBooking.StateRejected),
		Error:     msg,
		Conflicts: conflicts,
	}
}
