package models

import (
	"errors"
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetStudioReservationsRequest запрос на журнал бронирований студии
type GetStudioReservationsRequest struct {
	UserID          int64      `json:"userId"`
	StudioID        int64      `json:"studioId"`
	FacilityID      *int64     `json:"facilityId,omitempty"`      // Фильтр по facility (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStudioReservationsRequest) ToDomainFilter() (domain.StudioReservationsFilter, error) {
	filter := domain.StudioReservationsFilter{
		StudioID:        r.StudioID,
		FacilityID:      r.FacilityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationAddonResponse позиция бронирования
type ReservationAddonResponse struct {
	ID          int64    `json:"id"`
	AddonID     int64    `json:"addonId"`
	FacilityID  *int64   `json:"facilityId,omitempty"`
	PricingType string   `json:"pricingType"`
	StartTime   *string  `json:"startTime,omitempty"` // "10:00"
	EndTime     *string  `json:"endTime,omitempty"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64                      `json:"id"`
	Code            string                     `json:"code"`
	StudioID        int64                      `json:"studioId"`
	UserID          int64                      `json:"userId"`
	CustomerName    string                     `json:"customerName"`
	ReservationDate string                     `json:"reservationDate"` // "2026-08-28"
	Status          string                     `json:"status"`
	Addons          []ReservationAddonResponse `json:"addons"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		Code:               r.Code,
		StudioID:           r.StudioID,
		UserID:             r.UserID,
		CustomerName:       r.CustomerName,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		Status:             string(r.Status),
		Addons:             make([]ReservationAddonResponse, len(r.Addons)),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	for i, a := range r.Addons {
		resp.Addons[i] = ReservationAddonResponse{
			ID:          a.ID,
			AddonID:     a.AddonID,
			FacilityID:  a.FacilityID,
			PricingType: string(a.PricingType),
			StartTime:   wallClockString(a.StartTime),
			EndTime:     wallClockString(a.EndTime),
			Quantity:    a.Quantity,
			Price:       a.Price,
		}
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, r := range reservations {
		if rr := FromDomainReservation(r); rr != nil {
			resp.Reservations[i] = *rr
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByStudio,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// wallClockString форматирует хранимое wall-clock время как "HH:MM",
// читая час и минуту вербатим
func wallClockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := types.NewTimeString(*t).String()
	return &s
}
