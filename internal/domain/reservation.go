package domain

import (
	"fmt"
	"time"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending           ReservationStatus = "pending"
	StatusConfirmed         ReservationStatus = "confirmed"
	StatusInProgress        ReservationStatus = "in_progress"
	StatusCompleted         ReservationStatus = "completed"
	StatusCancelledByUser   ReservationStatus = "cancelled_by_user"
	StatusCancelledByStudio ReservationStatus = "cancelled_by_studio"
)

// Reservation represents a studio reservation keyed by calendar date.
type Reservation struct {
	ID           int64
	Code         string // клиентский референс, "PSB-<id>"
	StudioID     int64
	UserID       int64
	CustomerName string // денормализовано для отчётов о конфликтах
	// ReservationDate календарная дата без компонента времени
	ReservationDate time.Time
	Status          ReservationStatus
	Addons          []ReservationAddon

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationAddon связывает бронирование с услугой и, для facility-bound
// услуг, несёт занимаемый интервал времени.
//
// StartTime/EndTime хранятся как wall-clock значения локального времени
// студии без таймзонной семантики. Час и минута читаются из них ВЕРБАТИМ
// (t.Hour()/t.Minute()), никогда через .UTC()/.In() — конвертация локаций
// молча сдвигает время и даёт неверные пересечения.
type ReservationAddon struct {
	ID            int64
	ReservationID int64
	AddonID       int64
	FacilityID    *int64 // денормализовано из addon на момент создания
	PricingType   AddonPricingType
	StartTime     *time.Time // nil для per-item услуг
	EndTime       *time.Time
	Quantity      int
	Price         float64
	CreatedAt     time.Time
}

// IsLive reports whether the reservation still blocks its facilities.
// Завершённые и отменённые бронирования никогда не мешают новым.
func (r *Reservation) IsLive() bool {
	return r.Status == StatusPending ||
		r.Status == StatusConfirmed ||
		r.Status == StatusInProgress
}

// CanBeCancelled returns true if the reservation can still be cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled.
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByUser || r.Status == StatusCancelledByStudio
}

// ReservationCode формирует клиентский референс по ID бронирования
func ReservationCode(id int64) string {
	return fmt.Sprintf("PSB-%d", id)
}

// StudioReservationsFilter фильтр для получения бронирований студии
type StudioReservationsFilter struct {
	StudioID        int64              // Обязательный параметр
	FacilityID      *int64             // Фильтр по facility (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые
}
