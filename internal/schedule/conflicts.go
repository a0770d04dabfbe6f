package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// BookedInterval занятый интервал facility с реквизитами бронирования,
// которыми объясняется конфликт пользователю
type BookedInterval struct {
	Interval        domain.TimeInterval
	ReservationID   int64
	ReservationCode string
	CustomerName    string
}

// CollectBooked builds the set of booked intervals for one facility from the
// live reservations of a date.
//
// Из каждого живого бронирования берутся только addon-позиции, привязанные к
// целевому facility и имеющие оба времени. Одно бронирование может дать
// несколько интервалов (две разные длительности на одном facility) — каждый
// учитывается независимо, интервалы не сливаются. excludeReservationID
// исключает одно бронирование целиком: при редактировании существующего
// бронирования оно не должно конфликтовать само с собой.
//
// Час и минута извлекаются из сохранённых значений вербатим
// (types.NewTimeString) — см. инвариант wall-clock в domain.ReservationAddon.
func CollectBooked(facilityID int64, excludeReservationID *int64, reservations []*domain.Reservation) []BookedInterval {
	booked := make([]BookedInterval, 0)

	for _, r := range reservations {
		if !r.IsLive() {
			continue
		}
		if excludeReservationID != nil && r.ID == *excludeReservationID {
			continue
		}

		for _, ra := range r.Addons {
			if ra.FacilityID == nil || *ra.FacilityID != facilityID {
				continue
			}
			if ra.StartTime == nil || ra.EndTime == nil {
				continue
			}

			interval, err := intervalFromStored(*ra.StartTime, *ra.EndTime)
			if err != nil {
				// Некорректная запись (end <= start) не может конфликтовать
				continue
			}

			booked = append(booked, BookedInterval{
				Interval:        interval,
				ReservationID:   r.ID,
				ReservationCode: r.Code,
				CustomerName:    r.CustomerName,
			})
		}
	}

	sort.Slice(booked, func(i, j int) bool {
		return booked[i].Interval.Start < booked[j].Interval.Start
	})

	return booked
}

// FindOverlapping returns every booked interval truly overlapping the
// requested one, по строгому полуоткрытому правилу TimeInterval.Overlaps.
// Список полный — вызывающий обязан увидеть ВСЕ конфликты, не только первый.
func FindOverlapping(requested domain.TimeInterval, booked []BookedInterval) []BookedInterval {
	conflicts := make([]BookedInterval, 0)
	for _, b := range booked {
		if requested.Overlaps(b.Interval) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// intervalFromStored конвертирует пару сохранённых wall-clock значений в интервал
func intervalFromStored(start, end time.Time) (domain.TimeInterval, error) {
	return domain.NewTimeIntervalFromStrings(
		types.NewTimeString(start),
		types.NewTimeString(end),
	)
}
