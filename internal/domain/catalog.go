package domain

import "time"

// AddonPricingType тип ценообразования дополнительной услуги
type AddonPricingType string

const (
	// PricingPerItem фиксированная цена за единицу, без временного измерения
	PricingPerItem AddonPricingType = "per_item"

	// PricingPerDuration цена за время, услуга занимает помещение/оборудование
	PricingPerDuration AddonPricingType = "per_duration"
)

// Facility represents a bookable physical resource of a studio (room, makeup
// station, equipment block). Facility — единица конкуренции: два бронирования
// одного facility не могут держать пересекающиеся интервалы.
type Facility struct {
	ID          int64
	StudioID    int64
	Name        string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Addon represents a purchasable service, optionally bound to a facility.
type Addon struct {
	ID          int64
	FacilityID  *int64 // nil = услуга не привязана к facility
	Name        string
	PricingType AddonPricingType
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSchedulable reports whether the addon participates in conflict detection.
// Только facility-bound услуги с повремённой ценой занимают расписание;
// per-item услуги без facility на слоты не влияют вовсе.
func (a *Addon) IsSchedulable() bool {
	return a.FacilityID != nil && a.PricingType == PricingPerDuration
}
