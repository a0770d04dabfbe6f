package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayKey(t *testing.T) {
	// 2026-08-28 — пятница
	assert.Equal(t, "friday", WeekdayKey(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	// 2026-08-30 — воскресенье
	assert.Equal(t, "sunday", WeekdayKey(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "monday", WeekdayKey(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDaySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DaySchedule
		wantErr bool
	}{
		{name: "valid open day", day: DaySchedule{Open: "09:00", Close: "21:00", IsOpen: true}},
		{name: "closed day skips time checks", day: DaySchedule{IsOpen: false}},
		{name: "close before open", day: DaySchedule{Open: "21:00", Close: "09:00", IsOpen: true}, wantErr: true},
		{name: "close equals open", day: DaySchedule{Open: "09:00", Close: "09:00", IsOpen: true}, wantErr: true},
		{name: "bad open format", day: DaySchedule{Open: "9am", Close: "21:00", IsOpen: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOperatingHours_Validate(t *testing.T) {
	valid := OperatingHours{
		"monday": {Open: "09:00", Close: "21:00", IsOpen: true},
		"sunday": {IsOpen: false},
	}
	assert.NoError(t, valid.Validate())

	badKey := OperatingHours{
		"funday": {Open: "09:00", Close: "21:00", IsOpen: true},
	}
	assert.Error(t, badKey.Validate())
}

func TestReservation_StatusPredicates(t *testing.T) {
	for _, status := range LiveStatuses {
		r := Reservation{Status: status}
		assert.True(t, r.IsLive(), "status %s must be live", status)
	}
	for _, status := range InactiveStatuses {
		r := Reservation{Status: status}
		assert.False(t, r.IsLive(), "status %s must not be live", status)
	}

	assert.True(t, (&Reservation{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCompleted}).CanBeCancelled())
}

func TestAddon_IsSchedulable(t *testing.T) {
	facilityID := int64(7)

	schedulable := Addon{FacilityID: &facilityID, PricingType: PricingPerDuration}
	assert.True(t, schedulable.IsSchedulable())

	perItem := Addon{FacilityID: &facilityID, PricingType: PricingPerItem}
	assert.False(t, perItem.IsSchedulable())

	unbound := Addon{PricingType: PricingPerDuration}
	assert.False(t, unbound.IsSchedulable())
}

func TestReservationCode(t *testing.T) {
	assert.Equal(t, "PSB-42", ReservationCode(42))
}
