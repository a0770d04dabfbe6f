package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/ptr"
)

func testPolicy() Policy {
	return Policy{
		DefaultOpen:        "09:00",
		DefaultClose:       "21:00",
		GranularityMinutes: 30,
	}
}

func TestResolveDay(t *testing.T) {
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hours    domain.OperatingHours
		date     time.Time
		wantOpen bool
		want     string
	}{
		{
			name:     "explicit schedule",
			hours:    domain.OperatingHours{"friday": {Open: "10:00", Close: "18:00", IsOpen: true}},
			date:     friday,
			wantOpen: true,
			want:     "10:00-18:00",
		},
		{
			name:     "missing key falls back to default policy",
			hours:    domain.OperatingHours{},
			date:     friday,
			wantOpen: true,
			want:     "09:00-21:00",
		},
		{
			name:     "closed day",
			hours:    domain.OperatingHours{"sunday": {IsOpen: false}},
			date:     sunday,
			wantOpen: false,
		},
		{
			name:     "unreadable times treated as closed",
			hours:    domain.OperatingHours{"friday": {Open: "9am", Close: "21:00", IsOpen: true}},
			date:     friday,
			wantOpen: false,
		},
		{
			name:     "close before open treated as closed",
			hours:    domain.OperatingHours{"friday": {Open: "21:00", Close: "09:00", IsOpen: true}},
			date:     friday,
			wantOpen: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, open := ResolveDay(tt.hours, tt.date, testPolicy())
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.want, window.String())
			}
		})
	}
}

func TestGenerateSlots(t *testing.T) {
	window, err := domain.NewTimeIntervalFromStrings("09:00", "12:00")
	require.NoError(t, err)

	t.Run("grid with 60 minute duration", func(t *testing.T) {
		slots := GenerateSlots(window, 60, 30)
		// 09:00, 09:30, ..., 11:00 — последний кандидат заканчивается ровно в 12:00
		require.Len(t, slots, 5)
		assert.Equal(t, "09:00-10:00", slots[0].String())
		assert.Equal(t, "11:00-12:00", slots[4].String())
	})

	t.Run("duration longer than window yields no slots", func(t *testing.T) {
		slots := GenerateSlots(window, 240, 30)
		assert.Empty(t, slots)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, GenerateSlots(window, 90, 30), GenerateSlots(window, 90, 30))
	})

	t.Run("invalid parameters yield empty grid", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(window, 0, 30))
		assert.Empty(t, GenerateSlots(window, 60, 0))
	})
}

func storedTime(hour, minute int) *time.Time {
	v := time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
	return &v
}

func liveReservation(id int64, facilityID int64, addons ...domain.ReservationAddon) *domain.Reservation {
	for i := range addons {
		addons[i].FacilityID = &facilityID
	}
	return &domain.Reservation{
		ID:           id,
		Code:         domain.ReservationCode(id),
		CustomerName: "Анна",
		Status:       domain.StatusConfirmed,
		Addons:       addons,
	}
}

func TestCollectBooked(t *testing.T) {
	const facilityID = int64(7)

	t.Run("collects facility-bound intervals sorted by start", func(t *testing.T) {
		reservations := []*domain.Reservation{
			liveReservation(2, facilityID, domain.ReservationAddon{StartTime: storedTime(14, 0), EndTime: storedTime(15, 0)}),
			liveReservation(1, facilityID, domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 30)}),
		}

		booked := CollectBooked(facilityID, nil, reservations)
		require.Len(t, booked, 2)
		assert.Equal(t, "10:00-11:30", booked[0].Interval.String())
		assert.Equal(t, "PSB-1", booked[0].ReservationCode)
		assert.Equal(t, "14:00-15:00", booked[1].Interval.String())
	})

	t.Run("ignores dead reservations and foreign facilities", func(t *testing.T) {
		dead := liveReservation(3, facilityID, domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 0)})
		dead.Status = domain.StatusCancelledByUser

		other := liveReservation(4, facilityID+1, domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 0)})

		booked := CollectBooked(facilityID, nil, []*domain.Reservation{dead, other})
		assert.Empty(t, booked)
	})

	t.Run("excludes one reservation entirely", func(t *testing.T) {
		reservations := []*domain.Reservation{
			liveReservation(5, facilityID, domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 0)}),
			liveReservation(6, facilityID, domain.ReservationAddon{StartTime: storedTime(12, 0), EndTime: storedTime(13, 0)}),
		}

		booked := CollectBooked(facilityID, ptr.Ptr(int64(5)), reservations)
		require.Len(t, booked, 1)
		assert.Equal(t, int64(6), booked[0].ReservationID)
	})

	t.Run("skips addons without times", func(t *testing.T) {
		reservations := []*domain.Reservation{
			liveReservation(7, facilityID, domain.ReservationAddon{}),
		}
		assert.Empty(t, CollectBooked(facilityID, nil, reservations))
	})

	t.Run("one reservation may hold several intervals", func(t *testing.T) {
		reservations := []*domain.Reservation{
			liveReservation(8, facilityID,
				domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 0)},
				domain.ReservationAddon{StartTime: storedTime(15, 0), EndTime: storedTime(16, 0)},
			),
		}
		assert.Len(t, CollectBooked(facilityID, nil, reservations), 2)
	})
}

func TestFindOverlapping(t *testing.T) {
	const facilityID = int64(7)

	reservations := []*domain.Reservation{
		liveReservation(1, facilityID, domain.ReservationAddon{StartTime: storedTime(10, 0), EndTime: storedTime(11, 0)}),
		liveReservation(2, facilityID, domain.ReservationAddon{StartTime: storedTime(10, 30), EndTime: storedTime(12, 0)}),
		liveReservation(3, facilityID, domain.ReservationAddon{StartTime: storedTime(14, 0), EndTime: storedTime(15, 0)}),
	}
	booked := CollectBooked(facilityID, nil, reservations)

	t.Run("returns all conflicts, not only the first", func(t *testing.T) {
		requested, err := domain.NewTimeIntervalFromStrings("10:45", "11:15")
		require.NoError(t, err)

		conflicts := FindOverlapping(requested, booked)
		require.Len(t, conflicts, 2)
		assert.Equal(t, "PSB-1", conflicts[0].ReservationCode)
		assert.Equal(t, "PSB-2", conflicts[1].ReservationCode)
	})

	t.Run("touching boundary is not a conflict", func(t *testing.T) {
		requested, err := domain.NewTimeIntervalFromStrings("12:00", "14:00")
		require.NoError(t, err)
		assert.Empty(t, FindOverlapping(requested, booked))
	})
}
