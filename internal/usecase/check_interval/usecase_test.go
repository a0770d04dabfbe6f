package check_interval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/pkg/ptr"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetLiveByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeStudioRepo struct {
	facility *domain.Facility
}

func (f *fakeStudioRepo) GetFacilityByID(_ context.Context, _ int64) (*domain.Facility, error) {
	if f.facility == nil {
		return nil, studio.ErrFacilityNotFound
	}
	return f.facility, nil
}

func storedTime(hour, minute int) *time.Time {
	v := time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
	return &v
}

func liveReservation(id int64, facilityID int64, name string, startH, startM, endH, endM int) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		Code:         domain.ReservationCode(id),
		CustomerName: name,
		Status:       domain.StatusConfirmed,
		Addons: []domain.ReservationAddon{
			{
				FacilityID:  &facilityID,
				PricingType: domain.PricingPerDuration,
				StartTime:   storedTime(startH, startM),
				EndTime:     storedTime(endH, endM),
			},
		},
	}
}

func okRequest() *Request {
	return &Request{
		FacilityID: 7,
		Date:       time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:45",
		EndTime:    "11:15",
	}
}

func TestExecute_ReturnsAllConflicts(t *testing.T) {
	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			liveReservation(1, 7, "Анна", 10, 0, 11, 0),
			liveReservation(2, 7, "Борис", 11, 0, 12, 0),
			liveReservation(3, 7, "Вера", 14, 0, 15, 0),
		},
	}
	uc := NewUseCase(reservationRepo, &fakeStudioRepo{facility: &domain.Facility{ID: 7, StudioID: 1}}, fakeLogger{})

	resp, err := uc.Execute(context.Background(), okRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "10:45-11:15", resp.RequestedRange)

	// Запрошенный интервал задевает обе соседние брони, а PSB-3 не задевает
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, "PSB-1", resp.Conflicts[0].ReservationCode)
	assert.Equal(t, "Анна", resp.Conflicts[0].CustomerName)
	assert.Equal(t, "10:00-11:00", resp.Conflicts[0].TimeRange)
	assert.Equal(t, "PSB-2", resp.Conflicts[1].ReservationCode)
	assert.Equal(t, "11:00-12:00", resp.Conflicts[1].TimeRange)
}

func TestExecute_TouchingIntervalIsAvailable(t *testing.T) {
	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			liveReservation(1, 7, "Анна", 10, 0, 11, 0),
		},
	}
	uc := NewUseCase(reservationRepo, &fakeStudioRepo{facility: &domain.Facility{ID: 7, StudioID: 1}}, fakeLogger{})

	req := okRequest()
	req.StartTime = "11:00"
	req.EndTime = "12:00"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_ExcludesOwnReservation(t *testing.T) {
	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			liveReservation(5, 7, "Анна", 10, 0, 12, 0),
		},
	}
	uc := NewUseCase(reservationRepo, &fakeStudioRepo{facility: &domain.Facility{ID: 7, StudioID: 1}}, fakeLogger{})

	req := okRequest()
	req.ExcludeReservationID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Собственные интервалы бронирования не конфликтуют сами с собой
	assert.True(t, resp.Available)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeStudioRepo{}, fakeLogger{})

	_, err := uc.Execute(context.Background(), okRequest())
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeStudioRepo{facility: &domain.Facility{ID: 7}}, fakeLogger{})

	req := okRequest()
	req.StartTime = "12:00"
	req.EndTime = "11:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeStudioRepo{}, fakeLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "non-positive facility", mutate: func(r *Request) { r.FacilityID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed end time", mutate: func(r *Request) { r.EndTime = "25:99" }},
		{name: "non-positive exclude id", mutate: func(r *Request) { r.ExcludeReservationID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := okRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
