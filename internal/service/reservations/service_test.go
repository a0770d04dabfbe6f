package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/PSB-BookingService/internal/infra/storage/reservation"
	studioRepo "github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/internal/service/reservations/models"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	reservation *domain.Reservation

	cancelledStatus *domain.ReservationStatus
	cancelledReason string
	updatedStatus   *domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.reservation == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return []*domain.Reservation{f.reservation}, nil
}

func (f *fakeReservationRepo) GetByStudioWithFilter(_ context.Context, _ domain.StudioReservationsFilter) ([]*domain.Reservation, error) {
	return []*domain.Reservation{f.reservation}, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ int64, status domain.ReservationStatus, reason string) error {
	f.cancelledStatus = &status
	f.cancelledReason = reason
	return nil
}

type fakeStudioRepo struct {
	studio *domain.Studio
}

func (f *fakeStudioRepo) GetByID(_ context.Context, _ int64) (*domain.Studio, error) {
	if f.studio == nil {
		return nil, studioRepo.ErrStudioNotFound
	}
	return f.studio, nil
}

const (
	customerID = int64(55)
	ownerID    = int64(77)
	strangerID = int64(99)
)

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              10,
		UserID:          customerID,
		StudioID:        1,
		Code:            "PSB-10",
		Status:          domain.StatusConfirmed,
		ReservationDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}
}

func newService(reservation *domain.Reservation) (*Service, *fakeReservationRepo) {
	repo := &fakeReservationRepo{reservation: reservation}
	studios := &fakeStudioRepo{studio: &domain.Studio{ID: 1, OwnerUserID: ownerID}}
	return NewService(repo, studios, fakeLogger{}), repo
}

func TestGetByID_AccessRules(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "customer sees own reservation", userID: customerID},
		{name: "studio owner sees reservation", userID: ownerID},
		{name: "stranger is denied", userID: strangerID, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(testReservation())

			resp, err := svc.GetByID(context.Background(), 10, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "PSB-10", resp.Code)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService(nil)

	_, err := svc.GetByID(context.Background(), 10, customerID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ByCustomer(t *testing.T) {
	svc, repo := newService(testReservation())

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID:             customerID,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledStatus)
	assert.Equal(t, domain.StatusCancelledByUser, *repo.cancelledStatus)
	assert.Equal(t, "передумал", repo.cancelledReason)
}

func TestCancel_ByStudioOwner(t *testing.T) {
	svc, repo := newService(testReservation())

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID:             ownerID,
		CancellationReason: "зал на ремонте",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledStatus)
	assert.Equal(t, domain.StatusCancelledByStudio, *repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc, repo := newService(testReservation())

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.cancelledStatus)
}

func TestCancel_CompletedReservation(t *testing.T) {
	reservation := testReservation()
	reservation.Status = domain.StatusCompleted
	svc, _ := newService(reservation)

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: customerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	svc, repo := newService(testReservation())

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "in_progress",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusInProgress, *repo.updatedStatus)

	// Клиент не переводит статусы, даже своего бронирования
	err = svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: customerID,
		Status: "in_progress",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	svc, repo := newService(testReservation())

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "cancelled_by_studio",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _ := newService(testReservation())

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "paused",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioReservations_OwnerOnly(t *testing.T) {
	svc, _ := newService(testReservation())

	_, err := svc.GetStudioReservations(context.Background(), &models.GetStudioReservationsRequest{
		StudioID: 1,
		UserID:   strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetStudioReservations(context.Background(), &models.GetStudioReservationsRequest{
		StudioID: 1,
		UserID:   ownerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}
