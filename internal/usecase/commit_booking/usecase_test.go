package commit_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/integrations/notify"
	"github.com/m04kA/PSB-BookingService/internal/schedule"
	"github.com/m04kA/PSB-BookingService/pkg/txmanager"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

// fakeTxManager выполняет функцию напрямую, без транзакции
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservation *domain.Reservation
	live        []*domain.Reservation
	created     []*domain.ReservationAddon
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	return f.reservation, nil
}

func (f *fakeReservationRepo) GetLiveByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.live, nil
}

func (f *fakeReservationRepo) CreateAddon(_ context.Context, addon *domain.ReservationAddon) (*domain.ReservationAddon, error) {
	stored := *addon
	stored.ID = int64(len(f.created)) + 100
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeStudioRepo struct {
	studio   *domain.Studio
	facility *domain.Facility
	addon    *domain.Addon
}

func (f *fakeStudioRepo) GetByID(_ context.Context, _ int64) (*domain.Studio, error) {
	return f.studio, nil
}

func (f *fakeStudioRepo) GetFacilityByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, nil
}

func (f *fakeStudioRepo) GetAddonByID(_ context.Context, _ int64) (*domain.Addon, error) {
	return f.addon, nil
}

type fakeNotifier struct {
	sent []notify.BookingNotification
}

func (f *fakeNotifier) SendBookingConfirmationWithGracefulDegradation(_ context.Context, n notify.BookingNotification) error {
	f.sent = append(f.sent, n)
	return nil
}

func testPolicy() schedule.Policy {
	return schedule.Policy{
		DefaultOpen:        "09:00",
		DefaultClose:       "21:00",
		GranularityMinutes: 30,
	}
}

func storedTime(hour, minute int) *time.Time {
	v := time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
	return &v
}

func testDate() time.Time {
	return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
}

func facilityID() *int64 {
	id := int64(7)
	return &id
}

func testStudioRepo() *fakeStudioRepo {
	return &fakeStudioRepo{
		studio: &domain.Studio{
			ID:   1,
			Name: "Фотостудия Свет",
			OperatingHours: domain.OperatingHours{
				"friday": {Open: "09:00", Close: "21:00", IsOpen: true},
			},
		},
		facility: &domain.Facility{ID: 7, StudioID: 1, Name: "Зал А", IsAvailable: true},
		addon: &domain.Addon{
			ID:          3,
			FacilityID:  facilityID(),
			PricingType: domain.PricingPerDuration,
			Price:       1500,
		},
	}
}

func testReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservation: &domain.Reservation{
			ID:              10,
			UserID:          55,
			Code:            "PSB-10",
			Status:          domain.StatusConfirmed,
			ReservationDate: testDate(),
		},
	}
}

func okRequest() *Request {
	return &Request{
		ReservationID: 10,
		UserID:        55,
		FacilityID:    7,
		AddonID:       3,
		Date:          testDate(),
		StartTime:     "10:00",
		EndTime:       "11:00",
		Quantity:      1,
	}
}

func competitor(id int64, startH, startM, endH, endM int) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		Code:         domain.ReservationCode(id),
		CustomerName: "Борис",
		Status:       domain.StatusConfirmed,
		Addons: []domain.ReservationAddon{
			{
				FacilityID:  facilityID(),
				PricingType: domain.PricingPerDuration,
				StartTime:   storedTime(startH, startM),
				EndTime:     storedTime(endH, endM),
			},
		},
	}
}

func TestExecute_CommitsFreeInterval(t *testing.T) {
	reservationRepo := testReservationRepo()
	notifier := &fakeNotifier{}
	uc := NewUseCase(reservationRepo, testStudioRepo(), &fakeTxManager{}, notifier, testPolicy(), fakeLogger{})

	resp, err := uc.Execute(context.Background(), okRequest())
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, resp.State)
	require.NotNil(t, resp.Addon)
	assert.Equal(t, int64(10), resp.Addon.ReservationID)
	assert.Equal(t, int64(3), resp.Addon.AddonID)
	assert.Equal(t, "10:00", resp.Addon.StartTime.String())
	assert.Equal(t, "11:00", resp.Addon.EndTime.String())
	assert.Equal(t, float64(1500), resp.Addon.Price)

	// Запись создана с wall-clock временем на дату резервации
	require.Len(t, reservationRepo.created, 1)
	created := reservationRepo.created[0]
	assert.Equal(t, 10, created.StartTime.Hour())
	assert.Equal(t, 0, created.StartTime.Minute())
	assert.Equal(t, 11, created.EndTime.Hour())

	// Уведомление ушло после фиксации
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "PSB-10", notifier.sent[0].ReservationCode)
	assert.Equal(t, "10:00-11:00", notifier.sent[0].TimeRange)
	assert.Equal(t, "2026-08-28", notifier.sent[0].Date)
}

func TestExecute_RejectsOnConflict(t *testing.T) {
	reservationRepo := testReservationRepo()
	reservationRepo.live = []*domain.Reservation{competitor(20, 10, 30, 12, 0)}

	uc := NewUseCase(reservationRepo, testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	_, err := uc.Execute(context.Background(), okRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, "PSB-20", conflictErr.Conflicts[0].ReservationCode)
	assert.Equal(t, "Борис", conflictErr.Conflicts[0].CustomerName)
	assert.Equal(t, "10:30-12:00", conflictErr.Conflicts[0].TimeRange)

	// Отклонённая бронь ничего не записала
	assert.Empty(t, reservationRepo.created)
}

func TestExecute_OwnIntervalsDoNotConflict(t *testing.T) {
	reservationRepo := testReservationRepo()
	// Другая услуга той же резервации уже занимает этот facility
	own := competitor(10, 10, 0, 11, 0)
	own.UserID = 55
	reservationRepo.live = []*domain.Reservation{own}

	uc := NewUseCase(reservationRepo, testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	resp, err := uc.Execute(context.Background(), okRequest())
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, resp.State)
}

func TestExecute_TouchingIntervalCommits(t *testing.T) {
	reservationRepo := testReservationRepo()
	reservationRepo.live = []*domain.Reservation{competitor(20, 11, 0, 12, 0)}

	uc := NewUseCase(reservationRepo, testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	resp, err := uc.Execute(context.Background(), okRequest())
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, resp.State)
}

func TestExecute_CommitRaceLost(t *testing.T) {
	txManager := &fakeTxManager{err: txmanager.ErrSerializationFailure}
	uc := NewUseCase(testReservationRepo(), testStudioRepo(), txManager, nil, testPolicy(), fakeLogger{})

	_, err := uc.Execute(context.Background(), okRequest())
	assert.ErrorIs(t, err, ErrCommitRaceLost)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	uc := NewUseCase(testReservationRepo(), testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	req := okRequest()
	req.StartTime = "20:30"
	req.EndTime = "21:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestExecute_ClosedDayIsOutsideHours(t *testing.T) {
	studioRepo := testStudioRepo()
	studioRepo.studio.OperatingHours["friday"] = domain.DaySchedule{IsOpen: false}

	uc := NewUseCase(testReservationRepo(), studioRepo, &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	_, err := uc.Execute(context.Background(), okRequest())
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestExecute_DisabledFacility(t *testing.T) {
	studioRepo := testStudioRepo()
	studioRepo.facility.IsAvailable = false

	uc := NewUseCase(testReservationRepo(), studioRepo, &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	_, err := uc.Execute(context.Background(), okRequest())
	assert.ErrorIs(t, err, ErrFacilityUnavailable)
}

func TestExecute_AddonNotSchedulable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Addon)
	}{
		{name: "per-item addon", mutate: func(a *domain.Addon) { a.PricingType = domain.PricingPerItem }},
		{name: "no facility binding", mutate: func(a *domain.Addon) { a.FacilityID = nil }},
		{name: "foreign facility", mutate: func(a *domain.Addon) { id := int64(99); a.FacilityID = &id }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			studioRepo := testStudioRepo()
			tt.mutate(studioRepo.addon)

			uc := NewUseCase(testReservationRepo(), studioRepo, &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

			_, err := uc.Execute(context.Background(), okRequest())
			assert.ErrorIs(t, err, ErrAddonNotSchedulable)
		})
	}
}

func TestExecute_ReservationGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Reservation)
		wantErr error
	}{
		{
			name:    "foreign user",
			mutate:  func(r *domain.Reservation) { r.UserID = 77 },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "cancelled reservation",
			mutate:  func(r *domain.Reservation) { r.Status = domain.StatusCancelledByUser },
			wantErr: ErrReservationNotLive,
		},
		{
			name:    "completed reservation",
			mutate:  func(r *domain.Reservation) { r.Status = domain.StatusCompleted },
			wantErr: ErrReservationNotLive,
		},
		{
			name:    "date mismatch",
			mutate:  func(r *domain.Reservation) { r.ReservationDate = testDate().AddDate(0, 0, 1) },
			wantErr: ErrDateMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservationRepo := testReservationRepo()
			tt.mutate(reservationRepo.reservation)

			uc := NewUseCase(reservationRepo, testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

			_, err := uc.Execute(context.Background(), okRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// sharedState общее хранилище для конкурентных коммитов: зафиксированные
// брони становятся видимыми последующим транзакциям
type sharedState struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	addons       map[int64][]domain.ReservationAddon
	nextAddonID  int64
}

func newSharedState(reservations ...*domain.Reservation) *sharedState {
	s := &sharedState{
		reservations: make(map[int64]*domain.Reservation),
		addons:       make(map[int64][]domain.ReservationAddon),
		nextAddonID:  100,
	}
	for _, r := range reservations {
		s.reservations[r.ID] = r
	}
	return s
}

type sharedReservationRepo struct {
	state *sharedState
}

func (f *sharedReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	res := *f.state.reservations[id]
	return &res, nil
}

func (f *sharedReservationRepo) GetLiveByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()

	out := make([]*domain.Reservation, 0, len(f.state.reservations))
	for id, r := range f.state.reservations {
		res := *r
		res.Addons = append([]domain.ReservationAddon(nil), f.state.addons[id]...)
		out = append(out, &res)
	}
	return out, nil
}

func (f *sharedReservationRepo) CreateAddon(_ context.Context, addon *domain.ReservationAddon) (*domain.ReservationAddon, error) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()

	stored := *addon
	stored.ID = f.state.nextAddonID
	f.state.nextAddonID++
	f.state.addons[addon.ReservationID] = append(f.state.addons[addon.ReservationID], stored)
	return &stored, nil
}

// serialTxManager выполняет транзакции строго по одной, как SERIALIZABLE
// с блокировкой FOR UPDATE: вторая входит только после коммита первой
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func TestExecute_ConcurrentOverlappingCommitsOneWins(t *testing.T) {
	state := newSharedState(
		&domain.Reservation{
			ID:              10,
			UserID:          55,
			Code:            "PSB-10",
			CustomerName:    "Анна",
			Status:          domain.StatusConfirmed,
			ReservationDate: testDate(),
		},
		&domain.Reservation{
			ID:              11,
			UserID:          56,
			Code:            "PSB-11",
			CustomerName:    "Борис",
			Status:          domain.StatusConfirmed,
			ReservationDate: testDate(),
		},
	)
	repo := &sharedReservationRepo{state: state}
	uc := NewUseCase(repo, testStudioRepo(), &serialTxManager{}, nil, testPolicy(), fakeLogger{})

	requests := []*Request{
		{
			ReservationID: 10,
			UserID:        55,
			FacilityID:    7,
			AddonID:       3,
			Date:          testDate(),
			StartTime:     "10:00",
			EndTime:       "11:00",
			Quantity:      1,
		},
		{
			ReservationID: 11,
			UserID:        56,
			FacilityID:    7,
			AddonID:       3,
			Date:          testDate(),
			StartTime:     "10:30",
			EndTime:       "11:30",
			Quantity:      1,
		},
	}

	type outcome struct {
		reservationID int64
		resp          *Response
		err           error
	}

	results := make(chan outcome, len(requests))
	var wg sync.WaitGroup
	for _, req := range requests {
		wg.Add(1)
		go func(req *Request) {
			defer wg.Done()
			resp, err := uc.Execute(context.Background(), req)
			results <- outcome{reservationID: req.ReservationID, resp: resp, err: err}
		}(req)
	}
	wg.Wait()
	close(results)

	var committed []outcome
	var rejected []outcome
	for r := range results {
		if r.err == nil {
			committed = append(committed, r)
		} else {
			rejected = append(rejected, r)
		}
	}

	// Из двух пересекающихся заявок фиксируется ровно одна
	require.Len(t, committed, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, StateCommitted, committed[0].resp.State)

	// Проигравший видит победителя в списке конфликтов
	var conflictErr *SlotConflictError
	require.ErrorAs(t, rejected[0].err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	winnerCode := domain.ReservationCode(committed[0].reservationID)
	assert.Equal(t, winnerCode, conflictErr.Conflicts[0].ReservationCode)

	// В хранилище ровно одна запись, и она принадлежит победителю
	state.mu.Lock()
	defer state.mu.Unlock()
	total := 0
	for id, addons := range state.addons {
		total += len(addons)
		if len(addons) > 0 {
			assert.Equal(t, committed[0].reservationID, id)
		}
	}
	assert.Equal(t, 1, total)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := NewUseCase(testReservationRepo(), testStudioRepo(), &fakeTxManager{}, nil, testPolicy(), fakeLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "non-positive reservation", mutate: func(r *Request) { r.ReservationID = 0 }},
		{name: "non-positive user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "non-positive addon", mutate: func(r *Request) { r.AddonID = -1 }},
		{name: "zero quantity", mutate: func(r *Request) { r.Quantity = 0 }},
		{name: "malformed time", mutate: func(r *Request) { r.StartTime = "десять" }},
		{name: "duration too short", mutate: func(r *Request) { r.EndTime = "10:15" }},
		{name: "end before start", mutate: func(r *Request) { r.StartTime = "12:00"; r.EndTime = "11:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := okRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidInterval),
				"unexpected error: %v", err)
		})
	}
}
