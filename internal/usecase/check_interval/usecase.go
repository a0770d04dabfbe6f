package check_interval

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/internal/schedule"
)

// UseCase use case проверки доступности одного интервала.
// Чисто читающая операция: ничего не резервирует, поэтому выполняется без
// синхронизации — авторитетная проверка происходит повторно в коммите.
type UseCase struct {
	reservationRepo ReservationRepository
	studioRepo      StudioRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	studioRepo StudioRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		studioRepo:      studioRepo,
		logger:          logger,
	}
}

// Execute выполняет проверку интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckInterval: facility=%d, date=%s, range=%s-%s",
		req.FacilityID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных и построение интервала
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckInterval: validation failed: %v", err)
		return nil, err
	}

	requested, err := domain.NewTimeIntervalFromStrings(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CheckInterval: invalid interval %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Проверяем существование facility
	if _, err := uc.studioRepo.GetFacilityByID(ctx, req.FacilityID); err != nil {
		if errors.Is(err, studio.ErrFacilityNotFound) {
			uc.logger.Warn("CheckInterval: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CheckInterval: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Получаем бронирования и строим индекс занятых интервалов
	reservations, err := uc.reservationRepo.GetLiveByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("CheckInterval: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	booked := schedule.CollectBooked(req.FacilityID, req.ExcludeReservationID, reservations)

	// 4. Собираем ПОЛНЫЙ список конфликтов — не только первый
	overlapping := schedule.FindOverlapping(requested, booked)

	conflicts := make([]Conflict, len(overlapping))
	for i, b := range overlapping {
		conflicts[i] = Conflict{
			ReservationCode: b.ReservationCode,
			CustomerName:    b.CustomerName,
			TimeRange:       b.Interval.String(),
		}
	}

	available := len(conflicts) == 0
	uc.logger.Info("CheckInterval: facility=%d, range=%s, available=%t, conflicts=%d",
		req.FacilityID, requested, available, len(conflicts))

	return &Response{
		FacilityID:     req.FacilityID,
		Date:           req.Date,
		RequestedRange: requested.String(),
		Available:      available,
		Conflicts:      conflicts,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: excludeReservationId must be positive", ErrInvalidInput)
	}

	return nil
}
