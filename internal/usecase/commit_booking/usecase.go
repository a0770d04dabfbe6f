package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/internal/integrations/notify"
	"github.com/m04kA/PSB-BookingService/internal/schedule"
	"github.com/m04kA/PSB-BookingService/pkg/txmanager"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// UseCase use case фиксации брони facility в рамках резервации.
//
// Единственная точка, где занятость расписания изменяется. Предложенная
// бронь проходит состояния proposed -> validating -> committed/rejected.
// Авторитетная проверка конфликтов выполняется ВНУТРИ SERIALIZABLE
// транзакции с блокировкой живых бронирований facility (FOR UPDATE):
// что бы ни показала предварительная проверка доступности, решение
// принимается только здесь. Из двух конкурентных коммитов на
// пересекающиеся интервалы фиксируется ровно один, второй получает
// либо ErrSlotConflict (успел увидеть победителя), либо
// ErrCommitRaceLost (проиграл сериализацию).
type UseCase struct {
	reservationRepo ReservationRepository
	studioRepo      StudioRepository
	txManager       TransactionManager
	notifier        Notifier
	policy          schedule.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	studioRepo StudioRepository,
	txManager TransactionManager,
	notifier Notifier,
	policy schedule.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		studioRepo:      studioRepo,
		txManager:       txManager,
		notifier:        notifier,
		policy:          policy,
		logger:          logger,
	}
}

// Execute фиксирует бронь. Возвращает Response со state=committed либо
// ошибку; при конфликте это *SlotConflictError с полным списком пересечений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: proposed reservation=%d, facility=%d, addon=%d, range=%s-%s",
		req.ReservationID, req.FacilityID, req.AddonID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных и построение интервала
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	requested, err := domain.NewTimeIntervalFromStrings(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CommitBooking: invalid interval %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if d := requested.DurationMinutes(); d < domain.MinBookingDurationMinutes || d > domain.MaxBookingDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
	}

	// 2. Статические проверки каталога вне транзакции: facility и услуга
	// не меняются конкурентными коммитами, держать их под локом незачем
	facility, err := uc.studioRepo.GetFacilityByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, studio.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CommitBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsAvailable {
		uc.logger.Warn("CommitBooking: facility id=%d is disabled", req.FacilityID)
		return nil, ErrFacilityUnavailable
	}

	addon, err := uc.studioRepo.GetAddonByID(ctx, req.AddonID)
	if err != nil {
		if errors.Is(err, studio.ErrAddonNotFound) {
			return nil, ErrAddonNotFound
		}
		uc.logger.Error("CommitBooking: failed to get addon id=%d: %v", req.AddonID, err)
		return nil, fmt.Errorf("%w: failed to get addon: %v", ErrInternal, err)
	}
	if !addon.IsSchedulable() || *addon.FacilityID != req.FacilityID {
		uc.logger.Warn("CommitBooking: addon id=%d is not schedulable on facility id=%d", req.AddonID, req.FacilityID)
		return nil, ErrAddonNotSchedulable
	}

	studioInfo, err := uc.studioRepo.GetByID(ctx, facility.StudioID)
	if err != nil {
		if errors.Is(err, studio.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("CommitBooking: failed to get studio id=%d: %v", facility.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 3. Интервал обязан лежать внутри рабочего окна дня
	window, open := schedule.ResolveDay(studioInfo.OperatingHours, req.Date, uc.policy)
	if !open || requested.Start < window.Start || requested.End > window.End {
		uc.logger.Warn("CommitBooking: range %s is outside operating hours of studio id=%d", requested, studioInfo.ID)
		return nil, ErrOutsideHours
	}

	// 4. Validating -> committed/rejected внутри SERIALIZABLE транзакции
	var committed *domain.ReservationAddon

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Резервация перечитывается под транзакцией: её статус мог
		// измениться между предварительной проверкой и коммитом
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservation.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if res.UserID != req.UserID {
			return ErrAccessDenied
		}
		if !res.IsLive() {
			return ErrReservationNotLive
		}
		if !sameDate(res.ReservationDate, req.Date) {
			return ErrDateMismatch
		}

		// Живые бронирования facility захватываются FOR UPDATE — это
		// точка сериализации двух конкурентных коммитов
		reservations, err := uc.reservationRepo.GetLiveByFacilityAndDate(txCtx, req.FacilityID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// Собственная резервация исключается: две услуги одной резервации
		// на одном facility конфликтуют только друг с другом через каталог,
		// а не через это бронирование
		booked := schedule.CollectBooked(req.FacilityID, &req.ReservationID, reservations)
		overlapping := schedule.FindOverlapping(requested, booked)
		if len(overlapping) > 0 {
			conflicts := make([]Conflict, len(overlapping))
			for i, b := range overlapping {
				conflicts[i] = Conflict{
					ReservationCode: b.ReservationCode,
					CustomerName:    b.CustomerName,
					TimeRange:       b.Interval.String(),
				}
			}
			return &SlotConflictError{Conflicts: conflicts}
		}

		created, err := uc.reservationRepo.CreateAddon(txCtx, &domain.ReservationAddon{
			ReservationID: req.ReservationID,
			AddonID:       addon.ID,
			FacilityID:    addon.FacilityID,
			PricingType:   addon.PricingType,
			StartTime:     wallClockPtr(req.Date, requested.StartTime()),
			EndTime:       wallClockPtr(req.Date, requested.EndTime()),
			Quantity:      req.Quantity,
			Price:         addon.Price,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		committed = created
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CommitBooking: reservation=%d lost commit race on facility=%d", req.ReservationID, req.FacilityID)
			return nil, fmt.Errorf("%w: %v", ErrCommitRaceLost, txErr)
		}

		var conflictErr *SlotConflictError
		if errors.As(txErr, &conflictErr) {
			uc.logger.Info("CommitBooking: reservation=%d rejected, %d conflict(s) on facility=%d",
				req.ReservationID, len(conflictErr.Conflicts), req.FacilityID)
			return nil, conflictErr
		}

		return nil, txErr
	}

	uc.logger.Info("CommitBooking: reservation=%d committed booking id=%d, facility=%d, range=%s",
		req.ReservationID, committed.ID, req.FacilityID, requested)

	// 5. Уведомление после успешного коммита, деградация не откатывает бронь
	if uc.notifier != nil {
		notification := notify.BookingNotification{
			UserID:          req.UserID,
			ReservationCode: domain.ReservationCode(req.ReservationID),
			StudioName:      studioInfo.Name,
			FacilityName:    facility.Name,
			Date:            req.Date.Format(domain.DateFormat),
			TimeRange:       requested.String(),
		}
		if err := uc.notifier.SendBookingConfirmationWithGracefulDegradation(ctx, notification); err != nil {
			uc.logger.Warn("CommitBooking: notification degraded for reservation=%d: %v", req.ReservationID, err)
		}
	}

	return &Response{
		State: StateCommitted,
		Addon: &CommittedAddon{
			ID:            committed.ID,
			ReservationID: committed.ReservationID,
			FacilityID:    req.FacilityID,
			AddonID:       committed.AddonID,
			StartTime:     requested.StartTime(),
			EndTime:       requested.EndTime(),
			Quantity:      committed.Quantity,
			Price:         committed.Price,
		},
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.AddonID <= 0 {
		return fmt.Errorf("%w: addonID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
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

	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// wallClockPtr собирает хранимое wall-clock значение: дата + "HH:MM",
// локация фиктивна и при чтении игнорируется
func wallClockPtr(date time.Time, t types.TimeString) *time.Time {
	m, _ := t.MinutesSinceMidnight()
	v := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, time.UTC)
	return &v
}
