package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/PSB-BookingService/internal/schedule"
)

// UseCase use case для получения сетки слотов facility на дату
type UseCase struct {
	reservationRepo ReservationRepository
	studioRepo      StudioRepository
	policy          schedule.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	studioRepo StudioRepository,
	policy schedule.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		studioRepo:      studioRepo,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Результат детерминирован: повторный вызов с теми же входными данными при
// неизменном состоянии бронирований возвращает идентичную сетку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: studio=%d, facility=%d, date=%s, duration=%d",
		req.StudioID, req.FacilityID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студию
	st, err := uc.studioRepo.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studio.ErrStudioNotFound) {
			uc.logger.Warn("GetAvailableSlots: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 3. Получаем facility и проверяем принадлежность студии
	facility, err := uc.studioRepo.GetFacilityByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, studio.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if facility.StudioID != req.StudioID {
		uc.logger.Warn("GetAvailableSlots: facility id=%d does not belong to studio id=%d",
			req.FacilityID, req.StudioID)
		return nil, ErrFacilityNotFound
	}

	// 4. Отключённый facility не даёт слотов — как закрытый день, не ошибка
	if !facility.IsAvailable {
		uc.logger.Info("GetAvailableSlots: facility id=%d is disabled", req.FacilityID)
		return uc.emptyResponse(req), nil
	}

	// 5. Разрешаем рабочие часы на дату; закрытый день — пустой успешный результат
	window, open := schedule.ResolveDay(st.OperatingHours, req.Date, uc.policy)
	if !open {
		uc.logger.Info("GetAvailableSlots: studio id=%d is closed on %s",
			req.StudioID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 6. Генерируем каноническую сетку кандидатов
	candidates := schedule.GenerateSlots(window, req.DurationMinutes, uc.policy.GranularityMinutes)

	// 7. Получаем бронирования на дату и facility ОДНИМ запросом —
	// все кандидаты проверяются по одному консистентному снимку
	reservations, err := uc.reservationRepo.GetLiveByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 8. Строим индекс занятых интервалов и размечаем кандидатов
	booked := schedule.CollectBooked(req.FacilityID, req.ExcludeReservationID, reservations)

	slots := make([]Slot, len(candidates))
	for i, candidate := range candidates {
		conflicts := schedule.FindOverlapping(candidate, booked)

		slot := Slot{
			StartTime: candidate.StartTime(),
			EndTime:   candidate.EndTime(),
			Available: len(conflicts) == 0,
		}
		if len(conflicts) > 0 {
			// В компактной сетке достаточно первого конфликта;
			// полный список отдаёт CheckInterval
			code := conflicts[0].ReservationCode
			slot.ConflictsWith = &code
		}
		slots[i] = slot
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for facility=%d, date=%s",
		len(slots), req.FacilityID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		StudioID:        req.StudioID,
		FacilityID:      req.FacilityID,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:            req.Date,
		StudioID:        req.StudioID,
		FacilityID:      req.FacilityID,
		DurationMinutes: req.DurationMinutes,
		Slots:           []Slot{},
	}
}
