package commit_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PSB-BookingService/internal/api/handlers"
	"github.com/m04kA/PSB-BookingService/internal/api/middleware"
	commitBooking "github.com/m04kA/PSB-BookingService/internal/usecase/commit_booking"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval      = "некорректный интервал, ожидается HH:MM и конец позже начала"
	msgReservationNotFound  = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgReservationNotLive   = "бронирование завершено или отменено"
	msgDateMismatch         = "дата не совпадает с датой бронирования"
	msgFacilityNotFound     = "facility не найден"
	msgFacilityUnavailable  = "facility временно недоступен"
	msgAddonNotFound        = "услуга не найдена"
	msgAddonNotSchedulable  = "услуга не бронируется по времени"
	msgOutsideHours         = "интервал выходит за рабочие часы студии"
	msgSlotConflict         = "выбранный интервал уже занят"
	msgCommitRaceLost       = "интервал только что занят другим бронированием, попробуйте ещё раз"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/bookings - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт несёт структурированный список пересечений
		var conflictErr *commitBooking.SlotConflictError
		if errors.As(err, &conflictErr) {
			h.logger.Warn("POST /reservations/{id}/bookings - Slot conflict: reservation_id=%d, facility_id=%d, conflicts=%d",
				reservationID, req.FacilityID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, FromConflictError(msgSlotConflict, conflictErr))
			return
		}

		switch {
		case errors.Is(err, commitBooking.ErrCommitRaceLost):
			h.logger.Warn("POST /reservations/{id}/bookings - Commit race lost: reservation_id=%d, facility_id=%d",
				reservationID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgCommitRaceLost)

		case errors.Is(err, commitBooking.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/bookings - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, commitBooking.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/bookings - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, commitBooking.ErrReservationNotLive):
			h.logger.Warn("POST /reservations/{id}/bookings - Reservation not live: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgReservationNotLive)

		case errors.Is(err, commitBooking.ErrDateMismatch):
			h.logger.Warn("POST /reservations/{id}/bookings - Date mismatch: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDateMismatch)

		case errors.Is(err, commitBooking.ErrFacilityNotFound), errors.Is(err, commitBooking.ErrStudioNotFound):
			h.logger.Warn("POST /reservations/{id}/bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, commitBooking.ErrFacilityUnavailable):
			h.logger.Warn("POST /reservations/{id}/bookings - Facility unavailable: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgFacilityUnavailable)

		case errors.Is(err, commitBooking.ErrAddonNotFound):
			h.logger.Warn("POST /reservations/{id}/bookings - Addon not found: addon_id=%d", req.AddonID)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, commitBooking.ErrAddonNotSchedulable):
			h.logger.Warn("POST /reservations/{id}/bookings - Addon not schedulable: addon_id=%d, facility_id=%d",
				req.AddonID, req.FacilityID)
			handlers.RespondBadRequest(w, msgAddonNotSchedulable)

		case errors.Is(err, commitBooking.ErrOutsideHours):
			h.logger.Warn("POST /reservations/{id}/bookings - Outside operating hours: reservation_id=%d, range=%s-%s",
				reservationID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, commitBooking.ErrInvalidInterval):
			h.logger.Warn("POST /reservations/{id}/bookings - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations/{id}/bookings - Failed to commit booking: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/bookings - Booking committed: reservation_id=%d, facility_id=%d, booking_id=%d",
		reservationID, req.FacilityID, result.Addon.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
