package check_interval

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PSB-BookingService/internal/api/handlers"
	checkInterval "github.com/m04kA/PSB-BookingService/internal/usecase/check_interval"
)

const (
	msgInvalidFacilityID = "некорректный ID facility"
	msgInvalidExcludeID  = "некорректный ID исключаемого бронирования"
	msgMissingDate       = "дата обязательна"
	msgMissingTimeRange  = "startTime и endTime обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval   = "некорректный интервал, ожидается HH:MM и конец позже начала"
	msgFacilityNotFound  = "facility не найден"
)

type Handler struct {
	useCase CheckIntervalUseCase
	logger  Logger
}

func NewHandler(useCase CheckIntervalUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query params: date (required, YYYY-MM-DD), startTime и endTime
// (required, HH:MM), excludeReservationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startStr := query.Get("startTime")
	endStr := query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing time range")
		handlers.RespondBadRequest(w, msgMissingTimeRange)
		return
	}

	var excludeReservationID *int64
	if excludeStr := query.Get("excludeReservationId"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/availability - Invalid exclude ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeReservationID = &excludeID
	}

	useCaseReq, err := ToUseCaseRequest(facilityID, dateStr, startStr, endStr, excludeReservationID)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkInterval.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/availability - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, checkInterval.ErrInvalidInterval),
			errors.Is(err, checkInterval.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /facilities/{id}/availability - Failed to check interval: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /facilities/{id}/availability - Interval checked: facility_id=%d, range=%s, available=%t",
		facilityID, result.RequestedRange, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}
