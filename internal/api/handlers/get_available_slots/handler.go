package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PSB-BookingService/internal/api/handlers"
	"github.com/m04kA/PSB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PSB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudioID      = "некорректный ID студии"
	msgInvalidFacilityID    = "некорректный ID facility"
	msgInvalidDuration      = "некорректная длительность услуги"
	msgInvalidExcludeID     = "некорректный ID исключаемого бронирования"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStudioNotFound       = "студия не найдена"
	msgFacilityNotFound     = "facility не найден"
	msgInvalidSlotsRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/facilities/{facilityId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (optional),
// excludeReservationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем studioId из URL
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Извлекаем facilityId из URL
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Длительность опциональна, по умолчанию один шаг сетки
	durationMinutes := domain.DefaultSlotGranularityMinutes
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Исключение собственного бронирования при редактировании
	var excludeReservationID *int64
	if excludeStr := r.URL.Query().Get("excludeReservationId"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid exclude ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeReservationID = &excludeID
	}

	useCaseReq, err := ToUseCaseRequest(studioID, facilityID, dateStr, durationMinutes, excludeReservationID)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getAvailableSlots.ErrFacilityNotFound):
			h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Facility not found: studio_id=%d, facility_id=%d",
				studioID, facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/facilities/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotsRequest)

		default:
			h.logger.Error("GET /studios/{id}/facilities/{id}/available-slots - Failed to get slots: studio_id=%d, facility_id=%d, error=%v",
				studioID, facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /studios/{id}/facilities/{id}/available-slots - Slots retrieved successfully: studio_id=%d, facility_id=%d, slots_count=%d",
		studioID, facilityID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
