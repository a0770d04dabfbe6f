package get_studio_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PSB-BookingService/internal/api/handlers"
	"github.com/m04kA/PSB-BookingService/internal/api/middleware"
	"github.com/m04kA/PSB-BookingService/internal/service/reservations"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidFilter   = "некорректные параметры фильтрации"
	msgStudioNotFound  = "студия не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/reservations
// Query params: facilityId, startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/reservations - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/reservations - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	req, err := ToServiceRequest(studioID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /studios/{id}/reservations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetStudioReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/reservations - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/reservations - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/reservations - Invalid filter: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /studios/{id}/reservations - Failed to get reservations: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/reservations - Reservations retrieved successfully: studio_id=%d, count=%d",
		studioID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
