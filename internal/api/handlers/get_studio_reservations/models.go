package get_studio_reservations

import (
	"strconv"

	"github.com/m04kA/PSB-BookingService/internal/service/reservations/models"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(studioID, userID int64, query map[string][]string) (*models.GetStudioReservationsRequest, error) {
	req := &models.GetStudioReservationsRequest{
		UserID:   userID,
		StudioID: studioID,
	}

	if v := first(query, "facilityId"); v != "" {
		facilityID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.FacilityID = &facilityID
	}

	if v := first(query, "startDate"); v != "" {
		startDate, err := types.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := first(query, "endDate"); v != "" {
		endDate, err := types.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := first(query, "status"); v != "" {
		req.Status = &v
	}

	if v := first(query, "includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func first(query map[string][]string, key string) string {
	if values := query[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
