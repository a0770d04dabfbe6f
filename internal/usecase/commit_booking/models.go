package commit_booking

import (
	"time"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// State состояние попытки коммита брони
type State string

const (
	StateProposed   State = "proposed"
	StateValidating State = "validating"
	StateCommitted  State = "committed"
	StateRejected   State = "rejected"
)

// Request запрос на коммит брони зала в рамках резервации
type Request struct {
	ReservationID int64
	UserID        int64
	FacilityID    int64
	AddonID       int64
	// Date дублирует дату резервации для защиты от рассинхрона клиента:
	// коммит на чужую дату отклоняется, а не молча переносится
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Quantity  int
}

// Conflict описание пересечения с существующей бронью
type Conflict struct {
	ReservationCode string `json:"reservation_code"`
	CustomerName    string `json:"customer_name"`
	TimeRange       string `json:"time_range"`
}

// CommittedAddon данные созданной позиции брони
type CommittedAddon struct {
	ID            int64            `json:"id"`
	ReservationID int64            `json:"reservation_id"`
	FacilityID    int64            `json:"facility_id"`
	AddonID       int64            `json:"addon_id"`
	StartTime     types.TimeString `json:"start_time"`
	EndTime       types.TimeString `json:"end_time"`
	Quantity      int              `json:"quantity"`
	Price         float64          `json:"price"`
}

// Response результат коммита
type Response struct {
	State     State           `json:"state"`
	Addon     *CommittedAddon `json:"addon,omitempty"`
	Conflicts []Conflict      `json:"conflicts,omitempty"`
}
