package notify

// BookingNotification уведомление клиенту о зафиксированном бронировании facility
type BookingNotification struct {
	UserID          int64  `json:"userId"`
	ReservationCode string `json:"reservationCode"`
	StudioName      string `json:"studioName"`
	FacilityName    string `json:"facilityName"`
	Date            string `json:"date"`      // "YYYY-MM-DD"
	TimeRange       string `json:"timeRange"` // "HH:MM-HH:MM"
}
