package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// DaySchedule расписание работы студии на один день недели
type DaySchedule struct {
	Open   string `json:"open"`    // "HH:MM"
	Close  string `json:"close"`   // "HH:MM"
	IsOpen bool   `json:"is_open"` // false = студия закрыта в этот день
}

// OperatingHours mapping from weekday key ("monday".."sunday") to a day schedule.
// Отсутствие ключа означает, что для этого дня действует дефолтная политика.
type OperatingHours map[string]DaySchedule

// Studio represents a photo studio with its weekly operating hours.
type Studio struct {
	ID   int64
	Name string
	City string
	// OwnerUserID владелец студии, авторизуется на студийные операции
	// (расписание, журнал бронирований, смена статусов)
	OwnerUserID    int64
	OperatingHours OperatingHours
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOwnedBy reports whether userID may perform studio-side operations.
func (s *Studio) IsOwnedBy(userID int64) bool {
	return s.OwnerUserID == userID
}

// weekdayKeys индексируются значением time.Weekday (Sunday=0..Saturday=6) —
// time.Weekday локаленезависим, поэтому соответствие фиксировано
var weekdayKeys = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// WeekdayKey returns the operating-hours map key for the given date.
func WeekdayKey(date time.Time) string {
	return weekdayKeys[int(date.Weekday())]
}

// IsValidWeekdayKey reports whether s is one of "monday".."sunday".
func IsValidWeekdayKey(s string) bool {
	for _, key := range weekdayKeys {
		if key == s {
			return true
		}
	}
	return false
}

// Validate проверяет расписание одного дня: формат HH:MM и close > open
// для открытых дней. У закрытых дней времена не проверяются.
func (d DaySchedule) Validate() error {
	if !d.IsOpen {
		return nil
	}

	open, err := types.NewTimeStringFromString(d.Open)
	if err != nil {
		return fmt.Errorf("invalid open time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(d.Close)
	if err != nil {
		return fmt.Errorf("invalid close time: %w", err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("close time %s must be after open time %s", d.Close, d.Open)
	}

	return nil
}

// Validate проверяет ключи дней недели и расписание каждого дня
func (h OperatingHours) Validate() error {
	for key, day := range h {
		if !IsValidWeekdayKey(key) {
			return fmt.Errorf("unknown weekday key %q", key)
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
