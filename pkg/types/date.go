package types

import (
	"errors"
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("types: invalid date string format")

// ParseDate parses a calendar date, honoring only the "YYYY-MM-DD" prefix.
//
// Клиенты присылают дату как "2025-10-15", так и полной timestamp-строкой
// ("2025-10-15T14:00:00Z", "2025-10-15 14:00:00"). Бронирования ключуются
// только календарной датой, поэтому всё после даты отбрасывается.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return d, nil
}
