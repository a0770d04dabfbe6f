package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// ErrInvalidInterval возвращается при попытке построить интервал с end <= start
var ErrInvalidInterval = errors.New("domain: invalid time interval, end must be after start")

// TimeInterval represents a half-open [Start, End) interval within a single
// calendar day, in minutes since midnight.
//
// Полуоткрытость принципиальна: интервалы, соприкасающиеся границами
// (A заканчивается в 10:00, B начинается в 10:00), НЕ пересекаются —
// это позволяет бронировать слоты встык без зазора.
type TimeInterval struct {
	Start int // minutes since midnight, inclusive
	End   int // minutes since midnight, exclusive
}

// NewTimeInterval builds an interval, rejecting end <= start.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	if end <= start {
		return TimeInterval{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// NewTimeIntervalFromStrings builds an interval from "HH:MM" wall-clock values.
func NewTimeIntervalFromStrings(start, end types.TimeString) (TimeInterval, error) {
	startMin, err := start.MinutesSinceMidnight()
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	endMin, err := end.MinutesSinceMidnight()
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	return NewTimeInterval(startMin, endMin)
}

// Overlaps reports whether two intervals truly intersect.
// Строгие неравенства: границы, совпадающие точь-в-точь, пересечением не считаются.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start < other.End && i.End > other.Start
}

// OverlapsWithBuffer reports overlap with a required gap of bufferMinutes
// between bookings. Нулевой буфер эквивалентен Overlaps; ненулевой пока
// нигде не используется, но бизнес-правило о зазоре между бронированиями
// должно быть параметром, а не переписыванием предиката.
func (i TimeInterval) OverlapsWithBuffer(other TimeInterval, bufferMinutes int) bool {
	return i.Start < other.End+bufferMinutes && i.End+bufferMinutes > other.Start
}

// DurationMinutes returns the interval length in minutes.
func (i TimeInterval) DurationMinutes() int {
	return i.End - i.Start
}

// StartTime returns the start as an "HH:MM" wall-clock value.
func (i TimeInterval) StartTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(i.Start)
	return t
}

// EndTime returns the end as an "HH:MM" wall-clock value.
// Конец ровно в полночь отображается как "24:00".
func (i TimeInterval) EndTime() types.TimeString {
	if i.End == 24*60 {
		return types.TimeString("24:00")
	}
	t, _ := types.NewTimeStringFromMinutes(i.End)
	return t
}

// String returns the human-readable "HH:MM-HH:MM" range.
func (i TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", i.StartTime(), i.EndTime())
}
