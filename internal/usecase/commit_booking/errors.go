package commit_booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("commit_booking: invalid input")
	ErrInvalidInterval     = errors.New("commit_booking: invalid time interval")
	ErrReservationNotFound = errors.New("commit_booking: reservation not found")
	ErrAccessDenied        = errors.New("commit_booking: access denied")
	ErrReservationNotLive  = errors.New("commit_booking: reservation is not live")
	ErrDateMismatch        = errors.New("commit_booking: date does not match reservation date")
	ErrStudioNotFound      = errors.New("commit_booking: studio not found")
	ErrFacilityNotFound    = errors.New("commit_booking: facility not found")
	ErrFacilityUnavailable = errors.New("commit_booking: facility is unavailable")
	ErrAddonNotFound       = errors.New("commit_booking: addon not found")
	ErrAddonNotSchedulable = errors.New("commit_booking: addon is not schedulable")
	ErrOutsideHours        = errors.New("commit_booking: interval is outside operating hours")
	ErrSlotConflict        = errors.New("commit_booking: slot conflict")
	ErrCommitRaceLost      = errors.New("commit_booking: lost commit race")
	ErrInternal            = errors.New("commit_booking: internal error")
)

// SlotConflictError несёт полный список пересечений, из-за которых бронь отклонена.
type SlotConflictError struct {
	Conflicts []Conflict
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("commit_booking: slot conflict with %d reservation(s)", len(e.Conflicts))
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
