package booking

import (
	"errors"
	"fmt"
	"time"
)

// ErrBookingNotFound is returned when a cancellation targets an unknown
// booking id.
var ErrBookingNotFound = errors.New("booking not found")

// ConflictError means the requested slot is no longer available: either a
// racing booking took it or policy limits closed it between display and
// submission. The caller should re-fetch slots and offer the guest an
// updated list; retrying the same slot fails again until the conflicting
// booking is cancelled.
type ConflictError struct {
	HostID string
	Start  time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s for host %s is no longer available", e.Start.Format(time.RFC3339), e.HostID)
}

// IsConflict reports whether err is a slot conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
