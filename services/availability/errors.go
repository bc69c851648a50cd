package availability

import "fmt"

// InvalidAvailabilityError reports a malformed host schedule. It is a host
// configuration problem, never something a guest can trigger.
type InvalidAvailabilityError struct {
	Reason string
}

func (e *InvalidAvailabilityError) Error() string {
	return fmt.Sprintf("invalid availability: %s", e.Reason)
}

func invalidf(format string, args ...any) error {
	return &InvalidAvailabilityError{Reason: fmt.Sprintf(format, args...)}
}
