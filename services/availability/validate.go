package availability

import (
	"time"

	"calendary/models"
)

const minutesPerDay = 24 * 60

// Validate checks an Availability against its own invariants: a resolvable
// IANA timezone, well-formed exceptional dates, and per-day interval sets
// that are sorted, non-overlapping and non-touching with start < end.
// It returns nil or an *InvalidAvailabilityError.
func Validate(av models.Availability) error {
	if av.Timezone == "" {
		return invalidf("timezone is required")
	}
	if _, err := time.LoadLocation(av.Timezone); err != nil {
		return invalidf("unrecognized timezone %q", av.Timezone)
	}

	for day, intervals := range av.WeeklySchedule {
		if day < time.Sunday || day > time.Saturday {
			return invalidf("unknown weekday %d", int(day))
		}
		for i, iv := range intervals {
			if iv.Start < 0 || iv.End > minutesPerDay {
				return invalidf("%s interval %d:[%d,%d) outside [0,%d)", day, i, iv.Start, iv.End, minutesPerDay)
			}
			if iv.Start >= iv.End {
				return invalidf("%s interval %d:[%d,%d) has start >= end", day, i, iv.Start, iv.End)
			}
			if i > 0 && intervals[i-1].End >= iv.Start {
				return invalidf("%s intervals %d and %d overlap or touch", day, i-1, i)
			}
		}
	}

	for _, date := range av.ExceptionalDates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return invalidf("malformed exceptional date %q", date)
		}
	}
	return nil
}

// ValidatePolicy checks a BookingPolicy's invariants. Like Validate, a
// failure is a host configuration problem, reported as
// *InvalidAvailabilityError.
func ValidatePolicy(p models.BookingPolicy) error {
	if p.SlotDuration <= 0 {
		return invalidf("slot duration must be positive, got %d", p.SlotDuration)
	}
	if p.BufferBefore < 0 || p.BufferAfter < 0 {
		return invalidf("buffers must be non-negative")
	}
	if p.MinNoticeMins < 0 {
		return invalidf("minimum notice must be non-negative")
	}
	if p.LimitPerDay != nil && *p.LimitPerDay < 0 {
		return invalidf("per-day limit must be non-negative")
	}
	if p.LimitPerWeek != nil && *p.LimitPerWeek < 0 {
		return invalidf("per-week limit must be non-negative")
	}
	if p.ReminderLeadMins < 0 {
		return invalidf("reminder lead time must be non-negative")
	}
	return nil
}
