package scheduling

import (
	"time"

	"calendary/models"
)

// overlaps reports whether the half-open instants [s1,e1) and [s2,e2)
// intersect.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// BufferedOverlap reports whether a candidate slot collides with a confirmed
// booking once the policy's buffers are applied. The test is symmetric: both
// the candidate and the booking are padded by bufferBefore/bufferAfter, so no
// booking may start or end inside another booking's padding.
func BufferedOverlap(slot models.Slot, booking models.Booking, policy models.BookingPolicy) bool {
	before := time.Duration(policy.BufferBefore) * time.Minute
	after := time.Duration(policy.BufferAfter) * time.Minute

	slotStart := slot.Start.Add(-before)
	slotEnd := slot.End.Add(after)
	bookingStart := booking.Start.Add(-before)
	bookingEnd := booking.End().Add(after)

	return overlaps(slotStart, slotEnd, bookingStart, bookingEnd)
}

// WeekStart returns midnight of the Sunday beginning t's week, in t's
// location. Sunday-start is the week convention used for per-week limits and
// dashboard trends alike.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// countOnDay counts bookings starting on the given local calendar date.
func countOnDay(bookings []models.Booking, date string, loc *time.Location) int {
	n := 0
	for _, b := range bookings {
		if b.Start.In(loc).Format("2006-01-02") == date {
			n++
		}
	}
	return n
}

// countInWeek counts bookings starting within the Sunday-start week that
// begins at weekStart.
func countInWeek(bookings []models.Booking, weekStart time.Time, loc *time.Location) int {
	n := 0
	for _, b := range bookings {
		if WeekStart(b.Start.In(loc)).Equal(weekStart) {
			n++
		}
	}
	return n
}
