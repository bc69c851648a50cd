package scheduling

import (
	"time"

	"calendary/models"
	"calendary/services/availability"
)

// GenerateSlots converts a host's declarative schedule plus the current
// ledger state into the ordered set of bookable slots within
// [rangeStart, rangeEnd). It is pure: "now" is an explicit input and
// identical inputs always yield identical output.
//
// Bookings are filtered to confirmed ones belonging to hostID, so callers
// may pass the raw ledger read. Exhausted day/week limits fold into empty
// output rather than an error; only a malformed schedule raises.
func GenerateSlots(
	av models.Availability,
	policy models.BookingPolicy,
	bookings []models.Booking,
	hostID string,
	rangeStart, rangeEnd, now time.Time,
) ([]models.Slot, error) {
	if err := availability.Validate(av); err != nil {
		return nil, err
	}
	if err := availability.ValidatePolicy(policy); err != nil {
		return nil, err
	}
	if policy.VacationMode || !rangeStart.Before(rangeEnd) {
		return nil, nil
	}

	// Validate guarantees the zone resolves.
	loc, _ := time.LoadLocation(av.Timezone)

	ledger := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.HostID == hostID && b.Status == models.StatusConfirmed {
			ledger = append(ledger, b)
		}
	}

	earliest := now.Add(time.Duration(policy.MinNoticeMins) * time.Minute)
	duration := time.Duration(policy.SlotDuration) * time.Minute

	var slots []models.Slot
	first := rangeStart.In(loc)
	for day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc); day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		if av.IsExceptional(date) {
			continue
		}

		dayCount := countOnDay(ledger, date, loc)
		if policy.LimitPerDay != nil && dayCount >= *policy.LimitPerDay {
			continue
		}
		weekCount := countInWeek(ledger, WeekStart(day), loc)
		weekFull := policy.LimitPerWeek != nil && weekCount >= *policy.LimitPerWeek

		for _, iv := range av.IntervalsOn(day.Weekday()) {
			// No partial slots: an interval that is not an exact multiple of
			// the slot duration yields a trailing gap, never a short slot.
			for m := iv.Start; m+policy.SlotDuration <= iv.End; m += policy.SlotDuration {
				start := time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, loc)
				slot := models.Slot{Start: start, End: start.Add(duration)}

				if start.Before(rangeStart) || !start.Before(rangeEnd) {
					continue
				}
				if start.Before(earliest) {
					continue
				}
				if weekFull {
					continue
				}
				if conflictsWithLedger(slot, ledger, policy) {
					continue
				}
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

func conflictsWithLedger(slot models.Slot, ledger []models.Booking, policy models.BookingPolicy) bool {
	for _, b := range ledger {
		if BufferedOverlap(slot, b, policy) {
			return true
		}
	}
	return false
}

// GroupByDate buckets an ordered slot list by local calendar date, the shape
// the booking page renders.
func GroupByDate(slots []models.Slot, loc *time.Location) []models.DaySlots {
	var days []models.DaySlots
	for _, s := range slots {
		date := s.Start.In(loc).Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, models.DaySlots{Date: date})
		}
		days[len(days)-1].Slots = append(days[len(days)-1].Slots, s)
	}
	return days
}
