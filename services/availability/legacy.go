package availability

import (
	"fmt"
	"time"

	"calendary/models"
)

// LegacyAvailability is the retired single-interval-per-day shape: a list of
// enabled day names plus one shared start/end pair. Records still stored this
// way are adapted into the unified multi-interval schedule on read or write.
type LegacyAvailability struct {
	Days  []string `bson:"days" json:"days"` // e.g., ["Monday", "Tuesday"]
	Hours struct {
		Start string `bson:"start" json:"start"` // "09:00"
		End   string `bson:"end" json:"end"`     // "17:00"
	} `bson:"hours" json:"hours"`
	Timezone string `bson:"timezone" json:"timezone"`
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// FromLegacy converts a legacy record into the unified schedule. The result
// is validated before being returned.
func FromLegacy(legacy LegacyAvailability) (models.Availability, error) {
	start, err := parseClock(legacy.Hours.Start)
	if err != nil {
		return models.Availability{}, invalidf("legacy start time: %v", err)
	}
	end, err := parseClock(legacy.Hours.End)
	if err != nil {
		return models.Availability{}, invalidf("legacy end time: %v", err)
	}

	schedule := make(map[time.Weekday][]models.TimeInterval, len(legacy.Days))
	for _, name := range legacy.Days {
		day, ok := weekdayNames[name]
		if !ok {
			return models.Availability{}, invalidf("legacy day name %q", name)
		}
		schedule[day] = []models.TimeInterval{{Start: start, End: end}}
	}

	av := models.Availability{
		Timezone:       legacy.Timezone,
		WeeklySchedule: schedule,
	}
	if err := Validate(av); err != nil {
		return models.Availability{}, err
	}
	return av, nil
}

// parseClock converts "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}
