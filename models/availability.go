package models

import "time"

// TimeInterval is a half-open window within a day, expressed in minutes from
// midnight. Start is inclusive, End exclusive, both in [0, 1440].
type TimeInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Availability describes a host's recurring weekly schedule. All intervals are
// interpreted in the host's Timezone; exceptional dates are fully blocked.
type Availability struct {
	Timezone         string                          `bson:"timezone" json:"timezone"`
	WeeklySchedule   map[time.Weekday][]TimeInterval `bson:"weeklySchedule" json:"weeklySchedule"`
	ExceptionalDates []string                        `bson:"exceptionalDates,omitempty" json:"exceptionalDates,omitempty"`
}

// IntervalsOn returns the working intervals for a weekday, nil when the host
// does not work that day.
func (a Availability) IntervalsOn(day time.Weekday) []TimeInterval {
	return a.WeeklySchedule[day]
}

// IsExceptional reports whether the given date (formatted "2006-01-02") is
// blocked out entirely.
func (a Availability) IsExceptional(date string) bool {
	for _, d := range a.ExceptionalDates {
		if d == date {
			return true
		}
	}
	return false
}
