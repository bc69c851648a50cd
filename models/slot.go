package models

import "time"

// Slot is a candidate bookable window of fixed duration derived from a
// host's availability. Slots are half-open: [Start, End).
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DaySlots groups the offered slots for one calendar date, the shape the
// public booking page renders.
type DaySlots struct {
	Date  string `json:"date"` // "2006-01-02" in the host's timezone
	Slots []Slot `json:"slots"`
}
