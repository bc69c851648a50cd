package models

import "time"

// Booking statuses. "completed" is never stored; it is derived for display
// when a confirmed booking's end has passed.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking represents a confirmed or cancelled meeting on the ledger.
type Booking struct {
	ID          string    `bson:"id" json:"id"`                 // unique booking identifier (UUID)
	HostID      string    `bson:"hostId" json:"hostId"`         // host who was booked
	GuestName   string    `bson:"guestName" json:"guestName"`   // guest display name
	GuestEmail  string    `bson:"guestEmail" json:"guestEmail"` // guest contact email
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Start       time.Time `bson:"start" json:"start"`             // absolute meeting start
	Duration    int       `bson:"duration" json:"duration"`       // minutes
	Status      string    `bson:"status" json:"status"`           // "confirmed" or "cancelled"
	MeetingLink string    `bson:"meetingLink" json:"meetingLink"` // set at creation, immutable
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`     // record-creation instant, immutable
}

// End returns the derived meeting end instant.
func (b Booking) End() time.Time {
	return b.Start.Add(time.Duration(b.Duration) * time.Minute)
}

// DisplayStatus derives the status shown on dashboards: a confirmed booking
// whose end has passed reads as completed.
func (b Booking) DisplayStatus(now time.Time) string {
	if b.Status == StatusConfirmed && b.End().Before(now) {
		return StatusCompleted
	}
	return b.Status
}
