package booking

import (
	"context"
	"time"

	"calendary/models"
)

// CreateBookingRequest carries a guest's slot selection.
type CreateBookingRequest struct {
	HostID     string    `json:"hostId" binding:"required"`
	Start      time.Time `json:"start" binding:"required"` // must equal an offered slot start
	GuestName  string    `json:"guestName" binding:"required"`
	GuestEmail string    `json:"guestEmail" binding:"required,email"`
	Notes      string    `json:"notes"`
}

// BookingView is a ledger record plus its derived display status.
type BookingView struct {
	models.Booking
	DisplayStatus string `json:"displayStatus"`
}

// BookingService is the transactional core around the ledger: computing
// offerable slots, converting a slot selection into a confirmed booking, and
// cancelling.
type BookingService interface {
	// AvailableSlots computes the offerable slots for a host over
	// [rangeStart, rangeEnd).
	AvailableSlots(ctx context.Context, hostID string, rangeStart, rangeEnd time.Time) ([]models.Slot, error)
	// CreateBooking atomically converts a slot selection into a confirmed
	// booking, re-validating against current ledger state. Returns a
	// *ConflictError when the slot is gone.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	// CancelBooking transitions confirmed -> cancelled; one-way, idempotent.
	CancelBooking(ctx context.Context, bookingID string) error
	// ListBookings returns a host's bookings with display statuses.
	ListBookings(ctx context.Context, hostID string) ([]BookingView, error)
}

// ReminderScheduler schedules a "meeting soon" reminder for a confirmed
// booking. Delivery is someone else's problem; the core only decides when.
type ReminderScheduler interface {
	ScheduleReminder(booking *models.Booking, leadMinutes int) error
}
