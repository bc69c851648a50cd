package ledgerRepo

import (
	"context"
	"errors"
	"time"

	"calendary/models"
)

// ErrNotFound is returned when a booking id does not exist on the ledger.
var ErrNotFound = errors.New("booking not found")

// ErrConflict is returned when a conditional append finds the requested
// window already occupied by a confirmed booking.
var ErrConflict = errors.New("booking window no longer free")

// LedgerRepository is the authoritative store of bookings. Reads must
// reflect committed state at call time; Append must be conditional so a
// window can never be double-committed.
type LedgerRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByHost retrieves all bookings for a host, ordered by start time.
	GetByHost(hostID string) ([]models.Booking, error)
	// GetConfirmedInRange retrieves confirmed bookings for a host whose
	// window intersects [from, to), ordered by start time.
	GetConfirmedInRange(hostID string, from, to time.Time) ([]models.Booking, error)
	// Append commits a confirmed booking if, at commit time, no confirmed
	// booking occupies the new booking's window padded by the given buffers.
	// Returns ErrConflict otherwise; exactly one append happens on success.
	Append(ctx context.Context, booking *models.Booking, bufferBefore, bufferAfter int) error
	// MarkCancelled transitions a confirmed booking to cancelled. Cancelling
	// an already-cancelled booking is a no-op; an unknown id is ErrNotFound.
	MarkCancelled(id string) error
}
