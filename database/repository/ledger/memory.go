package ledgerRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"calendary/models"
)

// MemoryLedgerRepo is an in-memory LedgerRepository with the same
// conditional-append semantics as the Mongo implementation. It backs tests
// and local development without a database.
type MemoryLedgerRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

// NewMemoryLedgerRepo creates an empty in-memory ledger.
func NewMemoryLedgerRepo() *MemoryLedgerRepo {
	return &MemoryLedgerRepo{bookings: make(map[string]*models.Booking)}
}

// GetByID retrieves a booking by its unique ID.
func (r *MemoryLedgerRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

// GetByHost retrieves all bookings for a host, ordered by start time.
func (r *MemoryLedgerRepo) GetByHost(hostID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	sortByStart(out)
	return out, nil
}

// GetConfirmedInRange retrieves confirmed bookings intersecting [from, to).
func (r *MemoryLedgerRepo) GetConfirmedInRange(hostID string, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.HostID != hostID || b.Status != models.StatusConfirmed {
			continue
		}
		if b.Start.Before(to) && b.End().After(from) {
			out = append(out, *b)
		}
	}
	sortByStart(out)
	return out, nil
}

// Append commits the booking unless a confirmed booking already occupies the
// padded window.
func (r *MemoryLedgerRepo) Append(_ context.Context, booking *models.Booking, bufferBefore, bufferAfter int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pad := time.Duration(bufferBefore+bufferAfter) * time.Minute
	paddedStart := booking.Start.Add(-pad)
	paddedEnd := booking.End().Add(pad)

	for _, b := range r.bookings {
		if b.HostID != booking.HostID || b.Status != models.StatusConfirmed {
			continue
		}
		if b.Start.Before(paddedEnd) && b.End().After(paddedStart) {
			return ErrConflict
		}
	}

	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

// MarkCancelled transitions a confirmed booking to cancelled.
func (r *MemoryLedgerRepo) MarkCancelled(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status == models.StatusConfirmed {
		b.Status = models.StatusCancelled
	}
	return nil
}

func sortByStart(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].Start.Before(bookings[j].Start)
	})
}
