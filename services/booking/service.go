package booking

import (
	"context"
	"fmt"
	"time"

	hostRepo "calendary/database/repository/host"
	ledgerRepo "calendary/database/repository/ledger"
	"calendary/models"
	"calendary/services/scheduling"
	"calendary/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	HostRepo  hostRepo.HostRepository
	Ledger    ledgerRepo.LedgerRepository
	Reminders ReminderScheduler // optional
	Now       func() time.Time  // defaults to time.Now

	locks *hostLocks
}

// NewDefaultBookingService wires a booking service over the given stores.
func NewDefaultBookingService(hosts hostRepo.HostRepository, ledger ledgerRepo.LedgerRepository, reminders ReminderScheduler) *DefaultBookingService {
	return &DefaultBookingService{
		HostRepo:  hosts,
		Ledger:    ledger,
		Reminders: reminders,
		locks:     newHostLocks(),
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableSlots computes the offerable slots for a host over
// [rangeStart, rangeEnd) against current ledger state.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, hostID string, rangeStart, rangeEnd time.Time) ([]models.Slot, error) {
	host, err := s.HostRepo.GetByID(hostID)
	if err != nil {
		return nil, err
	}
	return s.generate(host, rangeStart, rangeEnd, s.now())
}

func (s *DefaultBookingService) generate(host *models.HostProfile, rangeStart, rangeEnd, now time.Time) ([]models.Slot, error) {
	// Read wider than the range so week limits and buffered neighbors just
	// outside it are counted.
	readFrom := scheduling.WeekStart(rangeStart).AddDate(0, 0, -1)
	readTo := scheduling.WeekStart(rangeEnd).AddDate(0, 0, 8)
	existing, err := s.Ledger.GetConfirmedInRange(host.ID, readFrom, readTo)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for host %s: %w", host.ID, err)
	}
	return scheduling.GenerateSlots(host.Availability, host.Policy, existing, host.ID, rangeStart, rangeEnd, now)
}

// CreateBooking re-validates the selected slot against current ledger state
// under a per-host lock and, if it is still offerable, commits exactly one
// confirmed booking with a generated meeting link.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if req.GuestName == "" || req.GuestEmail == "" {
		return nil, fmt.Errorf("guest name and email are required")
	}

	host, err := s.HostRepo.GetByID(req.HostID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forHost(req.HostID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	dayStart := req.Start.Add(-24 * time.Hour)
	dayEnd := req.Start.Add(24 * time.Hour)
	slots, err := s.generate(host, dayStart, dayEnd, now)
	if err != nil {
		return nil, err
	}
	if !slotOffered(slots, req.Start) {
		return nil, &ConflictError{HostID: req.HostID, Start: req.Start}
	}

	link, err := GenerateMeetingLink()
	if err != nil {
		return nil, err
	}

	newBooking := &models.Booking{
		ID:          uuid.New().String(),
		HostID:      req.HostID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		Notes:       req.Notes,
		Start:       req.Start,
		Duration:    host.Policy.SlotDuration,
		Status:      models.StatusConfirmed,
		MeetingLink: link,
		CreatedAt:   now,
	}

	if err := s.Ledger.Append(ctx, newBooking, host.Policy.BufferBefore, host.Policy.BufferAfter); err != nil {
		if err == ledgerRepo.ErrConflict {
			return nil, &ConflictError{HostID: req.HostID, Start: req.Start}
		}
		return nil, err
	}

	if s.Reminders != nil && host.Policy.ReminderLeadMins > 0 {
		if err := s.Reminders.ScheduleReminder(newBooking, host.Policy.ReminderLeadMins); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("bookingID", newBooking.ID), zap.Error(err))
		}
	}

	return newBooking, nil
}

// CancelBooking transitions a booking to cancelled. Cancelling an
// already-cancelled booking is a stable no-op.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	if err := s.Ledger.MarkCancelled(bookingID); err != nil {
		if err == ledgerRepo.ErrNotFound {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// ListBookings returns a host's bookings with display statuses derived
// against the current clock.
func (s *DefaultBookingService) ListBookings(ctx context.Context, hostID string) ([]BookingView, error) {
	bookings, err := s.Ledger.GetByHost(hostID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, BookingView{Booking: b, DisplayStatus: b.DisplayStatus(now)})
	}
	return views, nil
}

// slotOffered reports whether the requested start matches one of the
// currently offerable slots exactly.
func slotOffered(slots []models.Slot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return true
		}
	}
	return false
}
