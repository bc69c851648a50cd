package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	hostRepo "calendary/database/repository/host"
	ledgerRepo "calendary/database/repository/ledger"
	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday; the host works Mon 9-17 UTC.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type recordingReminders struct {
	mu        sync.Mutex
	scheduled []string
}

func (r *recordingReminders) ScheduleReminder(b *models.Booking, leadMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, b.ID)
	return nil
}

func newTestService(t *testing.T, policy models.BookingPolicy) (*DefaultBookingService, *models.HostProfile, *recordingReminders) {
	t.Helper()

	host := &models.HostProfile{
		ID:       "h1",
		Username: "alice",
		Email:    "alice@example.com",
		Availability: models.Availability{
			Timezone: "UTC",
			WeeklySchedule: map[time.Weekday][]models.TimeInterval{
				time.Monday: {{Start: 9 * 60, End: 17 * 60}},
			},
		},
		Policy: policy,
	}

	hosts := hostRepo.NewMemoryHostRepo()
	require.NoError(t, hosts.Create(host))

	reminders := &recordingReminders{}
	svc := NewDefaultBookingService(hosts, ledgerRepo.NewMemoryLedgerRepo(), reminders)
	svc.Now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	return svc, host, reminders
}

func openPolicy() models.BookingPolicy {
	return models.BookingPolicy{SlotDuration: 30, ReminderLeadMins: 60}
}

func guestRequest(start time.Time) CreateBookingRequest {
	return CreateBookingRequest{
		HostID:     "h1",
		Start:      start,
		GuestName:  "Bob",
		GuestEmail: "bob@example.com",
		Notes:      "first chat",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	svc, host, reminders := newTestService(t, openPolicy())

	start := monday.Add(10 * time.Hour)
	booked, err := svc.CreateBooking(context.Background(), guestRequest(start))
	require.NoError(t, err)

	assert.NotEmpty(t, booked.ID)
	assert.Equal(t, models.StatusConfirmed, booked.Status)
	assert.Equal(t, host.Policy.SlotDuration, booked.Duration)
	assert.True(t, booked.Start.Equal(start))
	assert.Regexp(t, `^https://meet\.calendary\.app/[a-z0-9]{3}-[a-z0-9]{4}-[a-z0-9]{3}$`, booked.MeetingLink)
	assert.Equal(t, []string{booked.ID}, reminders.scheduled)

	stored, err := svc.Ledger.GetByID(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestCreateBookingRejectsUnofferedStart(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())

	// 10:10 is not on the 30-minute grid.
	_, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(10*time.Hour+10*time.Minute)))
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// Tuesday is outside the host's working days.
	_, err = svc.CreateBooking(context.Background(), guestRequest(monday.AddDate(0, 0, 1).Add(10*time.Hour)))
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestCreateBookingDoubleBookingConflicts(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())
	start := monday.Add(10 * time.Hour)

	_, err := svc.CreateBooking(context.Background(), guestRequest(start))
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), guestRequest(start))
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// A conflict is deterministic: the same request fails the same way again.
	_, err = svc.CreateBooking(context.Background(), guestRequest(start))
	assert.True(t, IsConflict(err))
}

func TestCreateBookingConcurrentRequestsOneWins(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())
	start := monday.Add(14 * time.Hour)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), guestRequest(start))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent request may commit")
	assert.Equal(t, attempts-1, conflicts)
}

func TestCreateBookingEnforcesBuffers(t *testing.T) {
	policy := openPolicy()
	policy.BufferBefore = 15
	policy.BufferAfter = 15
	svc, _, _ := newTestService(t, policy)

	_, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	// The buffered neighbor is gone.
	_, err = svc.CreateBooking(context.Background(), guestRequest(monday.Add(10*time.Hour+30*time.Minute)))
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// One hour out the paddings meet exactly and the slot is bookable.
	_, err = svc.CreateBooking(context.Background(), guestRequest(monday.Add(11*time.Hour)))
	assert.NoError(t, err)
}

func TestCreateBookingEnforcesDailyLimitAtCommit(t *testing.T) {
	one := 1
	policy := openPolicy()
	policy.LimitPerDay = &one
	svc, _, _ := newTestService(t, policy)

	_, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), guestRequest(monday.Add(15*time.Hour)))
	require.Error(t, err)
	assert.True(t, IsConflict(err), "the cap closes the rest of the day")
}

func TestCreateBookingRequiresGuestIdentity(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())

	req := guestRequest(monday.Add(10 * time.Hour))
	req.GuestEmail = ""
	_, err := svc.CreateBooking(context.Background(), req)
	assert.Error(t, err)
	assert.False(t, IsConflict(err))
}

func TestCreateBookingUnknownHost(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())

	req := guestRequest(monday.Add(10 * time.Hour))
	req.HostID = "nobody"
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, hostRepo.ErrNotFound)
}

func TestCancelBookingFreesTheSlot(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())
	start := monday.Add(10 * time.Hour)

	booked, err := svc.CreateBooking(context.Background(), guestRequest(start))
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), booked.ID))

	rebooked, err := svc.CreateBooking(context.Background(), guestRequest(start))
	require.NoError(t, err, "a cancelled booking no longer blocks its slot")
	assert.NotEqual(t, booked.ID, rebooked.ID)
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())

	booked, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), booked.ID))
	require.NoError(t, svc.CancelBooking(context.Background(), booked.ID), "repeat cancellation is a stable no-op")

	stored, err := svc.Ledger.GetByID(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestCancelBookingUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())
	err := svc.CancelBooking(context.Background(), "no-such-booking")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBookingsDerivesDisplayStatus(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())

	past, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(9*time.Hour)))
	require.NoError(t, err)
	future, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(16*time.Hour)))
	require.NoError(t, err)
	cancelled, err := svc.CreateBooking(context.Background(), guestRequest(monday.Add(12*time.Hour)))
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(context.Background(), cancelled.ID))

	// Move the clock to Monday noon: the 9:00 meeting is over.
	svc.Now = func() time.Time { return monday.Add(12 * time.Hour) }

	views, err := svc.ListBookings(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := make(map[string]string, len(views))
	for _, v := range views {
		byID[v.ID] = v.DisplayStatus
	}
	assert.Equal(t, models.StatusCompleted, byID[past.ID])
	assert.Equal(t, models.StatusConfirmed, byID[future.ID])
	assert.Equal(t, models.StatusCancelled, byID[cancelled.ID])
}

func TestAvailableSlotsShrinkAfterBooking(t *testing.T) {
	svc, _, _ := newTestService(t, openPolicy())
	weekEnd := monday.AddDate(0, 0, 7)

	before, err := svc.AvailableSlots(context.Background(), "h1", monday, weekEnd)
	require.NoError(t, err)
	require.Len(t, before, 16)

	_, err = svc.CreateBooking(context.Background(), guestRequest(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	after, err := svc.AvailableSlots(context.Background(), "h1", monday, weekEnd)
	require.NoError(t, err)
	assert.Len(t, after, 15)
}
