package ledgerRepo

import (
	"context"
	"testing"
	"time"

	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerBooking(id string, start time.Time) *models.Booking {
	return &models.Booking{
		ID:       id,
		HostID:   "h1",
		Start:    start,
		Duration: 30,
		Status:   models.StatusConfirmed,
	}
}

func TestAppendRejectsPaddedOverlap(t *testing.T) {
	repo := NewMemoryLedgerRepo()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(context.Background(), ledgerBooking("a", base), 15, 15))

	// The neighbor lands inside the doubled padding.
	err := repo.Append(context.Background(), ledgerBooking("b", base.Add(30*time.Minute)), 15, 15)
	assert.ErrorIs(t, err, ErrConflict)

	// One hour out the paddings meet exactly; half-open windows admit it.
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("c", base.Add(time.Hour)), 15, 15))
}

func TestAppendIgnoresOtherHostsAndCancelled(t *testing.T) {
	repo := NewMemoryLedgerRepo()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(context.Background(), ledgerBooking("a", base), 0, 0))
	require.NoError(t, repo.MarkCancelled("a"))
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("b", base), 0, 0),
		"a cancelled booking must not block its old slot")

	other := ledgerBooking("x", base)
	other.HostID = "h2"
	require.NoError(t, repo.Append(context.Background(), other, 0, 0),
		"the conflict domain is scoped per host")
}

func TestMarkCancelledSemantics(t *testing.T) {
	repo := NewMemoryLedgerRepo()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("a", base), 0, 0))

	require.NoError(t, repo.MarkCancelled("a"))
	require.NoError(t, repo.MarkCancelled("a"), "cancelling twice is a no-op")

	b, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	assert.ErrorIs(t, repo.MarkCancelled("missing"), ErrNotFound)
}

func TestGetConfirmedInRange(t *testing.T) {
	repo := NewMemoryLedgerRepo()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(context.Background(), ledgerBooking("early", day.Add(9*time.Hour)), 0, 0))
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("late", day.Add(15*time.Hour)), 0, 0))
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("nextday", day.AddDate(0, 0, 1).Add(9*time.Hour)), 0, 0))
	require.NoError(t, repo.MarkCancelled("late"))

	got, err := repo.GetConfirmedInRange("h1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "early", got[0].ID)
}

func TestGetByHostOrdersByStart(t *testing.T) {
	repo := NewMemoryLedgerRepo()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(context.Background(), ledgerBooking("second", day.Add(14*time.Hour)), 0, 0))
	require.NoError(t, repo.Append(context.Background(), ledgerBooking("first", day.Add(9*time.Hour)), 0, 0))

	got, err := repo.GetByHost("h1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}
