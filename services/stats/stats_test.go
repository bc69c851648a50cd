package stats

import (
	"context"
	"testing"
	"time"

	ledgerRepo "calendary/database/repository/ledger"
	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixed clock is Wednesday 2026-03-04 12:00 UTC; its week starts Sunday
// 2026-03-01.
var statsNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func statsHost() *models.HostProfile {
	return &models.HostProfile{
		ID:           "h1",
		Username:     "alice",
		Availability: models.Availability{Timezone: "UTC"},
	}
}

func seedBooking(t *testing.T, ledger ledgerRepo.LedgerRepository, id string, start time.Time, status string) {
	t.Helper()
	b := &models.Booking{
		ID:       id,
		HostID:   "h1",
		Start:    start,
		Duration: 30,
		Status:   models.StatusConfirmed,
	}
	require.NoError(t, ledger.Append(context.Background(), b, 0, 0))
	if status == models.StatusCancelled {
		require.NoError(t, ledger.MarkCancelled(id))
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	svc := NewDefaultStatsService(ledgerRepo.NewMemoryLedgerRepo())
	svc.Now = func() time.Time { return statsNow }

	summary, err := svc.Summarize(context.Background(), statsHost())
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.WeekTrendPct)
	assert.False(t, summary.HasNextBooking)
	require.Len(t, summary.DailyThisWeek, 7)
	assert.Equal(t, "Sun", summary.DailyThisWeek[0].Day)
	assert.Equal(t, "Sat", summary.DailyThisWeek[6].Day)
}

func TestSummarizeBucketsAndTrend(t *testing.T) {
	ledger := ledgerRepo.NewMemoryLedgerRepo()
	svc := NewDefaultStatsService(ledger)
	svc.Now = func() time.Time { return statsNow }

	// Last week: one completed booking (Tuesday 2026-02-24).
	seedBooking(t, ledger, "lastweek", time.Date(2026, 2, 24, 10, 0, 0, 0, time.UTC), models.StatusConfirmed)
	// This week: one completed Monday, one upcoming Thursday.
	seedBooking(t, ledger, "done", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), models.StatusConfirmed)
	seedBooking(t, ledger, "next", time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC), models.StatusConfirmed)
	// Cancelled bookings count toward the total only.
	seedBooking(t, ledger, "gone", time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), models.StatusCancelled)

	summary, err := svc.Summarize(context.Background(), statsHost())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.Upcoming)
	assert.Equal(t, 1, summary.Cancelled)
	assert.Equal(t, 2, summary.ThisWeek)
	assert.Equal(t, 1, summary.LastWeek)
	assert.InDelta(t, 100, summary.WeekTrendPct, 0.01, "two this week against one last week is +100%")

	// The daily chart buckets by weekday: Monday and Thursday.
	assert.Equal(t, 1, summary.DailyThisWeek[int(time.Monday)].Count)
	assert.Equal(t, 1, summary.DailyThisWeek[int(time.Thursday)].Count)
	assert.Zero(t, summary.DailyThisWeek[int(time.Tuesday)].Count)
}

func TestSummarizeNextBookingCountdown(t *testing.T) {
	ledger := ledgerRepo.NewMemoryLedgerRepo()
	svc := NewDefaultStatsService(ledger)
	svc.Now = func() time.Time { return statsNow }

	seedBooking(t, ledger, "soon", statsNow.Add(90*time.Minute), models.StatusConfirmed)
	seedBooking(t, ledger, "later", statsNow.Add(48*time.Hour), models.StatusConfirmed)

	summary, err := svc.Summarize(context.Background(), statsHost())
	require.NoError(t, err)

	assert.True(t, summary.HasNextBooking)
	assert.Equal(t, "soon", summary.NextBookingID)
	assert.Equal(t, 90, summary.MinutesToNext)
}

func TestSummarizeTrendWhenLastWeekEmpty(t *testing.T) {
	ledger := ledgerRepo.NewMemoryLedgerRepo()
	svc := NewDefaultStatsService(ledger)
	svc.Now = func() time.Time { return statsNow }

	seedBooking(t, ledger, "only", statsNow.Add(24*time.Hour), models.StatusConfirmed)

	summary, err := svc.Summarize(context.Background(), statsHost())
	require.NoError(t, err)
	assert.InDelta(t, 100, summary.WeekTrendPct, 0.01, "any activity against an empty last week reads as +100%")
}
