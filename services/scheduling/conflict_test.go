package scheduling

import (
	"testing"
	"time"

	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	// 2026-03-04 is a Wednesday; its week starts Sunday 2026-03-01.
	wednesday := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), WeekStart(wednesday))

	// A Sunday is its own week start.
	sunday := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), WeekStart(sunday))
}

func TestWeekStartKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	local := time.Date(2026, 3, 4, 1, 0, 0, 0, loc)
	start := WeekStart(local)
	assert.Equal(t, loc.String(), start.Location().String())
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, 0, start.Hour())
}

func TestBufferedOverlap(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{Start: base, Duration: 30}
	policy := models.BookingPolicy{SlotDuration: 30, BufferBefore: 15, BufferAfter: 15}

	slotAt := func(offset time.Duration) models.Slot {
		start := base.Add(offset)
		return models.Slot{Start: start, End: start.Add(30 * time.Minute)}
	}

	// Identical slot always collides.
	assert.True(t, BufferedOverlap(slotAt(0), booking, policy))
	// Neighbors inside the doubled padding collide from both sides.
	assert.True(t, BufferedOverlap(slotAt(-30*time.Minute), booking, policy))
	assert.True(t, BufferedOverlap(slotAt(30*time.Minute), booking, policy))
	// One full hour away the paddings meet exactly; half-open means no overlap.
	assert.False(t, BufferedOverlap(slotAt(-60*time.Minute), booking, policy))
	assert.False(t, BufferedOverlap(slotAt(60*time.Minute), booking, policy))
}

func TestBufferedOverlapWithoutBuffers(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := models.Booking{Start: base, Duration: 30}
	policy := models.BookingPolicy{SlotDuration: 30}

	adjacent := models.Slot{Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)}
	assert.False(t, BufferedOverlap(adjacent, booking, policy), "back-to-back slots are fine with zero buffers")

	straddling := models.Slot{Start: base.Add(15 * time.Minute), End: base.Add(45 * time.Minute)}
	assert.True(t, BufferedOverlap(straddling, booking, policy))
}
