package stats

import (
	"context"
	"time"

	ledgerRepo "calendary/database/repository/ledger"
	"calendary/models"
	"calendary/services/scheduling"
)

// DayCount is one bar of the weekly dashboard chart.
type DayCount struct {
	Day   string `json:"day"` // "Sun".."Sat"
	Count int    `json:"count"`
}

// Summary is the dashboard view of a host's booking activity. Week windows
// are Sunday-start in the host's timezone, matching the per-week policy
// limit convention.
type Summary struct {
	Total          int        `json:"total"`
	Upcoming       int        `json:"upcoming"`
	Completed      int        `json:"completed"`
	Cancelled      int        `json:"cancelled"`
	ThisWeek       int        `json:"thisWeek"`
	LastWeek       int        `json:"lastWeek"`
	WeekTrendPct   float64    `json:"weekTrendPct"`
	DailyThisWeek  []DayCount `json:"dailyThisWeek"`
	NextBookingID  string     `json:"nextBookingId,omitempty"`
	MinutesToNext  int        `json:"minutesToNext,omitempty"` // countdown to the next confirmed start
	HasNextBooking bool       `json:"hasNextBooking"`
}

// StatsService computes dashboard summaries from the ledger.
type StatsService interface {
	Summarize(ctx context.Context, host *models.HostProfile) (Summary, error)
}

// DefaultStatsService is the production implementation.
type DefaultStatsService struct {
	Ledger ledgerRepo.LedgerRepository
	Now    func() time.Time // defaults to time.Now
}

// NewDefaultStatsService creates a stats service over the given ledger.
func NewDefaultStatsService(ledger ledgerRepo.LedgerRepository) *DefaultStatsService {
	return &DefaultStatsService{Ledger: ledger}
}

func (s *DefaultStatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summarize aggregates the host's ledger into the dashboard summary.
func (s *DefaultStatsService) Summarize(ctx context.Context, host *models.HostProfile) (Summary, error) {
	bookings, err := s.Ledger.GetByHost(host.ID)
	if err != nil {
		return Summary{}, err
	}

	loc := time.UTC
	if l, err := time.LoadLocation(host.Availability.Timezone); err == nil {
		loc = l
	}

	now := s.now().In(loc)
	weekStart := scheduling.WeekStart(now)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	summary := Summary{
		Total:         len(bookings),
		DailyThisWeek: emptyWeek(),
	}

	var next *models.Booking
	for i := range bookings {
		b := bookings[i]
		switch b.DisplayStatus(now) {
		case models.StatusCancelled:
			summary.Cancelled++
			continue
		case models.StatusCompleted:
			summary.Completed++
		default:
			summary.Upcoming++
			if next == nil && b.Start.After(now) {
				next = &bookings[i]
			}
		}

		start := b.Start.In(loc)
		bucket := scheduling.WeekStart(start)
		switch {
		case bucket.Equal(weekStart):
			summary.ThisWeek++
			summary.DailyThisWeek[int(start.Weekday())].Count++
		case bucket.Equal(lastWeekStart):
			summary.LastWeek++
		}
	}

	if summary.LastWeek > 0 {
		summary.WeekTrendPct = float64(summary.ThisWeek-summary.LastWeek) / float64(summary.LastWeek) * 100
	} else if summary.ThisWeek > 0 {
		summary.WeekTrendPct = 100
	}

	if next != nil {
		summary.HasNextBooking = true
		summary.NextBookingID = next.ID
		summary.MinutesToNext = int(next.Start.Sub(now).Minutes())
	}
	return summary, nil
}

func emptyWeek() []DayCount {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	week := make([]DayCount, 7)
	for i, n := range names {
		week[i] = DayCount{Day: n}
	}
	return week
}
