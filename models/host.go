package models

import "time"

// HostProfile is the public-facing document for a host: who they are, when
// they are available, and under what policy they accept bookings.
type HostProfile struct {
	ID             string        `bson:"id" json:"id"`
	Username       string        `bson:"username" json:"username"` // public booking-page handle
	Email          string        `bson:"email" json:"email"`
	DisplayName    string        `bson:"displayName" json:"displayName"`
	WelcomeMessage string        `bson:"welcomeMessage" json:"welcomeMessage"`
	Availability   Availability  `bson:"availability" json:"availability"`
	Policy         BookingPolicy `bson:"policy" json:"policy"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

// DefaultAvailability is the schedule new hosts start with: Mon-Fri, 9am-5pm.
func DefaultAvailability(timezone string) Availability {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	schedule := make(map[time.Weekday][]TimeInterval, len(weekdays))
	for _, day := range weekdays {
		schedule[day] = []TimeInterval{{Start: 9 * 60, End: 17 * 60}}
	}
	return Availability{
		Timezone:       timezone,
		WeeklySchedule: schedule,
	}
}

// DefaultPolicy mirrors the settings a host receives at signup.
func DefaultPolicy() BookingPolicy {
	perDay := 5
	perWeek := 20
	return BookingPolicy{
		SlotDuration:     30,
		BufferBefore:     15,
		BufferAfter:      15,
		MinNoticeMins:    24 * 60,
		LimitPerDay:      &perDay,
		LimitPerWeek:     &perWeek,
		ReminderLeadMins: 24 * 60,
	}
}
