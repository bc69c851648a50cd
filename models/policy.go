package models

// BookingPolicy holds the knobs that shape a host's bookable slots. Limit
// fields are pointers so "unlimited" (nil) and "zero allowed" (0) stay
// distinct.
type BookingPolicy struct {
	SlotDuration     int  `bson:"slotDuration" json:"slotDuration"`
	BufferBefore     int  `bson:"bufferBefore" json:"bufferBefore"`
	BufferAfter      int  `bson:"bufferAfter" json:"bufferAfter"`
	MinNoticeMins    int  `bson:"minNoticeMins" json:"minNoticeMins"`
	LimitPerDay      *int `bson:"limitPerDay,omitempty" json:"limitPerDay,omitempty"`
	LimitPerWeek     *int `bson:"limitPerWeek,omitempty" json:"limitPerWeek,omitempty"`
	VacationMode     bool `bson:"vacationMode" json:"vacationMode"`
	ReminderLeadMins int  `bson:"reminderLeadMins" json:"reminderLeadMins"`
}
