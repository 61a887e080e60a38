package domain

import "time"

type Conference struct {
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Topics         []string  `json:"topics"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Capacity       int       `json:"capacity"`
	AvailableSlots int       `json:"available_slots"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConferenceDetails struct {
	Conference     Conference `json:"conference"`
	ActiveBookings int        `json:"active_bookings"`
	WaitlistLength int        `json:"waitlist_length"`
}

type RegisterConferenceInput struct {
	Name      string
	Location  string
	Topics    []string
	StartTime time.Time
	EndTime   time.Time
	Capacity  int
}
