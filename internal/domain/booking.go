package domain

import "time"

type Booking struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ConferenceName string    `json:"conference_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusInWaitlist Status = "in_waitlist"
)

// BookingStatus is the answer to a status query: where an opaque ID
// currently lives, the booking ledger or a waitlist.
type BookingStatus struct {
	Status         Status `json:"status"`
	ConferenceName string `json:"conference_name"`
	UserID         string `json:"user_id"`
}

// BookResult is the outcome of a booking request. Exactly one of the two
// fields is set: Booking when a slot was allocated, WaitlistEntry when the
// conference was full and the request was queued.
type BookResult struct {
	Booking       *Booking       `json:"booking,omitempty"`
	WaitlistEntry *WaitlistEntry `json:"waitlist_entry,omitempty"`
}

func (r BookResult) Waitlisted() bool {
	return r.WaitlistEntry != nil
}

type CancelOutcome string

const (
	CancelledBooking    CancelOutcome = "cancelled"
	RemovedFromWaitlist CancelOutcome = "removed_from_waitlist"
)
