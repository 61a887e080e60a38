package domain

import "time"

// WaitlistEntry is a pending slot request. It lives in exactly one
// conference's FIFO queue and in the global ID lookup.
type WaitlistEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ConferenceName string    `json:"conference_name"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

// ConfirmationWindow bounds how long a waitlist entry waits for an explicit
// user confirmation. Inside the window only ConfirmWaitlist can claim the
// entry; once it lapses the promotion sweep claims it silently.
const ConfirmationWindow = time.Hour
