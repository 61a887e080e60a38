package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrConferenceNotFound    = errors.New("conference not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrWaitlistEntryNotFound = errors.New("waitlist entry not found")
)

var (
	ErrDuplicateUser       = errors.New("user id is already registered")
	ErrDuplicateConference = errors.New("conference name is already registered")
	ErrDuplicateBooking    = errors.New("user already has a booking for this conference")
	ErrNoSlotsAvailable    = errors.New("no slots available")
	ErrConfirmationExpired = errors.New("confirmation window expired, moved to end of waitlist")
)

var (
	ErrValidation = errors.New("validation error")
)
