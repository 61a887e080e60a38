package dto

import (
	"time"

	"confbooker/internal/domain"
)

type UserResponse struct {
	ID        string   `json:"id"`
	Topics    []string `json:"interested_topics"`
	CreatedAt string   `json:"created_at"`
}

type ConferenceResponse struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Topics         []string `json:"topics"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Capacity       int      `json:"capacity"`
	AvailableSlots int      `json:"available_slots"`
	CreatedAt      string   `json:"created_at"`
}

type ConferenceDetailsResponse struct {
	Conference     ConferenceResponse `json:"conference"`
	ActiveBookings int                `json:"active_bookings"`
	WaitlistLength int                `json:"waitlist_length"`
}

type BookingResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	ConferenceName string `json:"conference_name"`
	CreatedAt      string `json:"created_at"`
}

type WaitlistEntryResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	ConferenceName string `json:"conference_name"`
	EnqueuedAt     string `json:"enqueued_at"`
}

// BookResponse reports either a confirmed booking or a waitlist placement;
// the Status field tells the caller which ID namespace it received.
type BookResponse struct {
	Status        string                 `json:"status"`
	Booking       *BookingResponse       `json:"booking,omitempty"`
	WaitlistEntry *WaitlistEntryResponse `json:"waitlist_entry,omitempty"`
}

type StatusResponse struct {
	Status         string `json:"status"`
	ConferenceName string `json:"conference_name"`
	UserID         string `json:"user_id"`
}

type CancelResponse struct {
	Result string `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Topics:    u.Topics,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func ToConferenceResponse(c *domain.Conference) ConferenceResponse {
	return ConferenceResponse{
		Name:           c.Name,
		Location:       c.Location,
		Topics:         c.Topics,
		StartTime:      c.StartTime.Format(time.RFC3339),
		EndTime:        c.EndTime.Format(time.RFC3339),
		Capacity:       c.Capacity,
		AvailableSlots: c.AvailableSlots,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func ToConferenceDetailsResponse(d *domain.ConferenceDetails) ConferenceDetailsResponse {
	return ConferenceDetailsResponse{
		Conference:     ToConferenceResponse(&d.Conference),
		ActiveBookings: d.ActiveBookings,
		WaitlistLength: d.WaitlistLength,
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		ConferenceName: b.ConferenceName,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}

func ToWaitlistEntryResponse(e *domain.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		ConferenceName: e.ConferenceName,
		EnqueuedAt:     e.EnqueuedAt.Format(time.RFC3339),
	}
}

func ToBookResponse(r *domain.BookResult) BookResponse {
	if r.Waitlisted() {
		entry := ToWaitlistEntryResponse(r.WaitlistEntry)
		return BookResponse{Status: string(domain.StatusInWaitlist), WaitlistEntry: &entry}
	}
	booking := ToBookingResponse(r.Booking)
	return BookResponse{Status: string(domain.StatusConfirmed), Booking: &booking}
}
