package ports

import (
	"context"
	"time"

	"confbooker/internal/domain"
)

// Store is the injectable backing store for the registry, the booking
// ledger and the waitlist. Implementations: storage/memory (default) and
// storage/postgres.
type Store interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)

	CreateConference(ctx context.Context, c *domain.Conference) error
	GetConference(ctx context.Context, name string) (*domain.Conference, error)
	ListConferences(ctx context.Context) ([]*domain.Conference, error)

	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	GetWaitlistEntry(ctx context.Context, id string) (*domain.WaitlistEntry, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	CountActiveBookings(ctx context.Context, conferenceName string) (int, error)

	// UpdateConference runs fn inside the conference's exclusive critical
	// section. Slot reads and writes, queue operations and ledger
	// insert/delete for one conference are only consistent inside fn.
	// A non-nil error from fn aborts the update; the postgres
	// implementation rolls the transaction back.
	UpdateConference(ctx context.Context, name string, fn func(tx ConferenceTx) error) error
}

// ConferenceTx is the view of one conference inside its critical section.
type ConferenceTx interface {
	// Conference returns the working copy of the conference. It reflects
	// mutations made through the tx; callers must not modify it directly.
	Conference() *domain.Conference
	SetAvailableSlots(n int) error

	// ActiveBooking resolves the (user, conference) secondary index.
	// Returns domain.ErrBookingNotFound when the user holds no booking.
	ActiveBooking(userID string) (*domain.Booking, error)
	InsertBooking(b *domain.Booking) error
	DeleteBooking(id string) (*domain.Booking, error)

	WaitlistEntry(id string) (*domain.WaitlistEntry, error)
	// InsertWaitlistEntry appends the entry to the tail of the queue.
	InsertWaitlistEntry(e *domain.WaitlistEntry) error
	// DeleteWaitlistEntry removes the entry from both the lookup table and
	// the queue; no orphaned IDs are left behind.
	DeleteWaitlistEntry(id string) error
	// MoveWaitlistToTail requeues an existing entry at the tail and stores
	// the given enqueued-at timestamp.
	MoveWaitlistToTail(id string, enqueuedAt time.Time) error
	// WaitlistHead returns the head entry without removing it, or
	// (nil, nil) when the queue is empty.
	WaitlistHead() (*domain.WaitlistEntry, error)
	WaitlistLen() (int, error)
}
