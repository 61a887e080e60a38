package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

// AllocationService keeps slot counts, the booking ledger and the waitlist
// consistent. Every mutating path runs inside the conference's critical
// section; notifications happen after it is released.
type AllocationService struct {
	store    ports.Store
	notifier ports.Notifier
	clock    ports.Clock
	logger   logger.Logger
}

func NewAllocationService(
	store ports.Store,
	notifier ports.Notifier,
	clock ports.Clock,
	logger logger.Logger,
) *AllocationService {
	return &AllocationService{
		store:    store,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Book allocates a slot for the user, or queues a waitlist entry when the
// conference is full. The duplicate check and the slot decrement share one
// critical section so two racing requests cannot both take the last slot.
func (s *AllocationService) Book(ctx context.Context, userID, conferenceName string) (*domain.BookResult, error) {
	if _, err := s.store.GetConference(ctx, conferenceName); err != nil {
		return nil, fmt.Errorf("check conference: %w", err)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	now := s.clock.Now().UTC()
	var res domain.BookResult
	err := s.store.UpdateConference(ctx, conferenceName, func(tx ports.ConferenceTx) error {
		_, err := tx.ActiveBooking(userID)
		if err == nil {
			return domain.ErrDuplicateBooking
		}
		if !errors.Is(err, domain.ErrBookingNotFound) {
			return err
		}

		conf := tx.Conference()
		if conf.AvailableSlots > 0 {
			b := &domain.Booking{
				ID:             uuid.New().String(),
				UserID:         userID,
				ConferenceName: conferenceName,
				CreatedAt:      now,
			}
			if err := tx.InsertBooking(b); err != nil {
				return err
			}
			if err := tx.SetAvailableSlots(conf.AvailableSlots - 1); err != nil {
				return err
			}
			res.Booking = b
			return nil
		}

		e := &domain.WaitlistEntry{
			ID:             uuid.New().String(),
			UserID:         userID,
			ConferenceName: conferenceName,
			EnqueuedAt:     now,
		}
		if err := tx.InsertWaitlistEntry(e); err != nil {
			return err
		}
		res.WaitlistEntry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Waitlisted() {
		s.logger.Info("request waitlisted",
			logger.String("waitlist_id", res.WaitlistEntry.ID),
			logger.String("conference", conferenceName),
			logger.String("user_id", userID),
		)
	} else {
		s.logger.Info("booking created",
			logger.String("booking_id", res.Booking.ID),
			logger.String("conference", conferenceName),
			logger.String("user_id", userID),
		)
	}

	return &res, nil
}

// ConfirmWaitlist converts a waitlist entry into a booking on the user's
// explicit request. Past the confirmation window the entry is requeued at
// the tail with a fresh timestamp and the call fails.
func (s *AllocationService) ConfirmWaitlist(ctx context.Context, waitlistID string) (*domain.Booking, error) {
	entry, err := s.store.GetWaitlistEntry(ctx, waitlistID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	var (
		booking *domain.Booking
		expired bool
	)
	err = s.store.UpdateConference(ctx, entry.ConferenceName, func(tx ports.ConferenceTx) error {
		e, err := tx.WaitlistEntry(waitlistID)
		if err != nil {
			return err
		}

		conf := tx.Conference()
		if conf.AvailableSlots <= 0 {
			return domain.ErrNoSlotsAvailable
		}

		if now.Sub(e.EnqueuedAt) > domain.ConfirmationWindow {
			// The window restarts at the new tail position.
			expired = true
			return tx.MoveWaitlistToTail(e.ID, now)
		}

		b := &domain.Booking{
			ID:             uuid.New().String(),
			UserID:         e.UserID,
			ConferenceName: e.ConferenceName,
			CreatedAt:      now,
		}
		if err := tx.InsertBooking(b); err != nil {
			return err
		}
		if err := tx.SetAvailableSlots(conf.AvailableSlots - 1); err != nil {
			return err
		}
		if err := tx.DeleteWaitlistEntry(e.ID); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		s.logger.Info("waitlist confirmation expired",
			logger.String("waitlist_id", waitlistID),
			logger.String("conference", entry.ConferenceName),
		)
		return nil, domain.ErrConfirmationExpired
	}

	s.logger.Info("waitlist entry confirmed",
		logger.String("booking_id", booking.ID),
		logger.String("conference", booking.ConferenceName),
		logger.String("user_id", booking.UserID),
	)

	return booking, nil
}

// Cancel removes a booking or a waitlist entry; the two ID namespaces are
// checked in that order. Cancelling a booking frees its slot and runs the
// promotion pass.
func (s *AllocationService) Cancel(ctx context.Context, id string) (domain.CancelOutcome, error) {
	if b, err := s.store.GetBooking(ctx, id); err == nil {
		return s.cancelBooking(ctx, b)
	} else if !errors.Is(err, domain.ErrBookingNotFound) {
		return "", err
	}

	if e, err := s.store.GetWaitlistEntry(ctx, id); err == nil {
		return s.cancelWaitlistEntry(ctx, e)
	} else if !errors.Is(err, domain.ErrWaitlistEntryNotFound) {
		return "", err
	}

	return "", domain.ErrBookingNotFound
}

func (s *AllocationService) cancelBooking(ctx context.Context, b *domain.Booking) (domain.CancelOutcome, error) {
	now := s.clock.Now().UTC()
	var promoted []*domain.Booking
	err := s.store.UpdateConference(ctx, b.ConferenceName, func(tx ports.ConferenceTx) error {
		// Re-check under the lock: a concurrent cancel may have won.
		if _, err := tx.DeleteBooking(b.ID); err != nil {
			return err
		}
		if err := tx.SetAvailableSlots(tx.Conference().AvailableSlots + 1); err != nil {
			return err
		}
		var err error
		promoted, err = s.promote(tx, now)
		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", b.ID),
		logger.String("conference", b.ConferenceName),
	)
	s.notifyPromoted(ctx, promoted)

	return domain.CancelledBooking, nil
}

func (s *AllocationService) cancelWaitlistEntry(ctx context.Context, e *domain.WaitlistEntry) (domain.CancelOutcome, error) {
	err := s.store.UpdateConference(ctx, e.ConferenceName, func(tx ports.ConferenceTx) error {
		return tx.DeleteWaitlistEntry(e.ID)
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("removed from waitlist",
		logger.String("waitlist_id", e.ID),
		logger.String("conference", e.ConferenceName),
	)

	return domain.RemovedFromWaitlist, nil
}

// Status reports where an opaque ID currently lives: the booking ledger
// first, then the waitlist.
func (s *AllocationService) Status(ctx context.Context, id string) (*domain.BookingStatus, error) {
	if b, err := s.store.GetBooking(ctx, id); err == nil {
		return &domain.BookingStatus{
			Status:         domain.StatusConfirmed,
			ConferenceName: b.ConferenceName,
			UserID:         b.UserID,
		}, nil
	} else if !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, err
	}

	if e, err := s.store.GetWaitlistEntry(ctx, id); err == nil {
		return &domain.BookingStatus{
			Status:         domain.StatusInWaitlist,
			ConferenceName: e.ConferenceName,
			UserID:         e.UserID,
		}, nil
	} else if !errors.Is(err, domain.ErrWaitlistEntryNotFound) {
		return nil, err
	}

	return nil, domain.ErrBookingNotFound
}

func (s *AllocationService) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.store.ListBookingsByUser(ctx, userID)
}

// PromoteEligible sweeps all conferences and promotes waitlist entries
// whose confirmation window has lapsed. Called periodically by the
// scheduler to pick up entries that became eligible after the slot was
// freed.
func (s *AllocationService) PromoteEligible(ctx context.Context) ([]*domain.Booking, error) {
	conferences, err := s.store.ListConferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}

	now := s.clock.Now().UTC()
	var all []*domain.Booking
	for _, c := range conferences {
		if c.AvailableSlots <= 0 {
			continue
		}

		var promoted []*domain.Booking
		err := s.store.UpdateConference(ctx, c.Name, func(tx ports.ConferenceTx) error {
			var err error
			promoted, err = s.promote(tx, now)
			return err
		})
		if err != nil {
			s.logger.Error("promotion sweep failed",
				logger.String("conference", c.Name),
				logger.String("error", err.Error()),
			)
			continue
		}

		s.notifyPromoted(ctx, promoted)
		all = append(all, promoted...)
	}
	return all, nil
}

// promote pops the queue head while slots remain. A head whose
// confirmation window has lapsed is promoted; a head still inside its
// window is pushed to the tail (timestamp unchanged) and the pass stops so
// the loop cannot cycle over not-yet-eligible entries.
func (s *AllocationService) promote(tx ports.ConferenceTx, now time.Time) ([]*domain.Booking, error) {
	var promoted []*domain.Booking
	for {
		conf := tx.Conference()
		if conf.AvailableSlots <= 0 {
			break
		}

		head, err := tx.WaitlistHead()
		if err != nil {
			return promoted, err
		}
		if head == nil {
			break
		}

		if now.Sub(head.EnqueuedAt) <= domain.ConfirmationWindow {
			if err := tx.MoveWaitlistToTail(head.ID, head.EnqueuedAt); err != nil {
				return promoted, err
			}
			break
		}

		b := &domain.Booking{
			ID:             uuid.New().String(),
			UserID:         head.UserID,
			ConferenceName: conf.Name,
			CreatedAt:      now,
		}
		if err := tx.InsertBooking(b); err != nil {
			if errors.Is(err, domain.ErrDuplicateBooking) {
				// The user booked directly while queued; the entry is stale.
				if err := tx.DeleteWaitlistEntry(head.ID); err != nil {
					return promoted, err
				}
				continue
			}
			return promoted, err
		}
		if err := tx.DeleteWaitlistEntry(head.ID); err != nil {
			return promoted, err
		}
		if err := tx.SetAvailableSlots(conf.AvailableSlots - 1); err != nil {
			return promoted, err
		}
		promoted = append(promoted, b)
	}
	return promoted, nil
}

// notifyPromoted fires the notification sink for each promoted booking,
// outside the conference lock. Failures are logged and swallowed.
func (s *AllocationService) notifyPromoted(ctx context.Context, promoted []*domain.Booking) {
	if len(promoted) == 0 {
		return
	}

	bg := context.WithoutCancel(ctx)
	for _, b := range promoted {
		s.logger.Info("waitlist entry promoted",
			logger.String("booking_id", b.ID),
			logger.String("conference", b.ConferenceName),
			logger.String("user_id", b.UserID),
		)

		user, err := s.store.GetUser(bg, b.UserID)
		if err != nil {
			s.logger.Error("failed to get user for promotion notification",
				logger.String("user_id", b.UserID),
			)
			continue
		}
		conf, err := s.store.GetConference(bg, b.ConferenceName)
		if err != nil {
			s.logger.Error("failed to get conference for promotion notification",
				logger.String("conference", b.ConferenceName),
			)
			continue
		}

		go s.notifier.NotifyPromoted(bg, user, conf, b)
	}
}
