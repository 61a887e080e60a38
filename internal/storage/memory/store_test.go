package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

func seedConference(t *testing.T, s *Store, name string, slots int) {
	t.Helper()
	err := s.CreateConference(context.Background(), &domain.Conference{
		Name:           name,
		Location:       "Berlin",
		Capacity:       slots,
		AvailableSlots: slots,
	})
	require.NoError(t, err)
}

func TestStore_UserCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.CreateUser(ctx, &domain.User{ID: "alice", Topics: []string{"go"}})
	require.NoError(t, err)

	err = s.CreateUser(ctx, &domain.User{ID: "alice"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)

	u, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, u.Topics)

	_, err = s.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_ConferenceCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	seedConference(t, s, "GopherCon", 10)

	err := s.CreateConference(ctx, &domain.Conference{Name: "GopherCon"})
	assert.ErrorIs(t, err, domain.ErrDuplicateConference)

	c, err := s.GetConference(ctx, "GopherCon")
	require.NoError(t, err)
	assert.Equal(t, 10, c.AvailableSlots)

	_, err = s.GetConference(ctx, "NoSuchCon")
	assert.ErrorIs(t, err, domain.ErrConferenceNotFound)
}

func TestStore_UpdateConference_RollsNothingBackButIsExclusive(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 100)

	// Concurrent decrements through the critical section must not lose
	// updates.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
				return tx.SetAvailableSlots(tx.Conference().AvailableSlots - 1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := s.GetConference(ctx, "GopherCon")
	require.NoError(t, err)
	assert.Equal(t, 0, c.AvailableSlots)
}

func TestStore_BookingLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 1)

	b := &domain.Booking{ID: "b1", UserID: "alice", ConferenceName: "GopherCon"}
	err := s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
		if err := tx.InsertBooking(b); err != nil {
			return err
		}
		// Same user, same conference: rejected regardless of booking ID.
		err := tx.InsertBooking(&domain.Booking{ID: "b2", UserID: "alice", ConferenceName: "GopherCon"})
		assert.ErrorIs(t, err, domain.ErrDuplicateBooking)

		got, err := tx.ActiveBooking("alice")
		require.NoError(t, err)
		assert.Equal(t, "b1", got.ID)

		_, err = tx.ActiveBooking("bob")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		return nil
	})
	require.NoError(t, err)

	got, err := s.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)

	err = s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
		deleted, err := tx.DeleteBooking("b1")
		require.NoError(t, err)
		assert.Equal(t, "alice", deleted.UserID)

		_, err = tx.DeleteBooking("b1")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)

		// The (user, conference) slot is free again.
		return tx.InsertBooking(&domain.Booking{ID: "b3", UserID: "alice", ConferenceName: "GopherCon"})
	})
	require.NoError(t, err)

	_, err = s.GetBooking(ctx, "b1")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestStore_WaitlistFIFO(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 0)

	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
		for i, id := range []string{"w1", "w2", "w3"} {
			err := tx.InsertWaitlistEntry(&domain.WaitlistEntry{
				ID:             id,
				UserID:         "u" + id,
				ConferenceName: "GopherCon",
				EnqueuedAt:     t0.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		head, err := tx.WaitlistHead()
		require.NoError(t, err)
		assert.Equal(t, "w1", head.ID)

		n, err := tx.WaitlistLen()
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		// Rotating the head sends it behind w3.
		require.NoError(t, tx.MoveWaitlistToTail("w1", t0.Add(time.Hour)))

		head, err = tx.WaitlistHead()
		require.NoError(t, err)
		assert.Equal(t, "w2", head.ID)
		return nil
	})
	require.NoError(t, err)

	// The move also updated the stored timestamp.
	e, err := s.GetWaitlistEntry(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, e.EnqueuedAt.Equal(t0.Add(time.Hour)))
}

func TestStore_DeleteWaitlistEntry_PurgesQueue(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 0)

	err := s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
		for _, id := range []string{"w1", "w2"} {
			require.NoError(t, tx.InsertWaitlistEntry(&domain.WaitlistEntry{
				ID: id, UserID: "u" + id, ConferenceName: "GopherCon",
			}))
		}

		// Deleting a mid-queue entry leaves no orphan ID behind.
		require.NoError(t, tx.DeleteWaitlistEntry("w1"))

		head, err := tx.WaitlistHead()
		require.NoError(t, err)
		assert.Equal(t, "w2", head.ID)

		n, err := tx.WaitlistLen()
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		err = tx.DeleteWaitlistEntry("w1")
		assert.ErrorIs(t, err, domain.ErrWaitlistEntryNotFound)
		return nil
	})
	require.NoError(t, err)

	_, err = s.GetWaitlistEntry(ctx, "w1")
	assert.ErrorIs(t, err, domain.ErrWaitlistEntryNotFound)
}

func TestStore_WaitlistHead_EmptyQueue(t *testing.T) {
	s := New()
	seedConference(t, s, "GopherCon", 0)

	err := s.UpdateConference(context.Background(), "GopherCon", func(tx ports.ConferenceTx) error {
		head, err := tx.WaitlistHead()
		require.NoError(t, err)
		assert.Nil(t, head)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ListBookingsByUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 2)
	seedConference(t, s, "KubeCon", 2)

	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, conf := range []string{"GopherCon", "KubeCon"} {
		conf := conf
		err := s.UpdateConference(ctx, conf, func(tx ports.ConferenceTx) error {
			return tx.InsertBooking(&domain.Booking{
				ID:             conf + "-b",
				UserID:         "alice",
				ConferenceName: conf,
				CreatedAt:      t0.Add(time.Duration(i) * time.Hour),
			})
		})
		require.NoError(t, err)
	}

	bookings, err := s.ListBookingsByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "KubeCon-b", bookings[0].ID, "newest first")

	none, err := s.ListBookingsByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_CountActiveBookings(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedConference(t, s, "GopherCon", 3)

	err := s.UpdateConference(ctx, "GopherCon", func(tx ports.ConferenceTx) error {
		for _, u := range []string{"alice", "bob"} {
			require.NoError(t, tx.InsertBooking(&domain.Booking{
				ID: u + "-b", UserID: u, ConferenceName: "GopherCon",
			}))
		}
		return nil
	})
	require.NoError(t, err)

	n, err := s.CountActiveBookings(ctx, "GopherCon")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_ListConferences_Sorted(t *testing.T) {
	s := New()

	for _, name := range []string{"KubeCon", "GopherCon"} {
		seedConference(t, s, name, 1)
	}

	confs, err := s.ListConferences(context.Background())
	require.NoError(t, err)
	require.Len(t, confs, 2)
	assert.Equal(t, "GopherCon", confs[0].Name)
	assert.Equal(t, "KubeCon", confs[1].Name)
}
