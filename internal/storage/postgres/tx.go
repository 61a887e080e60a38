package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"confbooker/internal/domain"
)

// confTx runs inside the transaction that holds the FOR UPDATE lock on the
// conference row. conf is the working copy loaded at lock time.
type confTx struct {
	ctx  context.Context
	tx   *sql.Tx
	conf domain.Conference
}

func (t *confTx) Conference() *domain.Conference {
	cp := t.conf
	return &cp
}

func (t *confTx) SetAvailableSlots(n int) error {
	query := `UPDATE conferences
			  SET available_slots = $2
			  WHERE name = $1`
	if _, err := t.tx.ExecContext(t.ctx, query, t.conf.Name, n); err != nil {
		return fmt.Errorf("update available slots: %w", err)
	}
	t.conf.AvailableSlots = n
	return nil
}

func (t *confTx) ActiveBooking(userID string) (*domain.Booking, error) {
	query := `SELECT id, user_id, conference_name, created_at
			  FROM bookings
			  WHERE conference_name = $1 AND user_id = $2`
	var b domain.Booking
	err := t.tx.QueryRowContext(t.ctx, query, t.conf.Name, userID).
		Scan(&b.ID, &b.UserID, &b.ConferenceName, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get active booking: %w", err)
	}
	return &b, nil
}

func (t *confTx) InsertBooking(b *domain.Booking) error {
	query := `INSERT INTO bookings (id, user_id, conference_name, created_at)
			  VALUES ($1, $2, $3, $4)`
	_, err := t.tx.ExecContext(t.ctx, query, b.ID, b.UserID, b.ConferenceName, b.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (t *confTx) DeleteBooking(id string) (*domain.Booking, error) {
	query := `DELETE FROM bookings
			  WHERE id = $1 AND conference_name = $2
			  RETURNING id, user_id, conference_name, created_at`
	var b domain.Booking
	err := t.tx.QueryRowContext(t.ctx, query, id, t.conf.Name).
		Scan(&b.ID, &b.UserID, &b.ConferenceName, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	return &b, nil
}

func (t *confTx) WaitlistEntry(id string) (*domain.WaitlistEntry, error) {
	query := `SELECT id, user_id, conference_name, enqueued_at
			  FROM waitlist_entries
			  WHERE id = $1 AND conference_name = $2`
	var e domain.WaitlistEntry
	err := t.tx.QueryRowContext(t.ctx, query, id, t.conf.Name).
		Scan(&e.ID, &e.UserID, &e.ConferenceName, &e.EnqueuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWaitlistEntryNotFound
		}
		return nil, fmt.Errorf("get waitlist entry: %w", err)
	}
	return &e, nil
}

func (t *confTx) InsertWaitlistEntry(e *domain.WaitlistEntry) error {
	query := `INSERT INTO waitlist_entries (id, user_id, conference_name, enqueued_at, position)
			  VALUES ($1, $2, $3, $4,
				  (SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist_entries WHERE conference_name = $3))`
	_, err := t.tx.ExecContext(t.ctx, query, e.ID, e.UserID, e.ConferenceName, e.EnqueuedAt)
	if err != nil {
		return fmt.Errorf("insert waitlist entry: %w", err)
	}
	return nil
}

func (t *confTx) DeleteWaitlistEntry(id string) error {
	query := `DELETE FROM waitlist_entries
			  WHERE id = $1 AND conference_name = $2`
	res, err := t.tx.ExecContext(t.ctx, query, id, t.conf.Name)
	if err != nil {
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("waitlist rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrWaitlistEntryNotFound
	}
	return nil
}

func (t *confTx) MoveWaitlistToTail(id string, enqueuedAt time.Time) error {
	query := `UPDATE waitlist_entries
			  SET enqueued_at = $3,
				  position = (SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist_entries WHERE conference_name = $2)
			  WHERE id = $1 AND conference_name = $2`
	res, err := t.tx.ExecContext(t.ctx, query, id, t.conf.Name, enqueuedAt)
	if err != nil {
		return fmt.Errorf("requeue waitlist entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("waitlist rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrWaitlistEntryNotFound
	}
	return nil
}

func (t *confTx) WaitlistHead() (*domain.WaitlistEntry, error) {
	query := `SELECT id, user_id, conference_name, enqueued_at
			  FROM waitlist_entries
			  WHERE conference_name = $1
			  ORDER BY position
			  LIMIT 1`
	var e domain.WaitlistEntry
	err := t.tx.QueryRowContext(t.ctx, query, t.conf.Name).
		Scan(&e.ID, &e.UserID, &e.ConferenceName, &e.EnqueuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waitlist head: %w", err)
	}
	return &e, nil
}

func (t *confTx) WaitlistLen() (int, error) {
	query := `SELECT COUNT(*)
			  FROM waitlist_entries
			  WHERE conference_name = $1`
	var count int
	if err := t.tx.QueryRowContext(t.ctx, query, t.conf.Name).Scan(&count); err != nil {
		return 0, fmt.Errorf("count waitlist entries: %w", err)
	}
	return count, nil
}
