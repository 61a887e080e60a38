// Package postgres implements the Store on PostgreSQL. The per-conference
// critical section is a transaction holding a FOR UPDATE lock on the
// conference row; queue order is a position column.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

const uniqueViolation = "23505"

type Store struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func New(db *dbpg.DB) *Store {
	return &Store{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, topics, created_at)
			  VALUES ($1, $2, $3)`
	_, err := s.db.ExecWithRetry(ctx, s.strategy, query, u.ID, pq.Array(u.Topics), u.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, topics, created_at
			  FROM users
			  WHERE id = $1`
	row, err := s.db.QueryRowWithRetry(ctx, s.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var u domain.User
	if err = row.Scan(&u.ID, pq.Array(&u.Topics), &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, topics, created_at
			  FROM users
			  ORDER BY id`
	rows, err := s.db.QueryWithRetry(ctx, s.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		var u domain.User
		if err = rows.Scan(&u.ID, pq.Array(&u.Topics), &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, &u)
	}
	return res, rows.Err()
}

func (s *Store) CreateConference(ctx context.Context, c *domain.Conference) error {
	query := `INSERT INTO conferences (name, location, topics, start_time, end_time, capacity, available_slots, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecWithRetry(
		ctx, s.strategy, query,
		c.Name, c.Location, pq.Array(c.Topics), c.StartTime, c.EndTime,
		c.Capacity, c.AvailableSlots, c.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateConference
		}
		return fmt.Errorf("insert conference: %w", err)
	}
	return nil
}

func (s *Store) GetConference(ctx context.Context, name string) (*domain.Conference, error) {
	query := `SELECT name, location, topics, start_time, end_time, capacity, available_slots, created_at
			  FROM conferences
			  WHERE name = $1`
	row, err := s.db.QueryRowWithRetry(ctx, s.strategy, query, name)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}

	var c domain.Conference
	if err = scanConference(row.Scan, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, fmt.Errorf("scan conference: %w", err)
	}
	return &c, nil
}

func (s *Store) ListConferences(ctx context.Context) ([]*domain.Conference, error) {
	query := `SELECT name, location, topics, start_time, end_time, capacity, available_slots, created_at
			  FROM conferences
			  ORDER BY name`
	rows, err := s.db.QueryWithRetry(ctx, s.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	defer rows.Close()

	var res []*domain.Conference
	for rows.Next() {
		var c domain.Conference
		if err = scanConference(rows.Scan, &c); err != nil {
			return nil, fmt.Errorf("scan conference: %w", err)
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT id, user_id, conference_name, created_at
			  FROM bookings
			  WHERE id = $1`
	row, err := s.db.QueryRowWithRetry(ctx, s.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	var b domain.Booking
	if err = row.Scan(&b.ID, &b.UserID, &b.ConferenceName, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return &b, nil
}

func (s *Store) GetWaitlistEntry(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	query := `SELECT id, user_id, conference_name, enqueued_at
			  FROM waitlist_entries
			  WHERE id = $1`
	row, err := s.db.QueryRowWithRetry(ctx, s.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get waitlist entry: %w", err)
	}

	var e domain.WaitlistEntry
	if err = row.Scan(&e.ID, &e.UserID, &e.ConferenceName, &e.EnqueuedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWaitlistEntryNotFound
		}
		return nil, fmt.Errorf("scan waitlist entry: %w", err)
	}
	return &e, nil
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `SELECT id, user_id, conference_name, created_at
			  FROM bookings
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.db.QueryWithRetry(ctx, s.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err = rows.Scan(&b.ID, &b.UserID, &b.ConferenceName, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, &b)
	}
	return res, rows.Err()
}

func (s *Store) CountActiveBookings(ctx context.Context, conferenceName string) (int, error) {
	query := `SELECT COUNT(*)
			  FROM bookings
			  WHERE conference_name = $1`
	row, err := s.db.QueryRowWithRetry(ctx, s.strategy, query, conferenceName)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	var count int
	if err = row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan booking count: %w", err)
	}
	return count, nil
}

func (s *Store) UpdateConference(ctx context.Context, name string, fn func(tx ports.ConferenceTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT name, location, topics, start_time, end_time, capacity, available_slots, created_at
			  FROM conferences
			  WHERE name = $1
			  FOR UPDATE`
	var c domain.Conference
	if err = scanConference(tx.QueryRowContext(ctx, query, name).Scan, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConferenceNotFound
		}
		return fmt.Errorf("lock conference: %w", err)
	}

	if err = fn(&confTx{ctx: ctx, tx: tx, conf: c}); err != nil {
		return err
	}
	return tx.Commit()
}

func scanConference(scan func(dest ...any) error, c *domain.Conference) error {
	return scan(
		&c.Name, &c.Location, pq.Array(&c.Topics), &c.StartTime, &c.EndTime,
		&c.Capacity, &c.AvailableSlots, &c.CreatedAt,
	)
}
