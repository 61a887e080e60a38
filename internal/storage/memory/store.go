// Package memory is the default Store implementation: plain maps guarded by
// a per-conference mutex for allocation critical sections and one lookup
// mutex for the global ID tables.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"confbooker/internal/domain"
	"confbooker/internal/service/ports"
)

type userConfKey struct {
	userID     string
	conference string
}

// conferenceState holds everything the allocation engine mutates under the
// conference's exclusive section: slot count and the FIFO queue.
type conferenceState struct {
	mu    sync.Mutex
	data  domain.Conference
	queue []string
}

type Store struct {
	// mu guards the maps below. It is never held while acquiring a
	// conferenceState.mu, so conference sections cannot deadlock against
	// global lookups.
	mu          sync.RWMutex
	users       map[string]*domain.User
	conferences map[string]*conferenceState
	bookings    map[string]*domain.Booking
	waitlist    map[string]*domain.WaitlistEntry
	byUserConf  map[userConfKey]string
}

func New() *Store {
	return &Store{
		users:       make(map[string]*domain.User),
		conferences: make(map[string]*conferenceState),
		bookings:    make(map[string]*domain.Booking),
		waitlist:    make(map[string]*domain.WaitlistEntry),
		byUserConf:  make(map[userConfKey]string),
	}
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return domain.ErrDuplicateUser
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) CreateConference(_ context.Context, c *domain.Conference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conferences[c.Name]; ok {
		return domain.ErrDuplicateConference
	}
	s.conferences[c.Name] = &conferenceState{data: *c}
	return nil
}

func (s *Store) GetConference(_ context.Context, name string) (*domain.Conference, error) {
	st, err := s.conference(name)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	cp := st.data
	return &cp, nil
}

func (s *Store) ListConferences(ctx context.Context) ([]*domain.Conference, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.conferences))
	for name := range s.conferences {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)

	res := make([]*domain.Conference, 0, len(names))
	for _, name := range names {
		c, err := s.GetConference(ctx, name)
		if err != nil {
			continue
		}
		res = append(res, c)
	}
	return res, nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) GetWaitlistEntry(_ context.Context, id string) (*domain.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.waitlist[id]
	if !ok {
		return nil, domain.ErrWaitlistEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *Store) ListBookingsByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*domain.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			cp := *b
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *Store) CountActiveBookings(_ context.Context, conferenceName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, b := range s.bookings {
		if b.ConferenceName == conferenceName {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateConference(_ context.Context, name string, fn func(tx ports.ConferenceTx) error) error {
	st, err := s.conference(name)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(&confTx{s: s, st: st})
}

func (s *Store) conference(name string) (*conferenceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.conferences[name]
	if !ok {
		return nil, domain.ErrConferenceNotFound
	}
	return st, nil
}

// confTx operates on one conferenceState with its mutex held. Queue edits
// happen under that mutex; ID-table edits briefly take the store mutex.
type confTx struct {
	s  *Store
	st *conferenceState
}

func (t *confTx) Conference() *domain.Conference {
	cp := t.st.data
	return &cp
}

func (t *confTx) SetAvailableSlots(n int) error {
	t.st.data.AvailableSlots = n
	return nil
}

func (t *confTx) ActiveBooking(userID string) (*domain.Booking, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	id, ok := t.s.byUserConf[userConfKey{userID: userID, conference: t.st.data.Name}]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *t.s.bookings[id]
	return &cp, nil
}

func (t *confTx) InsertBooking(b *domain.Booking) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	key := userConfKey{userID: b.UserID, conference: b.ConferenceName}
	if _, ok := t.s.byUserConf[key]; ok {
		return domain.ErrDuplicateBooking
	}
	cp := *b
	t.s.bookings[b.ID] = &cp
	t.s.byUserConf[key] = b.ID
	return nil
}

func (t *confTx) DeleteBooking(id string) (*domain.Booking, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	b, ok := t.s.bookings[id]
	if !ok || b.ConferenceName != t.st.data.Name {
		return nil, domain.ErrBookingNotFound
	}
	delete(t.s.bookings, id)
	delete(t.s.byUserConf, userConfKey{userID: b.UserID, conference: b.ConferenceName})
	cp := *b
	return &cp, nil
}

func (t *confTx) WaitlistEntry(id string) (*domain.WaitlistEntry, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	e, ok := t.s.waitlist[id]
	if !ok || e.ConferenceName != t.st.data.Name {
		return nil, domain.ErrWaitlistEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (t *confTx) InsertWaitlistEntry(e *domain.WaitlistEntry) error {
	t.s.mu.Lock()
	cp := *e
	t.s.waitlist[e.ID] = &cp
	t.s.mu.Unlock()

	t.st.queue = append(t.st.queue, e.ID)
	return nil
}

func (t *confTx) DeleteWaitlistEntry(id string) error {
	t.s.mu.Lock()
	e, ok := t.s.waitlist[id]
	if !ok || e.ConferenceName != t.st.data.Name {
		t.s.mu.Unlock()
		return domain.ErrWaitlistEntryNotFound
	}
	delete(t.s.waitlist, id)
	t.s.mu.Unlock()

	t.removeFromQueue(id)
	return nil
}

func (t *confTx) MoveWaitlistToTail(id string, enqueuedAt time.Time) error {
	t.s.mu.Lock()
	e, ok := t.s.waitlist[id]
	if !ok || e.ConferenceName != t.st.data.Name {
		t.s.mu.Unlock()
		return domain.ErrWaitlistEntryNotFound
	}
	e.EnqueuedAt = enqueuedAt
	t.s.mu.Unlock()

	t.removeFromQueue(id)
	t.st.queue = append(t.st.queue, id)
	return nil
}

func (t *confTx) WaitlistHead() (*domain.WaitlistEntry, error) {
	if len(t.st.queue) == 0 {
		return nil, nil
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	e, ok := t.s.waitlist[t.st.queue[0]]
	if !ok {
		return nil, domain.ErrWaitlistEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (t *confTx) WaitlistLen() (int, error) {
	return len(t.st.queue), nil
}

func (t *confTx) removeFromQueue(id string) {
	for i, qid := range t.st.queue {
		if qid == id {
			t.st.queue = append(t.st.queue[:i], t.st.queue[i+1:]...)
			return
		}
	}
}
