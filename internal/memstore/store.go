// Package memstore is an in-memory domain.Store. It honours the same contract
// as the PostgreSQL store: row locks are exclusive and held until the
// transaction ends, writes become visible only on commit and are discarded on
// rollback, and counters are guarded by the same range check as the database.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

var (
	errReadOnly       = errors.New("cannot write in a read-only transaction")
	errCheckViolation = errors.New("available_seats out of range")
)

type reservationRow struct {
	reservation domain.Reservation
	seatIDs     []int
}

type Store struct {
	mu           sync.RWMutex
	locks        *lockTable
	lockTimeout  time.Duration
	now          func() time.Time
	movies       map[int]domain.Movie
	showtimes    map[int]domain.Showtime
	seats        map[int]domain.Seat
	reservations map[int]reservationRow
	sequences    map[string]int
}

type Option func(*Store)

// WithLockTimeout bounds how long a transaction waits for a row lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		locks:        newLockTable(),
		now:          time.Now,
		movies:       make(map[int]domain.Movie),
		showtimes:    make(map[int]domain.Showtime),
		seats:        make(map[int]domain.Seat),
		reservations: make(map[int]reservationRow),
		sequences:    make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddMovie stores a movie outside of any transaction and returns it with its id.
func (s *Store) AddMovie(movie domain.Movie) domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences["movies"]++
	movie.ID = s.sequences["movies"]
	movie.CreatedAt = s.now()
	movie.UpdatedAt = movie.CreatedAt
	s.movies[movie.ID] = movie

	return movie
}

func (s *Store) WithTx(ctx context.Context, opts domain.TxOptions, fn func(tx domain.Tx) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	t := &tx{
		store:        s,
		readOnly:     opts.ReadOnly,
		held:         make(map[string]chan struct{}),
		showtimes:    newChanges[domain.Showtime](),
		seats:        newChanges[domain.Seat](),
		reservations: newChanges[reservationRow](),
	}
	defer t.release()

	err = fn(t)
	if err != nil {
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}

	t.commit()

	return nil
}

func (s *Store) nextID(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[table]++

	return s.sequences[table]
}
