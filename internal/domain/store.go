package domain

import (
	"context"
	"time"
)

type IsolationLevel string

const (
	ReadCommitted  IsolationLevel = "read committed"
	RepeatableRead IsolationLevel = "repeatable read"
	Serializable   IsolationLevel = "serializable"
)

type TxOptions struct {
	Isolation IsolationLevel
	ReadOnly  bool
}

// Store is the transactional store shared by every unit of work. WithTx
// commits when fn returns nil and rolls back otherwise, including when ctx is
// cancelled before commit.
type Store interface {
	WithTx(ctx context.Context, opts TxOptions, fn func(tx Tx) error) error
}

// Tx is a unit of work. Lock* methods take exclusive row locks that are held
// until the transaction ends; callers acquire them in the order
// movie -> showtime -> reservation -> seats.
type Tx interface {
	LockMovie(ctx context.Context, movieID int) error
	LockShowtime(ctx context.Context, id int) (*Showtime, error)
	LockReservation(ctx context.Context, id int) (*Reservation, error)
	LockSeats(ctx context.Context, showtimeID int, seatIDs []int) ([]Seat, error)

	GetMovie(ctx context.Context, id int) (*Movie, error)
	FindOverlappingShowtime(ctx context.Context, movieID int, start, end time.Time, excludeID int) (*Showtime, error)
	InsertShowtime(ctx context.Context, showtime *Showtime) error
	InsertSeats(ctx context.Context, showtimeID int, seats []SeatPosition) error
	UpdateShowtime(ctx context.Context, showtime *Showtime) error
	DeleteShowtime(ctx context.Context, id int) error

	InsertReservation(ctx context.Context, reservation *Reservation) error
	SetSeatsReserved(ctx context.Context, seatIDs []int, reserved bool) error
	AdjustAvailableSeats(ctx context.Context, showtimeID int, delta int) error
	UpdateReservationStatus(ctx context.Context, id int, status ReservationStatus) error

	GetShowtime(ctx context.Context, id int) (*Showtime, error)
	ListShowtimesByMovie(ctx context.Context, movieID int, from time.Time) ([]Showtime, error)
	ListSeats(ctx context.Context, showtimeID int) ([]Seat, error)
	GetReservation(ctx context.Context, id int) (*Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]Reservation, *Metadata, error)
	ReportStats(ctx context.Context) (ReportStats, error)
}
