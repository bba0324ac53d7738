package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

type tx struct {
	store    *Store
	readOnly bool
	held     map[string]chan struct{}

	showtimes    changes[domain.Showtime]
	seats        changes[domain.Seat]
	reservations changes[reservationRow]
}

func (t *tx) lock(ctx context.Context, table string, id int) error {
	key := table + ":" + strconv.Itoa(id)
	if _, ok := t.held[key]; ok {
		return nil
	}

	ch, err := t.store.locks.acquire(ctx, key, t.store.lockTimeout)
	if err != nil {
		return err
	}

	t.held[key] = ch

	return nil
}

func (t *tx) release() {
	for key, ch := range t.held {
		<-ch
		delete(t.held, key)
	}
}

func (t *tx) commit() {
	if !t.showtimes.dirty() && !t.seats.dirty() && !t.reservations.dirty() {
		return
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t.showtimes.apply(s.showtimes)
	t.seats.apply(s.seats)
	t.reservations.apply(s.reservations)
}

func (t *tx) writable() error {
	if t.readOnly {
		return &domain.StoreError{Err: errReadOnly}
	}

	return nil
}

func (t *tx) showtime(id int) (domain.Showtime, bool) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	return t.showtimes.get(t.store.showtimes, id)
}

func (t *tx) seat(id int) (domain.Seat, bool) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	return t.seats.get(t.store.seats, id)
}

func (t *tx) reservation(id int) (*domain.Reservation, bool) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	row, ok := t.reservations.get(t.store.reservations, id)
	if !ok {
		return nil, false
	}

	r := t.hydrate(row)
	return &r, true
}

// hydrate attaches the current seat rows. Callers hold store.mu.
func (t *tx) hydrate(row reservationRow) domain.Reservation {
	r := row.reservation
	r.Seats = make([]domain.Seat, 0, len(row.seatIDs))

	for _, id := range row.seatIDs {
		if seat, ok := t.seats.get(t.store.seats, id); ok {
			r.Seats = append(r.Seats, seat)
		}
	}

	return r
}

func (t *tx) LockMovie(ctx context.Context, movieID int) error {
	return t.lock(ctx, "movie", movieID)
}

func (t *tx) LockShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	err := t.lock(ctx, "showtime", id)
	if err != nil {
		return nil, err
	}

	return t.GetShowtime(ctx, id)
}

func (t *tx) LockReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	err := t.lock(ctx, "reservation", id)
	if err != nil {
		return nil, err
	}

	return t.GetReservation(ctx, id)
}

// LockSeats locks the seats of showtimeID among seatIDs in the order given and
// returns them ordered by id. Ids that do not belong to the showtime are skipped.
func (t *tx) LockSeats(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Seat, error) {
	var locked []int

	for _, id := range seatIDs {
		seat, ok := t.seat(id)
		if !ok || seat.ShowtimeID != showtimeID {
			continue
		}

		err := t.lock(ctx, "seat", id)
		if err != nil {
			return nil, err
		}

		locked = append(locked, id)
	}

	slices.Sort(locked)
	seats := make([]domain.Seat, 0, len(locked))

	for _, id := range locked {
		if seat, ok := t.seat(id); ok && seat.ShowtimeID == showtimeID {
			seats = append(seats, seat)
		}
	}

	return seats, nil
}

func (t *tx) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	movie, ok := t.store.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &movie, nil
}

func (t *tx) FindOverlappingShowtime(
	ctx context.Context,
	movieID int,
	start, end time.Time,
	excludeID int) (*domain.Showtime, error) {

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	for _, showtime := range t.showtimes.rows(t.store.showtimes) {
		if showtime.MovieID != movieID || showtime.ID == excludeID {
			continue
		}

		if showtime.Overlaps(start, end) {
			return &showtime, nil
		}
	}

	return nil, nil
}

func (t *tx) InsertShowtime(ctx context.Context, showtime *domain.Showtime) error {
	err := t.writable()
	if err != nil {
		return err
	}

	showtime.ID = t.store.nextID("showtimes")
	showtime.AvailableSeats = showtime.TotalSeats
	showtime.CreatedAt = t.store.now()
	showtime.UpdatedAt = showtime.CreatedAt

	t.showtimes.set(showtime.ID, *showtime)

	return nil
}

func (t *tx) InsertSeats(ctx context.Context, showtimeID int, seats []domain.SeatPosition) error {
	err := t.writable()
	if err != nil {
		return err
	}

	if _, ok := t.showtime(showtimeID); !ok {
		return &domain.StoreError{Err: fmt.Errorf("showtime %d does not exist", showtimeID)}
	}

	for _, pos := range seats {
		id := t.store.nextID("seats")
		t.seats.set(id, domain.Seat{
			ID:         id,
			ShowtimeID: showtimeID,
			Row:        pos.Row,
			Number:     pos.Number,
		})
	}

	return nil
}

func (t *tx) UpdateShowtime(ctx context.Context, showtime *domain.Showtime) error {
	err := t.writable()
	if err != nil {
		return err
	}

	current, ok := t.showtime(showtime.ID)
	if !ok {
		return domain.ErrRecordNotFound
	}

	current.MovieID = showtime.MovieID
	current.StartTime = showtime.StartTime
	current.EndTime = showtime.EndTime
	current.Price = showtime.Price
	current.UpdatedAt = t.store.now()

	t.showtimes.set(current.ID, current)
	*showtime = current

	return nil
}

// DeleteShowtime removes the showtime with its seats and reservations.
func (t *tx) DeleteShowtime(ctx context.Context, id int) error {
	err := t.writable()
	if err != nil {
		return err
	}

	if _, ok := t.showtime(id); !ok {
		return domain.ErrRecordNotFound
	}

	t.store.mu.RLock()
	seats := t.seats.rows(t.store.seats)
	reservations := t.reservations.rows(t.store.reservations)
	t.store.mu.RUnlock()

	for _, seat := range seats {
		if seat.ShowtimeID == id {
			t.seats.remove(seat.ID)
		}
	}

	for _, row := range reservations {
		if row.reservation.ShowtimeID == id {
			t.reservations.remove(row.reservation.ID)
		}
	}

	t.showtimes.remove(id)

	return nil
}

func (t *tx) InsertReservation(ctx context.Context, reservation *domain.Reservation) error {
	err := t.writable()
	if err != nil {
		return err
	}

	if _, ok := t.showtime(reservation.ShowtimeID); !ok {
		return &domain.StoreError{Err: fmt.Errorf("showtime %d does not exist", reservation.ShowtimeID)}
	}

	reservation.ID = t.store.nextID("reservations")
	reservation.CreatedAt = t.store.now()
	reservation.UpdatedAt = reservation.CreatedAt

	row := reservationRow{
		reservation: *reservation,
		seatIDs:     reservation.SeatIDs(),
	}
	row.reservation.Seats = nil

	t.reservations.set(reservation.ID, row)

	return nil
}

func (t *tx) SetSeatsReserved(ctx context.Context, seatIDs []int, reserved bool) error {
	err := t.writable()
	if err != nil {
		return err
	}

	for _, id := range seatIDs {
		seat, ok := t.seat(id)
		if !ok {
			return &domain.StoreError{Err: fmt.Errorf("seat %d does not exist", id)}
		}

		seat.IsReserved = reserved
		t.seats.set(id, seat)
	}

	return nil
}

// AdjustAvailableSeats applies delta to the counter, rejecting results outside
// [0, total_seats] like the database check constraint.
func (t *tx) AdjustAvailableSeats(ctx context.Context, showtimeID int, delta int) error {
	err := t.writable()
	if err != nil {
		return err
	}

	showtime, ok := t.showtime(showtimeID)
	if !ok {
		return domain.ErrRecordNotFound
	}

	available := showtime.AvailableSeats + delta
	if available < 0 || available > showtime.TotalSeats {
		return &domain.StoreError{Err: errCheckViolation}
	}

	showtime.AvailableSeats = available
	showtime.UpdatedAt = t.store.now()
	t.showtimes.set(showtimeID, showtime)

	return nil
}

func (t *tx) UpdateReservationStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	err := t.writable()
	if err != nil {
		return err
	}

	t.store.mu.RLock()
	row, ok := t.reservations.get(t.store.reservations, id)
	t.store.mu.RUnlock()

	if !ok {
		return domain.ErrRecordNotFound
	}

	row.reservation.Status = status
	row.reservation.UpdatedAt = t.store.now()
	t.reservations.set(id, row)

	return nil
}

func (t *tx) GetShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	showtime, ok := t.showtime(id)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &showtime, nil
}

func (t *tx) ListShowtimesByMovie(ctx context.Context, movieID int, from time.Time) ([]domain.Showtime, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var showtimes []domain.Showtime

	for _, showtime := range t.showtimes.rows(t.store.showtimes) {
		if showtime.MovieID == movieID && showtime.StartTime.After(from) {
			showtimes = append(showtimes, showtime)
		}
	}

	slices.SortStableFunc(showtimes, func(a, b domain.Showtime) int {
		return a.StartTime.Compare(b.StartTime)
	})

	return showtimes, nil
}

func (t *tx) ListSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var seats []domain.Seat

	for _, seat := range t.seats.rows(t.store.seats) {
		if seat.ShowtimeID == showtimeID {
			seats = append(seats, seat)
		}
	}

	return seats, nil
}

func (t *tx) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	reservation, ok := t.reservation(id)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return reservation, nil
}

func (t *tx) ListReservations(
	ctx context.Context,
	filter domain.ReservationFilter) ([]domain.Reservation, *domain.Metadata, error) {

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var matched []domain.Reservation

	for _, row := range t.reservations.rows(t.store.reservations) {
		if filter.UserID != 0 && row.reservation.UserID != filter.UserID {
			continue
		}

		matched = append(matched, t.hydrate(row))
	}

	slices.SortFunc(matched, func(a, b domain.Reservation) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	metadata := domain.NewMetadata(len(matched), filter.Page, filter.PageSize)

	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit(), len(matched))

	return matched[start:end], metadata, nil
}

func (t *tx) ReportStats(ctx context.Context) (domain.ReportStats, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	stats := domain.ReportStats{TotalRevenue: decimal.Zero}

	for _, row := range t.reservations.rows(t.store.reservations) {
		stats.TotalReservations++

		switch row.reservation.Status {
		case domain.ReservationStatusConfirmed:
			stats.ConfirmedCount++
			stats.TotalRevenue = stats.TotalRevenue.Add(row.reservation.TotalPrice)
		case domain.ReservationStatusCancelled:
			stats.CancelledCount++
		}
	}

	return stats, nil
}
