package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	showtimeColumns    = `id, movie_id, start_time, end_time, price, total_seats, available_seats, created_at, updated_at`
	seatColumns        = `id, showtime_id, row_label, seat_number, is_reserved`
	reservationColumns = `id, reference, user_id, showtime_id, status, total_price, created_at, updated_at`
)

type postgresTx struct {
	tx pgx.Tx
}

func scanShowtime(row pgx.Row) (*domain.Showtime, error) {
	var s domain.Showtime

	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.TotalSeats,
		&s.AvailableSeats,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, classify(err)
	}

	return &s, nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var r domain.Reservation

	err := row.Scan(
		&r.ID,
		&r.Reference,
		&r.UserID,
		&r.ShowtimeID,
		&r.Status,
		&r.TotalPrice,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, classify(err)
	}

	return &r, nil
}

func collectSeats(rows pgx.Rows) ([]domain.Seat, error) {
	defer rows.Close()

	seats := []domain.Seat{}

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(
			&seat.ID,
			&seat.ShowtimeID,
			&seat.Row,
			&seat.Number,
			&seat.IsReserved,
		)
		if err != nil {
			return nil, classify(err)
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return seats, nil
}

func (p *postgresTx) LockMovie(ctx context.Context, movieID int) error {
	_, err := p.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, int32(movieLockClass), int32(movieID))
	return classify(err)
}

func (p *postgresTx) LockShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1 FOR UPDATE`

	return scanShowtime(p.tx.QueryRow(ctx, query, id))
}

func (p *postgresTx) LockReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	reservation, err := scanReservation(p.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	reservation.Seats, err = p.reservationSeats(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// LockSeats locks the matching seat rows. Rows are locked as they are
// produced by the ORDER BY, so every transaction locks in ascending id order.
func (p *postgresTx) LockSeats(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE showtime_id = $1 AND id = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := p.tx.Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		return nil, classify(err)
	}

	return collectSeats(rows)
}

func (p *postgresTx) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	return scanMovie(p.tx.QueryRow(ctx, query, id))
}

func (p *postgresTx) FindOverlappingShowtime(
	ctx context.Context,
	movieID int,
	start, end time.Time,
	excludeID int) (*domain.Showtime, error) {

	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1
			AND id <> $4
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time
		LIMIT 1
	`

	showtime, err := scanShowtime(p.tx.QueryRow(ctx, query, movieID, start, end, excludeID))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, nil
	}

	return showtime, err
}

func (p *postgresTx) InsertShowtime(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, start_time, end_time, price, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, price, available_seats, created_at, updated_at
	`

	err := p.tx.QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.TotalSeats).Scan(
		&showtime.ID,
		&showtime.Price,
		&showtime.AvailableSeats,
		&showtime.CreatedAt,
		&showtime.UpdatedAt)

	return classify(err)
}

func (p *postgresTx) InsertSeats(ctx context.Context, showtimeID int, seats []domain.SeatPosition) error {
	rows := make([][]any, 0, len(seats))
	for _, seat := range seats {
		rows = append(rows, []any{showtimeID, seat.Row, seat.Number})
	}

	_, err := p.tx.CopyFrom(
		ctx,
		pgx.Identifier{"seats"},
		[]string{"showtime_id", "row_label", "seat_number"},
		pgx.CopyFromRows(rows),
	)

	return classify(err)
}

func (p *postgresTx) UpdateShowtime(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, start_time = $3, end_time = $4, price = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + showtimeColumns

	updated, err := scanShowtime(p.tx.QueryRow(
		ctx,
		query,
		showtime.ID,
		showtime.MovieID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price))
	if err != nil {
		return err
	}

	*showtime = *updated

	return nil
}

func (p *postgresTx) DeleteShowtime(ctx context.Context, id int) error {
	tag, err := p.tx.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *postgresTx) InsertReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (reference, user_id, showtime_id, status, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := p.tx.QueryRow(
		ctx,
		query,
		reservation.Reference,
		reservation.UserID,
		reservation.ShowtimeID,
		string(reservation.Status),
		reservation.TotalPrice).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return classify(err)
	}

	rows := make([][]any, 0, len(reservation.Seats))
	for _, seat := range reservation.Seats {
		rows = append(rows, []any{reservation.ID, seat.ID})
	}

	_, err = p.tx.CopyFrom(
		ctx,
		pgx.Identifier{"reservation_seats"},
		[]string{"reservation_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)

	return classify(err)
}

func (p *postgresTx) SetSeatsReserved(ctx context.Context, seatIDs []int, reserved bool) error {
	tag, err := p.tx.Exec(ctx, `UPDATE seats SET is_reserved = $2 WHERE id = ANY($1)`, seatIDs, reserved)
	if err != nil {
		return classify(err)
	}

	if tag.RowsAffected() != int64(len(seatIDs)) {
		return &domain.StoreError{
			Err: fmt.Errorf("updated %d of %d seats", tag.RowsAffected(), len(seatIDs)),
		}
	}

	return nil
}

// AdjustAvailableSeats relies on the showtimes_available_seats_check
// constraint to reject a counter outside [0, total_seats].
func (p *postgresTx) AdjustAvailableSeats(ctx context.Context, showtimeID int, delta int) error {
	query := `
		UPDATE showtimes
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := p.tx.Exec(ctx, query, showtimeID, delta)
	if err != nil {
		return classify(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *postgresTx) UpdateReservationStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := p.tx.Exec(ctx, query, id, string(status))
	if err != nil {
		return classify(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *postgresTx) GetShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	return scanShowtime(p.tx.QueryRow(ctx, query, id))
}

func (p *postgresTx) ListShowtimesByMovie(ctx context.Context, movieID int, from time.Time) ([]domain.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND start_time > $2
		ORDER BY start_time
	`

	rows, err := p.tx.Query(ctx, query, movieID, from)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	showtimes := []domain.Showtime{}

	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, *showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return showtimes, nil
}

func (p *postgresTx) ListSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE showtime_id = $1 ORDER BY id`

	rows, err := p.tx.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, classify(err)
	}

	return collectSeats(rows)
}

func (p *postgresTx) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(p.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	reservation.Seats, err = p.reservationSeats(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

func (p *postgresTx) reservationSeats(ctx context.Context, reservationID int) ([]domain.Seat, error) {
	query := `
		SELECT s.id, s.showtime_id, s.row_label, s.seat_number, s.is_reserved
		FROM reservation_seats rs
		JOIN seats s ON s.id = rs.seat_id
		WHERE rs.reservation_id = $1
		ORDER BY s.id
	`

	rows, err := p.tx.Query(ctx, query, reservationID)
	if err != nil {
		return nil, classify(err)
	}

	return collectSeats(rows)
}

func (p *postgresTx) ListReservations(
	ctx context.Context,
	filter domain.ReservationFilter) ([]domain.Reservation, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), ` + reservationColumns + `
		FROM reservations
		WHERE ($1 = 0 OR user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.tx.Query(ctx, query, filter.UserID, filter.Limit(), filter.Offset())
	if err != nil {
		return nil, nil, classify(err)
	}
	defer rows.Close()

	totalRecords := 0
	reservations := []domain.Reservation{}
	positions := make(map[int]int)

	for rows.Next() {
		var r domain.Reservation

		err = rows.Scan(
			&totalRecords,
			&r.ID,
			&r.Reference,
			&r.UserID,
			&r.ShowtimeID,
			&r.Status,
			&r.TotalPrice,
			&r.CreatedAt,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, nil, classify(err)
		}

		positions[r.ID] = len(reservations)
		reservations = append(reservations, r)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, classify(err)
	}

	if len(reservations) > 0 {
		ids := make([]int, 0, len(reservations))
		for _, r := range reservations {
			ids = append(ids, r.ID)
		}

		err = p.attachSeats(ctx, ids, func(reservationID int, seat domain.Seat) {
			i := positions[reservationID]
			reservations[i].Seats = append(reservations[i].Seats, seat)
		})
		if err != nil {
			return nil, nil, err
		}
	}

	metadata := domain.NewMetadata(totalRecords, filter.Page, filter.PageSize)

	return reservations, metadata, nil
}

func (p *postgresTx) attachSeats(ctx context.Context, reservationIDs []int, attach func(int, domain.Seat)) error {
	query := `
		SELECT rs.reservation_id, s.id, s.showtime_id, s.row_label, s.seat_number, s.is_reserved
		FROM reservation_seats rs
		JOIN seats s ON s.id = rs.seat_id
		WHERE rs.reservation_id = ANY($1)
		ORDER BY rs.reservation_id, s.id
	`

	rows, err := p.tx.Query(ctx, query, reservationIDs)
	if err != nil {
		return classify(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reservationID int
			seat          domain.Seat
		)

		err = rows.Scan(
			&reservationID,
			&seat.ID,
			&seat.ShowtimeID,
			&seat.Row,
			&seat.Number,
			&seat.IsReserved,
		)
		if err != nil {
			return classify(err)
		}

		attach(reservationID, seat)
	}

	return classify(rows.Err())
}

func (p *postgresTx) ReportStats(ctx context.Context) (domain.ReportStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'confirmed'),
			count(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(sum(total_price) FILTER (WHERE status = 'confirmed'), 0)
		FROM reservations
	`

	stats := domain.ReportStats{TotalRevenue: decimal.Zero}

	err := p.tx.QueryRow(ctx, query).Scan(
		&stats.TotalReservations,
		&stats.ConfirmedCount,
		&stats.CancelledCount,
		&stats.TotalRevenue,
	)
	if err != nil {
		return domain.ReportStats{}, classify(err)
	}

	return stats, nil
}
