package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

// wrappedStore hands every transaction through wrap before running fn.
type wrappedStore struct {
	domain.Store
	wrap func(domain.Tx) domain.Tx
}

func (w wrappedStore) WithTx(ctx context.Context, opts domain.TxOptions, fn func(tx domain.Tx) error) error {
	return w.Store.WithTx(ctx, opts, func(tx domain.Tx) error {
		return fn(w.wrap(tx))
	})
}

type lockRecordingTx struct {
	domain.Tx
	locks *[]string
}

func (l lockRecordingTx) LockMovie(ctx context.Context, movieID int) error {
	*l.locks = append(*l.locks, fmt.Sprintf("movie:%d", movieID))
	return l.Tx.LockMovie(ctx, movieID)
}

func (l lockRecordingTx) LockShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	*l.locks = append(*l.locks, fmt.Sprintf("showtime:%d", id))
	return l.Tx.LockShowtime(ctx, id)
}

// staleReadTx reports a movie other than the stored one on the unlocked read,
// as if another transaction moved the showtime right after it.
type staleReadTx struct {
	lockRecordingTx
	staleMovieID int
}

func (s staleReadTx) GetShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	showtime, err := s.Tx.GetShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	stale := *showtime
	stale.MovieID = s.staleMovieID

	return &stale, nil
}

type failingSeatsTx struct {
	domain.Tx
	err        error
	showtimeID *int
}

func (f failingSeatsTx) InsertSeats(ctx context.Context, showtimeID int, seats []domain.SeatPosition) error {
	*f.showtimeID = showtimeID
	return f.err
}

func (s *BookingTestSuite) serviceWith(wrap func(domain.Tx) domain.Tx) *Service {
	return NewService(wrappedStore{Store: s.store, wrap: wrap},
		WithClock(func() time.Time { return testNow }),
	)
}

func (s *BookingTestSuite) TestUpdateShowtimeLocksMoviesBeforeShowtime() {
	showtime := s.createShowtime(s.other.ID, 18, 20, 10)

	var locks []string
	service := s.serviceWith(func(tx domain.Tx) domain.Tx {
		return lockRecordingTx{Tx: tx, locks: &locks}
	})

	movieID := s.movie.ID
	start, end := at(19), at(21)

	updated, err := service.UpdateShowtime(s.ctx, showtime.ID, domain.ShowtimePatch{
		MovieID:   &movieID,
		StartTime: &start,
		EndTime:   &end,
	})
	s.Require().NoError(err)
	s.Equal(s.movie.ID, updated.MovieID)

	low, high := min(s.movie.ID, s.other.ID), max(s.movie.ID, s.other.ID)
	s.Equal([]string{
		fmt.Sprintf("movie:%d", low),
		fmt.Sprintf("movie:%d", high),
		fmt.Sprintf("showtime:%d", showtime.ID),
	}, locks)

	s.Run("price only takes no movie lock", func() {
		locks = nil
		price := decimal.RequireFromString("8.00")

		_, err := service.UpdateShowtime(s.ctx, showtime.ID, domain.ShowtimePatch{Price: &price})
		s.Require().NoError(err)
		s.Equal([]string{fmt.Sprintf("showtime:%d", showtime.ID)}, locks)
	})
}

func (s *BookingTestSuite) TestUpdateShowtimeMovedConcurrently() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	var locks []string
	service := s.serviceWith(func(tx domain.Tx) domain.Tx {
		return staleReadTx{
			lockRecordingTx: lockRecordingTx{Tx: tx, locks: &locks},
			staleMovieID:    s.other.ID,
		}
	})

	start, end := at(19), at(21)

	_, err := service.UpdateShowtime(s.ctx, showtime.ID, domain.ShowtimePatch{StartTime: &start, EndTime: &end})
	s.ErrorIs(err, domain.ErrLockTimeout)
	s.Equal([]string{
		fmt.Sprintf("movie:%d", s.other.ID),
		fmt.Sprintf("showtime:%d", showtime.ID),
	}, locks)

	unchanged, err := s.service.GetShowtime(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.True(unchanged.StartTime.Equal(at(18)))
}

func (s *BookingTestSuite) TestCreateShowtimeRollsBackWhenSeatsFail() {
	var showtimeID int
	copyErr := &domain.StoreError{Err: errors.New("copy seats: connection reset")}

	service := s.serviceWith(func(tx domain.Tx) domain.Tx {
		return failingSeatsTx{Tx: tx, err: copyErr, showtimeID: &showtimeID}
	})

	_, err := service.CreateShowtime(s.ctx, domain.NewShowtime{
		MovieID:    s.movie.ID,
		StartTime:  at(18),
		EndTime:    at(20),
		Price:      decimal.RequireFromString("12.50"),
		TotalSeats: 10,
	})
	s.ErrorIs(err, domain.ErrStore)
	s.Require().Positive(showtimeID)

	err = s.store.WithTx(s.ctx, readTx, func(tx domain.Tx) error {
		existing, err := tx.FindOverlappingShowtime(s.ctx, s.movie.ID, at(18), at(20), 0)
		s.Require().NoError(err)
		s.Nil(existing)

		_, err = tx.GetShowtime(s.ctx, showtimeID)
		s.ErrorIs(err, domain.ErrRecordNotFound)

		return nil
	})
	s.Require().NoError(err)

	s.createShowtime(s.movie.ID, 18, 20, 10)
}
