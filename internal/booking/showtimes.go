package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateShowtime schedules a showtime and generates its seat map in one
// transaction. Concurrent schedulers for the same movie are serialised on a
// per-movie lock so two overlapping showtimes can never both pass the overlap check.
func (s *Service) CreateShowtime(ctx context.Context, input domain.NewShowtime) (*domain.Showtime, error) {
	err := s.validateNewShowtime(input)
	if err != nil {
		return nil, err
	}

	showtime := domain.Showtime{
		MovieID:        input.MovieID,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Price:          input.Price,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
	}

	err = s.store.WithTx(ctx, writeTx, func(tx domain.Tx) error {
		err := tx.LockMovie(ctx, input.MovieID)
		if err != nil {
			return err
		}

		_, err = tx.GetMovie(ctx, input.MovieID)
		if err != nil {
			return err
		}

		err = checkOverlap(ctx, tx, input.MovieID, input.StartTime, input.EndTime, 0)
		if err != nil {
			return err
		}

		err = tx.InsertShowtime(ctx, &showtime)
		if err != nil {
			return err
		}

		seats, err := s.layout.Generate(input.TotalSeats)
		if err != nil {
			return err
		}

		return tx.InsertSeats(ctx, showtime.ID, seats)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSchedulingConflict) {
			s.logger.Warn("showtime rejected", "movie_id", input.MovieID, "error", err)
		}

		return nil, err
	}

	s.metrics.showtimeScheduled(ctx)
	s.logger.Info("showtime scheduled",
		"showtime_id", showtime.ID,
		"movie_id", showtime.MovieID,
		"total_seats", showtime.TotalSeats,
	)

	return &showtime, nil
}

// UpdateShowtime applies a patch. Overlap is re-checked only when the patch
// moves the showtime in time or to another movie.
func (s *Service) UpdateShowtime(ctx context.Context, id int, patch domain.ShowtimePatch) (*domain.Showtime, error) {
	err := validateShowtimePatch(patch)
	if err != nil {
		return nil, err
	}

	var updated *domain.Showtime

	err = s.store.WithTx(ctx, writeTx, func(tx domain.Tx) error {
		current, err := tx.GetShowtime(ctx, id)
		if err != nil {
			return err
		}

		var lockedMovies []int
		if patch.Reschedules(*current) {
			lockedMovies = movieLockOrder(current.MovieID, patch.MovieID)
			for _, movieID := range lockedMovies {
				err = tx.LockMovie(ctx, movieID)
				if err != nil {
					return err
				}
			}
		}

		showtime, err := tx.LockShowtime(ctx, id)
		if err != nil {
			return err
		}

		reschedules := patch.Reschedules(*showtime)
		if reschedules && !slices.Contains(lockedMovies, showtime.MovieID) {
			// Moved by a concurrent update after it was read; the movie locks
			// can no longer be taken ahead of the showtime lock.
			return domain.ErrLockTimeout
		}

		patch.Apply(showtime)

		if !showtime.StartTime.Before(showtime.EndTime) {
			return domain.ValidationErrors{{Field: "EndTime", Issue: "must be after start time"}}
		}

		if reschedules {
			if patch.MovieID != nil {
				_, err = tx.GetMovie(ctx, showtime.MovieID)
				if err != nil {
					return err
				}
			}

			err = checkOverlap(ctx, tx, showtime.MovieID, showtime.StartTime, showtime.EndTime, showtime.ID)
			if err != nil {
				return err
			}
		}

		err = tx.UpdateShowtime(ctx, showtime)
		if err != nil {
			return err
		}

		updated = showtime

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// movieLockOrder returns the movies a rescheduling patch must lock, in
// ascending id order.
func movieLockOrder(currentMovieID int, patchedMovieID *int) []int {
	if patchedMovieID == nil || *patchedMovieID == currentMovieID {
		return []int{currentMovieID}
	}

	ids := []int{currentMovieID, *patchedMovieID}
	slices.Sort(ids)

	return ids
}

// DeleteShowtime removes a showtime together with its seats and reservations.
func (s *Service) DeleteShowtime(ctx context.Context, id int) error {
	if id < 1 {
		return domain.ErrRecordNotFound
	}

	err := s.store.WithTx(ctx, writeTx, func(tx domain.Tx) error {
		_, err := tx.LockShowtime(ctx, id)
		if err != nil {
			return err
		}

		return tx.DeleteShowtime(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("showtime deleted", "showtime_id", id)

	return nil
}

func (s *Service) GetShowtime(ctx context.Context, id int) (*domain.Showtime, error) {
	var showtime *domain.Showtime

	err := s.store.WithTx(ctx, readTx, func(tx domain.Tx) error {
		var err error
		showtime, err = tx.GetShowtime(ctx, id)
		return err
	})

	return showtime, err
}

// UpcomingShowtimes lists the showtimes of a movie that have not started yet.
func (s *Service) UpcomingShowtimes(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	var showtimes []domain.Showtime

	err := s.store.WithTx(ctx, readTx, func(tx domain.Tx) error {
		_, err := tx.GetMovie(ctx, movieID)
		if err != nil {
			return err
		}

		showtimes, err = tx.ListShowtimesByMovie(ctx, movieID, s.now())
		return err
	})

	return showtimes, err
}

// SeatMap returns a showtime and all of its seats ordered by row and number.
func (s *Service) SeatMap(ctx context.Context, showtimeID int) (*domain.Showtime, []domain.Seat, error) {
	var (
		showtime *domain.Showtime
		seats    []domain.Seat
	)

	err := s.store.WithTx(ctx, readTx, func(tx domain.Tx) error {
		var err error

		showtime, err = tx.GetShowtime(ctx, showtimeID)
		if err != nil {
			return err
		}

		seats, err = tx.ListSeats(ctx, showtimeID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return showtime, seats, nil
}

func checkOverlap(ctx context.Context, tx domain.Tx, movieID int, start, end time.Time, excludeID int) error {
	existing, err := tx.FindOverlappingShowtime(ctx, movieID, start, end, excludeID)
	if err != nil {
		return err
	}

	if existing != nil {
		return &domain.SchedulingConflictError{
			MovieID:       movieID,
			Start:         start,
			End:           end,
			ConflictingID: existing.ID,
		}
	}

	return nil
}

func (s *Service) validateNewShowtime(input domain.NewShowtime) error {
	var errs domain.ValidationErrors

	if input.MovieID < 1 {
		errs = append(errs, domain.ValidationError{Field: "MovieID", Issue: "must be greater than zero"})
	}

	if !input.StartTime.Before(input.EndTime) {
		errs = append(errs, domain.ValidationError{Field: "EndTime", Issue: "must be after start time"})
	}

	if issue := priceIssue(input.Price); issue != "" {
		errs = append(errs, domain.ValidationError{Field: "Price", Issue: issue})
	}

	err := s.layout.Validate(input.TotalSeats)
	if err != nil {
		var layoutErrs domain.ValidationErrors
		if !errors.As(err, &layoutErrs) {
			return err
		}

		errs = append(errs, layoutErrs...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateShowtimePatch(patch domain.ShowtimePatch) error {
	var errs domain.ValidationErrors

	if patch.IsEmpty() {
		errs = append(errs, domain.ValidationError{Field: "Body", Issue: "must contain at least one field"})
	}

	if patch.MovieID != nil && *patch.MovieID < 1 {
		errs = append(errs, domain.ValidationError{Field: "MovieID", Issue: "must be greater than zero"})
	}

	if patch.Price != nil {
		if issue := priceIssue(*patch.Price); issue != "" {
			errs = append(errs, domain.ValidationError{Field: "Price", Issue: issue})
		}
	}

	if patch.StartTime != nil && patch.EndTime != nil && !patch.StartTime.Before(*patch.EndTime) {
		errs = append(errs, domain.ValidationError{Field: "EndTime", Issue: "must be after start time"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func priceIssue(price decimal.Decimal) string {
	switch {
	case price.IsNegative():
		return "must not be negative"
	case price.GreaterThan(domain.MaxPrice):
		return "must be at most " + domain.MaxPrice.StringFixed(domain.PriceScale)
	case !price.Round(domain.PriceScale).Equal(price):
		return fmt.Sprintf("must have at most %d decimal places", domain.PriceScale)
	}

	return ""
}
