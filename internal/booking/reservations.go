package booking

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateReservation atomically allocates seatIDs of a showtime to userID.
//
// The showtime row is locked first, then the requested seat rows in ascending
// id order. Availability is validated only after both locks are held, so of
// two requests sharing a seat exactly one observes the seat as free. Any
// failure rolls the whole transaction back: no reservation row, no flagged
// seat and no counter change is ever visible to other transactions.
func (s *Service) CreateReservation(ctx context.Context, userID, showtimeID int, seatIDs []int) (*domain.Reservation, error) {
	ids, err := validateReservationRequest(userID, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}

	requestedAt := s.now()

	var reservation domain.Reservation

	err = s.store.WithTx(ctx, writeTx, func(tx domain.Tx) error {
		showtime, err := tx.LockShowtime(ctx, showtimeID)
		if err != nil {
			return err
		}

		seats, err := tx.LockSeats(ctx, showtimeID, ids)
		if err != nil {
			return err
		}

		if len(seats) != len(ids) {
			return &domain.SeatNotFoundError{ShowtimeID: showtimeID, SeatIDs: missingSeats(ids, seats)}
		}

		var reserved []int
		for _, seat := range seats {
			if seat.IsReserved {
				reserved = append(reserved, seat.ID)
			}
		}

		if len(reserved) > 0 {
			return &domain.SeatUnavailableError{ShowtimeID: showtimeID, SeatIDs: reserved}
		}

		if !showtime.StartTime.After(requestedAt) {
			return domain.ErrShowtimeClosed
		}

		for i := range seats {
			seats[i].IsReserved = true
		}

		reservation = domain.Reservation{
			Reference:  uuid.New(),
			UserID:     userID,
			ShowtimeID: showtimeID,
			Status:     domain.ReservationStatusConfirmed,
			TotalPrice: showtime.Price.Mul(decimal.NewFromInt(int64(len(ids)))),
			Seats:      seats,
		}

		err = tx.InsertReservation(ctx, &reservation)
		if err != nil {
			return err
		}

		err = tx.SetSeatsReserved(ctx, ids, true)
		if err != nil {
			return err
		}

		return tx.AdjustAvailableSeats(ctx, showtimeID, -len(ids))
	})
	if err != nil {
		s.logAllocationFailure(ctx, userID, showtimeID, ids, err)
		return nil, err
	}

	s.metrics.reservationCreated(ctx, len(ids))
	s.logger.Info("reservation confirmed",
		"reservation_id", reservation.ID,
		"user_id", userID,
		"showtime_id", showtimeID,
		"seat_ids", ids,
	)

	s.publish(ctx, domain.EventReservationConfirmed, reservation)

	return &reservation, nil
}

// CancelReservation releases the seats of a confirmed reservation. It reports
// false, without error, when the reservation does not exist, is not visible
// to the caller, or is already cancelled.
func (s *Service) CancelReservation(ctx context.Context, reservationID int, caller domain.Identity) (bool, error) {
	if reservationID < 1 {
		return false, nil
	}

	var (
		cancelled   bool
		reservation *domain.Reservation
	)

	err := s.store.WithTx(ctx, writeTx, func(tx domain.Tx) error {
		existing, err := tx.GetReservation(ctx, reservationID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil
			}

			return err
		}

		if !caller.CanAccess(*existing) || existing.Status != domain.ReservationStatusConfirmed {
			return nil
		}

		showtime, err := tx.LockShowtime(ctx, existing.ShowtimeID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil
			}

			return err
		}

		// re-read under lock, a concurrent cancel may have won
		reservation, err = tx.LockReservation(ctx, reservationID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil
			}

			return err
		}

		if reservation.Status != domain.ReservationStatusConfirmed {
			return nil
		}

		ids := reservation.SeatIDs()
		slices.Sort(ids)

		_, err = tx.LockSeats(ctx, showtime.ID, ids)
		if err != nil {
			return err
		}

		err = tx.SetSeatsReserved(ctx, ids, false)
		if err != nil {
			return err
		}

		err = tx.AdjustAvailableSeats(ctx, showtime.ID, len(ids))
		if err != nil {
			return err
		}

		err = tx.UpdateReservationStatus(ctx, reservation.ID, domain.ReservationStatusCancelled)
		if err != nil {
			return err
		}

		reservation.Status = domain.ReservationStatusCancelled
		for i := range reservation.Seats {
			reservation.Seats[i].IsReserved = false
		}

		cancelled = true

		return nil
	})
	if err != nil {
		s.logger.Error("failed to cancel reservation", "reservation_id", reservationID, "error", err)
		return false, err
	}

	if !cancelled {
		return false, nil
	}

	s.metrics.reservationCancelled(ctx)
	s.logger.Info("reservation cancelled",
		"reservation_id", reservationID,
		"user_id", caller.UserID,
		"showtime_id", reservation.ShowtimeID,
	)

	s.publish(ctx, domain.EventReservationCancelled, *reservation)

	return true, nil
}

// GetReservation returns a reservation the caller owns, or any reservation for admins.
func (s *Service) GetReservation(ctx context.Context, id int, caller domain.Identity) (*domain.Reservation, error) {
	var reservation *domain.Reservation

	err := s.store.WithTx(ctx, readTx, func(tx domain.Tx) error {
		var err error
		reservation, err = tx.GetReservation(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(*reservation) {
		return nil, domain.ErrAccessDenied
	}

	return reservation, nil
}

func (s *Service) ListReservations(
	ctx context.Context,
	filter domain.ReservationFilter) ([]domain.Reservation, *domain.Metadata, error) {

	var (
		reservations []domain.Reservation
		metadata     *domain.Metadata
	)

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	err := s.store.WithTx(ctx, readTx, func(tx domain.Tx) error {
		var err error
		reservations, metadata, err = tx.ListReservations(ctx, filter)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return reservations, metadata, nil
}

func (s *Service) logAllocationFailure(ctx context.Context, userID, showtimeID int, ids []int, err error) {
	var reason string

	switch {
	case errors.Is(err, domain.ErrSeatUnavailable):
		reason = "seat_unavailable"
	case errors.Is(err, domain.ErrSeatNotFound):
		reason = "seat_not_found"
	case errors.Is(err, domain.ErrShowtimeClosed):
		reason = "showtime_closed"
	case errors.Is(err, domain.ErrRecordNotFound):
		reason = "showtime_not_found"
	case errors.Is(err, domain.ErrLockTimeout):
		reason = "lock_timeout"
	default:
		s.metrics.allocationFailed(ctx, "store_error")
		s.logger.Error("reservation failed", "user_id", userID, "showtime_id", showtimeID, "error", err)
		return
	}

	s.metrics.allocationFailed(ctx, reason)
	s.logger.Warn("reservation rejected",
		"reason", reason,
		"user_id", userID,
		"showtime_id", showtimeID,
		"seat_ids", ids,
	)
}

// validateReservationRequest returns the requested seat ids sorted ascending,
// which is the order their row locks are taken in.
func validateReservationRequest(userID, showtimeID int, seatIDs []int) ([]int, error) {
	var errs domain.ValidationErrors

	if userID < 1 {
		errs = append(errs, domain.ValidationError{Field: "UserID", Issue: "must be greater than zero"})
	}

	if showtimeID < 1 {
		errs = append(errs, domain.ValidationError{Field: "ShowtimeID", Issue: "must be greater than zero"})
	}

	if len(seatIDs) == 0 {
		errs = append(errs, domain.ValidationError{Field: "SeatIDs", Issue: "must contain at least one seat"})
	}

	ids := slices.Clone(seatIDs)
	slices.Sort(ids)

	for i, id := range ids {
		if id < 1 {
			errs = append(errs, domain.ValidationError{Field: "SeatIDs", Issue: "must contain only positive ids"})
			break
		}

		if i > 0 && ids[i-1] == id {
			errs = append(errs, domain.ValidationError{Field: "SeatIDs", Issue: "must not contain duplicates"})
			break
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return ids, nil
}

func missingSeats(requested []int, found []domain.Seat) []int {
	present := make(map[int]bool, len(found))
	for _, seat := range found {
		present[seat.ID] = true
	}

	var missing []int
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}

	return missing
}
