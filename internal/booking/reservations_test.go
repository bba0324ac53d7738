package booking

import (
	"errors"
	"sync"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/memstore"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var (
	alice = domain.Identity{UserID: 1, Role: domain.RoleUser}
	bob   = domain.Identity{UserID: 2, Role: domain.RoleUser}
	admin = domain.Identity{UserID: 99, Role: domain.RoleAdmin}
)

func (s *BookingTestSuite) TestCreateReservation() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 20)
	ids := s.seatIDs(showtime.ID, "B2", "A1")

	reservation, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, ids)
	s.Require().NoError(err)

	s.Positive(reservation.ID)
	s.Equal(domain.ReservationStatusConfirmed, reservation.Status)
	s.True(decimal.RequireFromString("25.00").Equal(reservation.TotalPrice))
	s.Equal([]string{"A1", "B2"}, reservation.SeatLabels())
	s.NotEqual(reservation.Reference.String(), "00000000-0000-0000-0000-000000000000")

	updated, err := s.service.GetShowtime(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Equal(18, updated.AvailableSeats)
	s.Equal(2, s.assertCounter(showtime.ID))

	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventReservationConfirmed && e.ReservationID == reservation.ID
	}))
}

func (s *BookingTestSuite) TestCreateReservationRejectsReservedSeat() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)
	ids := s.seatIDs(showtime.ID, "A1", "A2")

	_, err := s.service.CreateReservation(s.ctx, bob.UserID, showtime.ID, ids[1:])
	s.Require().NoError(err)

	_, err = s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, ids)

	var unavailable *domain.SeatUnavailableError
	s.Require().True(errors.As(err, &unavailable))
	s.Equal([]int{ids[1]}, unavailable.SeatIDs)

	// A1 must not be left reserved by the failed attempt
	_, seats, err := s.service.SeatMap(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.False(seats[0].IsReserved)
	s.Equal(1, s.assertCounter(showtime.ID))

	list, _, err := s.service.ListReservations(s.ctx, domain.ReservationFilter{UserID: alice.UserID})
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *BookingTestSuite) TestCreateReservationRejectsForeignSeat() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)
	other := s.createShowtime(s.other.ID, 18, 20, 10)

	ids := append(s.seatIDs(showtime.ID, "A1"), s.seatIDs(other.ID, "A1")...)

	_, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, ids)

	var notFound *domain.SeatNotFoundError
	s.Require().True(errors.As(err, &notFound))
	s.Equal(ids[1:], notFound.SeatIDs)
	s.Equal(0, s.assertCounter(showtime.ID))
}

func (s *BookingTestSuite) TestCreateReservationUnknownShowtime() {
	_, err := s.service.CreateReservation(s.ctx, alice.UserID, 999, []int{1})

	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *BookingTestSuite) TestCreateReservationClosedShowtime() {
	showtime := s.createShowtime(s.movie.ID, 6, 7, 10)

	_, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, s.seatIDs(showtime.ID, "A1"))
	s.ErrorIs(err, domain.ErrShowtimeClosed)

	s.Equal(0, s.assertCounter(showtime.ID))
}

func (s *BookingTestSuite) TestCreateReservationValidation() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)
	ids := s.seatIDs(showtime.ID, "A1")

	tests := []struct {
		name    string
		seatIDs []int
		issue   string
	}{
		{"empty", nil, "must contain at least one seat"},
		{"duplicates", []int{ids[0], ids[0]}, "must not contain duplicates"},
		{"non-positive", []int{0, ids[0]}, "must contain only positive ids"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, tt.seatIDs)

			var verrs domain.ValidationErrors
			s.Require().True(errors.As(err, &verrs))
			s.Equal(tt.issue, verrs[0].Issue)
		})
	}
}

func (s *BookingTestSuite) TestConcurrentReservationsOfSameSeat() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)
	ids := s.seatIDs(showtime.ID, "A5")

	const attempts = 50

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := range attempts {
		wg.Add(1)

		go func(userID int) {
			defer wg.Done()

			_, err := s.service.CreateReservation(s.ctx, userID, showtime.ID, ids)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrSeatUnavailable):
				rejected++
			}
		}(i + 1)
	}

	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(attempts-1, rejected)
	s.Equal(1, s.assertCounter(showtime.ID))
}

func (s *BookingTestSuite) TestConcurrentOverlappingRequests() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 30)
	_, seats, err := s.service.SeatMap(s.ctx, showtime.ID)
	s.Require().NoError(err)

	var wg sync.WaitGroup

	// each request takes three consecutive seats, so neighbours share two
	for i := 0; i+3 <= len(seats); i++ {
		wg.Add(1)

		go func(userID int, group []domain.Seat) {
			defer wg.Done()

			ids := []int{group[2].ID, group[0].ID, group[1].ID}
			_, _ = s.service.CreateReservation(s.ctx, userID, showtime.ID, ids)
		}(i+1, seats[i:i+3])
	}

	wg.Wait()

	reserved := s.assertCounter(showtime.ID)

	list, _, err := s.service.ListReservations(s.ctx, domain.ReservationFilter{Pagination: domain.Pagination{Page: 1, PageSize: 100}})
	s.Require().NoError(err)

	owner := make(map[int]int)
	for _, r := range list {
		for _, seat := range r.Seats {
			prev, taken := owner[seat.ID]
			s.False(taken, "seat %d held by reservations %d and %d", seat.ID, prev, r.ID)
			owner[seat.ID] = r.ID
		}
	}

	s.Equal(reserved, len(owner))
}

func (s *BookingTestSuite) TestCancelReservation() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)
	ids := s.seatIDs(showtime.ID, "A1", "A2")

	reservation, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, ids)
	s.Require().NoError(err)

	s.Run("other user", func() {
		ok, err := s.service.CancelReservation(s.ctx, reservation.ID, bob)
		s.Require().NoError(err)
		s.False(ok)
		s.Equal(2, s.assertCounter(showtime.ID))
	})

	s.Run("owner", func() {
		ok, err := s.service.CancelReservation(s.ctx, reservation.ID, alice)
		s.Require().NoError(err)
		s.True(ok)

		got, err := s.service.GetReservation(s.ctx, reservation.ID, alice)
		s.Require().NoError(err)
		s.Equal(domain.ReservationStatusCancelled, got.Status)

		updated, err := s.service.GetShowtime(s.ctx, showtime.ID)
		s.Require().NoError(err)
		s.Equal(10, updated.AvailableSeats)
		s.Equal(0, s.assertCounter(showtime.ID))
	})

	s.Run("already cancelled", func() {
		ok, err := s.service.CancelReservation(s.ctx, reservation.ID, alice)
		s.Require().NoError(err)
		s.False(ok)
		s.Equal(0, s.assertCounter(showtime.ID))
	})

	s.Run("unknown", func() {
		ok, err := s.service.CancelReservation(s.ctx, 999, admin)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("seats can be booked again", func() {
		_, err := s.service.CreateReservation(s.ctx, bob.UserID, showtime.ID, ids)
		s.Require().NoError(err)
	})

	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventReservationCancelled && e.ReservationID == reservation.ID
	}))
}

func (s *BookingTestSuite) TestConcurrentCancellation() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	reservation, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, s.seatIDs(showtime.ID, "A1", "A2", "A3"))
	s.Require().NoError(err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		cancelled int
	)

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ok, err := s.service.CancelReservation(s.ctx, reservation.ID, admin)
			s.NoError(err)

			if ok {
				mu.Lock()
				cancelled++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	s.Equal(1, cancelled)

	updated, err := s.service.GetShowtime(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Equal(10, updated.AvailableSeats)
}

func (s *BookingTestSuite) TestGetReservationAccess() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	reservation, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, s.seatIDs(showtime.ID, "A1"))
	s.Require().NoError(err)

	_, err = s.service.GetReservation(s.ctx, reservation.ID, bob)
	s.ErrorIs(err, domain.ErrAccessDenied)

	got, err := s.service.GetReservation(s.ctx, reservation.ID, admin)
	s.Require().NoError(err)
	s.Equal(reservation.ID, got.ID)
	s.Equal([]string{"A1"}, got.SeatLabels())
}

func (s *BookingTestSuite) TestListReservations() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	for i, label := range []string{"A1", "A2", "A3"} {
		userID := alice.UserID
		if i == 2 {
			userID = bob.UserID
		}

		_, err := s.service.CreateReservation(s.ctx, userID, showtime.ID, s.seatIDs(showtime.ID, label))
		s.Require().NoError(err)
	}

	all, metadata, err := s.service.ListReservations(s.ctx, domain.ReservationFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(3, metadata.TotalRecords)
	s.Equal(1, metadata.CurrentPage)
	s.Equal(defaultPageSize, metadata.PageSize)
	s.Greater(all[0].ID, all[2].ID)

	page, metadata, err := s.service.ListReservations(s.ctx, domain.ReservationFilter{
		UserID:     alice.UserID,
		Pagination: domain.Pagination{Page: 2, PageSize: 1},
	})
	s.Require().NoError(err)
	s.Len(page, 1)
	s.Equal(2, metadata.TotalRecords)
	s.Equal(2, metadata.LastPage)
}

func (s *BookingTestSuite) TestReportStats() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	first, err := s.service.CreateReservation(s.ctx, alice.UserID, showtime.ID, s.seatIDs(showtime.ID, "A1", "A2"))
	s.Require().NoError(err)

	_, err = s.service.CreateReservation(s.ctx, bob.UserID, showtime.ID, s.seatIDs(showtime.ID, "A3"))
	s.Require().NoError(err)

	_, err = s.service.CancelReservation(s.ctx, first.ID, alice)
	s.Require().NoError(err)

	stats, err := s.service.ReportStats(s.ctx)
	s.Require().NoError(err)

	s.Equal(2, stats.TotalReservations)
	s.Equal(1, stats.ConfirmedCount)
	s.Equal(1, stats.CancelledCount)
	s.True(decimal.RequireFromString("12.50").Equal(stats.TotalRevenue))
}

func (s *BookingTestSuite) TestPublishFailureKeepsReservation() {
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	service := NewService(s.store,
		WithPublisher(publisher),
		WithClock(func() time.Time { return testNow }),
	)

	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	reservation, err := service.CreateReservation(s.ctx, alice.UserID, showtime.ID, s.seatIDs(showtime.ID, "A1"))
	s.Require().NoError(err)
	s.NotNil(reservation)

	publisher.AssertNumberOfCalls(s.T(), "Publish", 1)
	s.Equal(1, s.assertCounter(showtime.ID))
}

func (s *BookingTestSuite) TestLockTimeout() {
	store := memstore.New(memstore.WithLockTimeout(20 * time.Millisecond))
	movie := store.AddMovie(domain.Movie{Title: "Heat"})
	service := NewService(store, WithClock(func() time.Time { return testNow }))

	showtime, err := service.CreateShowtime(s.ctx, domain.NewShowtime{
		MovieID:    movie.ID,
		StartTime:  at(18),
		EndTime:    at(20),
		Price:      decimal.NewFromInt(8),
		TotalSeats: 5,
	})
	s.Require().NoError(err)

	held := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = store.WithTx(s.ctx, writeTx, func(tx domain.Tx) error {
			_, err := tx.LockShowtime(s.ctx, showtime.ID)
			close(held)
			<-done
			return err
		})
	}()

	<-held

	_, err = service.CreateReservation(s.ctx, alice.UserID, showtime.ID, []int{1})
	close(done)

	s.ErrorIs(err, domain.ErrLockTimeout)
}
