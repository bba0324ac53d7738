package booking

import (
	"errors"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *BookingTestSuite) TestCreateShowtime() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 25)

	s.Positive(showtime.ID)
	s.Equal(25, showtime.TotalSeats)
	s.Equal(25, showtime.AvailableSeats)

	_, seats, err := s.service.SeatMap(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Require().Len(seats, 25)

	s.Equal("A1", seats[0].Label())
	s.Equal("B1", seats[10].Label())
	s.Equal("C5", seats[24].Label())

	for _, seat := range seats {
		s.False(seat.IsReserved)
	}
}

func (s *BookingTestSuite) TestCreateShowtimeRejectsOverlap() {
	existing := s.createShowtime(s.movie.ID, 18, 20, 10)

	_, err := s.service.CreateShowtime(s.ctx, domain.NewShowtime{
		MovieID:    s.movie.ID,
		StartTime:  at(19),
		EndTime:    at(21),
		Price:      decimal.NewFromInt(10),
		TotalSeats: 10,
	})

	var conflict *domain.SchedulingConflictError
	s.Require().True(errors.As(err, &conflict))
	s.Equal(existing.ID, conflict.ConflictingID)
	s.ErrorIs(err, domain.ErrSchedulingConflict)
}

func (s *BookingTestSuite) TestCreateShowtimeAllowsAdjacentAndOtherMovies() {
	s.createShowtime(s.movie.ID, 18, 20, 10)

	s.createShowtime(s.movie.ID, 20, 22, 10)
	s.createShowtime(s.other.ID, 18, 20, 10)
}

func (s *BookingTestSuite) TestCreateShowtimeUnknownMovie() {
	_, err := s.service.CreateShowtime(s.ctx, domain.NewShowtime{
		MovieID:    999,
		StartTime:  at(18),
		EndTime:    at(20),
		Price:      decimal.NewFromInt(10),
		TotalSeats: 10,
	})

	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *BookingTestSuite) TestCreateShowtimeValidation() {
	tests := []struct {
		name      string
		input     domain.NewShowtime
		wantField string
	}{
		{
			name:      "end before start",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(20), EndTime: at(18), TotalSeats: 10},
			wantField: "EndTime",
		},
		{
			name:      "negative price",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(18), EndTime: at(20), Price: decimal.NewFromInt(-1), TotalSeats: 10},
			wantField: "Price",
		},
		{
			name:      "sub-cent price",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(18), EndTime: at(20), Price: decimal.RequireFromString("12.345"), TotalSeats: 10},
			wantField: "Price",
		},
		{
			name:      "price above maximum",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(18), EndTime: at(20), Price: domain.MaxPrice.Add(decimal.New(1, -2)), TotalSeats: 10},
			wantField: "Price",
		},
		{
			name:      "no seats",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(18), EndTime: at(20)},
			wantField: "TotalSeats",
		},
		{
			name:      "too many seats",
			input:     domain.NewShowtime{MovieID: s.movie.ID, StartTime: at(18), EndTime: at(20), TotalSeats: domain.DefaultMaxSeats + 1},
			wantField: "TotalSeats",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateShowtime(s.ctx, tt.input)

			var verrs domain.ValidationErrors
			s.Require().True(errors.As(err, &verrs))
			s.Equal(tt.wantField, verrs[0].Field)
		})
	}
}

func (s *BookingTestSuite) TestCreateShowtimeAcceptsMaximumPrice() {
	showtime, err := s.service.CreateShowtime(s.ctx, domain.NewShowtime{
		MovieID:    s.movie.ID,
		StartTime:  at(18),
		EndTime:    at(20),
		Price:      domain.MaxPrice,
		TotalSeats: domain.DefaultMaxSeats,
	})
	s.Require().NoError(err)

	_, seats, err := s.service.SeatMap(s.ctx, showtime.ID)
	s.Require().NoError(err)

	ids := make([]int, len(seats))
	for i, seat := range seats {
		ids[i] = seat.ID
	}

	reservation, err := s.service.CreateReservation(s.ctx, 1, showtime.ID, ids)
	s.Require().NoError(err)
	s.Equal("9999990.00", reservation.TotalPrice.StringFixed(domain.PriceScale))
}

func (s *BookingTestSuite) TestUpdateShowtime() {
	first := s.createShowtime(s.movie.ID, 18, 20, 10)
	second := s.createShowtime(s.movie.ID, 21, 23, 10)

	s.Run("price only", func() {
		price := decimal.RequireFromString("9.99")

		updated, err := s.service.UpdateShowtime(s.ctx, first.ID, domain.ShowtimePatch{Price: &price})
		s.Require().NoError(err)
		s.True(price.Equal(updated.Price))
		s.Equal(10, updated.AvailableSeats)
	})

	s.Run("reschedule into overlap", func() {
		start, end := at(19), at(22)

		_, err := s.service.UpdateShowtime(s.ctx, second.ID, domain.ShowtimePatch{StartTime: &start, EndTime: &end})
		s.ErrorIs(err, domain.ErrSchedulingConflict)

		unchanged, err := s.service.GetShowtime(s.ctx, second.ID)
		s.Require().NoError(err)
		s.True(unchanged.StartTime.Equal(at(21)))
	})

	s.Run("move to another movie", func() {
		movieID := s.other.ID

		updated, err := s.service.UpdateShowtime(s.ctx, second.ID, domain.ShowtimePatch{MovieID: &movieID})
		s.Require().NoError(err)
		s.Equal(s.other.ID, updated.MovieID)
	})

	s.Run("start after existing end", func() {
		start := at(21)

		_, err := s.service.UpdateShowtime(s.ctx, first.ID, domain.ShowtimePatch{StartTime: &start})

		var verrs domain.ValidationErrors
		s.True(errors.As(err, &verrs))
	})

	s.Run("empty patch", func() {
		_, err := s.service.UpdateShowtime(s.ctx, first.ID, domain.ShowtimePatch{})

		var verrs domain.ValidationErrors
		s.True(errors.As(err, &verrs))
	})

	s.Run("sub-cent price", func() {
		price := decimal.RequireFromString("9.999")

		_, err := s.service.UpdateShowtime(s.ctx, first.ID, domain.ShowtimePatch{Price: &price})

		var verrs domain.ValidationErrors
		s.Require().True(errors.As(err, &verrs))
		s.Equal("Price", verrs[0].Field)
		s.Equal("must have at most 2 decimal places", verrs[0].Issue)
	})

	s.Run("unknown showtime", func() {
		price := decimal.NewFromInt(1)

		_, err := s.service.UpdateShowtime(s.ctx, 999, domain.ShowtimePatch{Price: &price})
		s.ErrorIs(err, domain.ErrRecordNotFound)
	})
}

func (s *BookingTestSuite) TestDeleteShowtime() {
	showtime := s.createShowtime(s.movie.ID, 18, 20, 10)

	reservation, err := s.service.CreateReservation(s.ctx, 1, showtime.ID, s.seatIDs(showtime.ID, "A1"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteShowtime(s.ctx, showtime.ID))

	_, err = s.service.GetShowtime(s.ctx, showtime.ID)
	s.ErrorIs(err, domain.ErrRecordNotFound)

	_, err = s.service.GetReservation(s.ctx, reservation.ID, domain.Identity{UserID: 1, Role: domain.RoleUser})
	s.ErrorIs(err, domain.ErrRecordNotFound)

	s.ErrorIs(s.service.DeleteShowtime(s.ctx, showtime.ID), domain.ErrRecordNotFound)
}

func (s *BookingTestSuite) TestUpcomingShowtimes() {
	s.createShowtime(s.movie.ID, 7, 9, 10)
	later := s.createShowtime(s.movie.ID, 20, 22, 10)
	sooner := s.createShowtime(s.movie.ID, 12, 14, 10)

	showtimes, err := s.service.UpcomingShowtimes(s.ctx, s.movie.ID)
	s.Require().NoError(err)
	s.Require().Len(showtimes, 2)
	s.Equal(sooner.ID, showtimes[0].ID)
	s.Equal(later.ID, showtimes[1].ID)

	_, err = s.service.UpcomingShowtimes(s.ctx, 999)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}
