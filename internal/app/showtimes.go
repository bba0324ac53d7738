package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request, showtimeId int) {
	showtime, err := app.booking.GetShowtime(r.Context(), showtimeId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowtimeResponse{Showtime: toApiShowtime(*showtime)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request, showtimeId int) {
	showtime, seats, err := app.booking.SeatMap(r.Context(), showtimeId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId:     showtime.ID,
		TotalSeats:     showtime.TotalSeats,
		AvailableSeats: showtime.AvailableSeats,
		Seats:          make([]api.Seat, len(seats)),
	}

	for i, seat := range seats {
		resp.Seats[i] = api.Seat{
			Id:         seat.ID,
			Row:        seat.Row,
			Number:     seat.Number,
			Label:      seat.Label(),
			IsReserved: seat.IsReserved,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.booking.CreateShowtime(r.Context(), domain.NewShowtime{
		MovieID:    input.MovieId,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Price:      input.Price,
		TotalSeats: input.TotalSeats,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/showtimes/%d", showtime.ID))

	err = app.writeJSON(w, http.StatusCreated, api.ShowtimeResponse{Showtime: toApiShowtime(*showtime)}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request, showtimeId int) {
	var input api.UpdateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.booking.UpdateShowtime(r.Context(), showtimeId, domain.ShowtimePatch{
		MovieID:   input.MovieId,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Price:     input.Price,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowtimeResponse{Showtime: toApiShowtime(*showtime)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request, showtimeId int) {
	err := app.booking.DeleteShowtime(r.Context(), showtimeId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toApiShowtimes(showtimes []domain.Showtime) []api.Showtime {
	result := make([]api.Showtime, len(showtimes))
	for i, s := range showtimes {
		result[i] = toApiShowtime(s)
	}

	return result
}

func toApiShowtime(s domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:             s.ID,
		MovieId:        s.MovieID,
		StartTime:      s.StartTime.UTC(),
		EndTime:        s.EndTime.UTC(),
		Price:          s.Price,
		TotalSeats:     s.TotalSeats,
		AvailableSeats: s.AvailableSeats,
	}
}
