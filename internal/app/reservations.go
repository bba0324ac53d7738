package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	identity, _ := app.contextGetIdentity(r)

	var input api.CreateReservationRequest

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

	reservation, err := app.booking.CreateReservation(r.Context(), identity.UserID, input.ShowtimeId, input.SeatIds)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/reservations/%d", reservation.ID))

	resp := api.ReservationResponse{Reservation: toApiReservation(*reservation)}

	err = app.writeJSON(w, http.StatusCreated, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request, reservationId int) {
	identity, _ := app.contextGetIdentity(r)

	reservation, err := app.booking.GetReservation(r.Context(), reservationId, identity)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationResponse{Reservation: toApiReservation(*reservation)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelReservation answers 404 both for unknown reservations and for ones
// that are not the caller's or were already cancelled.
func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request, reservationId int) {
	identity, _ := app.contextGetIdentity(r)

	cancelled, err := app.booking.CancelReservation(r.Context(), reservationId, identity)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	if !cancelled {
		app.errorResponse(w, r, http.StatusNotFound, ErrReservationMissing)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Reservation cancelled"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetReservations lists the reservations of every user, newest first.
func (app *Application) GetReservations(w http.ResponseWriter, r *http.Request, params api.GetReservationsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.listReservations(w, r, domain.ReservationFilter{
		Pagination: toPagination(params.Page, params.PageSize),
	})
}

func (app *Application) GetReservationsOfUser(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetReservationsOfUserParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	identity, _ := app.contextGetIdentity(r)

	app.listReservations(w, r, domain.ReservationFilter{
		UserID:     identity.UserID,
		Pagination: toPagination(params.Page, params.PageSize),
	})
}

func (app *Application) listReservations(w http.ResponseWriter, r *http.Request, filter domain.ReservationFilter) {
	reservations, metadata, err := app.booking.ListReservations(r.Context(), filter)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationListResponse{
		Reservations: make([]api.Reservation, len(reservations)),
		Metadata:     toApiMetadata(metadata),
	}

	for i, reservation := range reservations {
		resp.Reservations[i] = toApiReservation(reservation)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPagination(page, pageSize *int) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page != nil {
		pagination.Page = *page
	}
	if pageSize != nil {
		pagination.PageSize = *pageSize
	}

	return pagination
}

func toApiReservation(reservation domain.Reservation) api.Reservation {
	seats := make([]api.ReservedSeat, len(reservation.Seats))
	for i, seat := range reservation.Seats {
		seats[i] = api.ReservedSeat{
			Id:    seat.ID,
			Label: seat.Label(),
		}
	}

	return api.Reservation{
		Id:         reservation.ID,
		Reference:  reservation.Reference,
		UserId:     reservation.UserID,
		ShowtimeId: reservation.ShowtimeID,
		Status:     string(reservation.Status),
		TotalPrice: reservation.TotalPrice,
		Seats:      seats,
		CreatedAt:  reservation.CreatedAt,
	}
}
