package app

import (
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
)

func (app *Application) GetReservationReport(w http.ResponseWriter, r *http.Request) {
	stats, err := app.booking.ReportStats(r.Context())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.ReportResponse{
		TotalReservations: stats.TotalReservations,
		ConfirmedCount:    stats.ConfirmedCount,
		CancelledCount:    stats.CancelledCount,
		TotalRevenue:      stats.TotalRevenue,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
