package app

import (
	"net/http"
	"sync"

	"github.com/metinatakli/showtime-booking/api"
)

var loadSpec = sync.OnceValues(api.GetSwagger)

// GetOpenAPISpec serves the API description the routes are generated from.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec, err := loadSpec()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, spec, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
