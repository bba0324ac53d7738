package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/showtime-booking/api"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

// GetHealth reports DOWN with 503 when a configured backing service does not
// answer a ping.
func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := statusUp
	code := http.StatusOK

	if err := app.ping(ctx); err != nil {
		app.contextGetLogger(r).Warn("healthcheck failed", "error", err)
		status = statusDown
		code = http.StatusServiceUnavailable
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	err := app.writeJSON(w, code, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ping(ctx context.Context) error {
	if app.db != nil {
		if err := app.db.Ping(ctx); err != nil {
			return err
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}

	return nil
}
