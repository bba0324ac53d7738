package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

type contextKey string

const (
	identityContextKey = contextKey("identity")
	loggerContextKey   = contextKey("logger")
)

func (app *Application) contextSetIdentity(r *http.Request, identity domain.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

// contextGetIdentity reports false for anonymous requests.
func (app *Application) contextGetIdentity(r *http.Request) (domain.Identity, bool) {
	identity, ok := r.Context().Value(identityContextKey).(domain.Identity)
	return identity, ok
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
