package app

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/showtime-booking/api"
)

const (
	scopeAdmin   = "admin"
	scopeBooking = "booking"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest attaches a request scoped logger to the context and writes one
// access log line per request.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))
		r = app.contextSetLogger(r, logger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.InfoContext(r.Context(), "request completed",
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// authenticate resolves an optional bearer token into the caller identity.
// Requests without an Authorization header pass through anonymously.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.invalidTokenResponse(w, r)
			return
		}

		identity, err := app.parseToken(headerParts[1])
		if err != nil {
			app.contextGetLogger(r).Debug("rejected bearer token", "error", err)
			app.invalidTokenResponse(w, r)
			return
		}

		r = app.contextSetIdentity(r, identity)
		r = app.contextSetLogger(r, app.contextGetLogger(r).With("user_id", identity.UserID))

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := app.contextGetIdentity(r)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return app.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := app.contextGetIdentity(r)
		if !identity.IsAdmin() {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}))
}

// authorizeOperation enforces the bearerAuth scopes an operation declares.
// Operations without a security requirement stay public. The admin scope
// requires the admin role and the booking scope adds rate limiting.
func (app *Application) authorizeOperation(next http.Handler) http.Handler {
	admin := app.requireAdmin(next)
	booking := app.requireAuthentication(app.rateLimit(next))
	user := app.requireAuthentication(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scopes, ok := r.Context().Value(api.BearerAuthScopes).([]string)

		switch {
		case !ok:
			next.ServeHTTP(w, r)
		case slices.Contains(scopes, scopeAdmin):
			admin.ServeHTTP(w, r)
		case slices.Contains(scopes, scopeBooking):
			booking.ServeHTTP(w, r)
		default:
			user.ServeHTTP(w, r)
		}
	})
}

// rateLimit throttles callers by user id, or by client IP when anonymous.
// Limiter failures let the request through.
func (app *Application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.limiter == nil || !app.config.RateLimit.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		decision, err := app.limiter.Allow(r.Context(), rateLimitKey(r, app))
		if err != nil {
			app.contextGetLogger(r).Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			app.rateLimitExceededResponse(w, r, decision.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func rateLimitKey(r *http.Request, app *Application) string {
	if identity, ok := app.contextGetIdentity(r); ok {
		return "user:" + strconv.Itoa(identity.UserID)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	return "ip:" + ip
}
