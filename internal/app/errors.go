package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrMethodNotAllowed   = "The method is not supported for this resource"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrInvalidToken       = "Invalid or expired authentication token"
	ErrForbidden          = "You do not have permission to access this resource"
	ErrValidationFailed   = "One or more fields have invalid values"
	ErrRateLimitExceeded  = "Rate limit exceeded, please slow down"
	ErrReservationMissing = "Reservation not found or already cancelled"
)

// lockRetryAfter is the Retry-After hint, in seconds, sent with lock timeouts.
const lockRetryAfter = 1

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.errorResponseWithHeaders(w, r, status, message, nil)
}

func (app *Application) errorResponseWithHeaders(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	headers http.Header) {

	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, headers)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// invalidParamResponse reports path and query parameters that could not be
// bound to their declared type.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		err = fmt.Errorf("invalid %s parameter", formatErr.ParamName)
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) invalidTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidToken)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	headers := http.Header{"Retry-After": []string{strconv.Itoa(seconds)}}
	app.errorResponseWithHeaders(w, r, http.StatusTooManyRequests, ErrRateLimitExceeded, headers)
}

// failedValidationResponse writes a 422 listing every invalid field. It
// accepts both struct tag failures and validation errors raised by the
// booking service.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors []api.ValidationError

	var tagErrs validator.ValidationErrors
	var domainErrs domain.ValidationErrors

	switch {
	case errors.As(err, &tagErrs):
		for _, e := range tagErrs {
			validationErrors = append(validationErrors, api.ValidationError{
				Field: e.Field(),
				Issue: appvalidator.ValidationMessage(e),
			})
		}
	case errors.As(err, &domainErrs):
		for _, e := range domainErrs {
			validationErrors = append(validationErrors, api.ValidationError{
				Field: e.Field,
				Issue: e.Issue,
			})
		}
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrValidationFailed,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: validationErrors,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse maps the error contract of the booking service onto
// HTTP statuses. Unclassified failures are logged and reported as 500.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var domainErrs domain.ValidationErrors

	switch {
	case errors.As(err, &domainErrs):
		app.failedValidationResponse(w, r, err)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSchedulingConflict), errors.Is(err, domain.ErrSeatUnavailable):
		app.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrShowtimeClosed):
		app.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		app.forbiddenResponse(w, r)
	case errors.Is(err, domain.ErrLockTimeout):
		headers := http.Header{"Retry-After": []string{strconv.Itoa(lockRetryAfter)}}
		app.errorResponseWithHeaders(w, r, http.StatusServiceUnavailable, domain.ErrLockTimeout.Error(), headers)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
