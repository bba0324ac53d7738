package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/memstore"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/metinatakli/showtime-booking/internal/validator"
)

const testSecret = "test-secret-0123456789abcdef0123"

var (
	testNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	alice = domain.Identity{UserID: 1, Role: domain.RoleUser}
	bob   = domain.Identity{UserID: 2, Role: domain.RoleUser}
	admin = domain.Identity{UserID: 99, Role: domain.RoleAdmin}
)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config: Config{
			Env: "test",
			JWT: JWTConfig{Secret: testSecret},
		},
		validator: validator.NewValidator(),
		logger:    logger,
		movieRepo: &mocks.MockMovieRepo{},
		booking: booking.NewService(memstore.New(),
			booking.WithLogger(logger),
			booking.WithClock(func() time.Time { return testNow }),
		),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// withStore replaces the booking service with one backed by store.
func withStore(store *memstore.Store) func(*Application) {
	return func(a *Application) {
		a.booking = booking.NewService(store,
			booking.WithLogger(a.logger),
			booking.WithClock(func() time.Time { return testNow }),
		)
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func authorize(t *testing.T, r *http.Request, identity domain.Identity) {
	t.Helper()

	token, err := IssueToken(testSecret, "", identity, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	r.Header.Set("Authorization", "Bearer "+token)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return v
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response %+v",
				tt.wantErrMessage, validationResp.ValidationErrors)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
