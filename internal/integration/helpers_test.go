package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore nondeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k, v := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch nested := v.(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if obj, ok := item.(map[string]any); ok {
					cleanMap(obj)
				}
			}
		}
	}
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(),
		`TRUNCATE movies, showtimes, seats, reservations, reservation_seats RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, title, genre string) int {
	var id int

	err := db.QueryRow(context.Background(), `
		INSERT INTO movies (title, description, genre, duration)
		VALUES ($1, $2, $3, 120)
		RETURNING id`, title, title+" description", genre).Scan(&id)
	require.NoError(t, err)

	return id
}

// futureSlot returns a start time on a fixed day far in the future.
func futureSlot(hour int) time.Time {
	return time.Date(2095, 1, 1, hour, 0, 0, 0, time.UTC)
}

func insertTestShowtime(t testing.TB, app *TestApp, movieID, startHour, seats int, price string) *domain.Showtime {
	showtime, err := app.Booking.CreateShowtime(context.Background(), domain.NewShowtime{
		MovieID:    movieID,
		StartTime:  futureSlot(startHour),
		EndTime:    futureSlot(startHour + 2),
		Price:      decimal.RequireFromString(price),
		TotalSeats: seats,
	})
	require.NoError(t, err)

	return showtime
}

func seatCounters(t testing.TB, db *pgxpool.Pool, showtimeID int) (available, reserved int) {
	err := db.QueryRow(context.Background(), `
		SELECT s.available_seats, (SELECT count(*) FROM seats WHERE showtime_id = s.id AND is_reserved)
		FROM showtimes s
		WHERE s.id = $1`, showtimeID).Scan(&available, &reserved)
	require.NoError(t, err)

	return available, reserved
}
