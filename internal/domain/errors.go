package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrSchedulingConflict = errors.New("showtime overlaps with an existing showtime")
	ErrSeatNotFound       = errors.New("seat(s) do not exist for this showtime")
	ErrSeatUnavailable    = errors.New("seat(s) are already reserved")
	ErrShowtimeClosed     = errors.New("reservations are closed for this showtime")
	ErrLockTimeout        = errors.New("timed out waiting for a lock, please retry")
	ErrAccessDenied       = errors.New("access denied")
	ErrStore              = errors.New("store failure")
)

// ValidationError describes a single malformed input field.
type ValidationError struct {
	Field string
	Issue string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = fmt.Sprintf("%s %s", e.Field, e.Issue)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

type SchedulingConflictError struct {
	MovieID       int
	Start         time.Time
	End           time.Time
	ConflictingID int
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf(
		"showtime %s - %s for movie %d overlaps with showtime %d",
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
		e.MovieID,
		e.ConflictingID,
	)
}

func (e *SchedulingConflictError) Unwrap() error {
	return ErrSchedulingConflict
}

type SeatNotFoundError struct {
	ShowtimeID int
	SeatIDs    []int
}

func (e *SeatNotFoundError) Error() string {
	return fmt.Sprintf("seat(s) %s do not exist for showtime %d", joinInts(e.SeatIDs), e.ShowtimeID)
}

func (e *SeatNotFoundError) Unwrap() error {
	return ErrSeatNotFound
}

type SeatUnavailableError struct {
	ShowtimeID int
	SeatIDs    []int
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat(s) %s are already reserved for showtime %d", joinInts(e.SeatIDs), e.ShowtimeID)
}

func (e *SeatUnavailableError) Unwrap() error {
	return ErrSeatUnavailable
}

// StoreError wraps an unclassified failure of the transactional store.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %v", e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}

	return strings.Join(parts, ", ")
}
