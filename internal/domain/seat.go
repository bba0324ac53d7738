package domain

import (
	"fmt"
	"strconv"
)

const (
	DefaultSeatsPerRow = 10
	DefaultMaxSeats    = 1000
)

type Seat struct {
	ID         int
	ShowtimeID int
	Row        string
	Number     int
	IsReserved bool
}

func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

// SeatPosition is a generated, not yet persisted, seat of a seat map.
type SeatPosition struct {
	Row    string
	Number int
}

func (p SeatPosition) Label() string {
	return p.Row + strconv.Itoa(p.Number)
}

// SeatLayout generates seat maps. Rows are labelled A..Z, AA..AZ, BA.. and so
// on, so any capacity up to MaxSeats can be laid out. MaxSeats <= 0 disables
// the upper bound.
type SeatLayout struct {
	SeatsPerRow int
	MaxSeats    int
}

func DefaultSeatLayout() SeatLayout {
	return SeatLayout{
		SeatsPerRow: DefaultSeatsPerRow,
		MaxSeats:    DefaultMaxSeats,
	}
}

func (l SeatLayout) Validate(totalSeats int) error {
	var errs ValidationErrors

	if l.SeatsPerRow < 1 {
		return fmt.Errorf("seat layout: seats per row must be positive, got %d", l.SeatsPerRow)
	}

	if totalSeats < 1 {
		errs = append(errs, ValidationError{Field: "TotalSeats", Issue: "must be greater than zero"})
	}

	if l.MaxSeats > 0 && totalSeats > l.MaxSeats {
		errs = append(errs, ValidationError{
			Field: "TotalSeats",
			Issue: fmt.Sprintf("must be at most %d", l.MaxSeats),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Generate returns exactly totalSeats positions in row-major order.
func (l SeatLayout) Generate(totalSeats int) ([]SeatPosition, error) {
	err := l.Validate(totalSeats)
	if err != nil {
		return nil, err
	}

	seats := make([]SeatPosition, 0, totalSeats)

	for row := 0; len(seats) < totalSeats; row++ {
		label := RowLabel(row)

		for number := 1; number <= l.SeatsPerRow && len(seats) < totalSeats; number++ {
			seats = append(seats, SeatPosition{Row: label, Number: number})
		}
	}

	return seats, nil
}

// RowLabel converts a zero based row index to its bijective base-26 label.
func RowLabel(index int) string {
	var label []byte

	for n := index + 1; n > 0; n = (n - 1) / 26 {
		label = append([]byte{byte('A' + (n-1)%26)}, label...)
	}

	return string(label)
}
