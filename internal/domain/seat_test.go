package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{9, "J"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RowLabel(tt.index), "index %d", tt.index)
	}
}

func TestSeatLayoutGenerate(t *testing.T) {
	t.Run("full rows", func(t *testing.T) {
		seats, err := DefaultSeatLayout().Generate(100)
		require.NoError(t, err)
		require.Len(t, seats, 100)

		assert.Equal(t, "A1", seats[0].Label())
		assert.Equal(t, "A10", seats[9].Label())
		assert.Equal(t, "B1", seats[10].Label())
		assert.Equal(t, "J10", seats[99].Label())
	})

	t.Run("partial last row", func(t *testing.T) {
		seats, err := DefaultSeatLayout().Generate(25)
		require.NoError(t, err)
		require.Len(t, seats, 25)

		assert.Equal(t, "C5", seats[24].Label())
	})

	t.Run("more than 26 rows", func(t *testing.T) {
		layout := SeatLayout{SeatsPerRow: 2, MaxSeats: 0}

		seats, err := layout.Generate(60)
		require.NoError(t, err)
		require.Len(t, seats, 60)

		assert.Equal(t, "Z2", seats[51].Label())
		assert.Equal(t, "AA1", seats[52].Label())
		assert.Equal(t, "AD2", seats[59].Label())

		labels := make(map[string]bool, len(seats))
		for _, s := range seats {
			labels[s.Label()] = true
		}
		assert.Len(t, labels, 60)
	})

	t.Run("zero seats", func(t *testing.T) {
		_, err := DefaultSeatLayout().Generate(0)

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "TotalSeats", verrs[0].Field)
	})

	t.Run("above maximum", func(t *testing.T) {
		_, err := SeatLayout{SeatsPerRow: 10, MaxSeats: 50}.Generate(51)

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "must be at most 50", verrs[0].Issue)
	})

	t.Run("misconfigured layout", func(t *testing.T) {
		_, err := SeatLayout{}.Generate(10)
		require.Error(t, err)

		var verrs ValidationErrors
		assert.False(t, errors.As(err, &verrs))
	})
}

func TestShowtimeOverlaps(t *testing.T) {
	s := Showtime{StartTime: at(10), EndTime: at(12)}

	assert.True(t, s.Overlaps(at(11), at(13)))
	assert.True(t, s.Overlaps(at(9), at(11)))
	assert.True(t, s.Overlaps(at(10), at(12)))
	assert.False(t, s.Overlaps(at(12), at(14)), "touching end")
	assert.False(t, s.Overlaps(at(8), at(10)), "touching start")
}
