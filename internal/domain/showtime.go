package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a seat price may carry.
const PriceScale = 2

// MaxPrice is the highest seat price a showtime accepts.
var MaxPrice = decimal.New(999999, -PriceScale)

type Showtime struct {
	ID             int
	MovieID        int
	StartTime      time.Time
	EndTime        time.Time
	Price          decimal.Decimal
	TotalSeats     int
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Overlaps reports whether the showtime intersects the half-open interval [start, end).
func (s Showtime) Overlaps(start, end time.Time) bool {
	return start.Before(s.EndTime) && s.StartTime.Before(end)
}

type NewShowtime struct {
	MovieID    int
	StartTime  time.Time
	EndTime    time.Time
	Price      decimal.Decimal
	TotalSeats int
}

// ShowtimePatch lists the showtime fields an admin may change. The seat count
// is fixed at creation and cannot be patched.
type ShowtimePatch struct {
	MovieID   *int
	StartTime *time.Time
	EndTime   *time.Time
	Price     *decimal.Decimal
}

func (p ShowtimePatch) IsEmpty() bool {
	return p.MovieID == nil && p.StartTime == nil && p.EndTime == nil && p.Price == nil
}

// Reschedules reports whether applying the patch moves the showtime in time or to another movie.
func (p ShowtimePatch) Reschedules(s Showtime) bool {
	return (p.MovieID != nil && *p.MovieID != s.MovieID) ||
		(p.StartTime != nil && !p.StartTime.Equal(s.StartTime)) ||
		(p.EndTime != nil && !p.EndTime.Equal(s.EndTime))
}

func (p ShowtimePatch) Apply(s *Showtime) {
	if p.MovieID != nil {
		s.MovieID = *p.MovieID
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
}
