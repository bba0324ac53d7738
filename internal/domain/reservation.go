package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID         int
	Reference  uuid.UUID
	UserID     int
	ShowtimeID int
	Status     ReservationStatus
	TotalPrice decimal.Decimal
	Seats      []Seat
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Reservation) SeatIDs() []int {
	ids := make([]int, len(r.Seats))
	for i, s := range r.Seats {
		ids[i] = s.ID
	}

	return ids
}

func (r Reservation) SeatLabels() []string {
	labels := make([]string, len(r.Seats))
	for i, s := range r.Seats {
		labels[i] = s.Label()
	}

	return labels
}

// ReservationFilter narrows reservation listings. A zero UserID lists every user.
type ReservationFilter struct {
	UserID int
	Pagination
}

type ReportStats struct {
	TotalReservations int
	ConfirmedCount    int
	CancelledCount    int
	TotalRevenue      decimal.Decimal
}
