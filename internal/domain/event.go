package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
)

type ReservationEvent struct {
	Type          EventType       `json:"type"`
	ReservationID int             `json:"reservationId"`
	Reference     uuid.UUID       `json:"reference"`
	UserID        int             `json:"userId"`
	ShowtimeID    int             `json:"showtimeId"`
	Seats         []string        `json:"seats"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func NewReservationEvent(eventType EventType, r Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		Reference:     r.Reference,
		UserID:        r.UserID,
		ShowtimeID:    r.ShowtimeID,
		Seats:         r.SeatLabels(),
		TotalPrice:    r.TotalPrice,
		OccurredAt:    at.UTC(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}
