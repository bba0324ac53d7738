package booking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/metinatakli/showtime-booking/internal/booking"

type metrics struct {
	reservationsCreated   metric.Int64Counter
	reservationsCancelled metric.Int64Counter
	seatsReserved         metric.Int64Counter
	allocationFailures    metric.Int64Counter
	showtimesScheduled    metric.Int64Counter
}

// newMetrics registers the booking instruments on the global meter provider,
// which is a no-op until telemetry is initialised.
func newMetrics() *metrics {
	meter := otel.Meter(meterName)

	// errors are only returned for malformed instrument names
	reservationsCreated, _ := meter.Int64Counter("booking.reservations.created",
		metric.WithDescription("Confirmed reservations"))
	reservationsCancelled, _ := meter.Int64Counter("booking.reservations.cancelled",
		metric.WithDescription("Cancelled reservations"))
	seatsReserved, _ := meter.Int64Counter("booking.seats.reserved",
		metric.WithDescription("Seats allocated to confirmed reservations"))
	allocationFailures, _ := meter.Int64Counter("booking.allocation.failures",
		metric.WithDescription("Reservation attempts rejected by the allocator"))
	showtimesScheduled, _ := meter.Int64Counter("booking.showtimes.scheduled",
		metric.WithDescription("Showtimes created"))

	return &metrics{
		reservationsCreated:   reservationsCreated,
		reservationsCancelled: reservationsCancelled,
		seatsReserved:         seatsReserved,
		allocationFailures:    allocationFailures,
		showtimesScheduled:    showtimesScheduled,
	}
}

func (m *metrics) reservationCreated(ctx context.Context, seats int) {
	if m.reservationsCreated != nil {
		m.reservationsCreated.Add(ctx, 1)
	}
	if m.seatsReserved != nil {
		m.seatsReserved.Add(ctx, int64(seats))
	}
}

func (m *metrics) reservationCancelled(ctx context.Context) {
	if m.reservationsCancelled != nil {
		m.reservationsCancelled.Add(ctx, 1)
	}
}

func (m *metrics) allocationFailed(ctx context.Context, reason string) {
	if m.allocationFailures != nil {
		m.allocationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m *metrics) showtimeScheduled(ctx context.Context) {
	if m.showtimesScheduled != nil {
		m.showtimesScheduled.Add(ctx, 1)
	}
}
