// Package booking implements showtime scheduling, seat allocation,
// cancellation and reporting on top of a transactional domain.Store.
package booking

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

const defaultPageSize = 10

var (
	writeTx  = domain.TxOptions{Isolation: domain.ReadCommitted}
	readTx   = domain.TxOptions{Isolation: domain.ReadCommitted, ReadOnly: true}
	reportTx = domain.TxOptions{Isolation: domain.RepeatableRead, ReadOnly: true}
)

type Service struct {
	store     domain.Store
	layout    domain.SeatLayout
	publisher domain.EventPublisher
	logger    *slog.Logger
	metrics   *metrics
	now       func() time.Time
}

type Option func(*Service)

func WithSeatLayout(layout domain.SeatLayout) Option {
	return func(s *Service) {
		s.layout = layout
	}
}

func WithPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store domain.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		layout:  domain.DefaultSeatLayout(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newMetrics(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// publish hands a committed change to the event publisher. Delivery failures
// are logged and never undo the committed transaction.
func (s *Service) publish(ctx context.Context, eventType domain.EventType, r domain.Reservation) {
	if s.publisher == nil {
		return
	}

	event := domain.NewReservationEvent(eventType, r, s.now())

	err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.logger.Error("failed to publish reservation event",
			"event", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
	}
}
