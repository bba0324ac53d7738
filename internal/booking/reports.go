package booking

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

// ReportStats aggregates reservation counts and confirmed revenue from a
// single read-only snapshot.
func (s *Service) ReportStats(ctx context.Context) (domain.ReportStats, error) {
	var stats domain.ReportStats

	err := s.store.WithTx(ctx, reportTx, func(tx domain.Tx) error {
		var err error
		stats, err = tx.ReportStats(ctx)
		return err
	})

	return stats, err
}
