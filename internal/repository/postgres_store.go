package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

// advisory lock namespace for per-movie scheduling locks
const movieLockClass = 1

type PostgresStore struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, lockTimeout time.Duration) *PostgresStore {
	return &PostgresStore{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// WithTx runs fn in a database transaction. Row locks taken by fn are held
// until commit or rollback, and waiting for one longer than the configured
// lock timeout fails with domain.ErrLockTimeout.
func (p *PostgresStore) WithTx(ctx context.Context, opts domain.TxOptions, fn func(tx domain.Tx) error) error {
	txOptions := pgx.TxOptions{
		IsoLevel: pgx.TxIsoLevel(opts.Isolation),
	}
	if opts.ReadOnly {
		txOptions.AccessMode = pgx.ReadOnly
	}

	tx, err := p.db.BeginTx(ctx, txOptions)
	if err != nil {
		return classify(err)
	}

	err = p.run(ctx, tx, fn)
	if err == nil {
		return classify(tx.Commit(ctx))
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresStore) run(ctx context.Context, tx pgx.Tx, fn func(tx domain.Tx) error) error {
	if p.lockTimeout > 0 {
		timeout := strconv.FormatInt(p.lockTimeout.Milliseconds(), 10) + "ms"

		_, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", timeout)
		if err != nil {
			return classify(err)
		}
	}

	return fn(&postgresTx{tx: tx})
}

// classify maps driver failures onto the store error contract. Lock waits
// that were cut short are retryable, everything else is an opaque store error.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.DeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrLockTimeout, pgErr.Message)
		}
	}

	return &domain.StoreError{Err: err}
}
