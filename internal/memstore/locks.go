package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

// lockTable hands out exclusive row locks keyed by "<table>:<id>". A lock is a
// one slot channel: sending acquires it, receiving releases it.
type lockTable struct {
	mu   sync.Mutex
	rows map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{rows: make(map[string]chan struct{})}
}

func (l *lockTable) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.rows[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.rows[key] = ch
	}

	return ch
}

// acquire blocks until the row is free, ctx is done or timeout elapses.
// A zero timeout waits for as long as ctx allows.
func (l *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) (chan struct{}, error) {
	ch := l.slot(key)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case ch <- struct{}{}:
		return ch, nil
	case <-expired:
		return nil, domain.ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
