package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is the in-process fallback used when Redis is not configured.
type LocalLimiter struct {
	cfg       Config
	mu        sync.Mutex
	visitors  map[string]*localEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewLocalLimiter(cfg Config) *LocalLimiter {
	return &LocalLimiter{
		cfg:      cfg.normalize(),
		visitors: make(map[string]*localEntry),
		now:      time.Now,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.visitors[key]
	if !ok {
		every := l.cfg.RefillInterval / time.Duration(l.cfg.RefillTokens)
		entry = &localEntry{limiter: rate.NewLimiter(rate.Every(every), l.cfg.Capacity)}
		l.visitors[key] = entry
	}
	entry.lastSeen = now

	decision := Decision{Limit: l.cfg.Capacity}

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		decision.RetryAfter = delay
	} else {
		decision.Allowed = true
	}

	decision.Remaining = max(0, int(entry.limiter.TokensAt(now)))

	return decision, nil
}

// sweep drops buckets that have been idle for longer than the TTL.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.TTL {
		return
	}

	for key, entry := range l.visitors {
		if now.Sub(entry.lastSeen) > l.cfg.TTL {
			delete(l.visitors, key)
		}
	}

	l.lastSweep = now
}
