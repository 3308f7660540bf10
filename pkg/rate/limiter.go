package rate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces operations independently per key
type Limiter interface {
	// Wait blocks until an operation for key is allowed or ctx is done
	Wait(ctx context.Context, key string) error
}

// KeyedLimiter holds one token bucket per key, created on first use. The
// burst is the whole part of the rate, and never less than one.
type KeyedLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewLocalRateLimiter(limit rate.Limit) *KeyedLimiter {
	return &KeyedLimiter{
		limit:   limit,
		burst:   max(int(limit), 1),
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return l.bucket(key).Wait(ctx)
}

// Allow reports whether an operation for key may happen now, consuming a
// token if so
func (l *KeyedLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *KeyedLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	b := rate.NewLimiter(l.limit, l.burst)
	l.buckets[key] = b
	return b
}

// NoLimiter never delays operations
type NoLimiter struct{}

func (NoLimiter) Wait(ctx context.Context, _ string) error {
	return ctx.Err()
}
