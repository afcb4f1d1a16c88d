// Package throttle provides a per-key rate limiter that admits at most one
// call per window and drops the rest. Callers that are refused are expected
// to discard the work, not queue it.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keys independent single-slot limiters. Each key gets its own
// window; admitting one key never consumes another key's slot.
type Limiter struct {
	mu       sync.Mutex
	window   time.Duration
	limiters map[string]*rate.Limiter
}

// New creates a Limiter admitting one call per window per key.
func New(window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Second
	}
	return &Limiter{
		window:   window,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a call for key may proceed now. A refused call is
// dropped; the slot refills one window after the admitted call.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.window), 1)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
