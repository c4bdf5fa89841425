// Package ratelimit implements a fixed-window request counter keyed by an
// arbitrary string (typically "route:client-ip"). It backs the throttling of
// the unauthenticated auth endpoints, where a token-bucket keyed by principal
// is not possible.
package ratelimit

import (
	"sync"
	"time"
)

// maxTrackedKeys bounds limiter memory; when exceeded, stale windows are purged.
const maxTrackedKeys = 10000

// Result is the outcome of a limiter check.
type Result struct {
	// Allowed reports whether the attempt may proceed.
	Allowed bool
	// RetryAfter is how long the caller must wait before the window resets.
	// Zero when Allowed is true.
	RetryAfter time.Duration
	// Remaining is the number of attempts left in the current window.
	Remaining int
}

// windowCounter tracks attempts within the current fixed window.
type windowCounter struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window counter. Each key gets an independent window of
// the configured duration; when the window elapses the next attempt starts a
// fresh window with count 1 rather than incrementing indefinitely.
type Limiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxAttempts int
	counters    map[string]*windowCounter
	now         func() time.Time
}

// New creates a Limiter allowing maxAttempts per window per key.
func New(window time.Duration, maxAttempts int) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Limiter{
		window:      window,
		maxAttempts: maxAttempts,
		counters:    make(map[string]*windowCounter),
		now:         time.Now,
	}
}

// Check records an attempt for key and reports whether it is allowed.
// The rejected attempt itself is not counted against future windows.
func (l *Limiter) Check(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	counter, ok := l.counters[key]
	if !ok || now.Sub(counter.windowStart) >= l.window {
		// New key or elapsed window: restart with this attempt as the first.
		if !ok && len(l.counters) >= maxTrackedKeys {
			l.purgeStaleLocked(now)
		}
		l.counters[key] = &windowCounter{count: 1, windowStart: now}
		return Result{Allowed: true, Remaining: l.maxAttempts - 1}
	}

	if counter.count >= l.maxAttempts {
		retryAfter := counter.windowStart.Add(l.window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Result{Allowed: false, RetryAfter: retryAfter}
	}

	counter.count++
	return Result{Allowed: true, Remaining: l.maxAttempts - counter.count}
}

// Reset clears the window for a key. Used after a successful authentication
// so earlier failed attempts do not count against the caller.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, key)
}

// purgeStaleLocked removes counters whose window elapsed. Caller holds l.mu.
func (l *Limiter) purgeStaleLocked(now time.Time) {
	for key, counter := range l.counters {
		if now.Sub(counter.windowStart) >= l.window {
			delete(l.counters, key)
		}
	}
}
