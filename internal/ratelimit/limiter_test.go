package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// withFakeClock replaces the limiter clock with a controllable one.
func withFakeClock(l *Limiter, start time.Time) *time.Time {
	current := start
	l.now = func() time.Time { return current }
	return &current
}

func TestLimiter_AllowsUpToMaxAttempts(t *testing.T) {
	l := New(15*time.Minute, 5)
	withFakeClock(l, time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		result := l.Check("login:192.0.2.1")
		assert.True(t, result.Allowed, "attempt %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}
}

func TestLimiter_SixthAttemptRejectedWithRetryAfter(t *testing.T) {
	window := 15 * time.Minute
	l := New(window, 5)
	clock := withFakeClock(l, time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		l.Check("login:192.0.2.1")
	}

	*clock = clock.Add(10 * time.Second)
	result := l.Check("login:192.0.2.1")

	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, result.RetryAfter, window)
}

func TestLimiter_WindowRolloverResetsToOne(t *testing.T) {
	l := New(time.Minute, 2)
	clock := withFakeClock(l, time.Unix(1000, 0))

	l.Check("k")
	l.Check("k")
	assert.False(t, l.Check("k").Allowed)

	// Window elapses: counter restarts at 1, not 3.
	*clock = clock.Add(time.Minute)
	result := l.Check("k")
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(time.Minute, 1)
	withFakeClock(l, time.Unix(1000, 0))

	assert.True(t, l.Check("login:192.0.2.1").Allowed)
	assert.False(t, l.Check("login:192.0.2.1").Allowed)
	assert.True(t, l.Check("login:192.0.2.2").Allowed)
	assert.True(t, l.Check("refresh:192.0.2.1").Allowed)
}

func TestLimiter_RejectedAttemptDoesNotExtendWindow(t *testing.T) {
	l := New(time.Minute, 1)
	clock := withFakeClock(l, time.Unix(1000, 0))

	l.Check("k")
	for i := 0; i < 10; i++ {
		*clock = clock.Add(time.Second)
		l.Check("k")
	}

	// 60s after window start the window elapses regardless of rejected attempts.
	*clock = time.Unix(1000, 0).Add(time.Minute)
	assert.True(t, l.Check("k").Allowed)
}

func TestLimiter_Reset(t *testing.T) {
	l := New(time.Minute, 1)
	withFakeClock(l, time.Unix(1000, 0))

	l.Check("k")
	assert.False(t, l.Check("k").Allowed)

	l.Reset("k")
	assert.True(t, l.Check("k").Allowed)
}

func TestLimiter_RetryAfterFloorOneSecond(t *testing.T) {
	l := New(time.Minute, 1)
	clock := withFakeClock(l, time.Unix(1000, 0))

	l.Check("k")
	*clock = clock.Add(59*time.Second + 800*time.Millisecond)

	result := l.Check("k")
	assert.False(t, result.Allowed)
	assert.Equal(t, time.Second, result.RetryAfter)
}

func TestLimiter_StalePurgeBoundsMemory(t *testing.T) {
	l := New(time.Minute, 1)
	clock := withFakeClock(l, time.Unix(1000, 0))

	for i := 0; i < maxTrackedKeys; i++ {
		l.Check(fmt.Sprintf("k%d", i))
	}
	*clock = clock.Add(2 * time.Minute)

	// New key triggers a purge of all elapsed windows.
	l.Check("fresh")
	l.mu.Lock()
	tracked := len(l.counters)
	l.mu.Unlock()
	assert.Equal(t, 1, tracked)
}

func TestLimiter_ConcurrentChecksSingleWinner(t *testing.T) {
	l := New(time.Minute, 1)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("k").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, allowed)
}

func TestNew_Defaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, time.Minute, l.window)
	assert.Equal(t, 10, l.maxAttempts)
}
