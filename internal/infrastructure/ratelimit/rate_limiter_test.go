package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perSecond float64, burst int, clock *time.Time) *RateLimiter {
	rl := NewRateLimiter(perSecond, burst)
	rl.now = func() time.Time { return *clock }
	return rl
}

func TestRateLimiter_BurstThenRefuse(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, 3, &clock)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1")
		assert.True(t, ok, "request %d", i)
	}

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	// other keys have their own bucket
	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)

	clock = clock.Add(time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiter_RefusalDoesNotConsume(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, 1, &clock)

	ok, _ := rl.Allow("k")
	assert.True(t, ok)
	for i := 0; i < 5; i++ {
		ok, _ = rl.Allow("k")
		assert.False(t, ok)
	}

	clock = clock.Add(time.Second)
	ok, _ = rl.Allow("k")
	assert.True(t, ok)
}

func TestRateLimiter_ZeroBurstAlwaysRefuses(t *testing.T) {
	clock := time.Now()
	rl := newTestLimiter(1, 0, &clock)

	ok, _ := rl.Allow("k")
	assert.False(t, ok)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, 1, &clock)

	rl.Allow("old")
	clock = clock.Add(2 * time.Hour)
	rl.Allow("fresh")

	rl.Cleanup(time.Hour)
	assert.Equal(t, 1, rl.Size())
}
