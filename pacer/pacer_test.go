package pacer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a deterministic clock. step, when nonzero, advances the
// clock on every read so spin loops terminate.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0), step: step}
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// biasedWait advances the clock by the requested duration plus a fixed
// overshoot, imitating a coarse OS timer.
func biasedWait(c *fakeClock, bias time.Duration) WaitFunc {
	return func(d time.Duration) int {
		c.advance(d + bias)
		return NoInput
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "adaptive", want: Adaptive},
		{in: "", want: Adaptive},
		{in: "hybrid", want: Hybrid},
		{in: "unlimited", want: Unlimited},
		{in: "exact", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Strategy {
	t.Helper()
	st, err := ParseStrategy(s)
	require.NoError(t, err)
	return st
}

// The adaptive strategy must cancel out a constant wait overshoot: the
// steady-state frame interval converges on the frame budget, where an
// uncorrected wait would run the full overshoot late every frame.
func TestAdaptiveCancelsOvershoot(t *testing.T) {
	const (
		bias   = 3 * time.Millisecond
		work   = 5 * time.Millisecond
		target = 60.0
	)
	frameDur := time.Second / time.Duration(target)

	clock := newFakeClock(0)
	p := New(target, Adaptive,
		WithClock(clock.now),
		WithWait(biasedWait(clock, bias)))

	var prev, last time.Time
	for i := 0; i < 200; i++ {
		clock.advance(work) // simulated render cost
		p.Tick()
		prev, last = last, clock.t
	}

	interval := last.Sub(prev)
	errAdaptive := (interval - frameDur).Abs()
	errNaive := bias // uncorrected wait lands the whole bias late

	assert.Less(t, errAdaptive, 50*time.Microsecond,
		"steady-state interval %v vs budget %v", interval, frameDur)
	assert.Less(t, errAdaptive*10, errNaive)
}

func TestHybridAlignsToTarget(t *testing.T) {
	const spinStep = 50 * time.Microsecond
	frameDur := time.Second / 60

	clock := newFakeClock(spinStep)
	p := New(60, Hybrid,
		WithClock(clock.now),
		WithWait(biasedWait(clock, time.Millisecond)))

	var prev, last time.Time
	for i := 0; i < 50; i++ {
		clock.advance(4 * time.Millisecond)
		p.Tick()
		prev, last = last, clock.t
	}

	interval := last.Sub(prev)
	assert.GreaterOrEqual(t, interval, frameDur-spinStep)
	assert.Less(t, interval, frameDur+time.Millisecond)
}

func TestUnlimitedNeverThrottles(t *testing.T) {
	clock := newFakeClock(0)
	p := New(0, Adaptive, WithClock(clock.now), WithWait(biasedWait(clock, 0)))

	start := clock.t
	for i := 0; i < 10; i++ {
		p.Tick()
	}
	// Only the minimal input-service wait per tick.
	assert.Equal(t, 10*minimalWait, clock.t.Sub(start))
}

func TestRateMatchesIntervals(t *testing.T) {
	clock := newFakeClock(0)
	p := New(0, Unlimited, WithClock(clock.now), WithWait(func(d time.Duration) int {
		clock.advance(20 * time.Millisecond)
		return NoInput
	}))

	for i := 0; i < 30; i++ {
		p.Tick()
	}
	assert.InDelta(t, 50.0, p.Rate(), 1e-9)
}

func TestRateWindowBounded(t *testing.T) {
	clock := newFakeClock(0)
	interval := 10 * time.Millisecond
	p := New(0, Unlimited, WithClock(clock.now), WithWait(func(d time.Duration) int {
		clock.advance(interval)
		return NoInput
	}))

	// Slow warm-up ticks, then speed up; the window must forget the
	// slow ones entirely.
	for i := 0; i < 50; i++ {
		p.Tick()
	}
	interval = 5 * time.Millisecond
	for i := 0; i < windowSize; i++ {
		p.Tick()
	}
	assert.InDelta(t, 200.0, p.Rate(), 1e-6)
}

func TestRateEmpty(t *testing.T) {
	clock := newFakeClock(0)
	p := New(60, Adaptive, WithClock(clock.now), WithWait(biasedWait(clock, 0)))
	assert.Zero(t, p.Rate())
}

func TestSetTargetResets(t *testing.T) {
	clock := newFakeClock(0)
	p := New(60, Adaptive, WithClock(clock.now), WithWait(biasedWait(clock, time.Millisecond)))

	for i := 0; i < 20; i++ {
		clock.advance(2 * time.Millisecond)
		p.Tick()
	}
	require.NotZero(t, p.Rate())

	p.SetTarget(30)
	assert.Equal(t, 30.0, p.Target())
	assert.Zero(t, p.Rate(), "tick history cleared")
	assert.Zero(t, p.overshoot, "overshoot estimate cleared")
}

func TestWaitDeliversInput(t *testing.T) {
	clock := newFakeClock(0)
	p := New(60, Adaptive, WithClock(clock.now), WithWait(func(d time.Duration) int {
		clock.advance(d)
		return 'q'
	}))

	assert.Equal(t, int('q'), p.Tick())
}
