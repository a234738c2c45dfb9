// Package pacer holds the frame rate of a render loop steady on top of
// an imprecise native wait primitive.
//
// The native primitive (display event wait, channel timeout, plain
// sleep) is injected as a WaitFunc: it blocks up to the requested
// duration, services input, and returns a raw input code. Coarse OS
// timers make such waits overshoot; the adaptive strategy measures the
// overshoot and subtracts a running estimate from future requests, the
// hybrid strategy sleeps coarsely and spins for the final alignment.
package pacer

import (
	"fmt"
	"time"

	"github.com/gammazero/deque"
)

// Strategy selects how Tick spends the frame's remaining time.
type Strategy int

const (
	// Adaptive computes the wait from the frame budget and corrects for
	// measured overshoot of the wait primitive. Recommended default.
	Adaptive Strategy = iota
	// Hybrid issues a coarse wait short of the target, then busy-polls
	// the clock until the exact tick instant. Near-exact cadence at the
	// cost of CPU.
	Hybrid
	// Unlimited never throttles; the minimal wait only services input.
	Unlimited
)

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "adaptive", "":
		return Adaptive, nil
	case "hybrid":
		return Hybrid, nil
	case "unlimited":
		return Unlimited, nil
	}
	return Adaptive, fmt.Errorf("pacer: unknown strategy %q", s)
}

func (s Strategy) String() string {
	switch s {
	case Hybrid:
		return "hybrid"
	case Unlimited:
		return "unlimited"
	default:
		return "adaptive"
	}
}

// NoInput is returned by Tick when the wait primitive saw no input.
const NoInput = -1

// WaitFunc is the native wait primitive: block up to d while servicing
// input, return a raw input code or NoInput.
type WaitFunc func(d time.Duration) int

const (
	// minimalWait is issued even when the frame budget is exhausted, so
	// the primitive still gets a chance to deliver input.
	minimalWait = time.Millisecond
	// hybridMargin is how early the coarse wait stops before the target;
	// it bounds both the spin time and its CPU cost.
	hybridMargin = 2 * time.Millisecond
	// hybridThreshold below which the coarse wait is skipped entirely.
	hybridThreshold = 3 * time.Millisecond

	// overshootAlpha is the EMA weight for the overshoot estimate.
	overshootAlpha = 0.1

	// windowSize bounds the tick timestamp history for Rate.
	windowSize = 120
)

// Pacer paces a single-threaded render loop. It is not safe for
// concurrent use; the loop thread owns it (the native display/input
// primitives are single-thread-affine anyway).
type Pacer struct {
	targetHz float64
	frameDur time.Duration
	strategy Strategy

	wait WaitFunc
	now  func() time.Time

	lastTick  time.Time
	ticks     deque.Deque[time.Time]
	overshoot float64 // seconds; EMA of (actual - requested) wait
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithWait injects the native wait primitive.
func WithWait(w WaitFunc) Option {
	return func(p *Pacer) { p.wait = w }
}

// WithClock injects the monotonic clock (used by tests).
func WithClock(now func() time.Time) Option {
	return func(p *Pacer) { p.now = now }
}

// New creates a pacer targeting targetHz frames per second. A target
// of zero or below means unlimited.
func New(targetHz float64, strategy Strategy, opts ...Option) *Pacer {
	p := &Pacer{
		strategy: strategy,
		now:      time.Now,
	}
	p.wait = func(d time.Duration) int {
		time.Sleep(d)
		return NoInput
	}
	for _, o := range opts {
		o(p)
	}
	p.setTarget(targetHz)
	p.lastTick = p.now()
	return p
}

func (p *Pacer) setTarget(hz float64) {
	if hz <= 0 {
		p.targetHz = 0
		p.frameDur = 0
		return
	}
	p.targetHz = hz
	p.frameDur = time.Duration(float64(time.Second) / hz)
}

// SetTarget changes the target frequency and resets the timing state.
func (p *Pacer) SetTarget(hz float64) {
	p.setTarget(hz)
	p.reset()
}

// SetStrategy changes the timing strategy and resets the timing state.
func (p *Pacer) SetStrategy(s Strategy) {
	p.strategy = s
	p.reset()
}

// Target returns the configured frequency (0 = unlimited).
func (p *Pacer) Target() float64 { return p.targetHz }

func (p *Pacer) reset() {
	p.ticks.Clear()
	p.overshoot = 0
	p.lastTick = p.now()
}

// Tick waits out the remainder of the current frame according to the
// strategy, records the tick, and returns the input code delivered by
// the wait primitive (NoInput if none).
func (p *Pacer) Tick() int {
	now := p.now()

	if p.frameDur <= 0 || p.strategy == Unlimited {
		code := p.wait(minimalWait)
		p.record(p.now())
		return code
	}

	remaining := p.frameDur - now.Sub(p.lastTick)

	var code int
	switch p.strategy {
	case Hybrid:
		code = p.tickHybrid(remaining)
	default:
		code = p.tickAdaptive(remaining)
	}

	p.record(p.now())
	return code
}

// tickAdaptive subtracts the running overshoot estimate from the
// requested wait and folds the measured error back into the estimate.
func (p *Pacer) tickAdaptive(remaining time.Duration) int {
	if remaining <= 0 {
		return p.wait(minimalWait)
	}

	adjusted := remaining - time.Duration(p.overshoot*float64(time.Second))
	if adjusted < minimalWait {
		adjusted = minimalWait
	}

	before := p.now()
	code := p.wait(adjusted)
	after := p.now()

	err := after.Sub(before).Seconds() - adjusted.Seconds()
	p.overshoot = overshootAlpha*err + (1-overshootAlpha)*p.overshoot

	return code
}

// tickHybrid sleeps coarsely short of the target, then spins the clock
// to the exact tick instant. The spin is bounded by the target time.
func (p *Pacer) tickHybrid(remaining time.Duration) int {
	target := p.lastTick.Add(p.frameDur)

	var code int
	if remaining > hybridThreshold {
		code = p.wait(remaining - hybridMargin)
	} else {
		code = p.wait(minimalWait)
	}

	for p.now().Before(target) {
		// spin
	}
	return code
}

func (p *Pacer) record(now time.Time) {
	p.lastTick = now
	p.ticks.PushBack(now)
	for p.ticks.Len() > windowSize {
		p.ticks.PopFront()
	}
}

// Rate reports measured throughput over the bounded timestamp window,
// recomputed from the raw timestamps on every call.
func (p *Pacer) Rate() float64 {
	n := p.ticks.Len()
	if n < 2 {
		return 0
	}
	elapsed := p.ticks.Back().Sub(p.ticks.Front()).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(n-1) / elapsed
}
