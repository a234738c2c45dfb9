// Package scale derives the visible value range from series data and
// smooths transitions between ranges.
package scale

import "math"

// Mode selects how the target range follows the data.
type Mode int

const (
	// Fixed keeps the configured range.
	Fixed Mode = iota
	// Auto fits the range to the visible data each tick.
	Auto
	// AutoExpand only ever widens the range.
	AutoExpand
)

// minSpan guards the pixel mapping against a zero-width range; spans
// below it are treated as 1.0, matching the renderer's label math.
const minSpan = 1e-6

// Bounds is one series' contribution to the data envelope.
type Bounds struct {
	Lo, Hi float64
	OK     bool
}

// Engine owns the target range (derived from data) and the display
// range (smoothed, used for pixel mapping).
type Engine struct {
	mode    Mode
	padding float64
	smooth  bool
	speed   float64
	plotH   int

	targetLo, targetHi   float64
	displayLo, displayHi float64
}

// New creates an engine starting at the configured fixed range.
func New(mode Mode, lo, hi, padding float64, smooth bool, speed float64, plotH int) *Engine {
	return &Engine{
		mode:      mode,
		padding:   padding,
		smooth:    smooth,
		speed:     speed,
		plotH:     plotH,
		targetLo:  lo,
		targetHi:  hi,
		displayLo: lo,
		displayHi: hi,
	}
}

// SetRange pins both target and display to [lo,hi] immediately.
// Used for runtime fixed-limit updates; always invalidates the cache.
func (e *Engine) SetRange(lo, hi float64) {
	e.targetLo, e.targetHi = lo, hi
	e.displayLo, e.displayHi = lo, hi
}

// Observe recomputes the target range from the series envelopes.
// In Fixed mode it is a no-op. When no series has valid data the
// previous target is retained unchanged.
func (e *Engine) Observe(bounds []Bounds) {
	if e.mode == Fixed {
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	any := false
	for _, b := range bounds {
		if !b.OK {
			continue
		}
		any = true
		if b.Lo < lo {
			lo = b.Lo
		}
		if b.Hi > hi {
			hi = b.Hi
		}
	}
	if !any {
		return
	}

	span := hi - lo
	if span < minSpan {
		span = 1.0
	}
	lo -= span * e.padding
	hi += span * e.padding

	if e.mode == AutoExpand {
		lo = math.Min(lo, e.targetLo)
		hi = math.Max(hi, e.targetHi)
	}

	e.targetLo, e.targetHi = lo, hi
}

// Advance moves the display range toward the target and reports whether
// the shift is large enough to require a background rebuild. Without
// smoothing (or speed 1) the display jumps immediately.
func (e *Engine) Advance() bool {
	oldLo, oldHi := e.displayLo, e.displayHi

	if !e.smooth || e.speed >= 1 {
		e.displayLo, e.displayHi = e.targetLo, e.targetHi
		return e.displayLo != oldLo || e.displayHi != oldHi
	}

	e.displayLo += (e.targetLo - e.displayLo) * e.speed
	e.displayHi += (e.targetHi - e.displayHi) * e.speed

	// Rebuild only for shifts above a tenth of a pixel; anything
	// smaller is imperceptible and not worth redrawing the grid.
	h := e.plotH
	if h < 1 {
		h = 1
	}
	threshold := (e.displayHi - e.displayLo) / float64(h) * 0.1
	return math.Abs(e.displayLo-oldLo) > threshold ||
		math.Abs(e.displayHi-oldHi) > threshold
}

// Display returns the smoothed range used for pixel mapping.
// The invariant displayLo ≤ displayHi holds; degenerate spans are
// expanded by Span.
func (e *Engine) Display() (lo, hi float64) {
	return e.displayLo, e.displayHi
}

// Target returns the data-derived range.
func (e *Engine) Target() (lo, hi float64) {
	return e.targetLo, e.targetHi
}

// Span returns the display span with the degenerate-range substitution
// applied, so callers never divide by zero.
func (e *Engine) Span() float64 {
	span := e.displayHi - e.displayLo
	if span < minSpan {
		return 1.0
	}
	return span
}
