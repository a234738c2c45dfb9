// Package series implements the fixed-capacity sample store backing one
// plotted data series.
package series

import "math"

// Missing is the sanitized marker for absent samples.
var Missing = math.NaN()

// Sanitize normalizes an arbitrary input value: NaN and ±Inf become the
// missing marker, any other value passes through unchanged.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return v
}

// Buffer is a fixed-size circular buffer of float64 samples with
// incrementally maintained statistics over the valid (non-missing)
// values currently in the window.
//
// Not internally synchronized; callers serialize access.
type Buffer struct {
	data  []float64
	size  int
	head  int // next write position
	count int // number of samples stored, saturates at size

	validCount int
	sum        float64
	sumSquares float64

	// min/max cache, recomputed lazily after structural changes
	rangeDirty bool
	lo, hi     float64
	rangeOK    bool
}

// New creates a buffer holding capacity samples. Capacity is validated
// by the caller (the plot rejects < 2 at construction).
func New(capacity int) *Buffer {
	b := &Buffer{
		data: make([]float64, capacity),
		size: capacity,
	}
	for i := range b.data {
		b.data[i] = Missing
	}
	return b
}

// Push sanitizes v and writes it at the head, overwriting the oldest
// sample once the buffer is full. O(1), no allocation.
func (b *Buffer) Push(v float64) {
	v = Sanitize(v)

	// Evict the slot being overwritten from the running stats.
	if b.count >= b.size {
		old := b.data[b.head]
		if !math.IsNaN(old) {
			b.sum -= old
			b.sumSquares -= old * old
			b.validCount--
		}
	}

	if !math.IsNaN(v) {
		b.sum += v
		b.sumSquares += v * v
		b.validCount++
	}

	b.data[b.head] = v
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}
	b.rangeDirty = true
}

// Values returns the stored samples in push order, oldest first.
func (b *Buffer) Values() []float64 {
	if b.count == 0 {
		return nil
	}
	out := make([]float64, b.count)
	start := (b.head - b.count + b.size) % b.size
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(start+i)%b.size]
	}
	return out
}

// Latest returns the most recently pushed sample. ok is false when the
// buffer is empty or the latest sample is missing.
func (b *Buffer) Latest() (float64, bool) {
	if b.count == 0 {
		return 0, false
	}
	v := b.data[(b.head-1+b.size)%b.size]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// MinMax returns the extremes over the valid samples in the window.
// ok is false when no valid sample exists. The scan result is cached
// until the next structural change.
func (b *Buffer) MinMax() (lo, hi float64, ok bool) {
	if b.rangeDirty {
		b.rescanRange()
	}
	return b.lo, b.hi, b.rangeOK
}

func (b *Buffer) rescanRange() {
	b.rangeDirty = false
	b.rangeOK = false
	b.lo, b.hi = 0, 0
	for i := 0; i < b.count; i++ {
		v := b.data[i]
		if math.IsNaN(v) {
			continue
		}
		if !b.rangeOK {
			b.lo, b.hi = v, v
			b.rangeOK = true
			continue
		}
		if v < b.lo {
			b.lo = v
		}
		if v > b.hi {
			b.hi = v
		}
	}
}

// Len returns how many samples are stored (≤ Cap).
func (b *Buffer) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.size }

// ValidLen returns how many stored samples are non-missing.
func (b *Buffer) ValidLen() int { return b.validCount }

// Mean returns the arithmetic mean of the valid window values.
func (b *Buffer) Mean() (float64, bool) {
	if b.validCount == 0 {
		return 0, false
	}
	return b.sum / float64(b.validCount), true
}

// StdDev returns the population standard deviation of the valid window
// values, derived from the running sum and sum of squares.
func (b *Buffer) StdDev() (float64, bool) {
	if b.validCount == 0 {
		return 0, false
	}
	mean := b.sum / float64(b.validCount)
	variance := b.sumSquares/float64(b.validCount) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), true
}

// Clear resets all slots and statistics.
func (b *Buffer) Clear() {
	for i := range b.data {
		b.data[i] = Missing
	}
	b.head = 0
	b.count = 0
	b.validCount = 0
	b.sum = 0
	b.sumSquares = 0
	b.rangeDirty = false
	b.rangeOK = false
	b.lo, b.hi = 0, 0
}
