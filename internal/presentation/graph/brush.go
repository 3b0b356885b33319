package graph

import "math"

// BrushRange is a normalized pixel interval
type BrushRange struct {
	Min float64
	Max float64
}

// Brush tracks one drag gesture along the time axis, in content-local pixels
type Brush struct {
	active bool
	start  float64
	end    float64
}

// Begin starts a drag at x
func (b *Brush) Begin(x float64) {
	b.active = true
	b.start = x
	b.end = x
}

// Move updates the drag end. It reports false when no drag is in progress.
func (b *Brush) Move(x float64) bool {
	if !b.active {
		return false
	}
	b.end = x
	return true
}

// End finishes the drag. commit is true only for a non-empty range.
func (b *Brush) End() (r BrushRange, commit bool) {
	if !b.active {
		return BrushRange{}, false
	}
	r, _ = b.Range()
	commit = b.start != b.end
	b.Cancel()
	return r, commit
}

// Cancel drops the drag without committing
func (b *Brush) Cancel() {
	b.active = false
	b.start = 0
	b.end = 0
}

// Active reports whether a drag is in progress
func (b *Brush) Active() bool {
	return b.active
}

// Range returns the current drag interval ordered low to high
func (b *Brush) Range() (BrushRange, bool) {
	if !b.active {
		return BrushRange{}, false
	}
	return BrushRange{Min: math.Min(b.start, b.end), Max: math.Max(b.start, b.end)}, true
}
