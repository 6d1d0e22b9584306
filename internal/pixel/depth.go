package pixel

import (
	"image"
	"math"
)

// DepthBuffer is a per-pixel record of the nearest depth drawn so far.
// Lower values are closer; a cleared buffer holds +Inf everywhere.
type DepthBuffer struct {
	grid[float64]
}

// NewDepthBuffer allocates a w×h buffer cleared to +Inf.
func NewDepthBuffer(w, h int) *DepthBuffer {
	d := &DepthBuffer{newGrid[float64](w, h)}
	d.Clear()
	return d
}

// Clear resets every cell to +Inf so any finite depth passes the test.
func (d *DepthBuffer) Clear() {
	d.fill(math.Inf(1))
}

// Fill overwrites every cell with v.
func (d *DepthBuffer) Fill(v float64) {
	d.fill(v)
}

// Depth returns the stored depth at (x, y), or +Inf out of range.
func (d *DepthBuffer) Depth(x, y int) float64 {
	if !d.In(x, y) && !debugBounds {
		return math.Inf(1)
	}
	return d.at(x, y)
}

// SetDepth stores v at (x, y). Out-of-range writes are ignored.
func (d *DepthBuffer) SetDepth(x, y int, v float64) {
	d.set(x, y, v)
}

// Ref returns a pointer to the cell at (x, y) for in-place compare and
// update, or nil when out of range.
func (d *DepthBuffer) Ref(x, y int) *float64 {
	return d.ref(x, y)
}

// TestAndSet stores v at (x, y) and reports true only if v is strictly
// closer than the stored depth. Ties keep the existing value.
//
// The read-compare-write is one step for a single goroutine; fills that
// touch the same cell from several goroutines need external ordering.
// Callers that shade between the compare and the write, like the triangle
// fill, read Row directly instead.
func (d *DepthBuffer) TestAndSet(x, y int, v float64) bool {
	p := d.ref(x, y)
	if p == nil || !(v < *p) {
		return false
	}
	*p = v
	return true
}

// Resize changes the dimensions keeping the overlapping top-left region.
// New cells are cleared to +Inf.
func (d *DepthBuffer) Resize(w, h int) {
	d.resize(w, h, math.Inf(1))
}

// Clone returns a deep copy.
func (d *DepthBuffer) Clone() *DepthBuffer {
	return &DepthBuffer{d.clone()}
}

// Range returns the smallest and largest finite depths stored. ok is false
// when nothing has been drawn.
func (d *DepthBuffer) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range d.pix {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
		ok = true
	}
	return lo, hi, ok
}

// ToGray maps the finite depth range to gray levels, near = white and
// far = dark. Empty cells are black.
func (d *DepthBuffer) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.w, d.h))
	lo, hi, ok := d.Range()
	if !ok {
		return img
	}
	span := hi - lo
	for i, v := range d.pix {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		t := 1.0
		if span > 0 {
			t = 1 - (v-lo)/span
		}
		img.Pix[i] = uint8(32 + t*223 + 0.5)
	}
	return img
}
