package raster

import "cg-rasterizer/internal/mathutil"

// Weights are the barycentric coordinates of a point with respect to the
// triangle's vertices 0, 1 and 2. They sum to 1.
type Weights struct {
	U, V, W float64
}

// Inside reports whether all three weights lie in [0,1], allowing eps of
// slack for points exactly on an edge.
func (w Weights) Inside(eps float64) bool {
	return w.U >= -eps && w.V >= -eps && w.W >= -eps &&
		w.U <= 1+eps && w.V <= 1+eps && w.W <= 1+eps
}

// Interpolate returns a*U + b*V + c*W.
func (w Weights) Interpolate(a, b, c float64) float64 {
	return a*w.U + b*w.V + c*w.W
}

// degenerateRatio bounds |denom| relative to d00*d11. Below it the edge
// vectors are colinear to within rounding and the triangle has no area.
const degenerateRatio = 1e-12

// setup holds the per-triangle terms of the two-vector dot-product
// formulation so the per-pixel cost is two dot products.
type setup struct {
	ax, ay     float64
	e0x, e0y   float64 // b - a
	e1x, e1y   float64 // c - a
	d00, d01   float64
	d11, invDn float64
}

func newSetup(ax, ay, bx, by, cx, cy float64) (setup, bool) {
	s := setup{
		ax: ax, ay: ay,
		e0x: bx - ax, e0y: by - ay,
		e1x: cx - ax, e1y: cy - ay,
	}
	s.d00 = s.e0x*s.e0x + s.e0y*s.e0y
	s.d01 = s.e0x*s.e1x + s.e0y*s.e1y
	s.d11 = s.e1x*s.e1x + s.e1y*s.e1y
	den := s.d00*s.d11 - s.d01*s.d01
	if den <= degenerateRatio*s.d00*s.d11 {
		return s, false
	}
	s.invDn = 1 / den
	return s, true
}

func (s *setup) weights(px, py float64) Weights {
	qx, qy := px-s.ax, py-s.ay
	d20 := qx*s.e0x + qy*s.e0y
	d21 := qx*s.e1x + qy*s.e1y
	v := (s.d11*d20 - s.d01*d21) * s.invDn
	w := (s.d00*d21 - s.d01*d20) * s.invDn
	return Weights{U: 1 - v - w, V: v, W: w}
}

// Barycentric returns the weights of p with respect to triangle (a, b, c).
// ok is false when the triangle is degenerate (zero area).
func Barycentric(p, a, b, c mathutil.Vec2) (w Weights, ok bool) {
	s, ok := newSetup(a[0], a[1], b[0], b[1], c[0], c[1])
	if !ok {
		return Weights{}, false
	}
	return s.weights(p[0], p[1]), true
}

// Degenerate reports whether tri has no area under the rasterizer's own
// threshold, so callers can tell skipped triangles from occluded ones.
func Degenerate(tri Triangle) bool {
	_, ok := newSetup(tri[0].X, tri[0].Y, tri[1].X, tri[1].Y, tri[2].X, tri[2].Y)
	return !ok
}
