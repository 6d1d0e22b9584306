package raster

import (
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/pixel"
)

// FillTriangle fills a, b, c with a single color.
func (r *Rasterizer) FillTriangle(a, b, c Vertex, col pixel.Color) int {
	return r.Draw(Triangle{a, b, c}, Flat{Color: col})
}

// FillInterpolatedTriangle blends the vertex colors c0, c1, c2 across the
// triangle.
func (r *Rasterizer) FillInterpolatedTriangle(a, b, c Vertex, c0, c1, c2 pixel.Color) int {
	return r.Draw(Triangle{a, b, c}, &Interpolated{Colors: [3]pixel.Color{c0, c1, c2}})
}

// FillTexturedTriangle maps tex onto the triangle with normalized UVs
// t0, t1, t2 and nearest-neighbor sampling.
func (r *Rasterizer) FillTexturedTriangle(a, b, c Vertex, tex Texture, t0, t1, t2 mathutil.Vec2) int {
	return r.Draw(Triangle{a, b, c}, &Textured{Texture: tex, UV: [3]mathutil.Vec2{t0, t1, t2}})
}
