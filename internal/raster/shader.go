package raster

import (
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/pixel"
)

// Shader resolves the color of one covered pixel from its barycentric
// weights. Returning false discards the fragment: neither color nor depth is
// written. Shaders used with Workers > 1 must be safe for concurrent calls.
type Shader interface {
	Shade(x, y int, w Weights) (pixel.Color, bool)
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(x, y int, w Weights) (pixel.Color, bool)

func (f ShaderFunc) Shade(x, y int, w Weights) (pixel.Color, bool) {
	return f(x, y, w)
}

// Flat paints every covered pixel with one color.
type Flat struct {
	Color pixel.Color
}

func (s Flat) Shade(int, int, Weights) (pixel.Color, bool) {
	return s.Color, true
}

// Interpolated blends the three vertex colors: c0*u + c1*v + c2*w.
type Interpolated struct {
	Colors [3]pixel.Color
}

func (s *Interpolated) Shade(_, _ int, w Weights) (pixel.Color, bool) {
	return pixel.Blend(s.Colors[0], s.Colors[1], s.Colors[2], w.U, w.V, w.W), true
}

// Textured interpolates per-vertex UVs and samples Texture. A nil Sampler
// means Nearest.
type Textured struct {
	Texture Texture
	UV      [3]mathutil.Vec2
	Sampler Sampler
}

func (s *Textured) Shade(_, _ int, w Weights) (pixel.Color, bool) {
	u := w.Interpolate(s.UV[0][0], s.UV[1][0], s.UV[2][0])
	v := w.Interpolate(s.UV[0][1], s.UV[1][1], s.UV[2][1])
	if s.Sampler != nil {
		return s.Sampler(s.Texture, u, v), true
	}
	return Nearest(s.Texture, u, v), true
}
