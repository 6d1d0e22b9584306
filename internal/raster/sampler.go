package raster

import (
	"math"

	"cg-rasterizer/internal/pixel"
)

// Texture is anything that can be sampled by integer texel coordinates.
// *pixel.Buffer satisfies it.
type Texture interface {
	Width() int
	Height() int
	Pixel(x, y int) pixel.Color
}

// Sampler looks up a texture color for normalized coordinates (u, v), with
// (0,0) at the top-left texel and (1,1) at the bottom-right corner.
type Sampler func(tex Texture, u, v float64) pixel.Color

// Nearest maps (u, v) to texel (floor(u*W), floor(v*H)), clamped to the
// texture.
func Nearest(tex Texture, u, v float64) pixel.Color {
	w, h := tex.Width(), tex.Height()
	if w == 0 || h == 0 {
		return pixel.Black
	}
	return tex.Pixel(clampInt(int(math.Floor(u*float64(w))), 0, w-1),
		clampInt(int(math.Floor(v*float64(h))), 0, h-1))
}

// Bilinear filters the four texels around (u, v). Coordinates wrap, so a
// texture tiles outside [0,1].
func Bilinear(tex Texture, u, v float64) pixel.Color {
	w, h := tex.Width(), tex.Height()
	if w == 0 || h == 0 {
		return pixel.Black
	}

	u -= math.Floor(u)
	v -= math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	c00 := tex.Pixel(x0, y0)
	c10 := tex.Pixel(x1, y0)
	c01 := tex.Pixel(x0, y1)
	c11 := tex.Pixel(x1, y1)

	top := pixel.Blend(c00, c10, pixel.Black, 1-dx, dx, 0)
	bot := pixel.Blend(c01, c11, pixel.Black, 1-dx, dx, 0)
	return pixel.Blend(top, bot, pixel.Black, 1-dy, dy, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
