// Package pixel provides the CPU-side render targets: an RGB color buffer,
// a floating-point depth buffer, 2D drawing primitives and a TGA codec.
package pixel

import "image/color"

// Color is an 8-bit RGB value. Arithmetic saturates at 0 and 255.
type Color struct {
	R, G, B uint8
}

var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Gray    = Color{128, 128, 128}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
)

// RGB returns a Color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Add returns the component-wise sum, clamped to 255.
func (c Color) Add(o Color) Color {
	return Color{addSat(c.R, o.R), addSat(c.G, o.G), addSat(c.B, o.B)}
}

// Scale multiplies every channel by f, rounding and clamping to [0, 255].
func (c Color) Scale(f float64) Color {
	return Color{
		clamp255(float64(c.R) * f),
		clamp255(float64(c.G) * f),
		clamp255(float64(c.B) * f),
	}
}

// Blend returns c0*u + c1*v + c2*w. The weighted sum is accumulated in
// floating point and clamped once, so partial sums never saturate.
func Blend(c0, c1, c2 Color, u, v, w float64) Color {
	return Color{
		clamp255(float64(c0.R)*u + float64(c1.R)*v + float64(c2.R)*w),
		clamp255(float64(c0.G)*u + float64(c1.G)*v + float64(c2.G)*w),
		clamp255(float64(c0.B)*u + float64(c1.B)*v + float64(c2.B)*w),
	}
}

// NRGBA converts to an opaque image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B}
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
