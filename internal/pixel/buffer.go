package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is a fixed-size grid of RGB colors stored row-major, row 0 at the
// top. The zero value is an empty 0×0 buffer.
type Buffer struct {
	grid[Color]
}

// NewBuffer allocates a w×h buffer cleared to black.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{newGrid[Color](w, h)}
}

// Pixel returns the color at (x, y). Out-of-range reads return black.
func (b *Buffer) Pixel(x, y int) Color {
	return b.at(x, y)
}

// SetPixel writes c at (x, y). Out-of-range writes are ignored.
func (b *Buffer) SetPixel(x, y int, c Color) {
	b.set(x, y, c)
}

// Fill overwrites every pixel with c.
func (b *Buffer) Fill(c Color) {
	b.fill(c)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{b.clone()}
}

// Resize changes the dimensions in place. The overlapping top-left region
// is preserved; new pixels are black.
func (b *Buffer) Resize(w, h int) {
	b.resize(w, h, Black)
}

// Scale changes the dimensions in place, resampling the content with
// nearest-neighbor lookup.
func (b *Buffer) Scale(w, h int) {
	b.scale(w, h)
}

// SubImage copies the w×h area starting at (x, y) into a new buffer. Pixels
// that fall outside the source stay black.
func (b *Buffer) SubImage(x, y, w, h int) *Buffer {
	out := NewBuffer(w, h)
	for dy := 0; dy < out.h; dy++ {
		sy := y + dy
		if sy < 0 || sy >= b.h {
			continue
		}
		for dx := 0; dx < out.w; dx++ {
			sx := x + dx
			if sx < 0 || sx >= b.w {
				continue
			}
			out.set(dx, dy, b.at(sx, sy))
		}
	}
	return out
}

// FlipHorizontal mirrors the buffer left to right in place.
func (b *Buffer) FlipHorizontal() {
	b.flipHorizontal()
}

// FlipVertical mirrors the buffer top to bottom in place.
func (b *Buffer) FlipVertical() {
	b.flipVertical()
}

// Combine replaces every pixel with f(pixel, other pixel). Both buffers must
// have the same dimensions.
func (b *Buffer) Combine(other *Buffer, f func(a, c Color) Color) error {
	if other.w != b.w || other.h != b.h {
		return fmt.Errorf("pixel: combine %dx%d with %dx%d", b.w, b.h, other.w, other.h)
	}
	for i := range b.pix {
		b.pix[i] = f(b.pix[i], other.pix[i])
	}
	return nil
}

// ToNRGBA converts the buffer to an opaque image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.w, b.h))
	for i, c := range b.pix {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 255
	}
	return img
}

// FromImage copies any image into a new buffer, dropping alpha.
func FromImage(src image.Image) *Buffer {
	r := src.Bounds()
	out := NewBuffer(r.Dx(), r.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.h; y++ {
			row := out.Row(y)
			off := n.PixOffset(r.Min.X, r.Min.Y+y)
			for x := range row {
				i := off + x*4
				row[x] = Color{n.Pix[i], n.Pix[i+1], n.Pix[i+2]}
			}
		}
		return out
	}
	for y := 0; y < out.h; y++ {
		row := out.Row(y)
		for x := range row {
			row[x] = FromColor(src.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}

// ColorModel, Bounds and At let a Buffer be used wherever an image.Image is
// expected (encoders, x/image/draw).
func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b *Buffer) At(x, y int) color.Color {
	if !b.In(x, y) {
		return color.NRGBA{}
	}
	return b.at(x, y).NRGBA()
}
