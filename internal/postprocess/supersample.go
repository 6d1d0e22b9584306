// Package postprocess operates on finished frames.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"cg-rasterizer/internal/pixel"
)

// Downsample scales b to w x h with CatmullRom filtering. Frames are opaque,
// so no alpha premultiplication is needed. b is returned unchanged when it
// already has the requested size.
func Downsample(b *pixel.Buffer, w, h int) *pixel.Buffer {
	if b.Width() == w && b.Height() == h {
		return b
	}
	if w <= 0 || h <= 0 {
		return pixel.NewBuffer(0, 0)
	}

	src := b.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return pixel.FromImage(dst)
}

// Resolve reduces a frame rendered at factor times the output size. A
// factor below 2 returns b.
func Resolve(b *pixel.Buffer, factor int) *pixel.Buffer {
	if factor < 2 {
		return b
	}
	return Downsample(b, b.Width()/factor, b.Height()/factor)
}
