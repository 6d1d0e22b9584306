package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"

	"cg-rasterizer/internal/pixel"
)

// DepthImage converts d to a float image: covered pixels hold their depth in
// R, G and B with alpha 1; pixels never written hold 1 (the far plane) with
// alpha 0.
func DepthImage(d *pixel.DepthBuffer) *exr.RGBAImage {
	w, h := d.Width(), d.Height()
	img := exr.NewRGBAImage(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := d.Row(y)
		for x, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				img.SetRGBA(x, y, 1, 1, 1, 0)
				continue
			}
			z := float32(v)
			img.SetRGBA(x, y, z, z, z, 1)
		}
	}
	return img
}

// WriteDepth saves d to path: .exr keeps the raw values, .png stores the
// normalized grayscale view of pixel.DepthBuffer.ToGray.
func WriteDepth(path string, d *pixel.DepthBuffer) error {
	switch format := FormatOf(path); format {
	case "exr":
		return writeEXR(path, DepthImage(d))
	case "png":
		return writeFile(path, func(w io.Writer) error {
			if err := png.Encode(w, d.ToGray()); err != nil {
				return fmt.Errorf("output: encode depth png: %w", err)
			}
			return nil
		})
	default:
		return fmt.Errorf("output: unsupported depth format %q", format)
	}
}

// writeEXR needs a seekable file, so it does not go through writeFile's
// io.Writer.
func writeEXR(path string, img *exr.RGBAImage) error {
	return writeFile(path, func(w io.Writer) error {
		ws, ok := w.(io.WriteSeeker)
		if !ok {
			return fmt.Errorf("output: %s is not seekable", path)
		}
		if err := exr.Encode(ws, img); err != nil {
			return fmt.Errorf("output: encode exr: %w", err)
		}
		return nil
	})
}

// ReadDepthEXR loads a depth image written by WriteDepth. Pixels with zero
// alpha come back as +Inf.
func ReadDepthEXR(path string) (*pixel.DepthBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("output: open %s: %w", path, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("output: stat %s: %w", path, err)
	}
	img, err := exr.Decode(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("output: decode %s: %w", path, err)
	}

	r := img.Bounds()
	d := pixel.NewDepthBuffer(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		row := d.Row(y)
		for x := range row {
			z, _, _, a := img.RGBA(r.Min.X+x, r.Min.Y+y)
			if a > 0 {
				row[x] = float64(z)
			}
		}
	}
	return d, nil
}
