// Package texture provides the texture side of a scene: decoding image files
// into pixel buffers, indexing a texture directory and caching decoded
// textures across frames and workers.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/pixel"
)

// Load reads a texture file. TGA files go through the strict uncompressed
// codec first; variants it rejects (RLE, color-mapped, 16-bit) are handed to
// the general TGA decoder. PNG and JPEG are also accepted.
func Load(path string) (*pixel.Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var img image.Image

	switch ext {
	case ".tga":
		buf, err := pixel.DecodeTGA(bytes.NewReader(raw))
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, pixel.ErrUnsupportedTGA) && !errors.Is(err, pixel.ErrNotTGA) {
			return nil, fmt.Errorf("texture: decode %s: %w", path, err)
		}
		logging.Logger().Debug("tga fallback decoder", "path", path, "reason", err)
		img, err = tga.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("texture: decode %s: %w", path, err)
		}
	case ".png":
		img, err = png.Decode(bytes.NewReader(raw))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return pixel.FromImage(img), nil
}

// Checkerboard returns a w x h two-color checker with square cells of the
// given size, used in place of textures that fail to load.
func Checkerboard(w, h, cell int, a, b pixel.Color) *pixel.Buffer {
	if cell < 1 {
		cell = 1
	}
	buf := pixel.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := buf.Row(y)
		for x := range row {
			if (x/cell+y/cell)%2 == 0 {
				row[x] = a
			} else {
				row[x] = b
			}
		}
	}
	return buf
}

// Placeholder is the texture substituted for missing files.
func Placeholder() *pixel.Buffer {
	return Checkerboard(64, 64, 8, pixel.Magenta, pixel.Black)
}
