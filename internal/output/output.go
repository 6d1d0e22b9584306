// Package output writes rendered frames and depth buffers to disk. The file
// format follows the extension.
package output

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/pixel"
)

// FrameFormats lists the accepted color output formats.
var FrameFormats = []string{"tga", "png", "bmp", "webp"}

// FormatOf returns the lowercase extension of path without the dot.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// EncodeFrame writes b to w in the named format.
func EncodeFrame(w io.Writer, format string, b *pixel.Buffer) error {
	var err error
	switch format {
	case "tga":
		err = pixel.EncodeTGA(w, b)
	case "png":
		err = png.Encode(w, b.ToNRGBA())
	case "bmp":
		err = bmp.Encode(w, b.ToNRGBA())
	case "webp":
		err = nativewebp.Encode(w, b.ToNRGBA(), nil)
	default:
		return fmt.Errorf("output: unsupported frame format %q", format)
	}
	if err != nil {
		return fmt.Errorf("output: encode %s: %w", format, err)
	}
	return nil
}

// WriteFrame encodes b into path, creating parent directories.
func WriteFrame(path string, b *pixel.Buffer) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeFrame(w, FormatOf(path), b)
	})
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	logging.Logger().Info("wrote", "path", path)
	return nil
}
