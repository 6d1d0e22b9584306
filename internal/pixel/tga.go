package pixel

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cg-rasterizer/internal/logging"
)

// tgaMagic is the fixed 12-byte prefix of an uncompressed true-color TGA:
// no image ID, no color map, image type 2.
var tgaMagic = [12]byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}

// descriptor bit 5: rows are stored top to bottom.
const tgaTopLeft = 0x20

var (
	// ErrNotTGA means the stream does not start with the uncompressed
	// true-color header or the header is truncated.
	ErrNotTGA = errors.New("tga: not an uncompressed true-color file")
	// ErrUnsupportedTGA means the header is well formed but describes an
	// image this codec does not handle (zero size, bpp other than 24/32).
	ErrUnsupportedTGA = errors.New("tga: unsupported dimensions or bit depth")
	// ErrTruncated means the pixel data is shorter than the header claims.
	ErrTruncated = errors.New("tga: truncated pixel data")
)

// DecodeTGA reads an uncompressed 24- or 32-bit TGA. Rows stored bottom to
// top (the default) are flipped so that row 0 of the buffer is the top of
// the picture. Alpha is discarded.
func DecodeTGA(r io.Reader) (*Buffer, error) {
	var head [18]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrNotTGA, err)
	}
	if !bytes.Equal(head[:12], tgaMagic[:]) {
		return nil, ErrNotTGA
	}
	w := int(head[12]) | int(head[13])<<8
	h := int(head[14]) | int(head[15])<<8
	bpp := int(head[16])
	desc := head[17]
	if w == 0 || h == 0 || (bpp != 24 && bpp != 32) {
		return nil, fmt.Errorf("%w: %dx%d at %d bpp", ErrUnsupportedTGA, w, h, bpp)
	}

	bytesPP := bpp / 8
	need := w * h * bytesPP
	// Header sizes are untrusted; only what the stream holds is buffered.
	data, err := io.ReadAll(io.LimitReader(r, int64(need)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrTruncated, len(data), need)
	}

	out := NewBuffer(w, h)
	for fy := 0; fy < h; fy++ {
		y := h - fy - 1
		if desc&tgaTopLeft != 0 {
			y = fy
		}
		row := out.Row(y)
		src := data[fy*w*bytesPP : (fy+1)*w*bytesPP]
		for x := range row {
			p := src[x*bytesPP:]
			row[x] = Color{R: p[2], G: p[1], B: p[0]}
		}
	}
	return out, nil
}

// EncodeTGA writes b as an uncompressed 24-bit BGR TGA stored bottom to top.
func EncodeTGA(w io.Writer, b *Buffer) error {
	if b.w > 0xFFFF || b.h > 0xFFFF {
		return fmt.Errorf("tga: %dx%d exceeds 65535", b.w, b.h)
	}
	var head [18]byte
	copy(head[:], tgaMagic[:])
	head[12], head[13] = byte(b.w), byte(b.w>>8)
	head[14], head[15] = byte(b.h), byte(b.h>>8)
	head[16] = 24

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(head[:]); err != nil {
		return fmt.Errorf("tga: write header: %w", err)
	}
	line := make([]byte, b.w*3)
	for fy := 0; fy < b.h; fy++ {
		row := b.Row(b.h - fy - 1)
		for x, c := range row {
			line[x*3] = c.B
			line[x*3+1] = c.G
			line[x*3+2] = c.R
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("tga: write pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tga: write pixels: %w", err)
	}
	return nil
}

// LoadTGA decodes the file at path. Failures are logged at error level and
// returned; the caller decides whether to continue with a placeholder.
func LoadTGA(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		logging.Logger().Error("tga load failed", "path", path, "err", err)
		return nil, fmt.Errorf("tga: open %s: %w", path, err)
	}
	defer f.Close()

	b, err := DecodeTGA(bufio.NewReader(f))
	if err != nil {
		logging.Logger().Error("tga load failed", "path", path, "err", err)
		return nil, fmt.Errorf("tga: decode %s: %w", path, err)
	}
	return b, nil
}

// SaveTGA writes b to path as a 24-bit TGA.
func SaveTGA(path string, b *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tga: create %s: %w", path, err)
	}
	if err := EncodeTGA(f, b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tga: close %s: %w", path, err)
	}
	return nil
}
