package postprocess

import (
	"testing"

	"cg-rasterizer/internal/pixel"
)

func TestDownsampleUniform(t *testing.T) {
	b := pixel.NewBuffer(64, 48)
	b.Fill(pixel.RGB(200, 100, 50))
	out := Downsample(b, 16, 12)
	if out.Width() != 16 || out.Height() != 12 {
		t.Fatalf("size = %dx%d", out.Width(), out.Height())
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			got := out.Pixel(x, y)
			if near(got.R, 200) && near(got.G, 100) && near(got.B, 50) {
				continue
			}
			t.Fatalf("(%d,%d) = %v", x, y, got)
		}
	}
}

func TestDownsampleAveragesEdges(t *testing.T) {
	// Left half black, right half white: the resolved middle column must be
	// between the two.
	b := pixel.NewBuffer(8, 4)
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			b.SetPixel(x, y, pixel.White)
		}
	}
	out := Resolve(b, 2)
	if out.Width() != 4 || out.Height() != 2 {
		t.Fatalf("size = %dx%d", out.Width(), out.Height())
	}
	if out.Pixel(0, 0).R > 40 || out.Pixel(3, 0).R < 215 {
		t.Errorf("ends = %v %v", out.Pixel(0, 0), out.Pixel(3, 0))
	}
}

func TestResolveNoop(t *testing.T) {
	b := pixel.NewBuffer(4, 4)
	if Resolve(b, 1) != b || Downsample(b, 4, 4) != b {
		t.Error("same-size resolve copied the buffer")
	}
	if out := Downsample(b, 0, 3); out.Width() != 0 {
		t.Errorf("empty target width = %d", out.Width())
	}
}

func near(a, b uint8) bool {
	return a+1 >= b && b+1 >= a
}
