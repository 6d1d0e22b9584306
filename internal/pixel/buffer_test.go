package pixel

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// patterned returns a w×h buffer where every pixel encodes its coordinates.
func patterned(w, h int) *Buffer {
	b := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetPixel(x, y, Color{uint8(x), uint8(y), uint8(x ^ y)})
		}
	}
	return b
}

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(7, 3)
	if b.Width() != 7 || b.Height() != 3 {
		t.Fatalf("size = %dx%d, want 7x3", b.Width(), b.Height())
	}
	if len(b.pix) != 21 {
		t.Fatalf("len(pix) = %d, want 21", len(b.pix))
	}
	if b.Pixel(6, 2) != Black {
		t.Errorf("new pixel = %v, want black", b.Pixel(6, 2))
	}
}

func TestPixelOutOfRange(t *testing.T) {
	if debugBounds {
		t.Skip("out-of-range access panics under rasterdebug")
	}
	b := NewBuffer(4, 4)
	b.SetPixel(-1, 0, Red)
	b.SetPixel(4, 0, Red)
	b.SetPixel(0, 4, Red)
	for i, c := range b.pix {
		if c != Black {
			t.Fatalf("pixel %d modified by out-of-range write", i)
		}
	}
	if c := b.Pixel(10, 10); c != Black {
		t.Errorf("out-of-range read = %v, want black", c)
	}
	if b.Row(-1) != nil || b.Row(4) != nil {
		t.Error("out-of-range Row should be nil")
	}
}

func TestFill(t *testing.T) {
	b := NewBuffer(5, 5)
	b.Fill(Cyan)
	for i, c := range b.pix {
		if c != Cyan {
			t.Fatalf("pixel %d = %v, want cyan", i, c)
		}
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	b := patterned(10, 10)
	orig := b.Clone()
	b.Resize(20, 5)

	if b.Width() != 20 || b.Height() != 5 || len(b.pix) != 100 {
		t.Fatalf("size = %dx%d (len %d), want 20x5 (len 100)", b.Width(), b.Height(), len(b.pix))
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if got, want := b.Pixel(x, y), orig.Pixel(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
		for x := 10; x < 20; x++ {
			if got := b.Pixel(x, y); got != Black {
				t.Fatalf("exposed (%d,%d) = %v, want black", x, y, got)
			}
		}
	}
}

func TestScaleNearestNeighbor(t *testing.T) {
	b := NewBuffer(2, 2)
	b.SetPixel(0, 0, Red)
	b.SetPixel(1, 0, Green)
	b.SetPixel(0, 1, Blue)
	b.SetPixel(1, 1, White)
	b.Scale(4, 4)

	tests := []struct {
		x, y int
		want Color
	}{
		{0, 0, Red}, {1, 1, Red},
		{2, 0, Green}, {3, 1, Green},
		{0, 2, Blue}, {1, 3, Blue},
		{2, 2, White}, {3, 3, White},
	}
	for _, tc := range tests {
		if got := b.Pixel(tc.x, tc.y); got != tc.want {
			t.Errorf("(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}

	b.Scale(1, 1)
	if got := b.Pixel(0, 0); got != Red {
		t.Errorf("downscaled = %v, want red", got)
	}
}

func TestSubImage(t *testing.T) {
	b := patterned(8, 8)
	sub := b.SubImage(6, 5, 4, 4)
	if sub.Width() != 4 || sub.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", sub.Width(), sub.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Black
			if 6+x < 8 && 5+y < 8 {
				want = b.Pixel(6+x, 5+y)
			}
			if got := sub.Pixel(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFlip(t *testing.T) {
	b := patterned(5, 3)
	orig := b.Clone()

	b.FlipHorizontal()
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got, want := b.Pixel(x, y), orig.Pixel(4-x, y); got != want {
				t.Fatalf("flipH (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	b.FlipHorizontal()

	b.FlipVertical()
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got, want := b.Pixel(x, y), orig.Pixel(x, 2-y); got != want {
				t.Fatalf("flipV (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := patterned(3, 3)
	c := b.Clone()
	c.SetPixel(0, 0, Magenta)
	if b.Pixel(0, 0) == Magenta {
		t.Error("clone shares storage with original")
	}
}

func TestCombine(t *testing.T) {
	a := NewBuffer(2, 2)
	a.Fill(Color{100, 100, 100})
	b := NewBuffer(2, 2)
	b.Fill(Color{200, 10, 0})
	if err := a.Combine(b, Color.Add); err != nil {
		t.Fatal(err)
	}
	if got, want := a.Pixel(1, 1), (Color{255, 110, 100}); got != want {
		t.Errorf("combined = %v, want %v", got, want)
	}
	if err := a.Combine(NewBuffer(3, 2), Color.Add); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestImageConversion(t *testing.T) {
	b := patterned(6, 4)
	img := b.ToNRGBA()
	if img.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(5, 3); got != (color.NRGBA{5, 3, 6, 255}) {
		t.Errorf("NRGBAAt = %v", got)
	}
	back := FromImage(img)
	for i := range b.pix {
		if back.pix[i] != b.pix[i] {
			t.Fatalf("pixel %d = %v, want %v", i, back.pix[i], b.pix[i])
		}
	}

	// Generic path through image.Image.
	gray := image.NewGray(image.Rect(2, 2, 4, 4))
	gray.SetGray(3, 3, color.Gray{Y: 77})
	gb := FromImage(gray)
	if got := gb.Pixel(1, 1); got != (Color{77, 77, 77}) {
		t.Errorf("gray pixel = %v", got)
	}
	if got := b.At(1, 2); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("At = %v", got)
	}
}

func TestColorArithmetic(t *testing.T) {
	if got := (Color{200, 100, 0}).Add(Color{100, 100, 5}); got != (Color{255, 200, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := (Color{100, 200, 50}).Scale(1.5); got != (Color{150, 255, 75}) {
		t.Errorf("Scale = %v", got)
	}
	if got := (Color{100, 200, 50}).Scale(-1); got != Black {
		t.Errorf("Scale(-1) = %v", got)
	}
	if got := Blend(Red, Green, Blue, 0.5, 0.25, 0.25); got != (Color{128, 64, 64}) {
		t.Errorf("Blend = %v", got)
	}
}

func TestDepthBuffer(t *testing.T) {
	if debugBounds {
		t.Skip("out-of-range access panics under rasterdebug")
	}
	d := NewDepthBuffer(4, 3)
	if !math.IsInf(d.Depth(2, 2), 1) {
		t.Fatalf("cleared depth = %f, want +Inf", d.Depth(2, 2))
	}
	if !d.TestAndSet(1, 1, 0.5) {
		t.Fatal("first depth should pass")
	}
	if d.TestAndSet(1, 1, 0.5) {
		t.Error("equal depth must not overwrite")
	}
	if d.TestAndSet(1, 1, 0.7) {
		t.Error("farther depth must not overwrite")
	}
	if !d.TestAndSet(1, 1, -0.2) {
		t.Error("closer depth should pass")
	}
	if got := d.Depth(1, 1); got != -0.2 {
		t.Errorf("stored depth = %f, want -0.2", got)
	}
	if d.TestAndSet(9, 9, -5) {
		t.Error("out-of-range TestAndSet should fail")
	}

	*d.Ref(0, 0) = 0.25
	if got := d.Depth(0, 0); got != 0.25 {
		t.Errorf("write through Ref = %f", got)
	}
	if d.Ref(-1, 0) != nil {
		t.Error("out-of-range Ref should be nil")
	}

	lo, hi, ok := d.Range()
	if !ok || lo != -0.2 || hi != 0.25 {
		t.Errorf("Range = %f, %f, %v", lo, hi, ok)
	}

	d.Resize(2, 6)
	if got := d.Depth(1, 1); got != -0.2 {
		t.Errorf("resized depth = %f, want -0.2", got)
	}
	if !math.IsInf(d.Depth(1, 5), 1) {
		t.Errorf("exposed depth = %f, want +Inf", d.Depth(1, 5))
	}

	d.Fill(3)
	if got := d.Depth(0, 4); got != 3 {
		t.Errorf("Fill = %f", got)
	}
	d.Clear()
	if _, _, ok := d.Range(); ok {
		t.Error("cleared buffer should have no range")
	}
}

func TestDepthToGray(t *testing.T) {
	d := NewDepthBuffer(3, 1)
	d.SetDepth(0, 0, 1)
	d.SetDepth(1, 0, 2)
	img := d.ToGray()
	if img.Pix[0] != 255 {
		t.Errorf("nearest = %d, want 255", img.Pix[0])
	}
	if img.Pix[1] != 32 {
		t.Errorf("farthest = %d, want 32", img.Pix[1])
	}
	if img.Pix[2] != 0 {
		t.Errorf("empty = %d, want 0", img.Pix[2])
	}
}
