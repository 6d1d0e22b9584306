package output

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"cg-rasterizer/internal/pixel"
)

func frame() *pixel.Buffer {
	b := pixel.NewBuffer(5, 3)
	b.Fill(pixel.Blue)
	b.SetPixel(0, 0, pixel.Red)
	b.SetPixel(4, 2, pixel.Green)
	return b
}

func checkImage(t *testing.T, name string, img image.Image) {
	t.Helper()
	got := pixel.FromImage(img)
	want := frame()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("%s: size = %dx%d", name, got.Width(), got.Height())
	}
	for _, p := range [][2]int{{0, 0}, {4, 2}, {2, 1}} {
		if g, w := got.Pixel(p[0], p[1]), want.Pixel(p[0], p[1]); g != w {
			t.Errorf("%s: (%d,%d) = %v, want %v", name, p[0], p[1], g, w)
		}
	}
}

func decodeWith(t *testing.T, path string, decode func(*os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestWriteFrameFormats(t *testing.T) {
	dir := t.TempDir()

	tgaPath := filepath.Join(dir, "nested", "f.tga")
	if err := WriteFrame(tgaPath, frame()); err != nil {
		t.Fatal(err)
	}
	b, err := pixel.LoadTGA(tgaPath)
	if err != nil {
		t.Fatal(err)
	}
	checkImage(t, "tga", b)

	pngPath := filepath.Join(dir, "f.PNG")
	if err := WriteFrame(pngPath, frame()); err != nil {
		t.Fatal(err)
	}
	checkImage(t, "png", decodeWith(t, pngPath, func(f *os.File) (image.Image, error) { return png.Decode(f) }))

	bmpPath := filepath.Join(dir, "f.bmp")
	if err := WriteFrame(bmpPath, frame()); err != nil {
		t.Fatal(err)
	}
	checkImage(t, "bmp", decodeWith(t, bmpPath, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }))

	webpPath := filepath.Join(dir, "f.webp")
	if err := WriteFrame(webpPath, frame()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(webpPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 12 || !bytes.Equal(raw[:4], []byte("RIFF")) || !bytes.Equal(raw[8:12], []byte("WEBP")) {
		t.Errorf("webp header = %q", raw[:min(12, len(raw))])
	}
}

func TestWriteFrameUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.gif")
	if err := WriteFrame(path, frame()); err == nil {
		t.Fatal("gif accepted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed write left %s behind", path)
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]string{
		"a/b/c.TGA": "tga",
		"x.webp":    "webp",
		"noext":     "",
	}
	for in, want := range cases {
		if got := FormatOf(in); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func depthSample() *pixel.DepthBuffer {
	d := pixel.NewDepthBuffer(4, 2)
	d.SetDepth(0, 0, 0.5)
	d.SetDepth(1, 0, -0.25)
	d.SetDepth(3, 1, 0.75)
	return d
}

func TestDepthEXRRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.exr")
	if err := WriteDepth(path, depthSample()); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDepthEXR(path)
	if err != nil {
		t.Fatal(err)
	}
	want := depthSample()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			g, w := got.Depth(x, y), want.Depth(x, y)
			if math.IsInf(w, 1) {
				if !math.IsInf(g, 1) {
					t.Errorf("(%d,%d) = %v, want empty", x, y, g)
				}
				continue
			}
			if math.Abs(g-w) > 1e-3 {
				t.Errorf("(%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestDepthImage(t *testing.T) {
	img := DepthImage(depthSample())
	if r, g, b, a := img.RGBA(0, 0); r != 0.5 || g != 0.5 || b != 0.5 || a != 1 {
		t.Errorf("covered = %v %v %v %v", r, g, b, a)
	}
	if _, _, _, a := img.RGBA(2, 0); a != 0 {
		t.Errorf("empty alpha = %v", a)
	}
}

func TestDepthPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.png")
	if err := WriteDepth(path, depthSample()); err != nil {
		t.Fatal(err)
	}
	img := decodeWith(t, path, func(f *os.File) (image.Image, error) { return png.Decode(f) })
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if err := WriteDepth(filepath.Join(t.TempDir(), "depth.tga"), depthSample()); err == nil {
		t.Error("tga depth accepted")
	}
}
