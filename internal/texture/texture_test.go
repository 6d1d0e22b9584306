package texture

import (
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cg-rasterizer/internal/pixel"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sample() *pixel.Buffer {
	b := pixel.NewBuffer(3, 2)
	b.SetPixel(0, 0, pixel.Red)
	b.SetPixel(2, 1, pixel.Blue)
	return b
}

func TestLoadTGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.tga")
	if err := pixel.SaveTGA(path, sample()); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Pixel(0, 0) != pixel.Red || b.Pixel(2, 1) != pixel.Blue {
		t.Errorf("pixels = %v %v", b.Pixel(0, 0), b.Pixel(2, 1))
	}
}

func TestLoadRLETGAFallsBack(t *testing.T) {
	// 2x1 run-length encoded truecolor, one run of red.
	data := []byte{
		0, 0, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		2, 0, 1, 0, 24, 0x20,
		0x81, 0, 0, 255,
	}
	path := filepath.Join(t.TempDir(), "rle.tga")
	writeFile(t, path, data)

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 2 || b.Height() != 1 {
		t.Fatalf("size = %dx%d", b.Width(), b.Height())
	}
	if b.Pixel(0, 0) != pixel.Red || b.Pixel(1, 0) != pixel.Red {
		t.Errorf("pixels = %v %v, want red", b.Pixel(0, 0), b.Pixel(1, 0))
	}
}

func TestLoadPNGAndJPEG(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "s.png")
	f, err := os.Create(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, sample()); err != nil {
		t.Fatal(err)
	}
	f.Close()
	b, err := Load(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if b.Pixel(0, 0) != pixel.Red {
		t.Errorf("png (0,0) = %v", b.Pixel(0, 0))
	}

	jpgPath := filepath.Join(dir, "s.jpg")
	f, err = os.Create(jpgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, Checkerboard(16, 16, 8, pixel.White, pixel.White), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()
	b, err = Load(jpgPath)
	if err != nil {
		t.Fatal(err)
	}
	if c := b.Pixel(4, 4); c.R < 240 || c.G < 240 || c.B < 240 {
		t.Errorf("jpeg (4,4) = %v, want near white", c)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	writeFile(t, bad, []byte("not a png"))
	truncated := filepath.Join(dir, "short.tga")
	writeFile(t, truncated, []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 4, 0, 24, 0, 1, 2})

	for _, path := range []string{
		filepath.Join(dir, "missing.tga"),
		filepath.Join(dir, "x.gif"),
		bad,
		truncated,
	} {
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) succeeded", filepath.Base(path))
		}
	}
}

func TestCheckerboard(t *testing.T) {
	b := Checkerboard(4, 4, 2, pixel.White, pixel.Black)
	if b.Pixel(0, 0) != pixel.White || b.Pixel(2, 0) != pixel.Black || b.Pixel(2, 2) != pixel.White {
		t.Errorf("unexpected pattern")
	}
	if p := Placeholder(); p.Width() != 64 || p.Height() != 64 {
		t.Errorf("placeholder size = %dx%d", p.Width(), p.Height())
	}
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Lee.png"), nil)
	writeFile(t, filepath.Join(dir, "sub", "lee.tga"), nil)
	writeFile(t, filepath.Join(dir, "sub", "deep", "wall.jpg"), nil)
	writeFile(t, filepath.Join(dir, "notes.txt"), nil)

	idx := BuildIndex(dir)
	if idx.Len() != 2 {
		t.Errorf("Len = %d, want 2", idx.Len())
	}
	path, ok := idx.ResolvePath(`models\LEE.jpg`)
	if !ok || filepath.Ext(path) != ".tga" {
		t.Errorf("ResolvePath(lee) = %q, %v; want the tga", path, ok)
	}
	if _, ok := idx.ResolvePath("wall"); !ok {
		t.Error("wall not found")
	}
	if _, ok := idx.ResolvePath("notes"); ok {
		t.Error("non-texture indexed")
	}
	if BuildIndex(filepath.Join(dir, "nope")).Len() != 0 {
		t.Error("missing dir produced entries")
	}
}

func TestCacheSharesLoads(t *testing.T) {
	dir := t.TempDir()
	if err := pixel.SaveTGA(filepath.Join(dir, "s.tga"), sample()); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "broken.tga"), []byte("junk"))
	c := NewCache(BuildIndex(dir))

	var wg sync.WaitGroup
	got := make([]*pixel.Buffer, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.Resolve("S")
		}(i)
	}
	wg.Wait()
	for i, b := range got {
		if b == nil || b != got[0] {
			t.Fatalf("resolve %d returned %p, want shared %p", i, b, got[0])
		}
	}

	if c.Resolve("absent") != nil {
		t.Error("absent texture resolved")
	}
	if c.Resolve("broken") != nil {
		t.Error("broken texture resolved")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.ResolveFile(filepath.Join(dir, "s.tga")) != got[0] {
		t.Error("ResolveFile missed the cache")
	}
}
