package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cg-rasterizer/internal/camera"
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/mesh"
	"cg-rasterizer/internal/pixel"
	"cg-rasterizer/internal/raster"
	"cg-rasterizer/internal/scene"
)

func cubeScene(w, h int) *scene.Scene {
	cam := camera.New()
	cam.LookAt(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0})
	cam.Perspective(60, float64(w)/float64(h), 0.1, 100)
	s := scene.New(cam)
	s.Add(mesh.Cube(), scene.ModeColor)
	return s
}

func TestRunOrbitViews(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		OutputDir: dir,
		Format:    "tga",
		Depth:     "exr",
		Width:     32,
		Height:    24,
		Strategy:  raster.BoundingBox,
		Views:     4,
		Workers:   2,
	}
	s := cubeScene(cfg.Width, cfg.Height)
	results := Run(cfg, s)

	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if !r.Success {
			t.Fatalf("view %d failed: %s", i, r.Error)
		}
		if r.View != i || math.Abs(r.Angle-float64(i)*math.Pi/2) > 1e-12 {
			t.Errorf("view %d: index %d angle %v", i, r.View, r.Angle)
		}
		if r.Stats.Triangles != 12 || r.Stats.Pixels == 0 {
			t.Errorf("view %d stats = %+v", i, r.Stats)
		}
		if _, err := os.Stat(r.DepthPath); err != nil {
			t.Errorf("view %d depth: %v", i, err)
		}
	}

	front, err := pixel.LoadTGA(results[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if got := front.Pixel(16, 12); got != pixel.Red {
		t.Errorf("front view center = %v, want red", got)
	}
	back, err := pixel.LoadTGA(results[2].Path)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Pixel(16, 12); got != pixel.Cyan {
		t.Errorf("back view center = %v, want cyan", got)
	}

	// The shared scene camera is untouched.
	if s.Camera.Eye != (mathutil.Vec3{0, 0, 5}) {
		t.Errorf("scene camera moved to %v", s.Camera.Eye)
	}
}

func TestRunSupersample(t *testing.T) {
	cfg := Config{
		OutputDir:   t.TempDir(),
		Prefix:      "ss",
		Format:      "png",
		Width:       20,
		Height:      10,
		Supersample: 3,
		Views:       1,
		Workers:     8,
	}
	results := Run(cfg, cubeScene(20, 10))
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	if filepath.Base(results[0].Path) != "ss000.png" {
		t.Errorf("path = %s", results[0].Path)
	}
}

func TestRunReportsFailures(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Config{OutputDir: blocker, Format: "tga", Width: 8, Height: 8, Views: 2, Workers: 1}
	for _, r := range Run(cfg, cubeScene(8, 8)) {
		if r.Success || r.Error == "" {
			t.Errorf("view %d: success=%v err=%q", r.View, r.Success, r.Error)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	cfg := Config{Width: 4, Height: 3, Format: "png"}
	results := []Result{
		{View: 0, Path: "a.png", Success: true},
		{View: 1, Error: "boom"},
	}
	if err := WriteManifest(path, cfg, results, "2026-10-19T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Failed != 1 || len(m.Views) != 2 || m.Views[0].Path != "a.png" || m.Width != 4 {
		t.Errorf("manifest = %+v", m)
	}
}
