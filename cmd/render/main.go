package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cg-rasterizer/internal/batch"
	"cg-rasterizer/internal/camera"
	"cg-rasterizer/internal/config"
	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/mesh"
	"cg-rasterizer/internal/pixel"
	"cg-rasterizer/internal/raster"
	"cg-rasterizer/internal/scene"
	"cg-rasterizer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Frame width in pixels (default: 640)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 480)")
	meshName := flag.String("mesh", "", "Primitive (triangle, quad, cube, grid) or .obj file (default: cube)")
	texName := flag.String("texture", "", "Texture file, or name looked up in texture_dir")
	mode := flag.String("mode", "", "Fill mode: color, flat, texture, wireframe")
	strategy := flag.String("strategy", "", "Scan conversion: span or bbox (default: span)")
	views := flag.Int("views", 0, "Number of orbit views (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	format := flag.String("format", "", "Frame format: tga, png, bmp, webp (default: tga)")
	depth := flag.String("depth", "", "Also write depth: exr or png")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	supersample := flag.Int("supersample", 0, "Render at N times the size and downsample")
	fit := flag.Bool("fit", false, "Move the camera so the mesh fills the view")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		Mesh:        *meshName,
		Texture:     *texName,
		Mode:        *mode,
		Strategy:    *strategy,
		Views:       *views,
		OutputDir:   *outputDir,
		Format:      *format,
		Depth:       *depth,
		Workers:     *workers,
		Supersample: *supersample,
		Fit:         *fit,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s, err := buildScene(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	strat := raster.SpanTable
	if cfg.Strategy == "bbox" {
		strat = raster.BoundingBox
	}
	batchCfg := batch.Config{
		OutputDir:     cfg.OutputDir,
		Format:        cfg.Format,
		Depth:         cfg.Depth,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Supersample:   cfg.Supersample,
		Strategy:      strat,
		RasterWorkers: cfg.RasterWorkers,
		Views:         cfg.Views,
		Workers:       cfg.Workers,
	}

	fmt.Printf("Rasterizer: %s, %dx%d, %d view(s), mode %s, strategy %s\n",
		cfg.Mesh, cfg.Width, cfg.Height, cfg.Views, cfg.Mode, cfg.Strategy)
	fmt.Printf("Output: %s (%s)\n", cfg.OutputDir, cfg.Format)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batchCfg, s)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var tris, pixels int
	for _, r := range results {
		if r.Success {
			success++
			tris += r.Stats.Drawn
			pixels += r.Stats.Pixels
		} else {
			failed++
			fmt.Printf("  view %d: %s\n", r.View, r.Error)
		}
	}
	fmt.Printf("Rendered: %d/%d (%d triangles, %d pixels)\n", success, len(results), tris, pixels)

	if cfg.Views > 1 {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, batchCfg, results, start.UTC().Format(time.RFC3339)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// buildScene assembles camera, mesh and texture from cfg.
func buildScene(cfg *config.Config) (*scene.Scene, error) {
	cam := camera.New()
	cam.LookAt(mathutil.Vec3(*cfg.Eye), mathutil.Vec3(*cfg.Center), mathutil.Vec3(*cfg.Up))
	cam.Perspective(cfg.FOV, cfg.Aspect(), cfg.Near, cfg.Far)

	m, err := mesh.Load(cfg.Mesh)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	mode, err := scene.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	s := scene.New(cam)
	s.Background = pixel.RGB(cfg.Background[0], cfg.Background[1], cfg.Background[2])
	obj := s.Add(m, mode)
	obj.Color = pixel.RGB(cfg.Color[0], cfg.Color[1], cfg.Color[2])
	rot := mathutil.Vec3{
		mathutil.Deg2Rad(cfg.Rotation[0]),
		mathutil.Deg2Rad(cfg.Rotation[1]),
		mathutil.Deg2Rad(cfg.Rotation[2]),
	}
	obj.Model = mathutil.Transform(mathutil.Vec3{}, rot, cfg.Scale)
	if cfg.Fit {
		cam.Fit(m.Transformed(obj.Model).Bounds())
	}

	if cfg.Texture != "" {
		cache := texture.NewCache(texture.BuildIndex(cfg.TextureDir))
		tex := cache.Resolve(cfg.Texture)
		if tex == nil {
			tex = cache.ResolveFile(cfg.Texture)
		}
		if tex == nil {
			logging.Logger().Warn("texture unavailable, using placeholder", "texture", cfg.Texture)
			tex = texture.Placeholder()
		}
		obj.Texture = tex
	}
	return s, nil
}
