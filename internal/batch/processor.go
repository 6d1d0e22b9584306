// Package batch renders a set of orbit views of one scene with a worker
// pool and writes each frame to disk.
package batch

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/output"
	"cg-rasterizer/internal/postprocess"
	"cg-rasterizer/internal/raster"
	"cg-rasterizer/internal/scene"
)

// Config holds the frame and output settings shared by all views.
type Config struct {
	OutputDir     string
	Prefix        string // file name prefix, default "view"
	Format        string // frame extension
	Depth         string // depth extension, empty to skip
	Width         int
	Height        int
	Supersample   int
	Strategy      raster.Strategy
	RasterWorkers int
	Views         int
	Workers       int
	Progress      time.Duration // progress log interval, default 2s
}

// Result holds the outcome of rendering one view.
type Result struct {
	View      int           `json:"view"`
	Angle     float64       `json:"angle"` // radians around the camera center
	Path      string        `json:"path,omitempty"`
	DepthPath string        `json:"depth_path,omitempty"`
	Stats     scene.Stats   `json:"stats"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// Run renders cfg.Views frames of s, orbiting the camera evenly around its
// center, using a worker pool. s is shared read-only; every worker gets its
// own camera copy and frame.
func Run(cfg Config, s *scene.Scene) []Result {
	views := max(cfg.Views, 1)
	workers := min(max(cfg.Workers, 1), views)
	results := make([]Result, views)
	var processed atomic.Int64

	start := time.Now()
	log := logging.Logger()

	// Progress reporter
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", views,
						"views_per_sec", fmt.Sprintf("%.1f", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	viewChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frame := newFrame(cfg)
			for idx := range viewChan {
				results[idx] = renderView(cfg, s, frame, idx, views)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < views; i++ {
		viewChan <- i
	}
	close(viewChan)

	wg.Wait()
	close(done)

	return results
}

func newFrame(cfg Config) *scene.Frame {
	ss := max(cfg.Supersample, 1)
	f := scene.NewFrame(cfg.Width*ss, cfg.Height*ss)
	f.Raster.Strategy = cfg.Strategy
	f.Raster.Workers = max(cfg.RasterWorkers, 1)
	return f
}

// ViewPath returns the frame path of view i.
func ViewPath(cfg Config, i int, ext string) string {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "view"
	}
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("%s%03d.%s", prefix, i, ext))
}

func renderView(cfg Config, s *scene.Scene, frame *scene.Frame, idx, views int) Result {
	began := time.Now()
	angle := 2 * math.Pi * float64(idx) / float64(views)
	res := Result{View: idx, Angle: angle}

	cam := *s.Camera
	if idx > 0 {
		cam.Orbit(angle)
	}
	view := *s
	view.Camera = &cam

	res.Stats = frame.Render(&view)
	img := postprocess.Resolve(frame.Color, max(cfg.Supersample, 1))

	res.Path = ViewPath(cfg, idx, cfg.Format)
	if err := output.WriteFrame(res.Path, img); err != nil {
		res.Error = err.Error()
		return res
	}
	if cfg.Depth != "" {
		res.DepthPath = ViewPath(cfg, idx, "depth."+cfg.Depth)
		if err := output.WriteDepth(res.DepthPath, frame.Depth); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Elapsed = time.Since(began)
	res.Success = true
	return res
}
