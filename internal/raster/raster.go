// Package raster scan-converts screen-space triangles into a pixel.Buffer,
// with optional depth testing against a pixel.DepthBuffer.
//
// Coverage is decided once per triangle by the chosen Strategy; what each
// covered pixel becomes is decided by a Shader.
package raster

import (
	"math"
	"sync"

	"cg-rasterizer/internal/pixel"
)

// Vertex is a screen-space position: X and Y in pixels (row 0 at the top)
// and Z the depth used for the depth test, lower is closer.
type Vertex struct {
	X, Y, Z float64
}

// Triangle is three screen-space vertices.
type Triangle [3]Vertex

// Strategy selects the scan-conversion algorithm.
type Strategy int

const (
	// SpanTable walks the three edges with Bresenham steps, records the
	// [min, max) x-extent of every row and fills the spans.
	SpanTable Strategy = iota
	// BoundingBox tests every pixel of the clamped bounding box with
	// barycentric weights.
	BoundingBox
)

func (s Strategy) String() string {
	switch s {
	case SpanTable:
		return "span"
	case BoundingBox:
		return "bbox"
	}
	return "unknown"
}

// insideEps is the barycentric slack that keeps pixels exactly on an edge.
const insideEps = 1e-9

// minRowsPerWorker keeps tiny triangles on the calling goroutine.
const minRowsPerWorker = 16

// span is one row of the span table. An empty row has min >= max.
type span struct {
	min, max int
}

// Rasterizer fills triangles into Target. When Depth is non-nil every
// fragment is depth tested (strictly closer wins) and passing fragments
// update both buffers. Depth must match Target's dimensions.
//
// A Rasterizer is not safe for concurrent Draw calls. With Workers > 1 a
// single Draw splits its rows across goroutines; rows are disjoint so no two
// goroutines touch the same pixel.
type Rasterizer struct {
	Target   *pixel.Buffer
	Depth    *pixel.DepthBuffer
	Strategy Strategy
	Workers  int

	spans []span
}

// New returns a span-table rasterizer drawing into target.
func New(target *pixel.Buffer, depth *pixel.DepthBuffer) *Rasterizer {
	return &Rasterizer{Target: target, Depth: depth, Strategy: SpanTable, Workers: 1}
}

// Draw scan-converts tri and shades every covered pixel. It returns the
// number of pixels written. Degenerate (zero-area) triangles and triangles
// entirely off the buffer write nothing.
func (r *Rasterizer) Draw(tri Triangle, sh Shader) int {
	w, h := r.Target.Width(), r.Target.Height()
	if w == 0 || h == 0 {
		return 0
	}
	a, b, c := tri[0], tri[1], tri[2]
	s, ok := newSetup(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if !ok {
		return 0
	}

	minX := int(math.Floor(min(a.X, b.X, c.X)))
	maxX := int(math.Floor(max(a.X, b.X, c.X)))
	minY := int(math.Floor(min(a.Y, b.Y, c.Y)))
	maxY := int(math.Floor(max(a.Y, b.Y, c.Y)))
	if maxX < 0 || maxY < 0 || minX >= w || minY >= h {
		return 0
	}
	minX, maxX = max(minX, 0), min(maxX, w-1)
	minY, maxY = max(minY, 0), min(maxY, h-1)

	job := fillJob{r: r, tri: &tri, s: &s, sh: sh, minX: minX, maxX: maxX}
	if r.Strategy == SpanTable && r.withinGuardBand(tri) {
		r.buildSpans(tri, minY, maxY)
		job.spans = r.spans
	}
	return r.run(&job, minY, maxY)
}

// withinGuardBand reports whether Bresenham walks of the edges stay short.
// Far-off vertices fall back to the bounding-box path, which is clamped.
func (r *Rasterizer) withinGuardBand(tri Triangle) bool {
	limit := float64(4 * max(r.Target.Width(), r.Target.Height()))
	for _, v := range tri {
		if math.Abs(v.X) > limit || math.Abs(v.Y) > limit {
			return false
		}
	}
	return true
}

// buildSpans resets rows [y0, y1] of the span table and walks the edges.
func (r *Rasterizer) buildSpans(tri Triangle, y0, y1 int) {
	h := r.Target.Height()
	if len(r.spans) != h {
		r.spans = make([]span, h)
	}
	for y := y0; y <= y1; y++ {
		r.spans[y] = span{min: math.MaxInt, max: math.MinInt}
	}
	r.walkEdge(tri[0], tri[1])
	r.walkEdge(tri[0], tri[2])
	r.walkEdge(tri[1], tri[2])
}

func (r *Rasterizer) walkEdge(a, b Vertex) {
	w, h := r.Target.Width(), r.Target.Height()
	pixel.WalkLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)),
		func(x, y int) {
			if y < 0 || y >= h {
				return
			}
			// Clamping keeps spans of triangles that leave the buffer
			// sideways; max is exclusive so it may reach w.
			x = clampInt(x, 0, w)
			sp := &r.spans[y]
			if x < sp.min {
				sp.min = x
			}
			if x > sp.max {
				sp.max = x
			}
		})
}

// fillJob is the read-only state shared by the row workers of one Draw.
type fillJob struct {
	r          *Rasterizer
	tri        *Triangle
	s          *setup
	sh         Shader
	spans      []span // nil selects the bounding-box test
	minX, maxX int
}

func (r *Rasterizer) run(job *fillJob, y0, y1 int) int {
	rows := y1 - y0 + 1
	workers := min(r.Workers, rows/minRowsPerWorker)
	if workers <= 1 {
		return job.rows(y0, y1)
	}

	counts := make([]int, workers)
	per := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := y0 + i*per
		hi := min(lo+per-1, y1)
		if lo > hi {
			break
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			counts[i] = job.rows(lo, hi)
		}(i, lo, hi)
	}
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// rows fills rows [y0, y1] and returns the number of pixels written.
func (j *fillJob) rows(y0, y1 int) int {
	n := 0
	for y := y0; y <= y1; y++ {
		x0, x1 := j.minX, j.maxX+1
		if j.spans != nil {
			sp := j.spans[y]
			if sp.min >= sp.max {
				continue
			}
			x0, x1 = sp.min, sp.max
		}
		colorRow := j.r.Target.Row(y)
		var depthRow []float64
		if j.r.Depth != nil {
			depthRow = j.r.Depth.Row(y)
		}
		fy := float64(y)
		for x := x0; x < x1; x++ {
			wt := j.s.weights(float64(x), fy)
			if j.spans == nil && !wt.Inside(insideEps) {
				continue
			}
			// Depth is compared before shading and written after it, so a
			// discarded fragment leaves the buffer untouched. TestAndSet
			// would write before the shader has decided.
			var z float64
			if depthRow != nil {
				z = wt.Interpolate(j.tri[0].Z, j.tri[1].Z, j.tri[2].Z)
				if !(z < depthRow[x]) {
					continue
				}
			}
			c, ok := j.sh.Shade(x, y, wt)
			if !ok {
				continue
			}
			if depthRow != nil {
				depthRow[x] = z
			}
			colorRow[x] = c
			n++
		}
	}
	return n
}
