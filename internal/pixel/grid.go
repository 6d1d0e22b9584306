package pixel

import "fmt"

// grid is the row-major storage shared by Buffer and DepthBuffer. It is the
// only place that knows the (x, y) → y*width+x layout and checks bounds.
type grid[T any] struct {
	w, h int
	pix  []T
}

func newGrid[T any](w, h int) grid[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return grid[T]{w: w, h: h, pix: make([]T, w*h)}
}

// Width returns the number of columns.
func (g *grid[T]) Width() int { return g.w }

// Height returns the number of rows.
func (g *grid[T]) Height() int { return g.h }

// In reports whether (x, y) addresses a cell.
func (g *grid[T]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *grid[T]) offset(x, y int) (int, bool) {
	if !g.In(x, y) {
		if debugBounds {
			panic(fmt.Sprintf("pixel: (%d,%d) outside %dx%d", x, y, g.w, g.h))
		}
		return 0, false
	}
	return y*g.w + x, true
}

func (g *grid[T]) at(x, y int) T {
	i, ok := g.offset(x, y)
	if !ok {
		var zero T
		return zero
	}
	return g.pix[i]
}

func (g *grid[T]) set(x, y int, v T) {
	if i, ok := g.offset(x, y); ok {
		g.pix[i] = v
	}
}

func (g *grid[T]) ref(x, y int) *T {
	i, ok := g.offset(x, y)
	if !ok {
		return nil
	}
	return &g.pix[i]
}

// Row returns row y as a slice aliasing the storage, or nil when y is out
// of range. Writes through the slice are visible in the grid.
func (g *grid[T]) Row(y int) []T {
	if y < 0 || y >= g.h {
		if debugBounds {
			panic(fmt.Sprintf("pixel: row %d outside height %d", y, g.h))
		}
		return nil
	}
	return g.pix[y*g.w : (y+1)*g.w : (y+1)*g.w]
}

func (g *grid[T]) fill(v T) {
	for i := range g.pix {
		g.pix[i] = v
	}
}

// resize reallocates to w×h keeping the overlapping top-left rectangle.
// Newly exposed cells are set to pad.
func (g *grid[T]) resize(w, h int, pad T) {
	n := newGrid[T](w, h)
	n.fill(pad)
	mw, mh := min(g.w, n.w), min(g.h, n.h)
	for y := 0; y < mh; y++ {
		copy(n.pix[y*n.w:y*n.w+mw], g.pix[y*g.w:y*g.w+mw])
	}
	*g = n
}

// scale reallocates to w×h, resampling with nearest-neighbor lookup of the
// source cell (oldW*x/w, oldH*y/h).
func (g *grid[T]) scale(w, h int) {
	n := newGrid[T](w, h)
	if g.w > 0 && g.h > 0 {
		for y := 0; y < n.h; y++ {
			sy := g.h * y / n.h
			for x := 0; x < n.w; x++ {
				n.pix[y*n.w+x] = g.pix[sy*g.w+g.w*x/n.w]
			}
		}
	}
	*g = n
}

func (g *grid[T]) clone() grid[T] {
	n := grid[T]{w: g.w, h: g.h, pix: make([]T, len(g.pix))}
	copy(n.pix, g.pix)
	return n
}

func (g *grid[T]) flipHorizontal() {
	for y := 0; y < g.h; y++ {
		row := g.pix[y*g.w : (y+1)*g.w]
		for l, r := 0, g.w-1; l < r; l, r = l+1, r-1 {
			row[l], row[r] = row[r], row[l]
		}
	}
}

func (g *grid[T]) flipVertical() {
	for t, b := 0, g.h-1; t < b; t, b = t+1, b-1 {
		top := g.pix[t*g.w : (t+1)*g.w]
		bot := g.pix[b*g.w : (b+1)*g.w]
		for x := range top {
			top[x], bot[x] = bot[x], top[x]
		}
	}
}
