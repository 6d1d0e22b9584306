package pixel

import "math"

// WalkLine visits every integer point of the segment (x0,y0)-(x1,y1) using
// Bresenham's error accumulation, endpoints included.
func WalkLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx, sx := absInt(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := absInt(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x0 += sx
		}
		if e2 < dy {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine draws a 1-pixel line with integer Bresenham stepping, clipped to
// the buffer.
func (b *Buffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	WalkLine(x0, y0, x1, y1, func(x, y int) {
		if b.In(x, y) {
			b.set(x, y, c)
		}
	})
}

// DrawLineDDA draws a line by stepping a floating-point position one unit
// along the major axis per pixel.
func (b *Buffer) DrawLineDDA(x0, y0, x1, y1 int, c Color) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	x := float64(x0) + 0.5
	y := float64(y0) + 0.5
	if steps == 0 {
		b.plot(x0, y0, c)
		return
	}
	vx, vy := dx/steps, dy/steps
	for i := 0; i <= int(steps); i++ {
		b.plot(int(math.Floor(x)), int(math.Floor(y)), c)
		x += vx
		y += vy
	}
}

// DrawCircle draws a circle of radius r centered on (cx, cy) with the
// midpoint algorithm. When fill is set the interior is painted too.
func (b *Buffer) DrawCircle(cx, cy, r int, c Color, fill bool) {
	if r < 0 {
		return
	}
	x, y := 0, r
	d := 1 - r
	for y >= x {
		if fill {
			b.hspan(cx-x, cx+x, cy+y, c)
			b.hspan(cx-x, cx+x, cy-y, c)
			b.hspan(cx-y, cx+y, cy+x, c)
			b.hspan(cx-y, cx+y, cy-x, c)
		} else {
			b.plot(cx+x, cy+y, c)
			b.plot(cx-x, cy+y, c)
			b.plot(cx+x, cy-y, c)
			b.plot(cx-x, cy-y, c)
			b.plot(cx+y, cy+x, c)
			b.plot(cx-y, cy+x, c)
			b.plot(cx+y, cy-x, c)
			b.plot(cx-y, cy-x, c)
		}
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// DrawImage copies src with its top-left corner at (x, y), clipped to the
// buffer. When w or h is non-zero src is first scaled to w×h; a zero
// dimension keeps the source size on that axis.
func (b *Buffer) DrawImage(src *Buffer, x, y, w, h int) {
	if w != 0 || h != 0 {
		if w == 0 {
			w = src.w
		}
		if h == 0 {
			h = src.h
		}
		src = src.Clone()
		src.Scale(w, h)
	}
	for sy := 0; sy < src.h; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.h {
			continue
		}
		dst := b.Row(dy)
		row := src.Row(sy)
		for sx, c := range row {
			if dx := x + sx; dx >= 0 && dx < b.w {
				dst[dx] = c
			}
		}
	}
}

func (b *Buffer) plot(x, y int, c Color) {
	if b.In(x, y) {
		b.set(x, y, c)
	}
}

// hspan paints [x0, x1] inclusive on row y, clipped.
func (b *Buffer) hspan(x0, x1, y int, c Color) {
	if y < 0 || y >= b.h {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, b.w-1)
	row := b.Row(y)
	for x := x0; x <= x1; x++ {
		row[x] = c
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
