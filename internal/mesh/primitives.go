package mesh

import (
	"fmt"

	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/pixel"
)

// Triangle returns a single triangle in the z=0 plane facing +z.
func Triangle() *Mesh {
	return &Mesh{
		Name: "triangle",
		Vertices: []mathutil.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {0, 1, 0},
		},
		UVs: []mathutil.Vec2{
			{0, 1}, {1, 1}, {0.5, 0},
		},
		Colors: []pixel.Color{pixel.Red, pixel.Green, pixel.Blue},
	}
}

// quad appends corners p0..p3 (counter-clockwise, p0 bottom-left) as the two
// triangles 0-1-2 and 0-2-3.
func (m *Mesh) quad(p [4]mathutil.Vec3, c pixel.Color) {
	uv := [4]mathutil.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		m.Vertices = append(m.Vertices, p[i])
		m.UVs = append(m.UVs, uv[i])
		m.Colors = append(m.Colors, c)
	}
}

// Quad returns a 2x2 square in the z=0 plane, centered on the origin.
func Quad() *Mesh {
	m := &Mesh{Name: "quad"}
	m.quad([4]mathutil.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}, pixel.White)
	return m
}

// Cube returns a unit-half-extent cube centered on the origin. Every face
// carries the full texture and its own color.
func Cube() *Mesh {
	m := &Mesh{Name: "cube"}
	faces := []struct {
		p [4]mathutil.Vec3
		c pixel.Color
	}{
		{[4]mathutil.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, pixel.Red},         // +z
		{[4]mathutil.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, pixel.Cyan},    // -z
		{[4]mathutil.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}, pixel.Green},       // +x
		{[4]mathutil.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, pixel.Magenta}, // -x
		{[4]mathutil.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}, pixel.Blue},        // +y
		{[4]mathutil.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, pixel.Yellow},  // -y
	}
	for _, f := range faces {
		m.quad(f.p, f.c)
	}
	return m
}

// Grid returns an n x n tessellated square of side 2 in the y=0 plane, with
// UVs spanning the whole grid and a checkerboard of vertex colors.
func Grid(n int) *Mesh {
	if n < 1 {
		n = 1
	}
	m := &Mesh{Name: fmt.Sprintf("grid%d", n)}
	step := 2 / float64(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x0, z0 := -1+float64(i)*step, 1-float64(j)*step
			x1, z1 := x0+step, z0-step
			c := pixel.Gray
			if (i+j)%2 == 0 {
				c = pixel.White
			}
			first := len(m.UVs)
			m.quad([4]mathutil.Vec3{{x0, 0, z0}, {x1, 0, z0}, {x1, 0, z1}, {x0, 0, z1}}, c)
			// Remap the per-quad UVs onto the whole grid.
			for k := first; k < len(m.UVs); k++ {
				uv := m.UVs[k]
				m.UVs[k] = mathutil.Vec2{
					(float64(i) + uv[0]) / float64(n),
					(float64(n-1-j) + uv[1]) / float64(n),
				}
			}
		}
	}
	return m
}

// ByName returns a primitive by name: "triangle", "quad", "cube" or
// "grid" (8x8).
func ByName(name string) (*Mesh, error) {
	switch name {
	case "triangle":
		return Triangle(), nil
	case "quad":
		return Quad(), nil
	case "cube":
		return Cube(), nil
	case "grid":
		return Grid(8), nil
	}
	return nil, fmt.Errorf("mesh: unknown primitive %q", name)
}
