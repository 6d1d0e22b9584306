// Package mesh supplies triangle soup to the renderer: positions consumed
// three at a time, with parallel UV and color arrays.
package mesh

import (
	"errors"
	"fmt"

	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/pixel"
)

// ErrMalformed reports a mesh whose arrays cannot be read as triangles.
var ErrMalformed = errors.New("mesh: malformed")

// Mesh is an unindexed triangle list. Vertices[3i], [3i+1], [3i+2] form
// triangle i. UVs and Colors are either empty or parallel to Vertices.
type Mesh struct {
	Name     string
	Vertices []mathutil.Vec3
	UVs      []mathutil.Vec2 // normalized, v=0 at the top row of the texture
	Colors   []pixel.Color
}

// Validate checks the triangle-list invariants.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %s: %d vertices is not a multiple of 3", ErrMalformed, m.Name, len(m.Vertices))
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%w: %s: %d uvs for %d vertices", ErrMalformed, m.Name, len(m.UVs), len(m.Vertices))
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("%w: %s: %d colors for %d vertices", ErrMalformed, m.Name, len(m.Colors), len(m.Vertices))
	}
	return nil
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// HasUVs reports whether every vertex carries a texture coordinate.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Vertices)
}

// HasColors reports whether every vertex carries a color.
func (m *Mesh) HasColors() bool {
	return len(m.Colors) > 0 && len(m.Colors) == len(m.Vertices)
}

// Bounds returns the axis-aligned extent of the vertices.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi
}

// Append adds the triangles of o to m. Attribute arrays missing on one side
// are padded so they stay parallel.
func (m *Mesh) Append(o *Mesh) {
	base := len(m.Vertices)
	if o.HasUVs() && !m.HasUVs() {
		m.UVs = make([]mathutil.Vec2, base, base+len(o.Vertices))
	}
	if o.HasColors() && !m.HasColors() {
		m.Colors = make([]pixel.Color, base, base+len(o.Vertices))
		for i := range m.Colors {
			m.Colors[i] = pixel.White
		}
	}
	m.Vertices = append(m.Vertices, o.Vertices...)
	switch {
	case o.HasUVs():
		m.UVs = append(m.UVs, o.UVs...)
	case len(m.UVs) > 0:
		m.UVs = append(m.UVs, make([]mathutil.Vec2, len(o.Vertices))...)
	}
	switch {
	case o.HasColors():
		m.Colors = append(m.Colors, o.Colors...)
	case len(m.Colors) > 0:
		for range o.Vertices {
			m.Colors = append(m.Colors, pixel.White)
		}
	}
}

// Transformed returns a copy of m with every position multiplied by model.
func (m *Mesh) Transformed(model mathutil.Mat4) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]mathutil.Vec3, len(m.Vertices)),
		UVs:      m.UVs,
		Colors:   m.Colors,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = model.MulPoint(v)
	}
	return out
}
