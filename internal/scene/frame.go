package scene

import (
	"math"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/pixel"
	"cg-rasterizer/internal/raster"
)

// Frame is a render target: a color buffer, its depth buffer and the
// rasterizer bound to both. Reuse a Frame across renders of the same size.
type Frame struct {
	Color  *pixel.Buffer
	Depth  *pixel.DepthBuffer
	Raster *raster.Rasterizer
}

// NewFrame allocates a w x h frame.
func NewFrame(w, h int) *Frame {
	color := pixel.NewBuffer(w, h)
	depth := pixel.NewDepthBuffer(w, h)
	return &Frame{Color: color, Depth: depth, Raster: raster.New(color, depth)}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.Color.Width() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.Color.Height() }

// Resize changes the frame dimensions. Contents are cleared by the next
// Render.
func (f *Frame) Resize(w, h int) {
	f.Color.Resize(w, h)
	f.Depth.Resize(w, h)
}

// Clear fills the color buffer with bg and resets depth to +Inf.
func (f *Frame) Clear(bg pixel.Color) {
	f.Color.Fill(bg)
	f.Depth.Clear()
}

// Render clears the frame and draws every object of s: each vertex goes
// through Model × View × Projection, triangles with a vertex behind the eye
// or with all vertices outside the NDC cube are skipped, the rest are
// mapped to the pixel grid and filled.
func (f *Frame) Render(s *Scene) Stats {
	f.Clear(s.Background)

	var st Stats
	vp := s.Camera.ViewProjectionMatrix()
	for _, obj := range s.Objects {
		if obj == nil || obj.Mesh == nil {
			continue
		}
		st.add(f.drawObject(obj, vp))
	}

	logging.Logger().Debug("frame rendered",
		"size", [2]int{f.Width(), f.Height()},
		"triangles", st.Triangles,
		"drawn", st.Drawn,
		"outside", st.Outside,
		"behind", st.Behind,
		"degenerate", st.Degenerate,
		"pixels", st.Pixels)
	return st
}

func (f *Frame) drawObject(obj *Object, vp mathutil.Mat4) Stats {
	var st Stats
	m := obj.Mesh
	if err := m.Validate(); err != nil {
		logging.Logger().Warn("skipping mesh", "mesh", m.Name, "err", err)
		return st
	}

	mvp := vp
	if model := obj.Model; model != (mathutil.Mat4{}) && !model.IsIdentity() {
		mvp = mathutil.Mat4Mul(model, vp)
	}

	mode := obj.Mode
	if mode == ModeTexture && (obj.Texture == nil || !m.HasUVs()) {
		logging.Logger().Debug("texture mode without texture or uvs, using vertex colors", "mesh", m.Name)
		mode = ModeColor
	}
	if mode == ModeColor && !m.HasColors() {
		mode = ModeFlat
	}

	// One shader per object; Draw is synchronous so fields are rewritten
	// per triangle.
	var flat raster.Shader = raster.Flat{Color: obj.Color}
	interp := &raster.Interpolated{}
	tex := &raster.Textured{Texture: obj.Texture, Sampler: obj.Sampler}

	w, h := f.Width(), f.Height()
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		st.Triangles++

		var (
			tri    raster.Triangle
			ndc    [3]mathutil.Vec3
			behind bool
		)
		for k := 0; k < 3; k++ {
			clip := mvp.MulVec4(mathutil.Point(m.Vertices[i+k]))
			if clip[3] <= 0 {
				behind = true
				break
			}
			ndc[k] = clip.XYZ().Scale(1 / clip[3])
			tri[k] = raster.NDCToScreen(ndc[k], w, h)
		}
		if behind {
			st.Behind++
			continue
		}
		if raster.AllOutside(ndc[0], ndc[1], ndc[2]) {
			st.Outside++
			continue
		}
		if raster.Degenerate(tri) {
			st.Degenerate++
			continue
		}
		st.Drawn++

		switch mode {
		case ModeWireframe:
			f.drawEdges(tri, obj.Color)
		case ModeFlat:
			st.Pixels += f.Raster.Draw(tri, flat)
		case ModeColor:
			interp.Colors = [3]pixel.Color{m.Colors[i], m.Colors[i+1], m.Colors[i+2]}
			st.Pixels += f.Raster.Draw(tri, interp)
		case ModeTexture:
			tex.UV = [3]mathutil.Vec2{m.UVs[i], m.UVs[i+1], m.UVs[i+2]}
			st.Pixels += f.Raster.Draw(tri, tex)
		}
	}
	return st
}

// drawEdges outlines tri. Edges with an endpoint far outside the frame are
// dropped rather than walked.
func (f *Frame) drawEdges(tri raster.Triangle, c pixel.Color) {
	limit := float64(4 * max(f.Width(), f.Height()))
	for k := 0; k < 3; k++ {
		a, b := tri[k], tri[(k+1)%3]
		if math.Abs(a.X) > limit || math.Abs(a.Y) > limit || math.Abs(b.X) > limit || math.Abs(b.Y) > limit {
			continue
		}
		f.Color.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
	}
}
