// Package scene ties camera, meshes and textures to a render target. A Scene
// is plain data owned by the caller; a Frame owns the buffers one Render call
// fills.
package scene

import (
	"fmt"
	"strings"

	"cg-rasterizer/internal/camera"
	"cg-rasterizer/internal/mathutil"
	"cg-rasterizer/internal/mesh"
	"cg-rasterizer/internal/pixel"
	"cg-rasterizer/internal/raster"
)

// Mode selects how an object's triangles are filled.
type Mode int

const (
	// ModeColor blends per-vertex colors. Meshes without colors fall back
	// to ModeFlat.
	ModeColor Mode = iota
	// ModeFlat fills every triangle with Object.Color.
	ModeFlat
	// ModeTexture maps Object.Texture with the mesh UVs. Objects without a
	// texture or UVs fall back to ModeColor.
	ModeTexture
	// ModeWireframe draws triangle edges in Object.Color without depth.
	ModeWireframe
)

var modeNames = [...]string{"color", "flat", "texture", "wireframe"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String, case-insensitive.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("scene: unknown mode %q", s)
}

// Object is one mesh instance.
type Object struct {
	Mesh    *mesh.Mesh
	Texture raster.Texture
	Sampler raster.Sampler // nil means nearest
	Model   mathutil.Mat4  // object → world; the zero matrix is treated as identity
	Mode    Mode
	Color   pixel.Color
}

// Scene is everything one frame needs: the camera, the objects and the
// clear color. Render reads it without modifying it.
type Scene struct {
	Camera     *camera.Camera
	Objects    []*Object
	Background pixel.Color
}

// New returns an empty scene viewed through cam.
func New(cam *camera.Camera) *Scene {
	return &Scene{Camera: cam}
}

// Add appends an object with an identity model matrix and returns it for
// further setup.
func (s *Scene) Add(m *mesh.Mesh, mode Mode) *Object {
	obj := &Object{Mesh: m, Model: mathutil.Mat4Identity(), Mode: mode, Color: pixel.White}
	s.Objects = append(s.Objects, obj)
	return obj
}

// Stats counts what happened to the submitted triangles of one frame.
type Stats struct {
	Triangles  int // submitted
	Drawn      int // scan converted (may still be fully occluded)
	Outside    int // every vertex outside the NDC cube
	Behind     int // a vertex at or behind the eye plane (clip w <= 0)
	Degenerate int // zero screen-space area
	Pixels     int // fragments written by fills
}

func (s *Stats) add(o Stats) {
	s.Triangles += o.Triangles
	s.Drawn += o.Drawn
	s.Outside += o.Outside
	s.Behind += o.Behind
	s.Degenerate += o.Degenerate
	s.Pixels += o.Pixels
}
