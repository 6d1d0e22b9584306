package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/udhos/gwob"

	"cg-rasterizer/internal/logging"
	"cg-rasterizer/internal/mathutil"
)

// gwob packs each vertex into Coord and reports strides in bytes of float32.
const coordSize = 4

// ReadOBJ parses Wavefront OBJ geometry into a triangle list. Polygons are
// triangulated by the parser and normals are ignored. OBJ texture space has
// v=0 at the bottom, so v is flipped on the way in.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	return readOBJ("obj", r)
}

func readOBJ(name string, r io.Reader) (*Mesh, error) {
	opts := &gwob.ObjParserOptions{
		IgnoreNormals: true,
		Logger: func(msg string) {
			logging.Logger().Debug("obj parser", "mesh", name, "msg", msg)
		},
	}
	o, err := gwob.NewObjFromReader(name, bufio.NewReader(r), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: obj %s: %v", ErrMalformed, name, err)
	}
	if o.StrideSize <= 0 || len(o.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: obj %s: %d indices at stride %d", ErrMalformed, name, len(o.Indices), o.StrideSize)
	}

	stride := o.StrideSize / coordSize
	posAt := o.StrideOffsetPosition / coordSize
	uvAt := o.StrideOffsetTexture / coordSize
	count := len(o.Coord) / stride

	m := &Mesh{Vertices: make([]mathutil.Vec3, 0, len(o.Indices))}
	if o.TextCoordFound {
		m.UVs = make([]mathutil.Vec2, 0, len(o.Indices))
	}
	for _, idx := range o.Indices {
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("%w: obj %s: index %d out of range (%d)", ErrMalformed, name, idx, count)
		}
		c := o.Coord[idx*stride:]
		m.Vertices = append(m.Vertices, mathutil.Vec3{
			float64(c[posAt]), float64(c[posAt+1]), float64(c[posAt+2]),
		})
		if o.TextCoordFound {
			m.UVs = append(m.UVs, mathutil.Vec2{float64(c[uvAt]), 1 - float64(c[uvAt+1])})
		}
	}
	return m, nil
}

// LoadOBJ reads an OBJ file. The mesh is named after the file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := readOBJ(path, f)
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", path, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	logging.Logger().Debug("mesh loaded", "path", path, "triangles", m.TriangleCount(), "uvs", m.HasUVs())
	return m, nil
}

// Load returns a primitive by name, or reads an OBJ file when name has the
// .obj extension.
func Load(name string) (*Mesh, error) {
	if strings.EqualFold(filepath.Ext(name), ".obj") {
		return LoadOBJ(name)
	}
	return ByName(name)
}
