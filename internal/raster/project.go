package raster

import "cg-rasterizer/internal/mathutil"

// NDCToScreen maps normalized device coordinates to a w x h pixel grid.
// NDC y points up while row 0 is the top, so y is flipped. Depth is NDC z.
func NDCToScreen(ndc mathutil.Vec3, w, h int) Vertex {
	return Vertex{
		X: (ndc[0] + 1) * float64(w) / 2,
		Y: (1 - ndc[1]) * float64(h) / 2,
		Z: ndc[2],
	}
}

// OutsideNDC reports whether p lies outside the [-1,1] cube.
func OutsideNDC(p mathutil.Vec3) bool {
	for _, c := range p {
		if c < -1 || c > 1 {
			return true
		}
	}
	return false
}

// AllOutside reports whether every vertex of a projected triangle lies
// outside the NDC cube. Such triangles are skipped without scan conversion.
func AllOutside(a, b, c mathutil.Vec3) bool {
	return OutsideNDC(a) && OutsideNDC(b) && OutsideNDC(c)
}
