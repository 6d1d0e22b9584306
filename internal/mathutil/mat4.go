package mathutil

// Mat4 is a 4×4 matrix stored row-major, M[r][c] at index r*4+c.
//
// Mat4 is applied to row vectors: p' = p·M. Translation lives in row 3 and
// a chain of transforms reads left to right, so the camera's combined
// transform is view × projection.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// At returns M[r][c].
func (m Mat4) At(r, c int) float64 {
	return m[r*4+c]
}

// MulVec4 returns v·M.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		v[0]*m[0] + v[1]*m[4] + v[2]*m[8] + v[3]*m[12],
		v[0]*m[1] + v[1]*m[5] + v[2]*m[9] + v[3]*m[13],
		v[0]*m[2] + v[1]*m[6] + v[2]*m[10] + v[3]*m[14],
		v[0]*m[3] + v[1]*m[7] + v[2]*m[11] + v[3]*m[15],
	}
}

// MulPoint transforms a 3D point (w=1) and drops the resulting w.
// Only meaningful for affine matrices.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).XYZ()
}

// FromMat3Translation builds an affine matrix that applies the column-vector
// rotation r and then translates by t.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	rt := r.Transpose()
	return Mat4{
		rt[0], rt[1], rt[2], 0,
		rt[3], rt[4], rt[5], 0,
		rt[6], rt[7], rt[8], 0,
		t[0], t[1], t[2], 1,
	}
}

// Translation returns a pure translation matrix.
func Translation(t Vec3) Mat4 {
	return FromMat3Translation(Mat3Identity(), t)
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
