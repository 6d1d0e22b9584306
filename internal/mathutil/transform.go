package mathutil

// Transform builds a model matrix: uniform scale, then Euler XYZ rotation
// (radians), then translation. The X rotation is applied first.
func Transform(pos, euler Vec3, scale float64) Mat4 {
	rot := Mat3Mul(Mat3Mul(RotZ(euler[2]), RotY(euler[1])), RotX(euler[0]))
	return FromMat3Translation(Mat3Mul(rot, Mat3Diag(scale, scale, scale)), pos)
}
