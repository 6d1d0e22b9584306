// Package camera builds the view and projection transforms that take world
// space points to clip space and normalized device coordinates.
package camera

import (
	"errors"
	"math"

	"cg-rasterizer/internal/mathutil"
)

// ErrDegenerateProjection is returned by ProjectVector when the point maps
// to w == 0 (it lies on the plane through the eye parallel to the image).
var ErrDegenerateProjection = errors.New("camera: projected w is zero")

// Camera holds orientation (Eye, Center, Up) and lens parameters, plus the
// matrices derived from them.
//
// Matrices use the row-vector convention of mathutil.Mat4 (p' = p·M), so the
// combined transform is View × Projection. LookAt and Perspective keep the
// matrices current. Callers that assign the exported fields directly must
// call UpdateViewMatrix or UpdateProjectionMatrix afterwards.
type Camera struct {
	Eye, Center, Up mathutil.Vec3

	FOV    float64 // vertical field of view, degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64

	view           mathutil.Mat4
	projection     mathutil.Mat4
	viewProjection mathutil.Mat4
}

// New returns a camera at (0,10,20) looking at (0,10,0) with a 45° lens.
func New() *Camera {
	c := &Camera{
		Eye:    mathutil.Vec3{0, 10, 20},
		Center: mathutil.Vec3{0, 10, 0},
		Up:     mathutil.Vec3{0, 1, 0},
		FOV:    45,
		Aspect: 1,
		Near:   0.01,
		Far:    10000,
	}
	c.UpdateViewMatrix()
	c.UpdateProjectionMatrix()
	return c
}

// LookAt sets the orientation and recomputes the view matrix.
func (c *Camera) LookAt(eye, center, up mathutil.Vec3) {
	c.Eye = eye
	c.Center = center
	c.Up = up
	c.UpdateViewMatrix()
}

// Perspective sets the lens and recomputes the projection matrix. fov is the
// vertical field of view in degrees.
func (c *Camera) Perspective(fov, aspect, near, far float64) {
	c.FOV = fov
	c.Aspect = aspect
	c.Near = near
	c.Far = far
	c.UpdateProjectionMatrix()
}

// SetPerspective is an alias of Perspective.
func (c *Camera) SetPerspective(fov, aspect, near, far float64) {
	c.Perspective(fov, aspect, near, far)
}

// UpdateViewMatrix rebuilds the view matrix from Eye, Center and Up, then
// the view-projection product.
//
// The basis is front = normalize(center-eye), side = normalize(front×up),
// top = side×front. Rows 0-2 hold (side, top, -front) as columns because the
// camera looks down its local -Z; row 3 is -eye expressed in that basis.
func (c *Camera) UpdateViewMatrix() {
	front := c.Center.Sub(c.Eye).Normalize()
	side := front.Cross(c.Up).Normalize()
	top := side.Cross(front)

	c.view = mathutil.Mat4{
		side[0], top[0], -front[0], 0,
		side[1], top[1], -front[1], 0,
		side[2], top[2], -front[2], 0,
		-side.Dot(c.Eye), -top.Dot(c.Eye), front.Dot(c.Eye), 1,
	}
	c.updateViewProjection()
}

// UpdateProjectionMatrix rebuilds the symmetric perspective frustum from FOV,
// Aspect, Near and Far, then the view-projection product.
func (c *Camera) UpdateProjectionMatrix() {
	f := 1 / math.Tan(mathutil.Deg2Rad(c.FOV)/2)
	nf := c.Near - c.Far

	var p mathutil.Mat4
	p[0*4+0] = f / c.Aspect
	p[1*4+1] = f
	p[2*4+2] = (c.Far + c.Near) / nf
	p[2*4+3] = -1
	p[3*4+2] = 2 * c.Far * c.Near / nf
	c.projection = p
	c.updateViewProjection()
}

func (c *Camera) updateViewProjection() {
	c.viewProjection = mathutil.Mat4Mul(c.view, c.projection)
}

// ViewMatrix returns the world → camera transform.
func (c *Camera) ViewMatrix() mathutil.Mat4 { return c.view }

// ProjectionMatrix returns the camera → clip transform.
func (c *Camera) ProjectionMatrix() mathutil.Mat4 { return c.projection }

// ViewProjectionMatrix returns View × Projection.
func (c *Camera) ViewProjectionMatrix() mathutil.Mat4 { return c.viewProjection }

// Project returns the clip-space position of a world point, before the
// perspective division.
func (c *Camera) Project(p mathutil.Vec3) mathutil.Vec4 {
	return c.viewProjection.MulVec4(mathutil.Point(p))
}

// ProjectVector maps a world point to normalized device coordinates
// (clip.xyz / clip.w). Points inside the view volume land in [-1,1]³.
// It returns ErrDegenerateProjection when w is zero.
func (c *Camera) ProjectVector(p mathutil.Vec3) (mathutil.Vec3, error) {
	clip := c.Project(p)
	if clip[3] == 0 {
		return mathutil.Vec3{}, ErrDegenerateProjection
	}
	return clip.XYZ().Scale(1 / clip[3]), nil
}

// Move translates both eye and center by delta, keeping the view direction.
func (c *Camera) Move(delta mathutil.Vec3) {
	c.Eye = c.Eye.Add(delta)
	c.Center = c.Center.Add(delta)
	c.UpdateViewMatrix()
}

// Orbit rotates the eye around the center by angle radians about Up.
func (c *Camera) Orbit(angle float64) {
	rel := c.Eye.Sub(c.Center)
	c.Eye = c.Center.Add(mathutil.RotAxis(c.Up, angle).MulVec3(rel))
	c.UpdateViewMatrix()
}

// Fit moves the eye along the current view direction so that the sphere
// enclosing the box lo..hi fills the vertical field of view, and aims at the
// box center. Near and far are kept.
func (c *Camera) Fit(lo, hi mathutil.Vec3) {
	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1e-6 {
		radius = 1e-6
	}
	dir := c.Eye.Sub(c.Center).Normalize()
	if dir.Len() == 0 {
		dir = mathutil.Vec3{0, 0, 1}
	}
	dist := radius / math.Sin(mathutil.Deg2Rad(c.FOV)/2)
	c.LookAt(center.Add(dir.Scale(dist)), center, c.Up)
}
