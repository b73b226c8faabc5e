// Package camera provides the projective camera, the orbit pose controller
// and the rig that pairs them with a view.
package camera

import (
	"github.com/Faultbox/splitview/pkg/math"
)

// PerspectiveCamera is a projective camera posed by position and look-at
// target. The projection matrix is cached and only rebuilt by
// UpdateProjectionMatrix, so edits to FOV, Aspect, Near or Far take effect
// on the next update.
type PerspectiveCamera struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.V3(0, 0, -1),
		Up:     math.V3(0, 1, 0),
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix rebuilds the projection from FOV, Aspect, Near, Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = math.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the projection as of the last update.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform for the current pose.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.ViewMatrix())
}

// SetPosition moves the camera without changing where it looks.
func (c *PerspectiveCamera) SetPosition(x, y, z float32) {
	c.Position = math.V3(x, y, z)
}

// LookAt aims the camera at target.
func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.Target = target
}
