package camera

import (
	"github.com/Faultbox/splitview/internal/engine/viewport"
)

// Controller mutates a camera pose from input accumulated since the last
// call.
type Controller interface {
	Update()
}

// Rig pairs a camera with the controller that poses it. The rig owns the
// camera; the camera's aspect is only ever written by SyncAspect.
type Rig struct {
	camera     *PerspectiveCamera
	controller Controller
}

// NewRig creates a rig. controller may be nil for a fixed camera.
func NewRig(camera *PerspectiveCamera, controller Controller) *Rig {
	return &Rig{camera: camera, controller: controller}
}

// Camera returns the rig's camera.
func (r *Rig) Camera() *PerspectiveCamera {
	return r.camera
}

// SyncAspect sets the camera aspect from region and rebuilds the projection.
// An empty region is ignored and the previous aspect is kept; it returns
// whether the camera was updated.
func (r *Rig) SyncAspect(region viewport.Region) bool {
	if region.Empty() {
		return false
	}
	r.camera.Aspect = region.Aspect()
	r.camera.UpdateProjectionMatrix()
	return true
}

// ApplyControllerUpdate lets the controller apply pending input to the pose.
func (r *Rig) ApplyControllerUpdate() {
	if r.controller != nil {
		r.controller.Update()
	}
}
