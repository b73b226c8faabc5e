package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/splitview/internal/engine/pointer"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/pkg/math"
)

// OrbitControls orbits a camera around a target point. Pointer input is
// accumulated as it arrives and only applied to the camera by Update, so a
// frame never observes half an input.
type OrbitControls struct {
	camera  *PerspectiveCamera
	element viewport.Element

	// Target is the look-at anchor the camera orbits around.
	Target math.Vec3

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	RotateSensitivity float32 // radians per point dragged
	ZoomSensitivity   float32 // fraction of distance per wheel step
	PanSensitivity    float32 // fraction of distance per point dragged

	dragging pointer.Button

	pendingYaw   float32
	pendingPitch float32
	pendingZoom  float32
	pendingPan   math.Vec2
}

// NewOrbitControls creates controls for camera, taking input over element.
func NewOrbitControls(camera *PerspectiveCamera, element viewport.Element) *OrbitControls {
	return &OrbitControls{
		camera:            camera,
		element:           element,
		Target:            camera.Target,
		MinDistance:       0.5,
		MaxDistance:       2000,
		MinPitch:          -1.55,
		MaxPitch:          1.55,
		RotateSensitivity: 0.008,
		ZoomSensitivity:   0.1,
		PanSensitivity:    0.002,
		pendingZoom:       1,
	}
}

// Element returns the element the controls take input over.
func (o *OrbitControls) Element() viewport.Element {
	return o.element
}

// SetTarget sets the look-at anchor.
func (o *OrbitControls) SetTarget(x, y, z float32) {
	o.Target = math.V3(x, y, z)
}

// HandlePointer implements pointer.Handler.
func (o *OrbitControls) HandlePointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Down:
		o.dragging = ev.Button
	case pointer.Up:
		o.dragging = pointer.ButtonNone
	case pointer.Move:
		switch o.dragging {
		case pointer.ButtonPrimary:
			o.HandleDrag(ev.Delta.X, ev.Delta.Y)
		case pointer.ButtonSecondary, pointer.ButtonMiddle:
			o.HandlePan(ev.Delta.X, ev.Delta.Y)
		}
	case pointer.Wheel:
		o.HandleZoom(ev.Scroll)
	}
}

// HandleDrag queues a rotation for a drag of (deltaX, deltaY) points.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	o.pendingYaw -= deltaX * o.RotateSensitivity
	o.pendingPitch += deltaY * o.RotateSensitivity
}

// HandleZoom queues a dolly for a wheel delta; positive moves closer.
func (o *OrbitControls) HandleZoom(delta float32) {
	f := 1 - delta*o.ZoomSensitivity
	if f <= 0.05 {
		f = 0.05
	}
	o.pendingZoom *= f
}

// HandlePan queues a pan of the target in the view plane.
func (o *OrbitControls) HandlePan(deltaX, deltaY float32) {
	o.pendingPan = o.pendingPan.Add(math.Vec2{X: deltaX, Y: deltaY})
}

// Update applies queued input to the camera pose and re-aims it at Target.
// Without queued input the pose is left untouched.
func (o *OrbitControls) Update() {
	if o.pendingYaw == 0 && o.pendingPitch == 0 && o.pendingZoom == 1 && o.pendingPan == (math.Vec2{}) {
		return
	}

	offset := o.camera.Position.Sub(o.Target)
	distance := offset.Length()
	if distance == 0 {
		distance = o.MinDistance
		offset = math.V3(0, 0, distance)
	}

	yaw := math32.Atan2(offset.X, offset.Z)
	pitch := math32.Asin(clamp(offset.Y/distance, -1, 1))

	if o.pendingPan != (math.Vec2{}) {
		view := o.camera.ViewMatrix()
		right := math.V3(view[0], view[4], view[8])
		up := math.V3(view[1], view[5], view[9])
		scale := distance * o.PanSensitivity
		move := right.Scale(-o.pendingPan.X * scale).Add(up.Scale(o.pendingPan.Y * scale))
		o.Target = o.Target.Add(move)
	}

	yaw += o.pendingYaw
	pitch = clamp(pitch+o.pendingPitch, o.MinPitch, o.MaxPitch)
	distance = clamp(distance*o.pendingZoom, o.MinDistance, o.MaxDistance)

	sinP, cosP := math32.Sincos(pitch)
	sinY, cosY := math32.Sincos(yaw)
	o.camera.Position = o.Target.Add(math.V3(
		distance*cosP*sinY,
		distance*sinP,
		distance*cosP*cosY,
	))
	o.camera.LookAt(o.Target)

	o.pendingYaw, o.pendingPitch = 0, 0
	o.pendingZoom = 1
	o.pendingPan = math.Vec2{}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
