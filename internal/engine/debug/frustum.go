// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/splitview/internal/engine/camera"
	"github.com/Faultbox/splitview/pkg/math"
)

// LineVertex is one end of a helper line segment.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// Helper line colors.
var (
	colorFrustum = [3]float32{1, 0.667, 0}
	colorCone    = [3]float32{1, 0, 0}
	colorUp      = [3]float32{0, 0.667, 1}
	colorTarget  = [3]float32{1, 1, 1}
	colorCross   = [3]float32{0.2, 0.2, 0.2}
)

// Frustum corners and markers in normalized device coordinates.
var ndcPoints = map[string]math.Vec3{
	"n1": {X: -1, Y: -1, Z: -1}, "n2": {X: 1, Y: -1, Z: -1},
	"n3": {X: -1, Y: 1, Z: -1}, "n4": {X: 1, Y: 1, Z: -1},
	"f1": {X: -1, Y: -1, Z: 1}, "f2": {X: 1, Y: -1, Z: 1},
	"f3": {X: -1, Y: 1, Z: 1}, "f4": {X: 1, Y: 1, Z: 1},

	"u1": {X: -0.7, Y: 1.1, Z: -1}, "u2": {X: 0.7, Y: 1.1, Z: -1},
	"u3": {X: 0, Y: 2, Z: -1},

	"c": {X: 0, Y: 0, Z: -1}, "t": {X: 0, Y: 0, Z: 1},

	"cn1": {X: -1, Y: 0, Z: -1}, "cn2": {X: 1, Y: 0, Z: -1},
	"cn3": {X: 0, Y: -1, Z: -1}, "cn4": {X: 0, Y: 1, Z: -1},
	"cf1": {X: -1, Y: 0, Z: 1}, "cf2": {X: 1, Y: 0, Z: 1},
	"cf3": {X: 0, Y: -1, Z: 1}, "cf4": {X: 0, Y: 1, Z: 1},
}

type segment struct {
	a, b  string
	color [3]float32
}

// "p" is the eye position.
var segments = []segment{
	{"n1", "n2", colorFrustum}, {"n2", "n4", colorFrustum},
	{"n4", "n3", colorFrustum}, {"n3", "n1", colorFrustum},

	{"f1", "f2", colorFrustum}, {"f2", "f4", colorFrustum},
	{"f4", "f3", colorFrustum}, {"f3", "f1", colorFrustum},

	{"n1", "f1", colorFrustum}, {"n2", "f2", colorFrustum},
	{"n3", "f3", colorFrustum}, {"n4", "f4", colorFrustum},

	{"p", "n1", colorCone}, {"p", "n2", colorCone},
	{"p", "n3", colorCone}, {"p", "n4", colorCone},

	{"u1", "u2", colorUp}, {"u2", "u3", colorUp}, {"u3", "u1", colorUp},

	{"c", "t", colorTarget}, {"p", "c", colorCone},

	{"cn1", "cn2", colorCross}, {"cn3", "cn4", colorCross},
	{"cf1", "cf2", colorCross}, {"cf3", "cf4", colorCross},
}

// FrustumHelper draws the view volume of a tracked camera as lines. It does
// not own the camera; Refresh must be called after the camera's pose or
// projection changes.
type FrustumHelper struct {
	camera   *camera.PerspectiveCamera
	points   map[string]math.Vec3
	vertices []LineVertex
}

// NewFrustumHelper creates a helper tracking cam.
func NewFrustumHelper(cam *camera.PerspectiveCamera) *FrustumHelper {
	h := &FrustumHelper{
		camera:   cam,
		points:   make(map[string]math.Vec3, len(ndcPoints)+1),
		vertices: make([]LineVertex, 0, len(segments)*2),
	}
	h.Refresh()
	return h
}

// Camera returns the tracked camera.
func (h *FrustumHelper) Camera() *camera.PerspectiveCamera {
	return h.camera
}

// Refresh recomputes the world-space geometry from the tracked camera.
func (h *FrustumHelper) Refresh() {
	inv := h.camera.ViewProjection().Inverse()
	for name, ndc := range ndcPoints {
		h.points[name] = inv.Unproject(ndc)
	}
	h.points["p"] = h.camera.Position

	h.vertices = h.vertices[:0]
	for _, s := range segments {
		a, b := h.points[s.a], h.points[s.b]
		h.vertices = append(h.vertices,
			LineVertex{a.X, a.Y, a.Z, s.color[0], s.color[1], s.color[2]},
			LineVertex{b.X, b.Y, b.Z, s.color[0], s.color[1], s.color[2]},
		)
	}
}

// Point returns a named helper point in world space ("n1".."n4" near
// corners, "f1".."f4" far corners, "p" eye, "c"/"t" near/far centres).
func (h *FrustumHelper) Point(name string) (math.Vec3, bool) {
	p, ok := h.points[name]
	return p, ok
}

// Vertices returns the line list built by the last Refresh.
func (h *FrustumHelper) Vertices() []LineVertex {
	return h.vertices
}
