// Package scene holds the static content both views draw: meshes with
// materials placed in the world, and the lights that shade them. A Scene is
// built once and only read afterwards.
package scene

import (
	"github.com/Faultbox/splitview/internal/engine/lighting"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/pkg/math"
)

// Material describes how an object is shaded.
type Material struct {
	Color [3]float32

	// Texture is optional; the renderer binds a white fallback until the
	// handle has finished loading, or forever if it failed.
	Texture *texture.Handle
	// Repeat scales texture coordinates; the texture wraps.
	Repeat [2]float32

	DoubleSided bool
}

// Object is a mesh placed in the world.
type Object struct {
	Name     string
	Mesh     *Mesh
	Material Material

	Position math.Vec3
	Rotation math.Vec3 // Euler angles in radians, applied X then Y
}

// ModelMatrix returns the object-to-world transform.
func (o *Object) ModelMatrix() math.Mat4 {
	m := math.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	if o.Rotation.X != 0 {
		m = m.Mul(math.RotateX(o.Rotation.X))
	}
	if o.Rotation.Y != 0 {
		m = m.Mul(math.RotateY(o.Rotation.Y))
	}
	return m
}

// Scene is the set of objects and lights shared by every view.
type Scene struct {
	Objects []*Object
	Lights  []lighting.Directional
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends an object and returns it.
func (s *Scene) Add(o *Object) *Object {
	s.Objects = append(s.Objects, o)
	return o
}

// AddLight appends a light.
func (s *Scene) AddLight(l lighting.Directional) {
	s.Lights = append(s.Lights, l)
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (*Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}
