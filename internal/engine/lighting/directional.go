// Package lighting provides directional light support for scene rendering.
package lighting

import (
	"github.com/Faultbox/splitview/pkg/math"
)

// MaxDirectionalLights is the maximum number of directional lights supported
// in shaders.
const MaxDirectionalLights = 4

// Directional is a light infinitely far away shining from Position toward
// Target. Only the direction between the two matters.
type Directional struct {
	Position  math.Vec3
	Target    math.Vec3
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// NewDirectional creates a light from position toward target.
func NewDirectional(color [3]float32, intensity float32, position, target math.Vec3) Directional {
	return Directional{
		Position:  position,
		Target:    target,
		Color:     color,
		Intensity: intensity,
	}
}

// Direction returns the normalized vector pointing from the surface toward
// the light, as shaders expect it.
func (d Directional) Direction() math.Vec3 {
	return d.Position.Sub(d.Target).Normalize()
}

// DirectionalBuffer holds lights for GPU upload.
type DirectionalBuffer struct {
	Lights []Directional
	Count  int
}

// NewDirectionalBuffer creates an empty light buffer.
func NewDirectionalBuffer() *DirectionalBuffer {
	return &DirectionalBuffer{
		Lights: make([]Directional, 0, MaxDirectionalLights),
	}
}

// Clear removes all lights from the buffer.
func (b *DirectionalBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxDirectionalLights if necessary.
func (b *DirectionalBuffer) SetLights(lights []Directional) {
	b.Clear()
	count := min(len(lights), MaxDirectionalLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// GetDirections returns directions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *DirectionalBuffer) GetDirections() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, light := range b.Lights {
		d := light.Direction()
		result[i*3+0] = d.X
		result[i*3+1] = d.Y
		result[i*3+2] = d.Z
	}
	return result
}

// GetColors returns colors premultiplied by intensity.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *DirectionalBuffer) GetColors() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}
