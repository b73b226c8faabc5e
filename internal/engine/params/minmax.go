// Package params holds the editable camera parameters: properties, the
// coupled near/far constraint, and the panel that edits them.
package params

// Property is a named numeric value that can be read and written.
type Property interface {
	Get() float32
	Set(v float32)
}

// PointerProperty exposes a float32 field as a Property.
type PointerProperty struct {
	P *float32
}

// Get implements Property.
func (p PointerProperty) Get() float32 { return *p.P }

// Set implements Property.
func (p PointerProperty) Set(v float32) { *p.P = v }

// FuncProperty adapts a getter/setter pair.
type FuncProperty struct {
	GetFunc func() float32
	SetFunc func(float32)
}

// Get implements Property.
func (p FuncProperty) Get() float32 { return p.GetFunc() }

// Set implements Property.
func (p FuncProperty) Set(v float32) { p.SetFunc(v) }

// MinMax couples two properties so that max >= min + gap after every write
// through it. Writes to min push max up; writes to max re-assert min, which
// pushes max back up if it was set too low. Min is never moved.
type MinMax struct {
	min, max Property
	gap      float32
}

// NewMinMax creates the constraint. It does not touch the current values.
func NewMinMax(min, max Property, gap float32) *MinMax {
	return &MinMax{min: min, max: max, gap: gap}
}

// Gap returns the minimum separation.
func (m *MinMax) Gap() float32 { return m.gap }

// Min returns the current lower value.
func (m *MinMax) Min() float32 { return m.min.Get() }

// Max returns the current upper value.
func (m *MinMax) Max() float32 { return m.max.Get() }

// SetMin writes the lower value and raises the upper one if needed.
func (m *MinMax) SetMin(v float32) {
	m.min.Set(v)
	m.enforce()
}

// SetMax writes the upper value, then re-asserts the lower one.
func (m *MinMax) SetMax(v float32) {
	m.max.Set(v)
	m.SetMin(m.Min())
}

func (m *MinMax) enforce() {
	m.max.Set(max(m.max.Get(), m.min.Get()+m.gap))
}

// MinProperty returns a Property whose writes go through SetMin.
func (m *MinMax) MinProperty() Property {
	return FuncProperty{GetFunc: m.Min, SetFunc: m.SetMin}
}

// MaxProperty returns a Property whose writes go through SetMax.
func (m *MinMax) MaxProperty() Property {
	return FuncProperty{GetFunc: m.Max, SetFunc: m.SetMax}
}
