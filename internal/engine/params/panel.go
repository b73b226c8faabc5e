package params

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/logger"
)

// Field is one slider row of the panel.
type Field struct {
	label    string
	name     string
	prop     Property
	min, max float32
	step     float32
}

// Name overrides the display name. It returns f for chaining.
func (f *Field) Name(name string) *Field {
	f.name = name
	return f
}

// Label returns the display name.
func (f *Field) Label() string {
	if f.name != "" {
		return f.name
	}
	return f.label
}

// Range returns the slider bounds.
func (f *Field) Range() (min, max float32) { return f.min, f.max }

// Step returns the slider increment; 0 means continuous.
func (f *Field) Step() float32 { return f.step }

// Value reads the bound property.
func (f *Field) Value() float32 { return f.prop.Get() }

// SetValue clamps v into the field's range, snaps it to the step grid and
// writes it through the bound property.
func (f *Field) SetValue(v float32) {
	v = max(f.min, min(f.max, v))
	if f.step > 0 {
		v = f.min + math32.Round((v-f.min)/f.step)*f.step
		v = min(f.max, v)
	}
	f.prop.Set(v)
	logger.Debug("panel value changed",
		zap.String("field", f.Label()),
		zap.Float32("value", v),
	)
}

// Panel is an ordered set of fields with a keyboard focus. onChange runs
// after every write so dependents (projection matrices) can refresh.
type Panel struct {
	fields   []*Field
	focus    int
	onChange func()
}

// NewPanel creates an empty panel. onChange may be nil.
func NewPanel(onChange func()) *Panel {
	return &Panel{onChange: onChange}
}

// Add appends a field bound to prop.
func (p *Panel) Add(label string, prop Property, min, max, step float32) *Field {
	f := &Field{
		label: label,
		prop:  p.notify(prop),
		min:   min,
		max:   max,
		step:  step,
	}
	p.fields = append(p.fields, f)
	return f
}

// Fields returns the fields in display order.
func (p *Panel) Fields() []*Field { return p.fields }

// Focused returns the field keyboard input goes to, or nil if empty.
func (p *Panel) Focused() *Field {
	if len(p.fields) == 0 {
		return nil
	}
	return p.fields[p.focus]
}

// FocusNext moves keyboard focus to the next field, wrapping around.
func (p *Panel) FocusNext() {
	if len(p.fields) == 0 {
		return
	}
	p.focus = (p.focus + 1) % len(p.fields)
}

// Nudge moves the focused field by steps increments. Continuous fields move
// by one unit per step.
func (p *Panel) Nudge(steps int) {
	f := p.Focused()
	if f == nil {
		return
	}
	inc := f.step
	if inc <= 0 {
		inc = 1
	}
	f.SetValue(f.Value() + float32(steps)*inc)
}

func (p *Panel) notify(prop Property) Property {
	return FuncProperty{
		GetFunc: prop.Get,
		SetFunc: func(v float32) {
			prop.Set(v)
			if p.onChange != nil {
				p.onChange()
			}
		},
	}
}
