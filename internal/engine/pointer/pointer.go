// Package pointer routes mouse and wheel input to the controller whose
// screen element the gesture started in.
package pointer

import (
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/pkg/math"
)

// Kind identifies a pointer event.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Wheel
)

// Button identifies a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Event is a pointer event in window points (top-left origin).
type Event struct {
	Kind   Kind
	Button Button
	Pos    math.Vec2
	// Delta is the movement since the previous event the handler received.
	// The router fills it for Move events.
	Delta math.Vec2
	// Scroll is the wheel delta, positive away from the user.
	Scroll float32
}

// Handler consumes pointer events.
type Handler interface {
	HandlePointer(Event)
}

type binding struct {
	element viewport.Element
	handler Handler
}

// Router delivers events to the handler bound to the element under the
// pointer. A drag stays with the handler it started on until the button is
// released, even if the pointer leaves the element.
type Router struct {
	bindings []binding
	captured Handler
	last     math.Vec2
	hasLast  bool
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Bind attaches handler to element. Later bindings win where elements overlap.
func (r *Router) Bind(element viewport.Element, handler Handler) {
	r.bindings = append(r.bindings, binding{element: element, handler: handler})
}

// Dispatch routes one event.
func (r *Router) Dispatch(ev Event) {
	if r.hasLast {
		ev.Delta = ev.Pos.Sub(r.last)
	}
	r.last = ev.Pos
	r.hasLast = true

	switch ev.Kind {
	case Down:
		h := r.hit(ev.Pos)
		if h == nil {
			return
		}
		r.captured = h
		h.HandlePointer(ev)
	case Move:
		if r.captured != nil {
			r.captured.HandlePointer(ev)
		}
	case Up:
		if r.captured != nil {
			r.captured.HandlePointer(ev)
			r.captured = nil
		}
	case Wheel:
		if h := r.hit(ev.Pos); h != nil {
			h.HandlePointer(ev)
		}
	}
}

// Captured reports whether a drag is in progress.
func (r *Router) Captured() bool {
	return r.captured != nil
}

func (r *Router) hit(pos math.Vec2) Handler {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		b := r.bindings[i]
		if b.element.Bounds().Contains(pos.X, pos.Y) {
			return b.handler
		}
	}
	return nil
}
