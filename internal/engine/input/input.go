// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/splitview/internal/engine/params"
	"github.com/Faultbox/splitview/internal/engine/pointer"
	"github.com/Faultbox/splitview/pkg/math"
)

// Action is what a processed event asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPointer
	ActionFocusNext
	ActionIncrease
	ActionDecrease
	ActionScreenshot
)

// Event represents a processed input event.
type Event struct {
	Action  Action
	Pointer pointer.Event // set for ActionPointer
}

// Translator converts SDL events into viewer events. It remembers the last
// mouse position because SDL wheel events carry none.
type Translator struct {
	pos math.Vec2
}

// Translate converts one SDL event. The second result is false for events
// the viewer ignores.
func (t *Translator) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Action: ActionQuit}, true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return Event{}, false
		}
		return translateKey(e.Keysym.Scancode, e.Repeat != 0)

	case *sdl.MouseMotionEvent:
		t.pos = math.Vec2{X: float32(e.X), Y: float32(e.Y)}
		return pointerEvent(pointer.Event{Kind: pointer.Move, Pos: t.pos}), true

	case *sdl.MouseButtonEvent:
		t.pos = math.Vec2{X: float32(e.X), Y: float32(e.Y)}
		kind := pointer.Down
		if e.Type == sdl.MOUSEBUTTONUP {
			kind = pointer.Up
		}
		return pointerEvent(pointer.Event{Kind: kind, Button: button(e.Button), Pos: t.pos}), true

	case *sdl.MouseWheelEvent:
		scroll := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			scroll = -scroll
		}
		if scroll == 0 {
			return Event{}, false
		}
		return pointerEvent(pointer.Event{Kind: pointer.Wheel, Pos: t.pos, Scroll: scroll}), true
	}
	return Event{}, false
}

func translateKey(code sdl.Scancode, repeat bool) (Event, bool) {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return Event{Action: ActionQuit}, !repeat
	case sdl.SCANCODE_TAB:
		return Event{Action: ActionFocusNext}, !repeat
	case sdl.SCANCODE_F12:
		return Event{Action: ActionScreenshot}, !repeat
	case sdl.SCANCODE_UP, sdl.SCANCODE_RIGHT:
		return Event{Action: ActionIncrease}, true
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_LEFT:
		return Event{Action: ActionDecrease}, true
	}
	return Event{}, false
}

func pointerEvent(p pointer.Event) Event {
	return Event{Action: ActionPointer, Pointer: p}
}

func button(b uint8) pointer.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return pointer.ButtonPrimary
	case sdl.BUTTON_RIGHT:
		return pointer.ButtonSecondary
	case sdl.BUTTON_MIDDLE:
		return pointer.ButtonMiddle
	}
	return pointer.ButtonNone
}

// Input handles all input processing.
type Input struct {
	translator Translator
	events     []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := i.translator.Translate(event)
		if !ok {
			continue
		}
		if ev.Action == ActionQuit {
			quit = true
		}
		i.events = append(i.events, ev)
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Bindings routes viewer events to their consumers. Nil members are skipped.
type Bindings struct {
	Router     *pointer.Router
	Panel      *params.Panel
	Screenshot func()
}

// Apply delivers one event.
func (b Bindings) Apply(ev Event) {
	switch ev.Action {
	case ActionPointer:
		if b.Router != nil {
			b.Router.Dispatch(ev.Pointer)
		}
	case ActionFocusNext:
		if b.Panel != nil {
			b.Panel.FocusNext()
		}
	case ActionIncrease:
		if b.Panel != nil {
			b.Panel.Nudge(1)
		}
	case ActionDecrease:
		if b.Panel != nil {
			b.Panel.Nudge(-1)
		}
	case ActionScreenshot:
		if b.Screenshot != nil {
			b.Screenshot()
		}
	}
}

// MouseTracker turns polled mouse state into pointer events. Frontends that
// only see the current button mask each frame use it to recover edges.
type MouseTracker struct {
	pos     math.Vec2
	buttons uint32
	started bool
}

// Update compares the polled state with the previous one and returns the
// events that explain the difference: button releases first, then movement,
// then presses, then the wheel.
func (m *MouseTracker) Update(x, y float32, buttons uint32, wheel float32) []pointer.Event {
	pos := math.Vec2{X: x, Y: y}
	var events []pointer.Event

	prev := m.buttons
	for _, b := range []uint8{sdl.BUTTON_LEFT, sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT} {
		mask := ButtonMask(b)
		if prev&mask != 0 && buttons&mask == 0 {
			events = append(events, pointer.Event{Kind: pointer.Up, Button: button(b), Pos: pos})
		}
	}
	if !m.started || pos != m.pos {
		events = append(events, pointer.Event{Kind: pointer.Move, Pos: pos})
	}
	for _, b := range []uint8{sdl.BUTTON_LEFT, sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT} {
		mask := ButtonMask(b)
		if prev&mask == 0 && buttons&mask != 0 {
			events = append(events, pointer.Event{Kind: pointer.Down, Button: button(b), Pos: pos})
		}
	}
	if wheel != 0 {
		events = append(events, pointer.Event{Kind: pointer.Wheel, Pos: pos, Scroll: wheel})
	}

	m.pos = pos
	m.buttons = buttons
	m.started = true
	return events
}

// ButtonMask returns the state-mask bit of an SDL button.
func ButtonMask(b uint8) uint32 {
	return 1 << (b - 1)
}
