// Package ui provides ImGui-based user interface components.
package ui

import (
	"context"
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/splitview/internal/engine/input"
	"github.com/Faultbox/splitview/internal/logger"
)

// Backend wraps the ImGui SDL backend and acts as the frame host. Each
// backend frame fires the callback armed by RequestFrame, then draws the
// registered overlays on top.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32

	mouse    input.MouseTracker
	bindings input.Bindings
	overlays []func()
	pending  func()
}

// NewBackend creates a new ImGui backend.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		io := imgui.CurrentIO()
		io.SetIniFilename("")
	})

	b.backend.SetBgColor(imgui.NewVec4(0, 0, 0, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// SetBindings sets where pointer, panel and screenshot input goes.
func (b *Backend) SetBindings(bindings input.Bindings) {
	b.bindings = bindings
}

// AddOverlay registers an ImGui draw function run every frame after the
// scene.
func (b *Backend) AddOverlay(fn func()) {
	b.overlays = append(b.overlays, fn)
}

// RequestFrame arms fn for the next backend frame.
func (b *Backend) RequestFrame(fn func()) {
	b.pending = fn
}

// Run hands control to the backend until the window closes or ctx is done.
func (b *Backend) Run(ctx context.Context) error {
	b.backend.Run(func() {
		if ctx.Err() != nil || IsKeyPressed(imgui.KeyEscape) {
			b.backend.SetShouldClose(true)
			return
		}

		b.routeInput()

		if fn := b.pending; fn != nil {
			b.pending = nil
			fn()
		}
		for _, draw := range b.overlays {
			draw()
		}
	})
	logger.Info("imgui backend exited")
	return nil
}

// routeInput feeds mouse state to the pointer router unless an ImGui window
// is using the mouse.
func (b *Backend) routeInput() {
	if IsKeyPressed(imgui.KeyF12) {
		b.bindings.Apply(input.Event{Action: input.ActionScreenshot})
	}

	io := imgui.CurrentIO()
	pos := imgui.MousePos()
	var buttons uint32
	if imgui.IsMouseDown(imgui.MouseButtonLeft) {
		buttons |= input.ButtonMask(sdl.BUTTON_LEFT)
	}
	if imgui.IsMouseDown(imgui.MouseButtonRight) {
		buttons |= input.ButtonMask(sdl.BUTTON_RIGHT)
	}
	if imgui.IsMouseDown(imgui.MouseButtonMiddle) {
		buttons |= input.ButtonMask(sdl.BUTTON_MIDDLE)
	}

	if io.WantCaptureMouse() && (b.bindings.Router == nil || !b.bindings.Router.Captured()) {
		// Track state so releasing over the panel does not replay as a press.
		b.mouse.Update(pos.X, pos.Y, buttons, 0)
		return
	}
	for _, ev := range b.mouse.Update(pos.X, pos.Y, buttons, io.MouseWheel()) {
		b.bindings.Apply(input.Event{Action: input.ActionPointer, Pointer: ev})
	}
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetWindowSize returns the requested window size.
func (b *Backend) GetWindowSize() (int32, int32) {
	return b.width, b.height
}

// DisplaySize returns the window size in points for the current frame.
func (b *Backend) DisplaySize() (float32, float32) {
	size := imgui.CurrentIO().DisplaySize()
	return size.X, size.Y
}

// PixelRatio returns framebuffer pixels per point for the current frame.
func (b *Backend) PixelRatio() float32 {
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	if scale.X <= 0 {
		return 1
	}
	return scale.X
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
