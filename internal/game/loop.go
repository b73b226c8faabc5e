// Package game drives the viewer: it builds the stage and runs the per-frame
// loop that draws every view into its own region of the shared surface.
package game

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/engine/camera"
	"github.com/Faultbox/splitview/internal/engine/debug"
	"github.com/Faultbox/splitview/internal/engine/scene"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/internal/logger"
)

// Host is the platform tick source. RequestFrame arms a one-shot callback
// for the next display refresh; Run pumps platform events and fires armed
// callbacks until ctx is done or the window closes.
type Host interface {
	RequestFrame(fn func())
	Run(ctx context.Context) error
}

// Target is the renderer the loop draws through.
type Target interface {
	viewport.Resizer
	viewport.ScissorTarget
	SetScissorTest(enabled bool)
	Render(s *scene.Scene, p RenderParams) error
}

// RenderParams carries everything that differs between the views of one
// frame. The scene itself is never mutated per view.
type RenderParams struct {
	View   string
	Camera *camera.PerspectiveCamera
	Region viewport.Region

	// Helper is drawn only when HelperVisible is set.
	Helper        *debug.FrustumHelper
	HelperVisible bool

	Background [3]float32
}

// View is one camera drawn over one screen element.
type View struct {
	Name       string
	Element    viewport.Element
	Rig        *camera.Rig
	Background [3]float32
}

// ViewLayout is a replacement placement for a named view.
type ViewLayout struct {
	Name       string
	Fraction   viewport.Rect
	Background [3]float32
}

// ViewFrame records what happened to one view in a tick.
type ViewFrame struct {
	Name    string
	Region  viewport.Region
	Skipped bool
	Err     error
}

// FrameInfo is passed to frame hooks after every tick.
type FrameInfo struct {
	Frame uint64
	Views []ViewFrame
}

// Loop renders all views once per host frame.
type Loop struct {
	host       Host
	target     Target
	surface    *viewport.Surface
	compositor *viewport.Compositor
	scene      *scene.Scene
	views      []*View
	helper     *debug.FrustumHelper

	layouts chan []ViewLayout

	hooksMu sync.Mutex
	hooks   []func(FrameInfo)

	started atomic.Bool
	stopped atomic.Bool
	frames  atomic.Uint64
}

// NewLoop creates a loop. helper may be nil.
func NewLoop(host Host, target Target, surface *viewport.Surface, s *scene.Scene, views []*View, helper *debug.FrustumHelper) *Loop {
	return &Loop{
		host:       host,
		target:     target,
		surface:    surface,
		compositor: viewport.NewCompositor(target, surface),
		scene:      s,
		views:      views,
		helper:     helper,
		layouts:    make(chan []ViewLayout, 1),
	}
}

// Views returns the views in render order.
func (l *Loop) Views() []*View {
	return l.views
}

// Frames returns the number of completed ticks.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// OnFrame registers a hook run on the render thread after each tick.
func (l *Loop) OnFrame(fn func(FrameInfo)) {
	l.hooksMu.Lock()
	l.hooks = append(l.hooks, fn)
	l.hooksMu.Unlock()
}

// QueueLayout schedules new view placements for the start of the next tick.
// A layout still pending is replaced. Safe to call from any goroutine.
func (l *Loop) QueueLayout(layout []ViewLayout) {
	for {
		select {
		case l.layouts <- layout:
			return
		default:
		}
		select {
		case <-l.layouts:
		default:
		}
	}
}

// Start arms the first frame. Calling it again has no effect.
func (l *Loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	logger.Info("render loop started", zap.Int("views", len(l.views)))
	l.host.RequestFrame(l.frame)
}

// Stop prevents any further frame from being requested. The tick in flight,
// if any, completes.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		logger.Info("render loop stopped", zap.Uint64("frames", l.frames.Load()))
	}
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

// Run starts the loop and hands control to the host until ctx is done or
// the host exits. Cancelling ctx stops the loop.
func (l *Loop) Run(ctx context.Context) error {
	release := context.AfterFunc(ctx, l.Stop)
	defer release()
	defer l.Stop()

	l.Start()
	if err := l.host.Run(ctx); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	return nil
}

func (l *Loop) frame() {
	if l.stopped.Load() {
		return
	}
	if err := l.Tick(); err != nil {
		logger.Frame().Warn("frame rendered with errors", zap.Error(err))
	}
	if !l.stopped.Load() {
		l.host.RequestFrame(l.frame)
	}
}

// Tick renders one frame. Errors from individual views are collected; the
// remaining views are still drawn.
func (l *Loop) Tick() error {
	l.applyPendingLayout()

	l.surface.Reconcile()

	for _, v := range l.views {
		v.Rig.ApplyControllerUpdate()
	}

	info := FrameInfo{
		Frame: l.frames.Load() + 1,
		Views: make([]ViewFrame, 0, len(l.views)),
	}

	var errs error
	l.target.SetScissorTest(true)
	surface := l.surface.Bounds()
	for _, v := range l.views {
		vf := ViewFrame{Name: v.Name, Region: viewport.ComputeRegion(surface, v.Element.Bounds())}
		if vf.Region.Empty() {
			vf.Skipped = true
			info.Views = append(info.Views, vf)
			logger.Frame().Debug("view skipped", zap.String("view", v.Name))
			continue
		}

		l.compositor.ApplyRegion(vf.Region)
		v.Rig.SyncAspect(vf.Region)

		params := RenderParams{
			View:       v.Name,
			Camera:     v.Rig.Camera(),
			Region:     vf.Region,
			Background: v.Background,
		}
		if l.helper != nil {
			l.helper.Refresh()
			params.Helper = l.helper
			params.HelperVisible = v.Rig.Camera() != l.helper.Camera()
		}

		if err := l.target.Render(l.scene, params); err != nil {
			vf.Err = err
			errs = multierr.Append(errs, fmt.Errorf("view %s: %w", v.Name, err))
		}
		info.Views = append(info.Views, vf)
	}
	l.target.SetScissorTest(false)

	l.frames.Add(1)
	l.runHooks(info)
	return errs
}

func (l *Loop) runHooks(info FrameInfo) {
	l.hooksMu.Lock()
	hooks := l.hooks
	l.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(info)
	}
}

func (l *Loop) applyPendingLayout() {
	var layout []ViewLayout
	select {
	case layout = <-l.layouts:
	default:
		return
	}

	for _, vl := range layout {
		for _, v := range l.views {
			if v.Name != vl.Name {
				continue
			}
			v.Background = vl.Background
			if le, ok := v.Element.(*viewport.LayoutElement); ok {
				le.SetFraction(vl.Fraction)
			}
			logger.Debug("view layout updated",
				zap.String("view", v.Name),
				zap.Float32("left", vl.Fraction.Left),
				zap.Float32("width", vl.Fraction.Width),
			)
		}
	}
}
