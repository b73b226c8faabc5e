package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/splitview/internal/config"
	"github.com/Faultbox/splitview/internal/engine/pointer"
	"github.com/Faultbox/splitview/internal/engine/scene"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/pkg/math"
)

type fakeDisplay struct {
	w, h  float32
	ratio float32
}

func (d *fakeDisplay) DisplaySize() (float32, float32) { return d.w, d.h }
func (d *fakeDisplay) PixelRatio() float32             { return d.ratio }

type renderCall struct {
	params   RenderParams
	scissor  [4]int32
	viewport [4]int32
	aspect   float32
}

type fakeTarget struct {
	sizes    [][2]int
	scissor  [4]int32
	viewport [4]int32
	testOn   bool
	log      []string
	renders  []renderCall
	failView string
}

func (f *fakeTarget) SetSize(w, h int) {
	f.sizes = append(f.sizes, [2]int{w, h})
	f.log = append(f.log, fmt.Sprintf("size %dx%d", w, h))
}

func (f *fakeTarget) SetScissor(x, y, w, h int32) { f.scissor = [4]int32{x, y, w, h} }

func (f *fakeTarget) SetViewport(x, y, w, h int32) { f.viewport = [4]int32{x, y, w, h} }

func (f *fakeTarget) SetScissorTest(enabled bool) {
	f.testOn = enabled
	f.log = append(f.log, fmt.Sprintf("scissor test %v", enabled))
}

func (f *fakeTarget) Render(_ *scene.Scene, p RenderParams) error {
	f.log = append(f.log, "render "+p.View)
	if !f.testOn {
		return errors.New("scissor test off")
	}
	f.renders = append(f.renders, renderCall{
		params:   p,
		scissor:  f.scissor,
		viewport: f.viewport,
		aspect:   p.Camera.Aspect,
	})
	if p.View == f.failView {
		return errors.New("draw failed")
	}
	return nil
}

type fakeHost struct {
	pending   func()
	requests  int
	maxFrames int
	ran       int
}

func (h *fakeHost) RequestFrame(fn func()) {
	h.pending = fn
	h.requests++
}

func (h *fakeHost) Run(ctx context.Context) error {
	for h.ran < h.maxFrames && ctx.Err() == nil {
		fn := h.pending
		if fn == nil {
			return nil
		}
		h.pending = nil
		h.ran++
		fn()
	}
	return nil
}

type fixture struct {
	display *fakeDisplay
	target  *fakeTarget
	host    *fakeHost
	stage   *Stage
	loop    *Loop
}

func newFixture(t *testing.T, w, h, ratio float32) *fixture {
	t.Helper()
	f := &fixture{
		display: &fakeDisplay{w: w, h: h, ratio: ratio},
		target:  &fakeTarget{},
		host:    &fakeHost{maxFrames: 1},
	}
	surface := viewport.NewSurface(f.display, f.target)

	st, err := BuildStage(context.Background(), config.Default(), surface, texture.NewLoader(nil))
	require.NoError(t, err)
	f.stage = st
	f.loop = NewLoop(f.host, f.target, surface, st.Scene, st.Views, st.Helper)
	return f
}

func TestTickSplitsSurface(t *testing.T) {
	f := newFixture(t, 800, 600, 1)

	require.NoError(t, f.loop.Tick())

	assert.Equal(t, [][2]int{{800, 600}}, f.target.sizes)
	require.Len(t, f.target.renders, 2)

	left, right := f.target.renders[0], f.target.renders[1]
	assert.Equal(t, "view1", left.params.View)
	assert.Equal(t, [4]int32{0, 0, 400, 600}, left.scissor)
	assert.Equal(t, left.scissor, left.viewport)
	assert.InDelta(t, 400.0/600.0, left.aspect, 1e-6)
	assert.False(t, left.params.HelperVisible)
	assert.Equal(t, [3]float32{0, 0, 0}, left.params.Background)

	assert.Equal(t, "view2", right.params.View)
	assert.Equal(t, [4]int32{400, 0, 400, 600}, right.scissor)
	assert.Equal(t, right.scissor, right.viewport)
	assert.True(t, right.params.HelperVisible)
	assert.Same(t, f.stage.Helper, right.params.Helper)
	assert.InDelta(t, 64.0/255.0, right.params.Background[2], 1e-6)

	assert.Equal(t, []string{
		"size 800x600",
		"scissor test true",
		"render view1",
		"render view2",
		"scissor test false",
	}, f.target.log)
}

func TestTickUsesPixelRatio(t *testing.T) {
	f := newFixture(t, 800, 600, 2)

	require.NoError(t, f.loop.Tick())

	assert.Equal(t, [][2]int{{1600, 1200}}, f.target.sizes)
	require.Len(t, f.target.renders, 2)
	assert.Equal(t, [4]int32{0, 0, 800, 1200}, f.target.renders[0].scissor)
	assert.Equal(t, [4]int32{800, 0, 800, 1200}, f.target.renders[1].scissor)
	// aspect is computed in points, not pixels
	assert.InDelta(t, 400.0/600.0, f.target.renders[0].aspect, 1e-6)
}

func TestTickResizesOnlyOnChange(t *testing.T) {
	f := newFixture(t, 800, 600, 1)

	require.NoError(t, f.loop.Tick())
	require.NoError(t, f.loop.Tick())
	assert.Len(t, f.target.sizes, 1)

	f.display.w = 1000
	require.NoError(t, f.loop.Tick())
	assert.Equal(t, [2]int{1000, 600}, f.target.sizes[1])
	last := f.target.renders[len(f.target.renders)-1]
	assert.Equal(t, [4]int32{500, 0, 500, 600}, last.scissor)
}

func TestTickSkipsOffSurfaceView(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	main := f.stage.Main.Camera()
	aspectBefore := main.Aspect

	f.loop.QueueLayout([]ViewLayout{
		{Name: "view1", Fraction: viewport.Rect{Left: 1.5, Width: 0.5, Height: 1}},
	})
	var info FrameInfo
	f.loop.OnFrame(func(fi FrameInfo) { info = fi })

	require.NoError(t, f.loop.Tick())

	require.Len(t, f.target.renders, 1)
	assert.Equal(t, "view2", f.target.renders[0].params.View)
	assert.Equal(t, aspectBefore, main.Aspect, "skipped view keeps its aspect")
	require.Len(t, info.Views, 2)
	assert.True(t, info.Views[0].Skipped)
	assert.False(t, info.Views[1].Skipped)
}

func TestQueueLayoutKeepsNewest(t *testing.T) {
	f := newFixture(t, 800, 600, 1)

	f.loop.QueueLayout([]ViewLayout{{Name: "view2", Fraction: viewport.Rect{Width: 0.1, Height: 1}}})
	f.loop.QueueLayout([]ViewLayout{{Name: "view2", Fraction: viewport.Rect{Left: 0.5, Width: 0.25, Height: 0.5}, Background: [3]float32{1, 0, 0}}})
	require.NoError(t, f.loop.Tick())

	right := f.target.renders[1]
	assert.Equal(t, [4]int32{400, 300, 200, 300}, right.scissor)
	assert.Equal(t, [3]float32{1, 0, 0}, right.params.Background)
}

func TestOverlappingViewsBothRender(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.loop.QueueLayout([]ViewLayout{
		{Name: "view1", Fraction: viewport.Rect{Width: 1, Height: 1}},
		{Name: "view2", Fraction: viewport.Rect{Left: 0.25, Top: 0.25, Width: 0.5, Height: 0.5}},
	})

	require.NoError(t, f.loop.Tick())

	require.Len(t, f.target.renders, 2)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, f.target.renders[0].scissor)
	assert.Equal(t, [4]int32{200, 150, 400, 300}, f.target.renders[1].scissor)
}

func TestRenderErrorDoesNotStopOtherViews(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.target.failView = "view1"
	var info FrameInfo
	f.loop.OnFrame(func(fi FrameInfo) { info = fi })

	err := f.loop.Tick()

	require.Error(t, err)
	assert.ErrorContains(t, err, "view1")
	assert.Len(t, f.target.renders, 2)
	assert.False(t, f.target.testOn, "scissor test is restored")
	assert.Error(t, info.Views[0].Err)
	assert.NoError(t, info.Views[1].Err)
}

func TestHelperTracksPanelEdits(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	main := f.stage.Main.Camera()

	near := f.stage.Panel.Fields()[1]
	assert.Equal(t, "near", near.Label())
	near.SetValue(50)
	assert.InDelta(t, 50, main.Near, 1e-4)
	assert.InDelta(t, 100, main.Far, 1e-4)

	require.NoError(t, f.loop.Tick())

	n1, ok := f.stage.Helper.Point("n1")
	require.True(t, ok)
	assert.InDelta(t, -50, main.ViewMatrix().TransformVec3(n1).Z, 0.05)
}

func TestRunIsBoundedByHost(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.host.maxFrames = 5

	require.NoError(t, f.loop.Run(context.Background()))

	assert.Equal(t, uint64(5), f.loop.Frames())
	assert.Len(t, f.target.renders, 10)
	assert.True(t, f.loop.Stopped())
}

func TestStopEndsScheduling(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.host.maxFrames = 100
	f.loop.OnFrame(func(fi FrameInfo) {
		if fi.Frame == 3 {
			f.loop.Stop()
		}
	})

	require.NoError(t, f.loop.Run(context.Background()))

	assert.Equal(t, uint64(3), f.loop.Frames())
	assert.Equal(t, 3, f.host.requests)
}

func TestCancelEndsScheduling(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.host.maxFrames = 100
	ctx, cancel := context.WithCancel(context.Background())
	f.loop.OnFrame(func(fi FrameInfo) {
		if fi.Frame == 2 {
			cancel()
		}
	})

	require.NoError(t, f.loop.Run(ctx))

	assert.Equal(t, uint64(2), f.loop.Frames())
	assert.True(t, f.loop.Stopped())
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	f.loop.Start()
	f.loop.Start()
	assert.Equal(t, 1, f.host.requests)
}

func TestDragOrbitsOnlyItsCamera(t *testing.T) {
	f := newFixture(t, 800, 600, 1)
	require.NoError(t, f.loop.Tick())

	main := f.stage.Main.Camera()
	overview := f.stage.Overview.Camera()
	mainBefore, overviewBefore := main.Position, overview.Position

	// drag starts in the left view and wanders into the right one
	f.stage.Router.Dispatch(pointer.Event{Kind: pointer.Down, Button: pointer.ButtonPrimary, Pos: math.Vec2{X: 100, Y: 300}})
	f.stage.Router.Dispatch(pointer.Event{Kind: pointer.Move, Pos: math.Vec2{X: 600, Y: 320}})
	f.stage.Router.Dispatch(pointer.Event{Kind: pointer.Up, Pos: math.Vec2{X: 600, Y: 320}})
	require.NoError(t, f.loop.Tick())

	assert.NotEqual(t, mainBefore, main.Position)
	assert.Equal(t, overviewBefore, overview.Position)
}
