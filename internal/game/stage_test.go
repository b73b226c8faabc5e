package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/splitview/internal/config"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/pkg/math"
)

func buildDefault(t *testing.T, cfg *config.Config) (*Stage, error) {
	t.Helper()
	surface := viewport.NewSurface(&fakeDisplay{w: 800, h: 600, ratio: 1}, &fakeTarget{})
	return BuildStage(context.Background(), cfg, surface, texture.NewLoader(nil))
}

func TestBuildStageScene(t *testing.T) {
	st, err := buildDefault(t, config.Default())
	require.NoError(t, err)

	assert.Len(t, st.Scene.Objects, 6)
	assert.Len(t, st.Scene.Lights, 3)

	cube, ok := st.Scene.Find("cube")
	require.True(t, ok)
	assert.Equal(t, math.V3(5, 2, 0), cube.Position)

	sphere, ok := st.Scene.Find("sphere")
	require.True(t, ok)
	assert.Equal(t, math.V3(-4, 5, 0), sphere.Position)

	floor, ok := st.Scene.Find("floor")
	require.True(t, ok)
	assert.Equal(t, [2]float32{30, 30}, floor.Material.Repeat)
	require.NotNil(t, floor.Material.Texture)
	_, done, err := floor.Material.Texture.Result()
	assert.True(t, done, "procedural checker is ready immediately")
	assert.NoError(t, err)
}

func TestBuildStageCameras(t *testing.T) {
	st, err := buildDefault(t, config.Default())
	require.NoError(t, err)

	main := st.Main.Camera()
	assert.Equal(t, float32(45), main.FOV)
	assert.Equal(t, float32(5), main.Near)
	assert.Equal(t, float32(100), main.Far)
	assert.Equal(t, math.V3(0, 30, 20), main.Position)

	overview := st.Overview.Camera()
	assert.Equal(t, float32(60), overview.FOV)
	assert.Equal(t, math.V3(40, 10, 30), overview.Position)

	assert.Same(t, main, st.Helper.Camera())
	assert.Len(t, st.Orbits, 2)

	require.Len(t, st.Views, 2)
	assert.Same(t, st.Main, st.Views[0].Rig)
	assert.Same(t, st.Overview, st.Views[1].Rig)
}

func TestBuildStagePanel(t *testing.T) {
	st, err := buildDefault(t, config.Default())
	require.NoError(t, err)

	fields := st.Panel.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "fov", fields[0].Label())
	assert.Equal(t, "near", fields[1].Label())
	assert.Equal(t, "far", fields[2].Label())

	lo, hi := fields[0].Range()
	assert.Equal(t, float32(1), lo)
	assert.Equal(t, float32(180), hi)

	// edits rebuild the projection right away
	main := st.Main.Camera()
	before := main.ProjectionMatrix()
	fields[0].SetValue(90)
	assert.NotEqual(t, before, main.ProjectionMatrix())

	fields[2].SetValue(1)
	assert.InDelta(t, 5.1, main.Far, 1e-4)
}

func TestBuildStageRejectsUnknownCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Views[0].Camera = "drone"
	_, err := buildDefault(t, cfg)
	assert.ErrorContains(t, err, "drone")
}

func TestBuildStageSharedCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Views[1].Camera = config.CameraMain

	st, err := buildDefault(t, cfg)
	require.NoError(t, err)
	assert.Same(t, st.Views[0].Rig, st.Views[1].Rig)
	assert.Len(t, st.Orbits, 1)
	assert.NotNil(t, st.Overview)
}

func TestLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Views[0].Width = 0.3

	layout, err := Layout(cfg)
	require.NoError(t, err)
	require.Len(t, layout, 2)
	assert.Equal(t, viewport.Rect{Width: 0.3, Height: 1}, layout[0].Fraction)

	cfg.Views[1].Background = "nope"
	_, err = Layout(cfg)
	assert.Error(t, err)
}
