package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/splitview/internal/engine/camera"
	"github.com/Faultbox/splitview/pkg/math"
)

func trackedCamera() *camera.PerspectiveCamera {
	cam := camera.NewPerspectiveCamera(45, 2, 5, 100)
	cam.SetPosition(0, 30, 20)
	cam.LookAt(math.V3(0, 5, 0))
	return cam
}

func TestFrustumCornersLieOnPlanes(t *testing.T) {
	cam := trackedCamera()
	h := NewFrustumHelper(cam)
	view := cam.ViewMatrix()

	for _, name := range []string{"n1", "n2", "n3", "n4"} {
		p, ok := h.Point(name)
		require.True(t, ok)
		assert.InDelta(t, -5, view.TransformVec3(p).Z, 1e-2, name)
	}
	for _, name := range []string{"f1", "f2", "f3", "f4"} {
		p, _ := h.Point(name)
		assert.InDelta(t, -100, view.TransformVec3(p).Z, 0.5, name)
	}

	eye, _ := h.Point("p")
	assert.Equal(t, cam.Position, eye)
}

func TestFrustumNearRectangleMatchesAspect(t *testing.T) {
	h := NewFrustumHelper(trackedCamera())
	n1, _ := h.Point("n1")
	n2, _ := h.Point("n2")
	n3, _ := h.Point("n3")

	width := n1.Distance(n2)
	height := n1.Distance(n3)
	assert.InDelta(t, 2, width/height, 1e-3)
}

func TestFrustumRefreshFollowsCamera(t *testing.T) {
	cam := trackedCamera()
	h := NewFrustumHelper(cam)
	assert.Len(t, h.Vertices(), 50)
	before, _ := h.Point("f1")

	cam.Far = 50
	cam.UpdateProjectionMatrix()
	h.Refresh()

	after, _ := h.Point("f1")
	assert.NotEqual(t, before, after)
	assert.Len(t, h.Vertices(), 50)
	assert.InDelta(t, -50, cam.ViewMatrix().TransformVec3(after).Z, 0.2)
}

func TestPixelsToImageFlips(t *testing.T) {
	// 1x2: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := PixelsToImage(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))

	_, err = PixelsToImage(pixels, 2, 2)
	assert.Error(t, err)
}

func TestCropRegionUsesBottomUpOrigin(t *testing.T) {
	// 4x2 framebuffer, left half of the bottom row marked green
	pixels := make([]byte, 4*2*4)
	for x := 0; x < 2; x++ {
		copy(pixels[x*4:], []byte{0, 255, 0, 255})
	}
	img, err := PixelsToImage(pixels, 4, 2)
	require.NoError(t, err)

	crop := CropRegion(img, 0, 0, 2, 1)
	assert.Equal(t, 2, crop.Bounds().Dx())
	assert.Equal(t, 1, crop.Bounds().Dy())
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, crop.RGBAAt(1, 0))
}

func TestCaptureViewWritesPNG(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "splitview")

	pixels := make([]byte, 4*4*4)
	name, err := sc.CaptureView("overview", pixels, 4, 4, 2, 0, 2, 4)
	require.NoError(t, err)
	assert.True(t, strings.Contains(filepath.Base(name), "splitview_overview_"))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}
