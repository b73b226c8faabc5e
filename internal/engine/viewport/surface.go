package viewport

import (
	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/logger"
)

// Display reports the displayed size of the drawing surface.
type Display interface {
	// DisplaySize returns the surface size in points.
	DisplaySize() (width, height float32)
	// PixelRatio returns device pixels per point.
	PixelRatio() float32
}

// Resizer reallocates the backing buffers of the drawing surface.
type Resizer interface {
	SetSize(width, height int)
}

// Surface is the single shared drawing target. It keeps the backing pixel
// size in step with the displayed size.
type Surface struct {
	display Display
	resizer Resizer

	width, height float32 // displayed, in points
	ratio         float32

	backingW, backingH int
}

// NewSurface creates a surface. No resize happens until the first Reconcile.
func NewSurface(display Display, resizer Resizer) *Surface {
	return &Surface{display: display, resizer: resizer, ratio: 1}
}

// Reconcile reads the displayed size and, if the backing size no longer
// matches it, resizes the backend exactly once. It returns whether a resize
// happened; calling it again without a displayed-size change is a no-op.
func (s *Surface) Reconcile() bool {
	w, h := s.display.DisplaySize()
	ratio := s.display.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	s.width, s.height, s.ratio = w, h, ratio

	bw := int(w * ratio)
	bh := int(h * ratio)
	if bw == s.backingW && bh == s.backingH {
		return false
	}

	s.backingW, s.backingH = bw, bh
	s.resizer.SetSize(bw, bh)
	logger.Debug("surface resized",
		zap.Int("width", bw),
		zap.Int("height", bh),
		zap.Float32("pixelRatio", ratio),
	)
	return true
}

// Bounds returns the displayed rectangle in points, as of the last Reconcile.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// PixelRatio returns device pixels per point, as of the last Reconcile.
func (s *Surface) PixelRatio() float32 {
	return s.ratio
}

// BackingSize returns the backing buffer size in device pixels.
func (s *Surface) BackingSize() (int, int) {
	return s.backingW, s.backingH
}
