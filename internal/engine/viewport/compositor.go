package viewport

import "github.com/chewxy/math32"

// ScissorTarget is the part of the renderer the compositor drives.
// Arguments are device pixels with a bottom-up Y axis.
type ScissorTarget interface {
	SetScissor(x, y, width, height int32)
	SetViewport(x, y, width, height int32)
}

// Compositor applies view regions to the shared surface.
type Compositor struct {
	target  ScissorTarget
	surface *Surface
}

// NewCompositor creates a compositor for target, scaling regions by the
// surface's pixel ratio.
func NewCompositor(target ScissorTarget, surface *Surface) *Compositor {
	return &Compositor{target: target, surface: surface}
}

// ApplyRegion sets the clip rectangle and the draw rectangle to r.
// Both are always set together.
func (c *Compositor) ApplyRegion(r Region) {
	x, y, w, h := c.DeviceRect(r)
	c.target.SetScissor(x, y, w, h)
	c.target.SetViewport(x, y, w, h)
}

// DeviceRect converts r from points to floored device pixels.
func (c *Compositor) DeviceRect(r Region) (x, y, w, h int32) {
	ratio := c.surface.PixelRatio()
	return int32(math32.Floor(r.Left * ratio)),
		int32(math32.Floor(r.Bottom * ratio)),
		int32(math32.Floor(r.Width * ratio)),
		int32(math32.Floor(r.Height * ratio))
}
