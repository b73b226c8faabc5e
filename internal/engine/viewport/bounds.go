// Package viewport maps screen elements onto sub-rectangles of the shared
// drawing surface and applies them as scissor/viewport state.
package viewport

// Rect is a screen-space rectangle in points with a top-left origin,
// the same convention as an element's bounding box.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// Right returns the right edge.
func (r Rect) Right() float32 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float32 { return r.Top + r.Height }

// Region is the part of the surface a view draws into, in points with
// a bottom-up Y axis (Bottom is the distance from the surface's lower edge).
type Region struct {
	Left, Bottom  float32
	Width, Height float32
}

// Empty reports whether the region has no drawable area.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Aspect returns width / height. Callers must check Empty first.
func (r Region) Aspect() float32 {
	return r.Width / r.Height
}

// ComputeRegion intersects an element's bounds with the surface bounds and
// flips the result into bottom-up render coordinates. Width and height are
// clamped into [0, surface dimension]; an element lying outside the surface
// yields an empty region.
func ComputeRegion(surface, elem Rect) Region {
	right := min(elem.Right(), surface.Right()) - surface.Left
	left := max(0, elem.Left-surface.Left)
	bottom := min(elem.Bottom(), surface.Bottom()) - surface.Top
	top := max(0, elem.Top-surface.Top)

	width := max(0, min(surface.Width, right-left))
	height := max(0, min(surface.Height, bottom-top))

	return Region{
		Left:   left,
		Bottom: surface.Height - bottom,
		Width:  width,
		Height: height,
	}
}
