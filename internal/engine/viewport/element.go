package viewport

// Element is anything occupying a rectangle of the window: the stand-in for
// the page elements each view is laid over.
type Element interface {
	Bounds() Rect
}

// FixedElement has constant bounds in points.
type FixedElement Rect

// Bounds implements Element.
func (e FixedElement) Bounds() Rect { return Rect(e) }

// LayoutElement places itself as fractions of the surface's displayed size,
// so it follows window resizes. Fractions outside [0,1] are allowed and put
// the element partly or fully off the surface.
type LayoutElement struct {
	surface  *Surface
	fraction Rect
}

// NewLayoutElement creates an element covering fraction of surface.
func NewLayoutElement(surface *Surface, fraction Rect) *LayoutElement {
	return &LayoutElement{surface: surface, fraction: fraction}
}

// SetFraction replaces the layout fractions (used on config reload).
func (e *LayoutElement) SetFraction(fraction Rect) {
	e.fraction = fraction
}

// Fraction returns the layout fractions.
func (e *LayoutElement) Fraction() Rect {
	return e.fraction
}

// Bounds implements Element.
func (e *LayoutElement) Bounds() Rect {
	s := e.surface.Bounds()
	return Rect{
		Left:   s.Left + e.fraction.Left*s.Width,
		Top:    s.Top + e.fraction.Top*s.Height,
		Width:  e.fraction.Width * s.Width,
		Height: e.fraction.Height * s.Height,
	}
}

// Contains reports whether the point (x, y), in points, lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}
