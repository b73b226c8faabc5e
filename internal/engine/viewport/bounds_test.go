package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRegionHalves(t *testing.T) {
	surface := Rect{Width: 800, Height: 600}

	left := ComputeRegion(surface, Rect{Left: 0, Top: 0, Width: 400, Height: 600})
	right := ComputeRegion(surface, Rect{Left: 400, Top: 0, Width: 400, Height: 600})

	assert.Equal(t, Region{Left: 0, Bottom: 0, Width: 400, Height: 600}, left)
	assert.Equal(t, Region{Left: 400, Bottom: 0, Width: 400, Height: 600}, right)
	assert.InDelta(t, 0.667, left.Aspect(), 0.001)
	assert.InDelta(t, 0.667, right.Aspect(), 0.001)
}

func TestComputeRegionFlipsY(t *testing.T) {
	surface := Rect{Width: 800, Height: 600}

	// Top strip of 100 points sits 500 points above the bottom edge.
	r := ComputeRegion(surface, Rect{Left: 10, Top: 0, Width: 200, Height: 100})
	assert.Equal(t, Region{Left: 10, Bottom: 500, Width: 200, Height: 100}, r)
}

func TestComputeRegionClampsToSurface(t *testing.T) {
	surface := Rect{Left: 50, Top: 20, Width: 800, Height: 600}

	tests := []struct {
		name string
		elem Rect
		want Region
	}{
		{
			name: "overhangs right and bottom",
			elem: Rect{Left: 650, Top: 420, Width: 400, Height: 400},
			want: Region{Left: 600, Bottom: 0, Width: 200, Height: 200},
		},
		{
			name: "overhangs left and top",
			elem: Rect{Left: 0, Top: 0, Width: 150, Height: 120},
			want: Region{Left: 0, Bottom: 500, Width: 100, Height: 100},
		},
		{
			name: "larger than surface",
			elem: Rect{Left: -100, Top: -100, Width: 2000, Height: 2000},
			want: Region{Left: 0, Bottom: 0, Width: 800, Height: 600},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRegion(surface, tt.elem))
		})
	}
}

func TestComputeRegionOutsideSurfaceIsEmpty(t *testing.T) {
	surface := Rect{Width: 800, Height: 600}

	outside := []Rect{
		{Left: 900, Top: 0, Width: 100, Height: 100},
		{Left: -300, Top: 0, Width: 100, Height: 100},
		{Left: 0, Top: 700, Width: 100, Height: 100},
		{Left: 0, Top: -500, Width: 100, Height: 100},
		{Left: 100, Top: 100, Width: 0, Height: 100},
	}
	for _, elem := range outside {
		r := ComputeRegion(surface, elem)
		assert.True(t, r.Empty(), "element %+v", elem)
		assert.GreaterOrEqual(t, r.Width, float32(0))
		assert.GreaterOrEqual(t, r.Height, float32(0))
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Width: 20, Height: 20}

	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29.9, 29.9))
	assert.False(t, r.Contains(30, 15))
	assert.False(t, r.Contains(5, 15))
}
