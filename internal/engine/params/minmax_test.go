package params

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNearFar(near, far float32) (*MinMax, *float32, *float32) {
	n, f := near, far
	return NewMinMax(PointerProperty{&n}, PointerProperty{&f}, 0.1), &n, &f
}

func TestSetMinPushesMax(t *testing.T) {
	mm, near, far := newNearFar(5, 100)

	mm.SetMin(50)
	assert.Equal(t, float32(50), *near)
	assert.Equal(t, float32(100), *far)

	mm.SetMin(99.95)
	assert.InDelta(t, 99.95, *near, 1e-4)
	assert.InDelta(t, 100.05, *far, 1e-4)
}

func TestSetMaxBelowMinIsRaised(t *testing.T) {
	mm, near, far := newNearFar(5, 100)

	mm.SetMax(3)
	assert.Equal(t, float32(5), *near, "min never moves")
	assert.InDelta(t, 5.1, *far, 1e-5)
}

func TestSetMaxAboveGapIsKept(t *testing.T) {
	mm, _, far := newNearFar(5, 100)
	mm.SetMax(40)
	assert.Equal(t, float32(40), *far)
}

func TestNewMinMaxLeavesValues(t *testing.T) {
	_, near, far := newNearFar(10, 10)
	assert.Equal(t, float32(10), *near)
	assert.Equal(t, float32(10), *far)
}

func TestGapHoldsAfterEveryWrite(t *testing.T) {
	seed := rand.Uint64()
	rng := rand.New(rand.NewPCG(seed, 0))
	t.Logf("seed %d", seed)

	mm, near, far := newNearFar(5, 100)
	for i := 0; i < 2000; i++ {
		v := rng.Float32()*60 - 5
		minBefore := *near
		if rng.IntN(2) == 0 {
			mm.SetMin(v)
			require.Equal(t, v, *near)
		} else {
			mm.SetMax(v)
			require.Equal(t, minBefore, *near)
		}
		require.GreaterOrEqual(t, *far, *near+mm.Gap()-1e-5, "write %d", i)
	}
}

func TestVirtualProperties(t *testing.T) {
	mm, near, far := newNearFar(5, 100)

	mm.MinProperty().Set(200)
	assert.Equal(t, float32(200), mm.MinProperty().Get())
	assert.InDelta(t, 200.1, *far, 1e-3)

	mm.MaxProperty().Set(1)
	assert.Equal(t, float32(200), *near)
	assert.InDelta(t, 200.1, mm.MaxProperty().Get(), 1e-3)
}
