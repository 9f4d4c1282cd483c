package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRollersRepeat(t *testing.T) {
	a := Seeded(42)
	b := Seeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestBetweenStaysInRange(t *testing.T) {
	r := Seeded(1)
	for i := 0; i < 1000; i++ {
		v := r.Between(2, 5)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 5.0)
	}
}

func TestPickFollowsWeights(t *testing.T) {
	r := Seeded(7)
	weights := []float64{0.3, 0.25, 0.3, 0.15}
	counts := make([]int, len(weights))

	const n = 20000
	for i := 0; i < n; i++ {
		counts[r.Pick(weights)]++
	}

	for i, w := range weights {
		assert.InDelta(t, w, float64(counts[i])/n, 0.02, "index %d", i)
	}
}

func TestPickEdgeCases(t *testing.T) {
	r := Seeded(3)

	assert.Equal(t, -1, r.Pick(nil))
	assert.Equal(t, 0, r.Pick([]float64{1}))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, r.Pick([]float64{0, 1}))
	}
}
