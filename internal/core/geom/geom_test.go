package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"apart", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestStepCoincidentPointsDoNotMove(t *testing.T) {
	p := Point{X: 3, Y: 4}
	got, dist := Step(p, p, 100)

	assert.Equal(t, p, got)
	assert.Zero(t, dist)
	assert.False(t, math.IsNaN(got.X) || math.IsNaN(got.Y))
}

func TestStepMovesAlongLine(t *testing.T) {
	got, dist := Step(Point{}, Point{X: 30, Y: 40}, 5)

	assert.InDelta(t, 50, dist, 1e-9)
	assert.InDelta(t, 3, got.X, 1e-9)
	assert.InDelta(t, 4, got.Y, 1e-9)
}

func TestStepDoesNotOvershoot(t *testing.T) {
	target := Point{X: 10, Y: 0}
	got, _ := Step(Point{}, target, 60)

	assert.Equal(t, target, got)
}

func TestClampAndInset(t *testing.T) {
	area := Rect{Width: 200, Height: 100}.Inset(50)

	assert.Equal(t, Point{X: 50, Y: 50}, area.Clamp(Point{X: -10, Y: 0}))
	assert.Equal(t, Point{X: 150, Y: 50}, area.Clamp(Point{X: 900, Y: 75}))
}

func TestReachedAbsorbsFrameDrift(t *testing.T) {
	var acc float64
	for i := 0; i < 1800; i++ {
		acc += 1.0 / 60.0
	}
	assert.True(t, Reached(acc, 30))
	assert.False(t, Reached(acc-1.0/60.0, 30))
	assert.True(t, Reached(31, 30))
	assert.False(t, Reached(29.99, 30))
}
