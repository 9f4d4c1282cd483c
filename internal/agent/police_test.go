package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/simulation"
)

func testOfficer() *Police {
	cfg := simulation.DefaultConfig().Police
	return NewPolice(cfg, cfg.Routes[0])
}

func TestPoliceStartsOnRoute(t *testing.T) {
	p := testOfficer()

	assert.Equal(t, geom.Point{X: 200, Y: 600}, p.Pos)
	assert.Equal(t, Patrol, p.Mode())
	assert.Equal(t, 0, p.Waypoint())
}

func TestPolicePatrolLoops(t *testing.T) {
	p := testOfficer()
	far := geom.Point{X: 2000, Y: 1500}

	seen := map[int]bool{}
	wraps := 0
	last := p.Waypoint()
	for i := 0; i < 400; i++ {
		require.False(t, p.Update(0.1, far, false))
		wp := p.Waypoint()
		require.GreaterOrEqual(t, wp, 0)
		require.Less(t, wp, 4)
		if wp < last {
			wraps++
		}
		seen[wp] = true
		last = wp
	}

	assert.Len(t, seen, 4)
	assert.GreaterOrEqual(t, wraps, 1)
	assert.Equal(t, Patrol, p.Mode())
}

func TestPoliceIgnoresPlayerNotStealing(t *testing.T) {
	p := testOfficer()
	p.Update(0, p.Pos.Add(geom.Point{X: 40}), false)

	assert.Equal(t, Patrol, p.Mode())
}

func TestPoliceDetection(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		stealing bool
		want     PoliceMode
	}{
		{"stealing in range", 100, true, Chase},
		{"stealing at range edge", 120, true, Patrol},
		{"stealing out of range", 150, true, Patrol},
		{"close but not stealing", 50, false, Patrol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testOfficer()
			p.Update(0, p.Pos.Add(geom.Point{X: tt.dist}), tt.stealing)
			assert.Equal(t, tt.want, p.Mode())
		})
	}
}

func TestPoliceChaseHysteresis(t *testing.T) {
	p := testOfficer()
	at := func(d float64) geom.Point { return p.Pos.Add(geom.Point{X: d}) }

	p.Update(0, at(100), true)
	require.Equal(t, Chase, p.Mode())

	p.Update(0, at(150), false)
	assert.Equal(t, Chase, p.Mode(), "beyond detect range but inside chase range")

	p.Update(0, at(200), false)
	assert.Equal(t, Chase, p.Mode(), "exactly at chase range is not lost")

	p.Update(0, at(201), false)
	assert.Equal(t, Patrol, p.Mode())

	p.Update(0, at(150), false)
	assert.Equal(t, Patrol, p.Mode(), "a lost player must be spotted stealing again")
}

func TestPoliceApproachAndHoldNeverFlickers(t *testing.T) {
	p := testOfficer()
	player := p.Pos.Add(geom.Point{X: 110})

	changes := 0
	mode := p.Mode()
	captured := false
	for i := 0; i < 100 && !captured; i++ {
		captured = p.Update(0.1, player, i == 0)
		if p.Mode() != mode {
			changes++
			mode = p.Mode()
		}
	}

	assert.True(t, captured)
	assert.Equal(t, 1, changes)
	assert.Equal(t, Chase, p.Mode())
}

func TestPoliceCaptureOnlyWhileChasing(t *testing.T) {
	p := testOfficer()

	assert.False(t, p.Update(0, p.Pos.Add(geom.Point{X: 10}), false))
	assert.True(t, p.Update(0, p.Pos.Add(geom.Point{X: 10}), true))
}

func TestPoliceZeroDistanceIsSafe(t *testing.T) {
	p := testOfficer()

	assert.True(t, p.Update(0.1, p.Pos, true))
	for i := 0; i < 10; i++ {
		p.Update(0.1, geom.Point{X: 2000, Y: 1500}, false)
	}
	assert.False(t, math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y))
}

func TestPoliceChaseIsFasterAndFaces(t *testing.T) {
	p := testOfficer()
	start := p.Pos
	target := start.Add(geom.Point{X: -100})

	p.Update(0.1, target, true)

	assert.InDelta(t, 10, geom.Distance(start, p.Pos), 1e-9)
	assert.Equal(t, -1, p.Facing)
}

func TestPoliceReset(t *testing.T) {
	p := testOfficer()
	p.Update(0, p.Pos.Add(geom.Point{X: 50}), true)
	p.Update(1, p.Pos.Add(geom.Point{X: 50}), false)

	p.Reset()

	assert.Equal(t, Patrol, p.Mode())
	assert.Equal(t, geom.Point{X: 200, Y: 600}, p.Pos)
}
