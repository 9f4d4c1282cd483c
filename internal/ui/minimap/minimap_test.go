package minimap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/render/rendertest"
	"chosenoffset.com/lastdrag/internal/sim"
)

func TestScaleKeepsAspect(t *testing.T) {
	m := New(rendertest.NewRenderer(), 2400, 1600)
	assert.InDelta(t, 0.05, m.Scale(), 1e-12)

	x, y := m.Project(geom.Point{X: 2400, Y: 1600})
	assert.InDelta(t, 120, x, 1e-4)
	assert.InDelta(t, 80, y, 1e-4)

	wide := New(rendertest.NewRenderer(), 4800, 800)
	assert.InDelta(t, 0.025, wide.Scale(), 1e-12)
}

func TestDrawPlotsEveryEntity(t *testing.T) {
	r := rendertest.NewRenderer()
	m := New(r, 2400, 1600)
	snap := sim.Snapshot{
		Butts:   []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 20}},
		Coins:   []geom.Point{{X: 30, Y: 30}},
		Smokers: []geom.Point{{X: 40, Y: 40}},
		Rivals:  []geom.Point{{X: 50, Y: 50}},
		Police:  []geom.Point{{X: 60, Y: 60}, {X: 70, Y: 70}},
		Shop:    geom.Point{X: 100, Y: 650},
	}
	m.Draw(r.NewImage(960, 640), 830, 10, snap, geom.Point{X: 1200, Y: 800})

	// background + shop + 2 butts + coin + smoker + rival + 2 police
	assert.Equal(t, 9, r.Count("rect"))
	assert.Equal(t, 1, r.Count("circle"))

	var player rendertest.Op
	for _, op := range r.Ops {
		if op.Kind == "circle" {
			player = op
		}
	}
	assert.InDelta(t, 830+60, player.X, 1e-4)
	assert.InDelta(t, 10+40, player.Y, 1e-4)
}

func TestHidden(t *testing.T) {
	r := rendertest.NewRenderer()
	m := New(r, 2400, 1600)
	m.Visible = false
	m.Draw(r.NewImage(960, 640), 0, 0, sim.Snapshot{}, geom.Point{})
	assert.Empty(t, r.Ops)
}
