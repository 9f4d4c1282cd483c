package game

import (
	"math"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
)

// Autopilot plays the game for soak runs and demos: it runs from a chasing
// officer, heads for the shop when it can afford a pack, and otherwise
// walks to the nearest butt. When a wall stops it, it sidesteps for a
// moment.
type Autopilot struct {
	roller *dice.Roller

	last      geom.Point
	stuck     float64
	detour    geom.Point
	detourFor float64
}

// stuckAfter is how long the player may fail to move before detouring.
const stuckAfter = 0.4

// NewAutopilot creates an autopilot drawing its detours from r.
func NewAutopilot(r *dice.Roller) *Autopilot {
	return &Autopilot{roller: r}
}

// Intent implements Controller.
func (a *Autopilot) Intent(g *Game) Intent {
	p := g.Player
	center := p.Center()
	const frame = 1.0 / 60.0

	if a.detourFor > 0 {
		a.detourFor -= frame
		a.last = center
		return Intent{X: a.detour.X, Y: a.detour.Y}
	}

	var target geom.Point
	var flee bool
	shop := g.Director.Shop()
	switch {
	case g.Chased:
		if cop, ok := nearest(center, g.Director.MinimapSnapshot().Police); ok {
			target, flee = cop, true
		}
	case p.Money >= shop.Price:
		target = shop.Bounds().Center()
		if shop.Near(p.Position()) {
			return Intent{Buy: true}
		}
	default:
		nb, ok := g.Director.NearestButtTo(p)
		if !ok {
			target = g.World.PlayerSpawn()
		} else {
			target = nb.Pos
		}
	}

	dir := target.Sub(center)
	if flee {
		dir = dir.Scale(-1)
	}
	in := Intent{X: axis(dir.X), Y: axis(dir.Y)}

	if p.Smoking() || (in.X == 0 && in.Y == 0) {
		a.stuck = 0
	} else if geom.Distance(center, a.last) < 0.01 {
		a.stuck += frame
	} else {
		a.stuck = 0
	}
	a.last = center

	if a.stuck >= stuckAfter {
		a.stuck = 0
		angle := a.roller.Heading()
		a.detour = geom.Point{X: snap(math.Cos(angle)), Y: snap(math.Sin(angle))}
		a.detourFor = 0.6
		return Intent{X: a.detour.X, Y: a.detour.Y}
	}
	return in
}

// axis snaps a component to -1, 0 or 1 with a small dead zone so the player
// does not jitter across the target.
func axis(v float64) float64 {
	switch {
	case v > 2:
		return 1
	case v < -2:
		return -1
	default:
		return 0
	}
}

// snap rounds a unit-vector component to the nearest of the eight
// compass directions.
func snap(v float64) float64 {
	switch {
	case v > 0.38:
		return 1
	case v < -0.38:
		return -1
	default:
		return 0
	}
}

func nearest(from geom.Point, pts []geom.Point) (geom.Point, bool) {
	best, bestDist := geom.Point{}, math.Inf(1)
	for _, p := range pts {
		if d := geom.Distance(from, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
