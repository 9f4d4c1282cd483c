// Package agent implements the autonomous city dwellers the director drives
// every tick: patrolling police, scavenging rivals and smokers who eventually
// flick a butt onto the pavement.
//
// Agents never draw themselves and never touch the player; they read
// positions handed to them and report what happened through return values.
package agent

import (
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// PoliceMode is the state of a police officer.
type PoliceMode int

const (
	Patrol PoliceMode = iota
	Chase
)

func (m PoliceMode) String() string {
	if m == Chase {
		return "chase"
	}
	return "patrol"
}

// Police walks a fixed loop of waypoints and runs after a player caught
// smoking nearby.
type Police struct {
	Pos    geom.Point
	Width  float64
	Height float64
	// Facing is -1 when last moving left and 1 when moving right.
	Facing int
	Anim   float64

	cfg   simulation.PoliceConfig
	route []geom.Point
	index int
	mode  PoliceMode
}

// NewPolice creates an officer standing on the first waypoint of route.
// An empty route leaves the officer standing at the origin.
func NewPolice(cfg simulation.PoliceConfig, route []geom.Point) *Police {
	if len(route) == 0 {
		route = []geom.Point{{}}
	}
	p := &Police{
		Width:  cfg.Width,
		Height: cfg.Height,
		cfg:    cfg,
		route:  append([]geom.Point(nil), route...),
	}
	p.Reset()
	return p
}

// Reset returns the officer to the start of the route in patrol mode.
func (p *Police) Reset() {
	p.Pos = p.route[0]
	p.index = 0
	p.mode = Patrol
	p.Facing = 1
	p.Anim = 0
}

// Mode returns the current state.
func (p *Police) Mode() PoliceMode { return p.mode }

// Waypoint returns the index of the waypoint being walked to.
func (p *Police) Waypoint() int { return p.index }

// Bounds returns the officer's box.
func (p *Police) Bounds() geom.Rect { return geom.RectAt(p.Pos, p.Width, p.Height) }

// Update advances the officer by dt seconds. target is the player's position
// and stealing whether the player is currently lighting up. It returns true
// when a chasing officer gets within capture range.
//
// Spotting is checked every tick in either mode. A chase is only dropped
// once the player is beyond ChaseRange, which is wider than DetectRange, so
// one tick can never both start and end a chase.
func (p *Police) Update(dt float64, target geom.Point, stealing bool) bool {
	dist := geom.Distance(p.Pos, target)

	if stealing && dist < p.cfg.DetectRange {
		p.mode = Chase
	}

	p.Anim += dt

	if p.mode == Chase {
		if dist < p.cfg.CaptureRadius {
			return true
		}
		if dist > p.cfg.ChaseRange {
			p.mode = Patrol
			return false
		}
		p.moveToward(target, p.cfg.ChaseSpeed*dt)
		return false
	}

	wp := p.route[p.index]
	if geom.Distance(p.Pos, wp) < p.cfg.ArrivalEpsilon {
		p.index = (p.index + 1) % len(p.route)
		return false
	}
	p.moveToward(wp, p.cfg.Speed*dt)
	return false
}

func (p *Police) moveToward(to geom.Point, step float64) {
	if dx := to.X - p.Pos.X; dx < 0 {
		p.Facing = -1
	} else if dx > 0 {
		p.Facing = 1
	}
	p.Pos, _ = geom.Step(p.Pos, to, step)
}
