package agent

import (
	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// RivalMode is the state of a rival scavenger.
type RivalMode int

const (
	Wander RivalMode = iota
	Forage
)

func (m RivalMode) String() string {
	if m == Forage {
		return "forage"
	}
	return "wander"
}

// ButtField is the view of the collectibles a rival forages in.
// *entity.Registry satisfies it.
type ButtField interface {
	Nearest(from geom.Point, within float64) (entity.Butt, float64, bool)
	ButtAt(id entity.ID) (entity.Butt, bool)
	Claim(id entity.ID) bool
}

// Rival wanders the streets and pockets any butt it spots before the
// player can.
type Rival struct {
	Pos    geom.Point
	Width  float64
	Height float64
	Facing int
	Anim   float64

	cfg        simulation.RivalConfig
	target     entity.ID
	hasTarget  bool
	heading    geom.Point
	wanderLeft float64
}

// NewRival creates a rival at pos with a fresh wander heading.
func NewRival(cfg simulation.RivalConfig, pos geom.Point, r *dice.Roller) *Rival {
	rv := &Rival{
		Pos:    pos,
		Width:  cfg.Width,
		Height: cfg.Height,
		Facing: 1,
		cfg:    cfg,
	}
	rv.pickHeading(r)
	return rv
}

// Mode reports whether the rival is heading for a butt.
func (rv *Rival) Mode() RivalMode {
	if rv.hasTarget {
		return Forage
	}
	return Wander
}

// Target returns the butt being foraged for, if any.
func (rv *Rival) Target() (entity.ID, bool) { return rv.target, rv.hasTarget }

// Bounds returns the rival's box.
func (rv *Rival) Bounds() geom.Rect { return geom.RectAt(rv.Pos, rv.Width, rv.Height) }

func (rv *Rival) pickHeading(r *dice.Roller) {
	rv.heading = geom.Heading(r.Heading())
	rv.wanderLeft = r.Between(rv.cfg.WanderMin, rv.cfg.WanderMax)
}

// Update advances the rival by dt seconds inside area (the whole map).
// When the rival reaches and claims its target, the stolen butt is
// returned with ok set.
func (rv *Rival) Update(dt float64, field ButtField, area geom.Rect, r *dice.Roller) (stolen entity.Butt, ok bool) {
	rv.Anim += dt

	// The target is held by ID and must still resolve; someone else may
	// have picked it up since the last tick.
	if rv.hasTarget {
		if _, live := field.ButtAt(rv.target); !live {
			rv.hasTarget = false
		}
	}
	if !rv.hasTarget {
		if b, _, found := field.Nearest(rv.Pos, rv.cfg.DetectRange); found {
			rv.target, rv.hasTarget = b.ID, true
		}
	}

	if rv.hasTarget {
		b, _ := field.ButtAt(rv.target)
		if geom.Distance(rv.Pos, b.Pos) < rv.cfg.CollectRadius {
			rv.hasTarget = false
			if field.Claim(b.ID) {
				b.Collected = true
				return b, true
			}
			return entity.Butt{}, false
		}
		rv.face(b.Pos.X - rv.Pos.X)
		rv.Pos, _ = geom.Step(rv.Pos, b.Pos, rv.cfg.Speed*dt)
		return entity.Butt{}, false
	}

	rv.wanderLeft -= dt
	if rv.wanderLeft <= 0 {
		rv.pickHeading(r)
	}
	rv.face(rv.heading.X)
	rv.Pos = rv.Pos.Add(rv.heading.Scale(rv.cfg.Speed * 0.5 * dt))
	rv.Pos = area.Inset(rv.cfg.BoundsMargin).Clamp(rv.Pos)
	return entity.Butt{}, false
}

func (rv *Rival) face(dx float64) {
	if dx < 0 {
		rv.Facing = -1
	} else if dx > 0 {
		rv.Facing = 1
	}
}
