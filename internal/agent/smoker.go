package agent

import (
	"fmt"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// SmokerKind is the type of smoker, which sets how long a cigarette lasts
// and how much of it is left when it hits the ground.
type SmokerKind int

const (
	Worker SmokerKind = iota
	Drunk
	Student
	Vaper
)

// SmokerKinds lists every kind in spawn table order.
var SmokerKinds = []SmokerKind{Worker, Drunk, Student, Vaper}

func (k SmokerKind) String() string {
	switch k {
	case Worker:
		return "worker"
	case Drunk:
		return "drunk"
	case Student:
		return "student"
	case Vaper:
		return "vaper"
	default:
		return fmt.Sprintf("SmokerKind(%d)", int(k))
	}
}

func (k SmokerKind) config(cfg simulation.SmokerConfig) simulation.SmokerKindConfig {
	switch k {
	case Drunk:
		return cfg.Drunk
	case Student:
		return cfg.Student
	case Vaper:
		return cfg.Vaper
	default:
		return cfg.Worker
	}
}

// PickSmokerKind draws a kind from the configured spawn weights.
func PickSmokerKind(r *dice.Roller, cfg simulation.SmokerConfig) SmokerKind {
	weights := make([]float64, len(SmokerKinds))
	for i, k := range SmokerKinds {
		weights[i] = k.config(cfg).Weight
	}
	return SmokerKinds[r.Pick(weights)]
}

// Drop is the butt a smoker leaves behind.
type Drop struct {
	Pos     geom.Point
	Quality entity.Quality
}

// Smoker stands still and smokes one cigarette. When it is done the butt
// is dropped at their feet and held until the director takes it, after
// which the smoker is finished. Lingering kinds (vapers) never finish.
type Smoker struct {
	Pos    geom.Point
	Width  float64
	Height float64
	Kind   SmokerKind
	Anim   float64

	kcfg    simulation.SmokerKindConfig
	jitter  float64
	below   float64
	elapsed float64
	drop    *Drop
	dropped bool
}

// NewSmoker creates a smoker of the given kind at pos.
func NewSmoker(cfg simulation.SmokerConfig, kind SmokerKind, pos geom.Point) *Smoker {
	return &Smoker{
		Pos:    pos,
		Width:  cfg.Width,
		Height: cfg.Height,
		Kind:   kind,
		kcfg:   kind.config(cfg),
		jitter: cfg.DropJitter,
		below:  cfg.DropBelow,
	}
}

// Bounds returns the smoker's box.
func (s *Smoker) Bounds() geom.Rect { return geom.RectAt(s.Pos, s.Width, s.Height) }

// Smoking reports whether the cigarette is still lit.
func (s *Smoker) Smoking() bool { return !s.dropped }

// Progress returns how far through the cigarette the smoker is, in [0, 1].
// Lingering kinds always report 0.
func (s *Smoker) Progress() float64 {
	if s.kcfg.Lingers || s.kcfg.Duration <= 0 {
		return 0
	}
	return min(s.elapsed/s.kcfg.Duration, 1)
}

// Update advances the cigarette by dt seconds. On the tick it burns out a
// drop becomes available through TakeDrop.
func (s *Smoker) Update(dt float64, r *dice.Roller) {
	s.Anim += dt
	if s.dropped || s.kcfg.Lingers {
		return
	}

	s.elapsed += dt
	if !geom.Reached(s.elapsed, s.kcfg.Duration) {
		return
	}

	s.dropped = true
	s.drop = &Drop{
		Pos: geom.Point{
			X: s.Pos.X + r.Between(-s.jitter, s.jitter),
			Y: s.Pos.Y + s.Height + s.below,
		},
		Quality: s.rollDrop(r.Float64()),
	}
}

func (s *Smoker) rollDrop(roll float64) entity.Quality {
	switch {
	case roll < s.kcfg.LongBelow:
		return entity.Long
	case roll < s.kcfg.NormalBelow:
		return entity.Normal
	default:
		return entity.Short
	}
}

// TakeDrop hands over the dropped butt exactly once.
func (s *Smoker) TakeDrop() (Drop, bool) {
	if s.drop == nil {
		return Drop{}, false
	}
	d := *s.drop
	s.drop = nil
	return d, true
}

// Finished reports whether the smoker has dropped its butt and the butt
// has been taken.
func (s *Smoker) Finished() bool {
	return s.dropped && s.drop == nil
}
