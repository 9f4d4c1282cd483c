// Package entity provides the collectibles the player and rivals compete
// over (cigarette butts and coins), the corner shop, and the Registry that
// owns them.
package entity

import (
	"fmt"
	"math"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// ID identifies a collectible for the life of a session. IDs are never
// reused, so a stale ID simply stops resolving once its item is gone.
type ID uint64

// Quality grades a butt by how much is left to smoke.
type Quality int

const (
	Short Quality = iota
	Normal
	Long
)

func (q Quality) String() string {
	switch q {
	case Short:
		return "short"
	case Normal:
		return "normal"
	case Long:
		return "long"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Nicotine returns the yield of smoking a butt of this quality.
func (q Quality) Nicotine() float64 {
	switch q {
	case Short:
		return 5
	case Long:
		return 30
	default:
		return 15
	}
}

// Width returns the drawn length of the butt in pixels.
func (q Quality) Width() float64 {
	switch q {
	case Short:
		return 6
	case Long:
		return 16
	default:
		return 10
	}
}

// RollQuality draws an ambient butt quality. The headroom above the roll is
// divided by mult before thresholding, so mult > 1 favours long butts and
// mult < 1 short ones. The skew is not linear: a lucky day (2x) never yields
// a short butt, while rain (0.3x) still lets a few long ones through.
func RollQuality(r *dice.Roller, cfg simulation.ButtConfig, mult float64) Quality {
	roll := r.Float64()
	if mult > 0 {
		roll = 1 - (1-roll)/mult
	}
	switch {
	case roll < cfg.ShortBelow:
		return Short
	case roll < cfg.NormalBelow:
		return Normal
	default:
		return Long
	}
}

// ButtHeight is the drawn height of every butt.
const ButtHeight = 4

// buttReach widens a butt's pickup box beyond what is drawn.
const buttReach = 8

// Butt is a discarded cigarette lying in the street.
type Butt struct {
	ID        ID
	Pos       geom.Point
	Quality   Quality
	Collected bool
	Wet       bool    // spawned in the rain; cosmetic
	Glow      float64 // glow phase in radians
}

// Bounds returns the pickup box: the drawn butt grown by 8 px all round.
func (b Butt) Bounds() geom.Rect {
	return geom.Rect{
		X:      b.Pos.X - buttReach,
		Y:      b.Pos.Y - buttReach,
		Width:  b.Quality.Width() + 2*buttReach,
		Height: 2 * buttReach,
	}
}

// Coin is loose change worth picking up.
type Coin struct {
	ID        ID
	Pos       geom.Point
	Value     int
	Collected bool
	Bob       float64
	Glow      float64
}

// Bounds returns a 20x20 box centred on the coin.
func (c Coin) Bounds() geom.Rect {
	return geom.Rect{X: c.Pos.X - 10, Y: c.Pos.Y - 10, Width: 20, Height: 20}
}

// Shop sells packs to a player standing close enough with enough money.
type Shop struct {
	Pos    geom.Point
	Width  float64
	Height float64
	Price  int
	Radius float64
}

// NewShop places the shop described by cfg.
func NewShop(cfg simulation.ShopConfig) Shop {
	return Shop{
		Pos:    geom.Point{X: cfg.X, Y: cfg.Y},
		Width:  cfg.Width,
		Height: cfg.Height,
		Price:  cfg.Price,
		Radius: cfg.Radius,
	}
}

// Bounds returns the shop footprint.
func (s Shop) Bounds() geom.Rect {
	return geom.RectAt(s.Pos, s.Width, s.Height)
}

// Near reports whether p is strictly within Radius of the shop's centre.
func (s Shop) Near(p geom.Point) bool {
	return geom.Distance(s.Bounds().Center(), p) < s.Radius
}

// initialPhase spreads animation phases without a random source.
func initialPhase(id ID) float64 {
	const goldenAngle = 2.399963229728653
	return math.Mod(float64(id)*goldenAngle, 2*math.Pi)
}
