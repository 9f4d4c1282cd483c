package sim

import (
	"chosenoffset.com/lastdrag/internal/agent"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
)

// Actor is the drawable state shared by every agent.
type Actor struct {
	Pos    geom.Point
	Width  float64
	Height float64
	Facing int
	Anim   float64
}

// Bounds returns the actor's box.
func (a Actor) Bounds() geom.Rect { return geom.RectAt(a.Pos, a.Width, a.Height) }

// PoliceView is a read-only copy of an officer.
type PoliceView struct {
	Actor
	Mode agent.PoliceMode
}

// RivalView is a read-only copy of a rival.
type RivalView struct {
	Actor
	Mode agent.RivalMode
}

// SmokerView is a read-only copy of a smoker.
type SmokerView struct {
	Actor
	Kind     agent.SmokerKind
	Progress float64
}

// Scene is everything that can be drawn, as copies.
type Scene struct {
	Shop    entity.Shop
	Coins   []entity.Coin
	Butts   []entity.Butt
	Smokers []SmokerView
	Rivals  []RivalView
	Police  []PoliceView
}

// Visible returns the entities whose boxes intersect viewport. The shop is
// always included.
func (d *Director) Visible(viewport geom.Rect) Scene {
	sc := Scene{Shop: d.shop}
	for _, c := range d.items.Coins() {
		if c.Bounds().Intersects(viewport) {
			sc.Coins = append(sc.Coins, c)
		}
	}
	for _, b := range d.items.Butts() {
		if b.Bounds().Intersects(viewport) {
			sc.Butts = append(sc.Butts, b)
		}
	}
	for _, s := range d.smokers {
		v := SmokerView{
			Actor:    Actor{Pos: s.Pos, Width: s.Width, Height: s.Height, Facing: 1, Anim: s.Anim},
			Kind:     s.Kind,
			Progress: s.Progress(),
		}
		if v.Bounds().Intersects(viewport) {
			sc.Smokers = append(sc.Smokers, v)
		}
	}
	for _, rv := range d.rivals {
		v := RivalView{
			Actor: Actor{Pos: rv.Pos, Width: rv.Width, Height: rv.Height, Facing: rv.Facing, Anim: rv.Anim},
			Mode:  rv.Mode(),
		}
		if v.Bounds().Intersects(viewport) {
			sc.Rivals = append(sc.Rivals, v)
		}
	}
	for _, p := range d.police {
		v := PoliceView{
			Actor: Actor{Pos: p.Pos, Width: p.Width, Height: p.Height, Facing: p.Facing, Anim: p.Anim},
			Mode:  p.Mode(),
		}
		if v.Bounds().Intersects(viewport) {
			sc.Police = append(sc.Police, v)
		}
	}
	return sc
}

// Snapshot lists the positions of every live entity by category.
type Snapshot struct {
	Butts   []geom.Point
	Coins   []geom.Point
	Smokers []geom.Point
	Rivals  []geom.Point
	Police  []geom.Point
	Shop    geom.Point
}

// MinimapSnapshot returns the positions of every live entity.
func (d *Director) MinimapSnapshot() Snapshot {
	snap := Snapshot{Shop: d.shop.Pos}
	for _, b := range d.items.Butts() {
		snap.Butts = append(snap.Butts, b.Pos)
	}
	for _, c := range d.items.Coins() {
		snap.Coins = append(snap.Coins, c.Pos)
	}
	for _, s := range d.smokers {
		snap.Smokers = append(snap.Smokers, s.Pos)
	}
	for _, rv := range d.rivals {
		snap.Rivals = append(snap.Rivals, rv.Pos)
	}
	for _, p := range d.police {
		snap.Police = append(snap.Police, p.Pos)
	}
	return snap
}

// Counts is the number of live entities by category.
type Counts struct {
	Butts, Coins, Smokers, Rivals, Police int
}

// Counts returns live entity counts.
func (d *Director) Counts() Counts {
	return Counts{
		Butts:   d.items.ButtCount(),
		Coins:   d.items.CoinCount(),
		Smokers: len(d.smokers),
		Rivals:  len(d.rivals),
		Police:  len(d.police),
	}
}
