package sim

import (
	"chosenoffset.com/lastdrag/internal/agent"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
)

// Clearance boxes tested against the map before placing a new entity.
const (
	buttClearW, buttClearH     = 12, 4
	smokerClearW, smokerClearH = 24, 32
	coinClearW, coinClearH     = 10, 10
)

// admit runs ambient spawn admission. Every path is probabilistic so
// several entities rarely appear on the same tick.
func (d *Director) admit(dt float64) {
	fx := d.events.Effects()
	pop := d.cfg.Population
	sp := d.cfg.Spawn

	d.smokerTimer += dt
	if fx.SmokerSpawn > 0 && geom.Reached(d.smokerTimer, sp.SmokerInterval/fx.SmokerSpawn) {
		d.smokerTimer = 0
		if len(d.smokers) < pop.SmokerCeiling {
			d.spawnSmoker(true)
		}
	}

	if d.items.ButtCount() < pop.ButtFloor && d.roller.Chance(sp.ButtChance*fx.ButtSpawn) {
		d.spawnButt(true)
	}

	if d.items.CoinCount() < pop.CoinFloor && d.roller.Chance(sp.CoinChance) {
		d.spawnCoin()
	}
}

// spawnPoint draws a uniform point inside the spawn margin.
func (d *Director) spawnPoint() geom.Point {
	m := d.cfg.Spawn.Margin
	return geom.Point{
		X: d.roller.Between(m, d.world.Width()-m),
		Y: d.roller.Between(m, d.world.Height()-m),
	}
}

// spawnButt tries to place one ambient butt. gated applies the event's
// spawn multiplier as a second pass/fail roll.
func (d *Director) spawnButt(gated bool) bool {
	fx := d.events.Effects()
	if gated && d.roller.Float64() > fx.ButtSpawn {
		return false
	}
	pos := d.spawnPoint()
	if d.world.IsBlocked(pos.X, pos.Y, buttClearW, buttClearH) {
		return false
	}
	q := entity.RollQuality(d.roller, d.cfg.Butts, fx.ButtQuality)
	b := d.items.SpawnButt(pos, q)
	b.Wet = fx.WetButts
	return true
}

// spawnSmoker tries to place one smoker of a weighted random kind.
func (d *Director) spawnSmoker(gated bool) bool {
	fx := d.events.Effects()
	if gated && d.roller.Float64() > fx.SmokerSpawn*d.cfg.Spawn.SmokerGate {
		return false
	}
	pos := d.spawnPoint()
	if d.world.IsBlocked(pos.X, pos.Y, smokerClearW, smokerClearH) {
		return false
	}
	kind := agent.PickSmokerKind(d.roller, d.cfg.Smoker)
	d.smokers = append(d.smokers, agent.NewSmoker(d.cfg.Smoker, kind, pos))
	return true
}

func (d *Director) spawnCoin() bool {
	pos := d.spawnPoint()
	if d.world.IsBlocked(pos.X, pos.Y, coinClearW, coinClearH) {
		return false
	}
	d.items.SpawnCoin(pos, d.cfg.Coins.Value)
	return true
}

// PlaceButt adds a butt at pos, bypassing admission. The active event still
// decides whether it is wet.
func (d *Director) PlaceButt(pos geom.Point, q entity.Quality) entity.ID {
	b := d.items.SpawnButt(pos, q)
	b.Wet = d.events.Effects().WetButts
	return b.ID
}

// PlaceSmoker adds a smoker of the given kind at pos, bypassing admission.
func (d *Director) PlaceSmoker(kind agent.SmokerKind, pos geom.Point) {
	d.smokers = append(d.smokers, agent.NewSmoker(d.cfg.Smoker, kind, pos))
}

// PlaceCoin adds a coin at pos, bypassing admission.
func (d *Director) PlaceCoin(pos geom.Point) {
	d.items.SpawnCoin(pos, d.cfg.Coins.Value)
}
