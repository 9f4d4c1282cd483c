package entity

import (
	"math"

	"chosenoffset.com/lastdrag/internal/core/geom"
)

// Registry owns every live butt and coin. Items are kept in spawn order and
// removed the moment they are claimed; Claim is the only way a butt leaves,
// which makes a second claim on the same item a harmless no-op.
type Registry struct {
	nextID ID
	butts  []*Butt
	coins  []*Coin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) allocID() ID {
	r.nextID++
	return r.nextID
}

// SpawnButt adds a butt and returns it so the caller can set cosmetic
// fields. The pointer must not be kept past the current tick.
func (r *Registry) SpawnButt(pos geom.Point, q Quality) *Butt {
	id := r.allocID()
	b := &Butt{ID: id, Pos: pos, Quality: q, Glow: initialPhase(id)}
	r.butts = append(r.butts, b)
	return b
}

// SpawnCoin adds a coin.
func (r *Registry) SpawnCoin(pos geom.Point, value int) *Coin {
	id := r.allocID()
	phase := initialPhase(id)
	c := &Coin{ID: id, Pos: pos, Value: value, Bob: phase, Glow: phase}
	r.coins = append(r.coins, c)
	return c
}

// ButtCount returns the number of live butts.
func (r *Registry) ButtCount() int { return len(r.butts) }

// CoinCount returns the number of live coins.
func (r *Registry) CoinCount() int { return len(r.coins) }

// Claim marks the butt collected and removes it. It returns false if the
// butt is already gone.
func (r *Registry) Claim(id ID) bool {
	for i, b := range r.butts {
		if b.ID != id {
			continue
		}
		b.Collected = true
		last := len(r.butts) - 1
		copy(r.butts[i:], r.butts[i+1:])
		r.butts[last] = nil
		r.butts = r.butts[:last]
		return true
	}
	return false
}

// CollectButt claims the oldest butt whose pickup box intersects probe.
func (r *Registry) CollectButt(probe geom.Rect) (Butt, bool) {
	for _, b := range r.butts {
		if !b.Bounds().Intersects(probe) {
			continue
		}
		got := *b
		if r.Claim(b.ID) {
			got.Collected = true
			return got, true
		}
	}
	return Butt{}, false
}

// CollectCoins removes every coin intersecting probe and returns their
// summed value.
func (r *Registry) CollectCoins(probe geom.Rect) int {
	total := 0
	kept := r.coins[:0]
	for _, c := range r.coins {
		if c.Bounds().Intersects(probe) {
			c.Collected = true
			total += c.Value
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(r.coins); i++ {
		r.coins[i] = nil
	}
	r.coins = kept
	return total
}

// ButtAt looks up a live butt.
func (r *Registry) ButtAt(id ID) (Butt, bool) {
	for _, b := range r.butts {
		if b.ID == id {
			return *b, true
		}
	}
	return Butt{}, false
}

// Nearest returns the live butt closest to from that lies strictly within
// the given range. Ties keep the older butt.
func (r *Registry) Nearest(from geom.Point, within float64) (Butt, float64, bool) {
	best := -1
	bestDist := within
	for i, b := range r.butts {
		if d := geom.Distance(from, b.Pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Butt{}, 0, false
	}
	return *r.butts[best], bestDist, true
}

// NearestAny is Nearest without a range limit.
func (r *Registry) NearestAny(from geom.Point) (Butt, float64, bool) {
	return r.Nearest(from, math.Inf(1))
}

// Butts returns copies of the live butts in spawn order.
func (r *Registry) Butts() []Butt {
	out := make([]Butt, len(r.butts))
	for i, b := range r.butts {
		out[i] = *b
	}
	return out
}

// Coins returns copies of the live coins in spawn order.
func (r *Registry) Coins() []Coin {
	out := make([]Coin, len(r.coins))
	for i, c := range r.coins {
		out[i] = *c
	}
	return out
}

// TickVisual advances glow and bob animation. It has no gameplay effect.
func (r *Registry) TickVisual(dt float64) {
	for _, b := range r.butts {
		b.Glow += dt * 3
	}
	for _, c := range r.coins {
		c.Bob += dt * 3
		c.Glow += dt * 5
	}
}

// Reset drops every item. IDs keep counting up so stale references from a
// previous session never resolve.
func (r *Registry) Reset() {
	r.butts = nil
	r.coins = nil
}
