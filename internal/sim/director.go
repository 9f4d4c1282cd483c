// Package sim drives one play session: it owns every agent and collectible,
// steps them in a fixed order each frame, decides when new ones appear, and
// answers the player's pickup, shop and arrest queries.
//
// A tick runs in this order:
//
//  1. the event cycle, so agents read this tick's multipliers
//  2. cosmetic animation of collectibles
//  3. police (capture is reported, chase hand-off fires hooks)
//  4. smokers, with any dropped butt promoted into the registry and the
//     smoker removed in the same tick
//  5. rivals, which may claim butts including ones dropped this tick
//  6. spawn admission, so new entities never move on their first tick
//
// The director never draws and never changes the player. Everything it
// decides is returned to the caller or announced through the On* hooks,
// each at most once per occurrence.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"chosenoffset.com/lastdrag/internal/agent"
	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/gamestate"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/event"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

// PlayerView is what the director needs to know about the player.
type PlayerView interface {
	Position() geom.Point
	Bounds() geom.Rect
	// IsStealing reports whether the player is lighting up a scavenged butt
	// in public, which is what the police watch for.
	IsStealing() bool
}

// TickResult is the outcome of one Update.
type TickResult struct {
	Arrested     bool
	EventMessage string // empty when no event is active
	BeingChased  bool
}

// Director owns and steps a session
type Director struct {
	world  *citymap.Map
	cfg    *simulation.Config
	rng    *rand.Rand
	roller *dice.Roller

	items   *entity.Registry
	events  *event.Modifier
	police  []*agent.Police
	rivals  []*agent.Rival
	smokers []*agent.Smoker
	shop    entity.Shop

	smokerTimer float64
	chasing     bool
	clock       float64
	session     uuid.UUID
	tally       *gamestate.Tally

	// Logger receives session lifecycle records. Defaults to slog.Default().
	Logger *slog.Logger

	// Callbacks
	OnButtCollected  func(q entity.Quality)
	OnRivalStoleButt func(b entity.Butt)
	OnPoliceChase    func(started bool)
	OnShopBought     func()
	OnShopDenied     func()
	OnEventChanged   func(k event.Kind, started bool)
	OnSmokerDropped  func(pos geom.Point, q entity.Quality)
}

// New creates a director for world using cfg. All randomness in the
// session is drawn from rng. Call Init before the first Update.
func New(world *citymap.Map, cfg *simulation.Config, rng *rand.Rand) *Director {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	return &Director{
		world:  world,
		cfg:    cfg,
		rng:    rng,
		roller: dice.NewRoller(rng),
		items:  entity.NewRegistry(),
		events: event.NewModifier(cfg.Events),
		tally:  gamestate.New(),
		Logger: slog.Default(),
	}
}

// Init resets the session and seeds the starting population: butts,
// smokers, one officer per patrol route, one rival per spawn point, the
// shop, and coins. Starting counts are exact; placement is retried on
// blocked tiles instead of going through the per-tick admission gates.
func (d *Director) Init() {
	d.items.Reset()
	d.events.Reset()
	d.tally.Reset()
	d.smokers = nil
	d.police = nil
	d.rivals = nil
	d.smokerTimer = 0
	d.chasing = false
	d.clock = 0

	id, err := uuid.NewRandomFromReader(d.rng)
	if err != nil {
		id = uuid.New()
	}
	d.session = id

	pop := d.cfg.Population
	d.seed(pop.InitialButts, func() bool { return d.spawnButt(false) })
	d.seed(pop.InitialSmokers, func() bool { return d.spawnSmoker(false) })

	for _, route := range d.cfg.Police.Routes {
		d.police = append(d.police, agent.NewPolice(d.cfg.Police, route))
	}
	for _, pos := range d.cfg.Rival.Spawns {
		d.rivals = append(d.rivals, agent.NewRival(d.cfg.Rival, pos, d.roller))
	}
	d.shop = entity.NewShop(d.cfg.Shop)

	d.seed(pop.InitialCoins, d.spawnCoin)

	d.Logger.Info("session started",
		"session", d.session.String(),
		"map", d.world.Name(),
		"butts", d.items.ButtCount(),
		"smokers", len(d.smokers),
		"police", len(d.police),
		"rivals", len(d.rivals),
		"coins", d.items.CoinCount(),
	)
}

// seed calls spawn until n successes or the attempt budget runs out.
func (d *Director) seed(n int, spawn func() bool) {
	attempts := n * d.cfg.Population.PlacementAttempts
	for placed := 0; placed < n && attempts > 0; attempts-- {
		if spawn() {
			placed++
		}
	}
}

// Update advances the session by dt seconds.
func (d *Director) Update(dt float64, player PlayerView) TickResult {
	var res TickResult
	d.clock += dt

	d.updateEvents(dt)
	if d.events.Current() != event.None {
		res.EventMessage = d.events.Message()
	}

	d.items.TickVisual(dt)

	res.Arrested = d.updatePolice(dt, player)
	res.BeingChased = d.chasing

	d.updateSmokers(dt)
	d.updateRivals(dt)
	d.admit(dt)

	return res
}

func (d *Director) updateEvents(dt float64) {
	d.announceEvent(d.events.Update(dt, d.roller))
}

// announceEvent records, logs and reports an event transition, ending
// before starting.
func (d *Director) announceEvent(ch event.Change) {
	if ch.Ended != event.None {
		d.Logger.Info("event ended", "event", ch.Ended.String(), "at", d.clock)
		if d.OnEventChanged != nil {
			d.OnEventChanged(ch.Ended, false)
		}
	}
	if ch.Started != event.None {
		d.tally.Inc(gamestate.Events)
		d.Logger.Info("event started", "event", ch.Started.String(), "at", d.clock)
		if d.OnEventChanged != nil {
			d.OnEventChanged(ch.Started, true)
		}
	}
}

func (d *Director) updatePolice(dt float64, player PlayerView) bool {
	arrested := false
	chasing := false
	pos := player.Position()
	stealing := player.IsStealing()

	for _, p := range d.police {
		if p.Update(dt, pos, stealing) {
			arrested = true
		}
		if p.Mode() == agent.Chase {
			chasing = true
		}
	}

	if chasing != d.chasing {
		d.chasing = chasing
		if chasing {
			d.tally.Inc(gamestate.Chases)
		}
		d.Logger.Debug("police chase", "started", chasing, "at", d.clock)
		if d.OnPoliceChase != nil {
			d.OnPoliceChase(chasing)
		}
	}
	if arrested {
		d.Logger.Info("player arrested", "session", d.session.String(), "at", d.clock)
	}
	return arrested
}

func (d *Director) updateSmokers(dt float64) {
	wet := d.events.Effects().WetButts
	live := d.smokers[:0]
	for _, s := range d.smokers {
		s.Update(dt, d.roller)
		if drop, ok := s.TakeDrop(); ok {
			b := d.items.SpawnButt(drop.Pos, drop.Quality)
			b.Wet = wet
			d.tally.Inc(gamestate.SmokerDrops)
			d.Logger.Debug("smoker dropped butt", "kind", s.Kind.String(), "quality", drop.Quality.String())
			if d.OnSmokerDropped != nil {
				d.OnSmokerDropped(drop.Pos, drop.Quality)
			}
		}
		if s.Finished() {
			continue
		}
		live = append(live, s)
	}
	for i := len(live); i < len(d.smokers); i++ {
		d.smokers[i] = nil
	}
	d.smokers = live
}

func (d *Director) updateRivals(dt float64) {
	area := d.world.Bounds()
	for _, rv := range d.rivals {
		b, ok := rv.Update(dt, d.items, area, d.roller)
		if !ok {
			continue
		}
		d.tally.Inc(gamestate.Steals)
		if d.OnRivalStoleButt != nil {
			d.OnRivalStoleButt(b)
		}
	}
}

// CollectButt picks up the oldest butt touching the player.
func (d *Director) CollectButt(player PlayerView) (entity.Quality, bool) {
	b, ok := d.items.CollectButt(player.Bounds())
	if !ok {
		return 0, false
	}
	switch b.Quality {
	case entity.Short:
		d.tally.Inc(gamestate.ButtsShort)
	case entity.Long:
		d.tally.Inc(gamestate.ButtsLong)
	default:
		d.tally.Inc(gamestate.ButtsNormal)
	}
	if d.OnButtCollected != nil {
		d.OnButtCollected(b.Quality)
	}
	return b.Quality, true
}

// CollectCoin picks up every coin touching the player and returns their
// total value.
func (d *Director) CollectCoin(player PlayerView) int {
	amount := d.items.CollectCoins(player.Bounds())
	if amount > 0 {
		d.tally.Add(gamestate.Coins, amount)
	}
	return amount
}

// TryShopPurchase buys a pack if the player stands at the shop with enough
// money. A player at the shop without the money triggers OnShopDenied; a
// player elsewhere triggers nothing.
func (d *Director) TryShopPurchase(player PlayerView, money int) (success bool, cost int) {
	if !d.shop.Near(player.Position()) {
		return false, 0
	}
	if money < d.shop.Price {
		if d.OnShopDenied != nil {
			d.OnShopDenied()
		}
		return false, 0
	}
	d.tally.Inc(gamestate.PacksBought)
	if d.OnShopBought != nil {
		d.OnShopBought()
	}
	return true, d.shop.Price
}

// NearestButt is the closest live butt to a point.
type NearestButt struct {
	Pos      geom.Point
	Distance float64
	Quality  entity.Quality
}

// NearestButtTo finds the live butt closest to the centre of the player.
func (d *Director) NearestButtTo(player PlayerView) (NearestButt, bool) {
	b, dist, ok := d.items.NearestAny(player.Bounds().Center())
	if !ok {
		return NearestButt{}, false
	}
	return NearestButt{Pos: b.Pos, Distance: dist, Quality: b.Quality}, true
}

// Shop returns the shop.
func (d *Director) Shop() entity.Shop { return d.shop }

// CurrentEvent returns the active event.
func (d *Director) CurrentEvent() event.Kind { return d.events.Current() }

// Effects returns the active event's multipliers.
func (d *Director) Effects() event.Effects { return d.events.Effects() }

// EventRemaining returns the seconds left in the active event.
func (d *Director) EventRemaining() float64 { return d.events.Remaining() }

// Chasing reports whether any officer is chasing the player.
func (d *Director) Chasing() bool { return d.chasing }

// SessionID identifies the current session. It is derived from the random
// source, so the same seed yields the same ID.
func (d *Director) SessionID() uuid.UUID { return d.session }

// Tally returns the session counters.
func (d *Director) Tally() *gamestate.Tally { return d.tally }

// Map returns the map being played.
func (d *Director) Map() *citymap.Map { return d.world }

// Config returns the rules in force.
func (d *Director) Config() *simulation.Config { return d.cfg }

// Clock returns the seconds simulated since Init.
func (d *Director) Clock() float64 { return d.clock }

// ForceEvent starts k immediately (None ends the active event).
func (d *Director) ForceEvent(k event.Kind) {
	prev := d.events.Current()
	d.events.Force(k)
	d.announceEvent(event.Change{Started: k, Ended: prev})
}
