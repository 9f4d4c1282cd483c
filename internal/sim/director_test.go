package sim

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lastdrag/internal/agent"
	"chosenoffset.com/lastdrag/internal/core/gamestate"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/event"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

type stubPlayer struct {
	pos      geom.Point
	stealing bool
}

func (p *stubPlayer) Position() geom.Point { return p.pos }
func (p *stubPlayer) Bounds() geom.Rect   { return geom.RectAt(p.pos, 16, 22) }
func (p *stubPlayer) IsStealing() bool    { return p.stealing }

// quietConfig starts empty, never admits anything and never fires events,
// so a test controls every entity itself.
func quietConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Population.InitialButts = 0
	cfg.Population.InitialSmokers = 0
	cfg.Population.InitialCoins = 0
	cfg.Population.ButtFloor = 0
	cfg.Population.CoinFloor = 0
	cfg.Population.SmokerCeiling = 0
	cfg.Rival.Spawns = nil
	cfg.Police.Routes = [][]geom.Point{{{X: 2000, Y: 1400}}}
	cfg.Events.Interval = math.MaxFloat64
	return cfg
}

func newDirector(t *testing.T, cfg *simulation.Config, seed int64) *Director {
	t.Helper()
	d := New(citymap.NewCity(), cfg, rand.New(rand.NewSource(seed)))
	d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	d.Init()
	return d
}

func farPlayer() *stubPlayer {
	return &stubPlayer{pos: geom.Point{X: 1500, Y: 300}}
}

func TestInitSeedsPopulation(t *testing.T) {
	d := newDirector(t, nil, 1)

	assert.Equal(t, Counts{Butts: 10, Coins: 5, Smokers: 5, Rivals: 2, Police: 2}, d.Counts())
	assert.Equal(t, event.None, d.CurrentEvent())
	assert.NotEqual(t, uuid.Nil, d.SessionID())
}

func TestInitPlacesOnWalkableTiles(t *testing.T) {
	d := newDirector(t, nil, 2)
	m := d.Map()

	snap := d.MinimapSnapshot()
	for _, p := range snap.Butts {
		assert.False(t, m.IsBlocked(p.X, p.Y, buttClearW, buttClearH))
	}
	for _, p := range snap.Smokers {
		assert.False(t, m.IsBlocked(p.X, p.Y, smokerClearW, smokerClearH))
	}
}

func TestSameSeedSameSession(t *testing.T) {
	a := newDirector(t, nil, 42)
	b := newDirector(t, nil, 42)
	player := farPlayer()

	assert.Equal(t, a.SessionID(), b.SessionID())
	for i := 0; i < 600; i++ {
		ra := a.Update(1.0/60, player)
		rb := b.Update(1.0/60, player)
		require.Equal(t, ra, rb)
	}
	assert.Equal(t, a.MinimapSnapshot(), b.MinimapSnapshot())
}

func TestReinitResetsSession(t *testing.T) {
	d := newDirector(t, nil, 3)
	first := d.SessionID()
	player := farPlayer()
	for i := 0; i < 100; i++ {
		d.Update(0.1, player)
	}

	d.Init()

	assert.NotEqual(t, first, d.SessionID())
	assert.Zero(t, d.Clock())
	assert.Equal(t, 10, d.Counts().Butts)
}

func TestWorkerDropIsDrainedSameTick(t *testing.T) {
	d := newDirector(t, quietConfig(), 4)
	d.PlaceSmoker(agent.Worker, geom.Point{X: 600, Y: 900})

	drops := 0
	d.OnSmokerDropped = func(geom.Point, entity.Quality) { drops++ }
	player := farPlayer()

	for tick := 1; tick <= 7; tick++ {
		d.Update(1, player)
		require.Equal(t, 1, d.Counts().Smokers, "tick %d", tick)
		require.Zero(t, d.Counts().Butts, "tick %d", tick)
	}

	d.Update(1, player)
	assert.Equal(t, 1, d.Counts().Butts)
	assert.Zero(t, d.Counts().Smokers)
	assert.Equal(t, 1, drops)
	assert.Equal(t, 1, d.Tally().Get(gamestate.SmokerDrops))
}

func TestVaperNeverDropsInSession(t *testing.T) {
	d := newDirector(t, quietConfig(), 5)
	d.PlaceSmoker(agent.Vaper, geom.Point{X: 600, Y: 900})
	player := farPlayer()

	for tick := 0; tick < 1000; tick++ {
		d.Update(1, player)
	}

	assert.Equal(t, Counts{Smokers: 1, Police: 1}, d.Counts())
}

func TestRivalStealFiresHookOnce(t *testing.T) {
	cfg := quietConfig()
	cfg.Rival.Spawns = []geom.Point{{X: 800, Y: 400}}
	d := newDirector(t, cfg, 6)
	d.PlaceButt(geom.Point{X: 850, Y: 400}, entity.Long)

	var stolen []entity.Butt
	d.OnRivalStoleButt = func(b entity.Butt) { stolen = append(stolen, b) }
	player := farPlayer()

	for i := 0; i < 30; i++ {
		d.Update(0.1, player)
	}

	require.Len(t, stolen, 1)
	assert.Equal(t, entity.Long, stolen[0].Quality)
	assert.Equal(t, 1, d.Tally().Get(gamestate.Steals))
	assert.Zero(t, d.Counts().Butts)
}

func TestRivalBeatsPlayerWithinTick(t *testing.T) {
	cfg := quietConfig()
	cfg.Rival.Spawns = []geom.Point{{X: 800, Y: 400}}
	d := newDirector(t, cfg, 7)
	d.PlaceButt(geom.Point{X: 805, Y: 400}, entity.Normal)

	player := &stubPlayer{pos: geom.Point{X: 800, Y: 395}}
	collected := 0
	d.OnButtCollected = func(entity.Quality) { collected++ }

	d.Update(0.1, player)
	_, ok := d.CollectButt(player)

	assert.False(t, ok)
	assert.Zero(t, collected)
	assert.Equal(t, 1, d.Tally().Get(gamestate.Steals))
}

func TestCollectButtAwardsOnce(t *testing.T) {
	d := newDirector(t, quietConfig(), 8)
	d.PlaceButt(geom.Point{X: 500, Y: 500}, entity.Long)
	player := &stubPlayer{pos: geom.Point{X: 495, Y: 495}}

	var got []entity.Quality
	d.OnButtCollected = func(q entity.Quality) { got = append(got, q) }

	q, ok := d.CollectButt(player)
	require.True(t, ok)
	assert.Equal(t, entity.Long, q)

	_, ok = d.CollectButt(player)
	assert.False(t, ok)
	assert.Equal(t, []entity.Quality{entity.Long}, got)
	assert.Equal(t, 1, d.Tally().Get(gamestate.ButtsLong))
}

func TestPoliceChaseHooks(t *testing.T) {
	cfg := quietConfig()
	cfg.Police.Routes = [][]geom.Point{{{X: 500, Y: 500}}}
	d := newDirector(t, cfg, 9)

	var calls []bool
	d.OnPoliceChase = func(started bool) { calls = append(calls, started) }

	player := &stubPlayer{pos: geom.Point{X: 560, Y: 500}, stealing: true}
	res := d.Update(0.1, player)
	assert.True(t, res.BeingChased)
	assert.False(t, res.Arrested)

	player.stealing = false
	res = d.Update(0.1, player)
	assert.True(t, res.BeingChased)

	player.pos = geom.Point{X: 1000, Y: 500}
	res = d.Update(0.1, player)
	assert.False(t, res.BeingChased)

	assert.Equal(t, []bool{true, false}, calls)
	assert.Equal(t, 1, d.Tally().Get(gamestate.Chases))
}

func TestArrest(t *testing.T) {
	cfg := quietConfig()
	cfg.Police.Routes = [][]geom.Point{{{X: 500, Y: 500}}}
	d := newDirector(t, cfg, 10)

	res := d.Update(0.1, &stubPlayer{pos: geom.Point{X: 520, Y: 500}, stealing: true})

	assert.True(t, res.Arrested)
	assert.True(t, res.BeingChased)
}

func TestShopPurchase(t *testing.T) {
	d := newDirector(t, quietConfig(), 11)
	bought, denied := 0, 0
	d.OnShopBought = func() { bought++ }
	d.OnShopDenied = func() { denied++ }

	atShop := &stubPlayer{pos: geom.Point{X: 120, Y: 660}}

	ok, cost := d.TryShopPurchase(atShop, 600)
	assert.True(t, ok)
	assert.Equal(t, 500, cost)

	ok, cost = d.TryShopPurchase(atShop, 100)
	assert.False(t, ok)
	assert.Zero(t, cost)

	ok, _ = d.TryShopPurchase(farPlayer(), 10000)
	assert.False(t, ok)

	assert.Equal(t, 1, bought)
	assert.Equal(t, 1, denied)
	assert.Equal(t, 1, d.Tally().Get(gamestate.PacksBought))
}

func TestCollectCoin(t *testing.T) {
	d := newDirector(t, quietConfig(), 12)
	d.PlaceCoin(geom.Point{X: 300, Y: 300})
	d.PlaceCoin(geom.Point{X: 305, Y: 310})
	d.PlaceCoin(geom.Point{X: 900, Y: 900})

	player := &stubPlayer{pos: geom.Point{X: 295, Y: 295}}

	assert.Equal(t, 200, d.CollectCoin(player))
	assert.Zero(t, d.CollectCoin(player))
	assert.Equal(t, 1, d.Counts().Coins)
	assert.Equal(t, 200, d.Tally().Get(gamestate.Coins))
}

func TestEventMessageAndHook(t *testing.T) {
	cfg := quietConfig()
	cfg.Events.Interval = 2
	d := newDirector(t, cfg, 13)

	var started []event.Kind
	d.OnEventChanged = func(k event.Kind, on bool) {
		if on {
			started = append(started, k)
		}
	}
	player := farPlayer()

	res := d.Update(1, player)
	assert.Empty(t, res.EventMessage)

	res = d.Update(1, player)
	require.Len(t, started, 1)
	assert.Equal(t, started[0], d.CurrentEvent())
	assert.Equal(t, started[0].Message(), res.EventMessage)
}

func TestRainMakesWetDrops(t *testing.T) {
	d := newDirector(t, quietConfig(), 14)
	d.ForceEvent(event.Rain)
	d.PlaceSmoker(agent.Student, geom.Point{X: 600, Y: 900})
	player := farPlayer()

	for i := 0; i < 5; i++ {
		d.Update(1, player)
	}

	scene := d.Visible(d.Map().Bounds())
	require.Len(t, scene.Butts, 1)
	assert.True(t, scene.Butts[0].Wet)
}

func TestNearestButtTo(t *testing.T) {
	d := newDirector(t, quietConfig(), 15)
	player := &stubPlayer{pos: geom.Point{X: 290, Y: 290}}

	_, ok := d.NearestButtTo(player)
	assert.False(t, ok)

	d.PlaceButt(geom.Point{X: 1000, Y: 1000}, entity.Long)
	d.PlaceButt(geom.Point{X: 300, Y: 300}, entity.Short)

	got, ok := d.NearestButtTo(player)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 300, Y: 300}, got.Pos)
	assert.Equal(t, entity.Short, got.Quality)
	assert.InDelta(t, math.Hypot(2, 1), got.Distance, 1e-9)
}

func TestVisibleCulls(t *testing.T) {
	d := newDirector(t, quietConfig(), 16)
	d.PlaceButt(geom.Point{X: 300, Y: 300}, entity.Short)
	d.PlaceButt(geom.Point{X: 2000, Y: 1000}, entity.Short)

	scene := d.Visible(geom.Rect{X: 0, Y: 0, Width: 960, Height: 640})

	require.Len(t, scene.Butts, 1)
	assert.Equal(t, 300.0, scene.Butts[0].Pos.X)
	assert.Empty(t, scene.Police)
}

func TestLongRunStaysBounded(t *testing.T) {
	d := newDirector(t, nil, 17)
	player := farPlayer()
	cfg := d.Config()
	area := d.Map().Bounds()

	for i := 0; i < 5*60*60; i++ {
		d.Update(1.0/60, player)

		c := d.Counts()
		require.LessOrEqual(t, c.Smokers, cfg.Population.SmokerCeiling)
		require.LessOrEqual(t, c.Coins, cfg.Population.InitialCoins)

		if i%600 == 0 {
			snap := d.MinimapSnapshot()
			for _, p := range append(snap.Rivals, snap.Police...) {
				require.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
				require.True(t, area.Contains(p))
			}
		}
	}
}

func TestForcedEventIsRecordedLikeNaturalOnes(t *testing.T) {
	d := newDirector(t, quietConfig(), 15)
	var logs bytes.Buffer
	d.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	type transition struct {
		kind event.Kind
		on   bool
	}
	var seen []transition
	d.OnEventChanged = func(k event.Kind, on bool) { seen = append(seen, transition{k, on}) }

	d.ForceEvent(event.Rain)
	d.ForceEvent(event.Crackdown)
	d.ForceEvent(event.None)

	assert.Equal(t, []transition{
		{event.Rain, true},
		{event.Rain, false},
		{event.Crackdown, true},
		{event.Crackdown, false},
	}, seen)
	assert.Equal(t, 2, d.Tally().Get(gamestate.Events))
	assert.Equal(t, 2, strings.Count(logs.String(), "event started"))
	assert.Equal(t, 2, strings.Count(logs.String(), "event ended"))
}
