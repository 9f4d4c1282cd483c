package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/simulation"
)

func probeAt(x, y float64) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: 16, Height: 22}
}

func TestCollectButtOldestWins(t *testing.T) {
	reg := NewRegistry()
	first := reg.SpawnButt(geom.Point{X: 100, Y: 100}, Short).ID
	reg.SpawnButt(geom.Point{X: 102, Y: 101}, Long)

	got, ok := reg.CollectButt(probeAt(95, 95))
	require.True(t, ok)
	assert.Equal(t, first, got.ID)
	assert.Equal(t, Short, got.Quality)
	assert.True(t, got.Collected)
	assert.Equal(t, 1, reg.ButtCount())
}

func TestCollectButtIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.SpawnButt(geom.Point{X: 100, Y: 100}, Normal)

	_, ok := reg.CollectButt(probeAt(95, 95))
	require.True(t, ok)

	_, ok = reg.CollectButt(probeAt(95, 95))
	assert.False(t, ok)
	assert.Zero(t, reg.ButtCount())
}

func TestClaimExactlyOnce(t *testing.T) {
	reg := NewRegistry()
	id := reg.SpawnButt(geom.Point{X: 10, Y: 10}, Normal).ID

	wins := 0
	for i := 0; i < 10; i++ {
		if reg.Claim(id) {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	_, ok := reg.ButtAt(id)
	assert.False(t, ok)
}

func TestClaimKeepsOtherIDsValid(t *testing.T) {
	reg := NewRegistry()
	a := reg.SpawnButt(geom.Point{X: 10, Y: 10}, Short).ID
	b := reg.SpawnButt(geom.Point{X: 20, Y: 10}, Normal).ID
	c := reg.SpawnButt(geom.Point{X: 30, Y: 10}, Long).ID

	require.True(t, reg.Claim(b))

	got, ok := reg.ButtAt(c)
	require.True(t, ok)
	assert.Equal(t, Long, got.Quality)
	_, ok = reg.ButtAt(a)
	assert.True(t, ok)
}

func TestButtBounds(t *testing.T) {
	b := Butt{Pos: geom.Point{X: 50, Y: 60}, Quality: Long}

	assert.Equal(t, geom.Rect{X: 42, Y: 52, Width: 32, Height: 16}, b.Bounds())
}

func TestCollectCoinsSumsAll(t *testing.T) {
	reg := NewRegistry()
	reg.SpawnCoin(geom.Point{X: 100, Y: 100}, 100)
	reg.SpawnCoin(geom.Point{X: 105, Y: 105}, 100)
	reg.SpawnCoin(geom.Point{X: 900, Y: 900}, 100)

	assert.Equal(t, 200, reg.CollectCoins(probeAt(95, 95)))
	assert.Equal(t, 1, reg.CoinCount())
	assert.Zero(t, reg.CollectCoins(probeAt(95, 95)))
}

func TestNearestStrictRange(t *testing.T) {
	reg := NewRegistry()
	reg.SpawnButt(geom.Point{X: 150, Y: 0}, Short)
	near := reg.SpawnButt(geom.Point{X: 40, Y: 0}, Normal).ID

	got, dist, ok := reg.Nearest(geom.Point{}, 150)
	require.True(t, ok)
	assert.Equal(t, near, got.ID)
	assert.Equal(t, 40.0, dist)

	require.True(t, reg.Claim(near))
	_, _, ok = reg.Nearest(geom.Point{}, 150)
	assert.False(t, ok, "a butt exactly at range is out of reach")

	_, dist, ok = reg.NearestAny(geom.Point{})
	require.True(t, ok)
	assert.Equal(t, 150.0, dist)
}

func TestRollQualityDistribution(t *testing.T) {
	r := dice.Seeded(99)
	cfg := simulation.DefaultConfig().Butts

	counts := map[Quality]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		counts[RollQuality(r, cfg, 1)]++
	}

	assert.InDelta(t, 0.50, float64(counts[Short])/n, 0.02)
	assert.InDelta(t, 0.35, float64(counts[Normal])/n, 0.02)
	assert.InDelta(t, 0.15, float64(counts[Long])/n, 0.02)
}

func TestRollQualityMultiplierSkews(t *testing.T) {
	cfg := simulation.DefaultConfig().Butts

	longs := func(mult float64) int {
		r := dice.Seeded(5)
		n := 0
		for i := 0; i < 5000; i++ {
			if RollQuality(r, cfg, mult) == Long {
				n++
			}
		}
		return n
	}

	assert.Greater(t, longs(2), longs(1))
	assert.Less(t, longs(0.3), longs(1))

	r := dice.Seeded(11)
	for i := 0; i < 2000; i++ {
		assert.NotEqual(t, Short, RollQuality(r, cfg, 2))
	}
}

func TestShopNear(t *testing.T) {
	shop := NewShop(simulation.DefaultConfig().Shop)

	assert.True(t, shop.Near(geom.Point{X: 132, Y: 674}))
	assert.True(t, shop.Near(geom.Point{X: 100, Y: 650}))
	assert.False(t, shop.Near(geom.Point{X: 250, Y: 674}))
}

func TestTickVisualLeavesGameplayAlone(t *testing.T) {
	reg := NewRegistry()
	b := reg.SpawnButt(geom.Point{X: 1, Y: 2}, Short)
	glow := b.Glow

	reg.TickVisual(0.5)

	got, ok := reg.ButtAt(b.ID)
	require.True(t, ok)
	assert.InDelta(t, glow+1.5, got.Glow, 1e-9)
	assert.Equal(t, geom.Point{X: 1, Y: 2}, got.Pos)
}

func TestClaimClearsVacatedSlot(t *testing.T) {
	reg := NewRegistry()
	a := reg.SpawnButt(geom.Point{X: 10, Y: 10}, Short).ID
	reg.SpawnButt(geom.Point{X: 20, Y: 10}, Normal)
	reg.SpawnButt(geom.Point{X: 30, Y: 10}, Long)

	require.True(t, reg.Claim(a))
	require.Len(t, reg.butts, 2)
	vacated := reg.butts[:3]
	assert.Nil(t, vacated[2])
	assert.Equal(t, Normal, reg.butts[0].Quality)
	assert.Equal(t, Long, reg.butts[1].Quality)
}
