package termview

import (
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/game"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newView(t *testing.T) *View {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24+statusRows)

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

	g := game.NewGame(citymap.NewCity(), cfg, rand.New(rand.NewSource(1)), 960, 640)
	g.Director.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	v := New(screen, g)
	v.Start()
	return v
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y, width int) string {
	out := make([]rune, width)
	for x := range out {
		out[x] = runeAt(s, x, y)
	}
	return string(out)
}

func TestDrawPlacesPlayerAndPolice(t *testing.T) {
	v := newView(t)
	v.Draw()

	// 2400x1600 onto 80x24 cells: 30 by 66.7 px per cell
	c := v.Game.Player.Center()
	assert.Equal(t, '@', runeAt(v.Screen, int(c.X/30), int(c.Y/(1600.0/24))))
	assert.Equal(t, 'P', runeAt(v.Screen, 2000/30, int(1400/(1600.0/24))))
	assert.Equal(t, 'W', runeAt(v.Screen, 0, 0))
	assert.Contains(t, rowText(v.Screen, 24, 80), "nic  50.0")
	assert.Contains(t, rowText(v.Screen, 25, 80), "session 1")
}

func TestTickRestartsAfterEnding(t *testing.T) {
	v := newView(t)
	v.Game.Player.Nicotine = 0.001

	v.Tick()

	assert.Equal(t, 1, v.Endings[game.EndingWithdrawal])
	assert.Equal(t, 2, v.Sessions)
	assert.Equal(t, game.EndingNone, v.Game.Ending)
	assert.Equal(t, 50.0, v.Game.Player.Nicotine)
}

func TestTickRespectsPauseAndSpeed(t *testing.T) {
	v := newView(t)

	v.Paused = true
	v.Tick()
	assert.Zero(t, v.Game.FrameCount)

	v.Paused = false
	v.Speed = 4
	v.Tick()
	assert.Equal(t, 4, v.Game.FrameCount)
}

func TestHandleEventKeys(t *testing.T) {
	v := newView(t)
	key := func(r rune) bool {
		return v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	assert.True(t, key('+'))
	assert.True(t, key('+'))
	assert.Equal(t, 4, v.Speed)
	assert.True(t, key('-'))
	assert.Equal(t, 2, v.Speed)

	assert.True(t, key('p'))
	assert.True(t, v.Paused)

	assert.True(t, key('r'))
	assert.Equal(t, 2, v.Sessions)

	assert.False(t, key('q'))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}
