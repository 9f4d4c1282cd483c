// Package termview draws a running session into a terminal. It is a
// watcher for autopilot soak runs: the whole city is squeezed onto the
// screen, entities are letters, and a status line tracks the session and
// how past sessions ended.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/game"
	"chosenoffset.com/lastdrag/internal/ui/hud"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

// statusRows is the space kept under the map for text.
const statusRows = 2

var (
	styleGround   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleRoad     = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleBuilding = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGrass    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleButt     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleCoin     = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleSmoker   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleRival    = tcell.StyleDefault.Foreground(tcell.ColorTan)
	stylePolice   = tcell.StyleDefault.Foreground(tcell.ColorRoyalBlue).Bold(true)
	styleShop     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAlert    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// View renders a session onto a tcell screen and restarts it whenever it
// ends.
type View struct {
	Screen tcell.Screen
	Game   *game.Game

	// Speed is how many simulation frames run per tick.
	Speed  int
	Paused bool

	Sessions int
	Endings  map[game.Ending]int
	Longest  float64
}

// New creates a view of g on screen. g must already have a controller.
func New(screen tcell.Screen, g *game.Game) *View {
	return &View{
		Screen:  screen,
		Game:    g,
		Speed:   1,
		Endings: make(map[game.Ending]int),
	}
}

// Start begins the first session.
func (v *View) Start() {
	v.Game.Start()
	v.Sessions = 1
}

// Tick advances the session by Speed frames, recording and restarting on
// an ending.
func (v *View) Tick() {
	if v.Paused {
		return
	}
	for i := 0; i < v.Speed; i++ {
		end := v.Game.Step(1.0 / 60.0)
		if end == game.EndingNone {
			continue
		}
		v.Endings[end]++
		if c := v.Game.Director.Clock(); c > v.Longest {
			v.Longest = c
		}
		v.Game.Start()
		v.Sessions++
	}
}

// HandleEvent reacts to keys. It returns false when the viewer should quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'p':
				v.Paused = !v.Paused
			case '+', '=':
				if v.Speed < 64 {
					v.Speed *= 2
				}
			case '-':
				if v.Speed > 1 {
					v.Speed /= 2
				}
			case 'r':
				v.Game.Start()
				v.Sessions++
			}
		}
	case *tcell.EventResize:
		v.Screen.Sync()
	}
	return true
}

// Draw renders the map, entities and status lines.
func (v *View) Draw() {
	v.Screen.Clear()
	cols, rows := v.Screen.Size()
	rows -= statusRows
	if cols <= 0 || rows <= 0 {
		v.Screen.Show()
		return
	}

	world := v.Game.World
	cw := world.Width() / float64(cols)
	ch := world.Height() / float64(rows)
	cell := func(p geom.Point) (int, int, bool) {
		x, y := int(p.X/cw), int(p.Y/ch)
		return x, y, x >= 0 && x < cols && y >= 0 && y < rows
	}
	put := func(p geom.Point, r rune, style tcell.Style) {
		if x, y, ok := cell(p); ok {
			v.Screen.SetContent(x, y, r, nil, style)
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t, ok := world.TileAtPoint((float64(x)+0.5)*cw, (float64(y)+0.5)*ch)
			if !ok {
				continue
			}
			r, style := tileGlyph(t)
			v.Screen.SetContent(x, y, r, nil, style)
		}
	}

	snap := v.Game.Director.MinimapSnapshot()
	put(snap.Shop, 'S', styleShop)
	for _, p := range snap.Coins {
		put(p, '$', styleCoin)
	}
	for _, p := range snap.Butts {
		put(p, ',', styleButt)
	}
	for _, p := range snap.Smokers {
		put(p, 's', styleSmoker)
	}
	for _, p := range snap.Rivals {
		put(p, 'r', styleRival)
	}
	for _, p := range snap.Police {
		put(p, 'P', stylePolice)
	}
	if v.Game.Player != nil {
		put(v.Game.Player.Center(), '@', stylePlayer)
	}

	v.drawStatus(rows, cols)
	v.Screen.Show()
}

func (v *View) drawStatus(y, width int) {
	g := v.Game
	if g.Player == nil {
		return
	}
	line := fmt.Sprintf("nic %5.1f  $%d  %s  butts %d  x%d",
		g.Player.Nicotine, g.Player.Money, hud.FormatClock(g.Director.Clock()),
		g.Director.Tally().Butts(), v.Speed)
	if g.EventMessage != "" {
		line += "  " + g.EventMessage
	}
	if v.Paused {
		line += "  [paused]"
	}
	style := styleStatus
	if g.Chased {
		line += "  POLICE"
		style = styleAlert
	}
	v.drawText(0, y, width, line, style)

	history := fmt.Sprintf("session %d  withdrawal %d  arrested %d  liberation %d  longest %s",
		v.Sessions, v.Endings[game.EndingWithdrawal], v.Endings[game.EndingArrested],
		v.Endings[game.EndingLiberation], hud.FormatClock(v.Longest))
	v.drawText(0, y+1, width, history, styleStatus)
}

func (v *View) drawText(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		v.Screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func tileGlyph(t citymap.Tile) (rune, tcell.Style) {
	switch t.Kind {
	case citymap.Road:
		return '=', styleRoad
	case citymap.Building:
		return '#', styleBuilding
	case citymap.Wall:
		return 'W', styleBuilding
	case citymap.Bench:
		return 'b', styleGround
	case citymap.Trash:
		return 't', styleGround
	default:
		if t.Variant == 1 {
			return '"', styleGrass
		}
		return ' ', styleGround
	}
}

// Run drives the view at tps ticks per second until ctx is done or the
// user quits.
func (v *View) Run(ctx context.Context, tps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.Screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Tick()
			v.Draw()
		}
	}
}
