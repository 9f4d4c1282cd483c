package game

import (
	"image/color"
	"math"

	"chosenoffset.com/lastdrag/internal/agent"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/render"
	"chosenoffset.com/lastdrag/internal/sim"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

var (
	colBackground = color.RGBA{10, 10, 10, 255}
	colGround     = color.RGBA{42, 42, 46, 255}
	colGrass      = color.RGBA{34, 58, 34, 255}
	colRoad       = color.RGBA{28, 28, 30, 255}
	colWall       = color.RGBA{20, 20, 24, 255}
	colBench      = color.RGBA{92, 64, 40, 255}
	colTrash      = color.RGBA{60, 70, 60, 255}
	colButt       = color.RGBA{240, 230, 210, 255}
	colFilter     = color.RGBA{210, 140, 60, 255}
	colWet        = color.RGBA{150, 160, 175, 255}
	colEmber      = color.RGBA{255, 107, 53, 255}
	colCoin       = color.RGBA{255, 215, 0, 255}
	colShop       = color.RGBA{60, 110, 60, 255}
	colSmoker     = color.RGBA{110, 110, 120, 255}
	colRival      = color.RGBA{170, 136, 68, 255}
	colPolice     = color.RGBA{65, 105, 225, 255}
	colSiren      = color.RGBA{230, 40, 40, 255}
	colPlayer     = color.RGBA{200, 190, 170, 255}
	colMessage    = color.RGBA{255, 230, 160, 255}

	buildingPalette = []color.RGBA{
		{70, 60, 60, 255},
		{60, 64, 78, 255},
		{78, 70, 56, 255},
		{58, 70, 62, 255},
		{74, 58, 72, 255},
		{64, 64, 64, 255},
	}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	if g.Renderer == nil || g.Player == nil {
		return
	}
	screen.Fill(colBackground)

	view := g.Camera.Viewport()
	g.drawTiles(screen, view)

	scene := g.Director.Visible(view)
	g.drawShop(screen, scene.Shop)
	for _, c := range scene.Coins {
		g.drawCoin(screen, c)
	}
	for _, b := range scene.Butts {
		g.drawButt(screen, b)
	}
	for _, s := range scene.Smokers {
		g.drawSmoker(screen, s)
	}
	for _, rv := range scene.Rivals {
		g.drawActor(screen, rv.Actor, colRival)
	}
	for _, p := range scene.Police {
		g.drawPolice(screen, p)
	}
	g.drawPlayer(screen)

	center := g.Camera.WorldToScreen(g.Player.Center())
	g.Lighting.Draw(screen, center.X, center.Y, g.Player.Nicotine, g.cosmetic.Float64())

	g.drawUI(screen, center)
}

func (g *Game) drawTiles(screen render.Image, view geom.Rect) {
	ts := g.World.TileSize()
	c0 := int(math.Floor(view.X / ts))
	r0 := int(math.Floor(view.Y / ts))
	c1 := int(math.Ceil((view.X + view.Width) / ts))
	r1 := int(math.Ceil((view.Y + view.Height) / ts))

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			tile, ok := g.World.TileAt(col, row)
			if !ok {
				continue
			}
			p := g.Camera.WorldToScreen(geom.Point{X: float64(col) * ts, Y: float64(row) * ts})
			g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(ts), float32(ts), tileColor(tile))
		}
	}
}

func tileColor(t citymap.Tile) color.RGBA {
	switch t.Kind {
	case citymap.Road:
		return colRoad
	case citymap.Building:
		return buildingPalette[int(t.Variant)%len(buildingPalette)]
	case citymap.Wall:
		return colWall
	case citymap.Bench:
		return colBench
	case citymap.Trash:
		return colTrash
	default:
		if t.Variant == 1 {
			return colGrass
		}
		return colGround
	}
}

func (g *Game) drawShop(screen render.Image, s entity.Shop) {
	r := s.Bounds()
	if !g.Camera.IsVisible(r) {
		return
	}
	p := g.Camera.WorldToScreen(r.Min())
	g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(r.Width), float32(r.Height), colShop)
	g.Renderer.DrawText(screen, "24H", int(p.X)+22, int(p.Y)+16, colMessage, 1)
	if s.Near(g.Player.Position()) {
		g.Renderer.StrokeCircle(screen, float32(p.X+r.Width/2), float32(p.Y+r.Height/2), float32(s.Radius), 1, colMessage)
	}
}

func (g *Game) drawCoin(screen render.Image, c entity.Coin) {
	p := g.Camera.WorldToScreen(c.Pos)
	bob := 2 * math.Sin(c.Bob)
	g.Renderer.FillCircle(screen, float32(p.X), float32(p.Y+bob), 5, colCoin)
}

func (g *Game) drawButt(screen render.Image, b entity.Butt) {
	p := g.Camera.WorldToScreen(b.Pos)
	w := b.Quality.Width()
	body := colButt
	if b.Wet {
		body = colWet
	}
	g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(w), 3, body)
	g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), 3, 3, colFilter)
	if !b.Wet {
		glow := 0.5 + 0.5*math.Sin(b.Glow)
		g.Renderer.FillCircle(screen, float32(p.X+w), float32(p.Y+1.5), float32(1+glow), colEmber)
	}
}

func (g *Game) drawActor(screen render.Image, a sim.Actor, clr color.Color) {
	p := g.Camera.WorldToScreen(a.Pos)
	g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(a.Width), float32(a.Height), clr)
	// head
	g.Renderer.FillRect(screen, float32(p.X+a.Width/4), float32(p.Y-4), float32(a.Width/2), 6, clr)
}

func (g *Game) drawSmoker(screen render.Image, s sim.SmokerView) {
	g.drawActor(screen, s.Actor, colSmoker)
	if s.Kind == agent.Vaper {
		return
	}
	p := g.Camera.WorldToScreen(s.Pos)
	// ember shrinks as the cigarette burns down
	r := float32(2.5 * (1 - s.Progress))
	if r > 0.5 {
		g.Renderer.FillCircle(screen, float32(p.X+s.Width+2), float32(p.Y+8), r, colEmber)
	}
}

func (g *Game) drawPolice(screen render.Image, p sim.PoliceView) {
	g.drawActor(screen, p.Actor, colPolice)
	if p.Mode == agent.Chase && math.Sin(p.Anim*10) > 0 {
		s := g.Camera.WorldToScreen(p.Pos)
		g.Renderer.FillRect(screen, float32(s.X+p.Width/4), float32(s.Y-8), float32(p.Width/2), 3, colSiren)
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	pl := g.Player
	p := g.Camera.WorldToScreen(pl.Pos)
	g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(pl.Width), float32(pl.Height), colPlayer)
	if pl.Smoking() {
		x := p.X + pl.Width + 1
		if pl.Facing < 0 {
			x = p.X - 3
		}
		g.Renderer.FillCircle(screen, float32(x), float32(p.Y+6), 2, colEmber)
	}
}

func (g *Game) drawUI(screen render.Image, player geom.Point) {
	if line, ok := g.Dialogue.Current(); ok {
		g.HUD.DrawDialogue(screen, line, g.Dialogue.Progress(), player.X, player.Y)
	}

	for i, msg := range g.Messages {
		w, _ := g.Renderer.MeasureText(msg.Text, 1)
		y := g.ScreenHeight/2 + 60 + i*16
		g.Renderer.DrawText(screen, msg.Text, (g.ScreenWidth-w)/2, y, colMessage, 1)
	}

	g.HUD.Draw(screen, g.Status())
	g.Minimap.Draw(screen, float32(g.ScreenWidth-130), float32(g.ScreenHeight-90),
		g.Director.MinimapSnapshot(), g.Player.Center())
}
