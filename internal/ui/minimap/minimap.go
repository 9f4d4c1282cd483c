// Package minimap draws a scaled overview of the whole city in a corner of
// the screen.
package minimap

import (
	"image/color"
	"math"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/render"
	"chosenoffset.com/lastdrag/internal/sim"
)

const (
	Width  = 120
	Height = 80
)

var (
	colBack   = color.RGBA{0, 0, 0, 178}
	colBorder = color.RGBA{51, 51, 51, 255}
	colButt   = color.RGBA{255, 107, 53, 255}
	colCoin   = color.RGBA{255, 215, 0, 255}
	colSmoker = color.RGBA{136, 136, 136, 255}
	colRival  = color.RGBA{170, 136, 68, 255}
	colPolice = color.RGBA{65, 105, 225, 255}
	colShop   = color.RGBA{120, 200, 120, 255}
	colPlayer = color.RGBA{0, 255, 0, 255}
)

// Minimap projects world positions into a Width x Height box.
type Minimap struct {
	renderer render.Renderer
	scale    float64
	Visible  bool
}

// New creates a minimap for a world of the given size, preserving aspect.
func New(r render.Renderer, worldWidth, worldHeight float64) *Minimap {
	scale := 1.0
	if worldWidth > 0 && worldHeight > 0 {
		scale = math.Min(Width/worldWidth, Height/worldHeight)
	}
	return &Minimap{renderer: r, scale: scale, Visible: true}
}

// Scale returns world units to minimap pixels.
func (m *Minimap) Scale() float64 { return m.scale }

// Project maps a world point to minimap-local pixels.
func (m *Minimap) Project(p geom.Point) (float32, float32) {
	return float32(p.X * m.scale), float32(p.Y * m.scale)
}

// Draw renders the minimap with its top-left at (x, y).
func (m *Minimap) Draw(screen render.Image, x, y float32, snap sim.Snapshot, player geom.Point) {
	if !m.Visible {
		return
	}
	m.renderer.FillRect(screen, x, y, Width, Height, colBack)
	m.renderer.StrokeRect(screen, x, y, Width, Height, 1, colBorder)

	dot := func(p geom.Point, size float32, clr color.Color) {
		px, py := m.Project(p)
		m.renderer.FillRect(screen, x+px-size/2, y+py-size/2, size, size, clr)
	}

	dot(snap.Shop, 4, colShop)
	for _, p := range snap.Butts {
		dot(p, 2, colButt)
	}
	for _, p := range snap.Coins {
		dot(p, 2, colCoin)
	}
	for _, p := range snap.Smokers {
		dot(p, 3, colSmoker)
	}
	for _, p := range snap.Rivals {
		dot(p, 3, colRival)
	}
	for _, p := range snap.Police {
		dot(p, 4, colPolice)
	}

	px, py := m.Project(player)
	m.renderer.FillCircle(screen, x+px, y+py, 3, colPlayer)
}
