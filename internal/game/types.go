package game

import (
	"math"

	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// Collider answers whether a box would overlap something solid.
type Collider interface {
	IsBlocked(x, y, w, h float64) bool
}

// Intent is the movement a controller asks for this frame. Each axis is
// -1, 0 or 1; Buy asks to purchase at the shop.
type Intent struct {
	X, Y float64
	Buy  bool
}

// Player represents the player's physical state in the world. Pos is the
// top-left corner of the player's box.
type Player struct {
	Pos      geom.Point
	Width    float64
	Height   float64
	Nicotine float64
	Money    int
	Arrested bool

	Facing int // -1 left, 1 right
	Moving bool
	Anim   float64

	cfg        simulation.PlayerConfig
	smokeTimer float64
}

// NewPlayer places a fresh player at spawn.
func NewPlayer(cfg simulation.PlayerConfig, spawn geom.Point) *Player {
	return &Player{
		Pos:      spawn,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Nicotine: cfg.StartNicotine,
		Facing:   1,
		cfg:      cfg,
	}
}

// Position implements sim.PlayerView.
func (p *Player) Position() geom.Point { return p.Pos }

// Bounds implements sim.PlayerView.
func (p *Player) Bounds() geom.Rect { return geom.RectAt(p.Pos, p.Width, p.Height) }

// Center returns the middle of the player's box.
func (p *Player) Center() geom.Point { return p.Bounds().Center() }

// IsStealing implements sim.PlayerView. Lighting up a scavenged butt in
// the street is what the police react to.
func (p *Player) IsStealing() bool { return p.smokeTimer > 0 }

// Smoking reports whether the player is paused smoking.
func (p *Player) Smoking() bool { return p.smokeTimer > 0 }

// Speed returns the movement speed for the current nicotine level.
func (p *Player) Speed() float64 {
	switch {
	case p.Nicotine < p.cfg.CrawlBelow:
		return p.cfg.Speed * p.cfg.CrawlFactor
	case p.Nicotine < p.cfg.SlowBelow:
		return p.cfg.Speed * p.cfg.SlowFactor
	default:
		return p.cfg.Speed
	}
}

// Smoke adds the butt's nicotine and starts the smoking pause.
func (p *Player) Smoke(q entity.Quality) {
	p.Nicotine += q.Nicotine()
	p.smokeTimer = p.cfg.SmokeDuration
}

// Light adds nicotine from a fresh pack and starts the smoking pause.
func (p *Player) Light(amount float64) {
	p.Nicotine += amount
	p.smokeTimer = p.cfg.SmokeDuration
}

// Update moves the player by intent, resolving each axis separately so the
// player slides along walls. It returns true on the frame the smoking
// pause ends.
func (p *Player) Update(dt float64, in Intent, world Collider) (finishedSmoking bool) {
	p.Nicotine -= p.cfg.Decay * dt

	if p.smokeTimer > 0 {
		p.smokeTimer -= dt
		p.Moving = false
		return p.smokeTimer <= 0
	}

	vx, vy := in.X, in.Y
	if vx != 0 && vy != 0 {
		vx /= math.Sqrt2
		vy /= math.Sqrt2
	}
	speed := p.Speed()
	vx *= speed
	vy *= speed

	if vx < 0 {
		p.Facing = -1
	} else if vx > 0 {
		p.Facing = 1
	}
	p.Moving = vx != 0 || vy != 0

	nx := p.Pos.X + vx*dt
	if !world.IsBlocked(nx, p.Pos.Y, p.Width, p.Height) {
		p.Pos.X = nx
	}
	ny := p.Pos.Y + vy*dt
	if !world.IsBlocked(p.Pos.X, ny, p.Width, p.Height) {
		p.Pos.Y = ny
	}

	if p.Moving {
		p.Anim += dt
	} else {
		p.Anim = 0
	}
	return false
}

// Camera tracks the viewport position for scrolling the city. X, Y is the
// top-left corner of the viewport in world coordinates.
type Camera struct {
	X, Y      float64
	Width     float64
	Height    float64
	Smoothing float64

	mapWidth  float64
	mapHeight float64
}

// NewCamera creates a camera for a screen of the given size over a map.
func NewCamera(screenW, screenH, mapW, mapH float64) *Camera {
	return &Camera{
		Width:     screenW,
		Height:    screenH,
		Smoothing: 0.1,
		mapWidth:  mapW,
		mapHeight: mapH,
	}
}

// Follow eases the camera toward centring target, then clamps it to the
// map.
func (c *Camera) Follow(target geom.Point) {
	tx := target.X - c.Width/2
	ty := target.Y - c.Height/2
	c.X += (tx - c.X) * c.Smoothing
	c.Y += (ty - c.Y) * c.Smoothing
	c.clamp()
}

// Snap centres the camera on target immediately.
func (c *Camera) Snap(target geom.Point) {
	c.X = target.X - c.Width/2
	c.Y = target.Y - c.Height/2
	c.clamp()
}

func (c *Camera) clamp() {
	c.X = math.Max(0, math.Min(c.X, c.mapWidth-c.Width))
	c.Y = math.Max(0, math.Min(c.Y, c.mapHeight-c.Height))
}

// Viewport returns the world rectangle on screen.
func (c *Camera) Viewport() geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// IsVisible reports whether a world box overlaps the viewport.
func (c *Camera) IsVisible(r geom.Rect) bool {
	return r.Intersects(c.Viewport())
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X - c.X, Y: p.Y - c.Y}
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(p geom.Point) geom.Point {
	return geom.Point{X: p.X + c.X, Y: p.Y + c.Y}
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
