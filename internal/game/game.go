package game

import (
	"fmt"
	"log"
	"math/rand"

	"chosenoffset.com/lastdrag/internal/audio"
	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/entity"
	"chosenoffset.com/lastdrag/internal/event"
	"chosenoffset.com/lastdrag/internal/render"
	"chosenoffset.com/lastdrag/internal/render/lighting"
	"chosenoffset.com/lastdrag/internal/sim"
	"chosenoffset.com/lastdrag/internal/simulation"
	"chosenoffset.com/lastdrag/internal/ui/dialogue"
	"chosenoffset.com/lastdrag/internal/ui/hud"
	"chosenoffset.com/lastdrag/internal/ui/minimap"
	"chosenoffset.com/lastdrag/internal/world/citymap"
)

// Ending is how a session finished.
type Ending int

const (
	EndingNone Ending = iota
	EndingWithdrawal
	EndingArrested
	EndingLiberation
)

func (e Ending) String() string {
	switch e {
	case EndingWithdrawal:
		return "withdrawal"
	case EndingArrested:
		return "arrested"
	case EndingLiberation:
		return "liberation"
	default:
		return "none"
	}
}

// Title is the ending screen headline.
func (e Ending) Title() string {
	switch e {
	case EndingWithdrawal:
		return "GAME OVER"
	case EndingArrested:
		return "ARRESTED"
	case EndingLiberation:
		return "LIBERATION"
	default:
		return ""
	}
}

// Message is the ending screen line.
func (e Ending) Message() string {
	switch e {
	case EndingWithdrawal:
		return "The withdrawal won."
	case EndingArrested:
		return "The cops caught you. Where to now..."
	case EndingLiberation:
		return "At last you can see. And you no longer need to."
	default:
		return ""
	}
}

// Sounds plays audio cues.
type Sounds interface {
	Play(c audio.Cue)
}

// Controller decides the player's intent each frame.
type Controller interface {
	Intent(g *Game) Intent
}

// Game holds one play session: the simulation, the player, and the
// presentation that reacts to both.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	World        *citymap.Map
	Config       *simulation.Config
	Director     *sim.Director
	Player       *Player
	Camera       *Camera
	Dialogue     *dialogue.System
	Sound        Sounds
	Control      Controller

	// Presentation, nil until AttachRenderer
	Renderer render.Renderer
	HUD      *hud.HUD
	Lighting *lighting.Manager
	Minimap  *minimap.Minimap

	// UI state
	Messages     []Message
	Ending       Ending
	Chased       bool
	Muted        bool
	EventMessage string

	cosmetic *dice.Roller

	// Debug
	FrameCount int
}

// NewGame creates a session over world. rng drives the simulation; a
// separate source split from it drives cosmetic randomness so drawing never
// changes what happens.
func NewGame(world *citymap.Map, cfg *simulation.Config, rng *rand.Rand, screenWidth, screenHeight int) *Game {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	cosmetic := dice.Seeded(rng.Int63())
	g := &Game{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		World:        world,
		Config:       cfg,
		Director:     sim.New(world, cfg, rng),
		Camera:       NewCamera(float64(screenWidth), float64(screenHeight), world.Width(), world.Height()),
		Dialogue:     dialogue.New(cosmetic),
		cosmetic:     cosmetic,
	}
	g.wireHooks()
	return g
}

// AttachRenderer builds the drawing layers.
func (g *Game) AttachRenderer(r render.Renderer) {
	g.Renderer = r
	g.HUD = hud.New(nil, r, g.ScreenWidth, g.ScreenHeight)
	g.Lighting = lighting.NewManager(r, g.ScreenWidth, g.ScreenHeight)
	g.Minimap = minimap.New(r, g.World.Width(), g.World.Height())
}

func (g *Game) wireHooks() {
	d := g.Director
	d.OnButtCollected = func(q entity.Quality) {
		g.Dialogue.ButtCollected(q)
		g.play(audio.CueCollect)
	}
	d.OnRivalStoleButt = func(entity.Butt) {
		g.Dialogue.RivalStole()
	}
	d.OnPoliceChase = func(started bool) {
		g.Dialogue.Chase(started)
		if started {
			g.play(audio.CuePolice)
		}
	}
	d.OnShopBought = func() {
		g.Dialogue.ShopBought()
		g.play(audio.CueBuy)
		g.ShowMessage("Bought a pack")
	}
	d.OnShopDenied = func() {
		g.Dialogue.ShopDenied()
		g.play(audio.CueWarning)
	}
	d.OnEventChanged = func(k event.Kind, started bool) {
		if started {
			g.ShowMessage(k.Message())
			g.play(audio.CueWarning)
		}
	}
}

func (g *Game) play(c audio.Cue) {
	if g.Sound != nil {
		g.Sound.Play(c)
	}
}

// Start begins a new session: fresh population, fresh player at the spawn,
// camera snapped onto them.
func (g *Game) Start() {
	g.Director.Init()
	g.Player = NewPlayer(g.Config.Player, g.World.PlayerSpawn())
	g.Camera.Snap(g.Player.Center())
	g.Dialogue.Reset()
	g.Dialogue.Started()
	g.Messages = nil
	g.Ending = EndingNone
	g.Chased = false
	g.EventMessage = ""
	g.FrameCount = 0
	if g.HUD != nil {
		g.HUD.Reset()
	}
	log.Printf("Session %s started on %s", g.Director.SessionID(), g.World.Name())
}

// Update advances one frame at 60 TPS.
func (g *Game) Update() error {
	g.Step(1.0 / 60.0)
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// Step advances the session by dt seconds and returns the ending, if any.
// Once ended, further steps do nothing.
func (g *Game) Step(dt float64) Ending {
	if g.Ending != EndingNone || g.Player == nil {
		return g.Ending
	}
	g.FrameCount++

	var in Intent
	if g.Control != nil {
		in = g.Control.Intent(g)
	}

	if g.Player.Update(dt, in, g.World) {
		g.Dialogue.Smoked()
	}
	g.Camera.Follow(g.Player.Center())

	res := g.Director.Update(dt, g.Player)
	g.Chased = res.BeingChased
	g.EventMessage = res.EventMessage
	if res.Arrested {
		g.Player.Arrested = true
	}

	if q, ok := g.Director.CollectButt(g.Player); ok {
		g.Player.Smoke(q)
		g.play(audio.CueSmoke)
	}
	if amount := g.Director.CollectCoin(g.Player); amount > 0 {
		g.Player.Money += amount
		g.play(audio.CueCoin)
		g.ShowMessage(fmt.Sprintf("+%d", amount))
	}
	if in.Buy {
		if ok, cost := g.Director.TryShopPurchase(g.Player, g.Player.Money); ok {
			g.Player.Money -= cost
			g.Player.Light(g.Config.Shop.Nicotine)
		}
	}

	g.Dialogue.Nicotine(g.Player.Nicotine)
	g.Dialogue.Update(dt)
	g.updateMessages(dt)
	if g.HUD != nil {
		g.HUD.Update(dt)
	}

	g.Ending = g.checkEnding()
	if g.Ending != EndingNone {
		log.Printf("Session %s ended: %s after %.1fs", g.Director.SessionID(), g.Ending, g.Director.Clock())
	}
	return g.Ending
}

func (g *Game) checkEnding() Ending {
	switch {
	case g.Player.Nicotine <= 0:
		return EndingWithdrawal
	case g.Player.Arrested:
		return EndingArrested
	case g.Player.Nicotine >= g.Config.Player.MaxNicotine:
		return EndingLiberation
	default:
		return EndingNone
	}
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 2.0,
		MaxTime:  2.0,
	})
}

// Status collects what the HUD shows this frame.
func (g *Game) Status() hud.Status {
	center := g.Player.Center()
	st := hud.Status{
		Nicotine:       g.Player.Nicotine,
		MaxNicotine:    g.Config.Player.MaxNicotine,
		Money:          g.Player.Money,
		Clock:          g.Director.Clock(),
		Event:          g.EventMessage,
		EventRemaining: g.Director.EventRemaining(),
		Chased:         g.Chased,
		Smoking:        g.Player.Smoking(),
		Muted:          g.Muted,
	}
	if z, ok := g.World.ZoneAt(center.X, center.Y); ok {
		st.Zone = z.Label()
	}
	if nb, ok := g.Director.NearestButtTo(g.Player); ok {
		st.HasNearest = true
		st.NearestDistance = nb.Distance
		st.NearestDX = nb.Pos.X - center.X
		st.NearestDY = nb.Pos.Y - center.Y
	}
	return st
}

// EndingScreen collects what the ending screen shows.
func (g *Game) EndingScreen() hud.Ending {
	return hud.Ending{
		Title:    g.Ending.Title(),
		Message:  g.Ending.Message(),
		Survived: g.Director.Clock(),
		Tally:    g.Director.Tally().Snapshot(),
	}
}

// KeyboardController reads WASD/arrows and E.
type KeyboardController struct {
	Input render.InputManager
}

// Intent implements Controller.
func (k KeyboardController) Intent(*Game) Intent {
	var in Intent
	if k.Input.IsKeyPressed(render.KeyW) || k.Input.IsKeyPressed(render.KeyUp) {
		in.Y--
	}
	if k.Input.IsKeyPressed(render.KeyS) || k.Input.IsKeyPressed(render.KeyDown) {
		in.Y++
	}
	if k.Input.IsKeyPressed(render.KeyA) || k.Input.IsKeyPressed(render.KeyLeft) {
		in.X--
	}
	if k.Input.IsKeyPressed(render.KeyD) || k.Input.IsKeyPressed(render.KeyRight) {
		in.X++
	}
	in.Buy = k.Input.IsKeyJustPressed(render.KeyE)
	return in
}
