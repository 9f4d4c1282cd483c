package game

import (
	"log"

	"chosenoffset.com/lastdrag/internal/audio"
	"chosenoffset.com/lastdrag/internal/render"
)

// State is the current screen.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "start"
	}
}

// Mutable is a sound sink that can be silenced.
type Mutable interface {
	Sounds
	SetMuted(bool)
	Muted() bool
}

// Manager handles the overall game state: the title screen, the session and
// the ending screen.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Sound        Mutable

	// Autoplay skips the title screen and restarts after every ending.
	Autoplay bool
	// RestartDelay is how long the ending screen stays up under Autoplay.
	RestartDelay float64

	endedFor float64
}

// NewManager creates a new game manager around a session.
func NewManager(g *Game, r render.Renderer, input render.InputManager, width, height int) *Manager {
	if r != nil {
		g.AttachRenderer(r)
	}
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        StateStart,
		Game:         g,
		Renderer:     r,
		InputMgr:     input,
		RestartDelay: 3,
	}
}

// SetSound attaches a sound sink to the manager and its session.
func (m *Manager) SetSound(s Mutable) {
	m.Sound = s
	m.Game.Sound = s
	m.Game.Muted = s.Muted()
}

func (m *Manager) start() {
	m.Game.Start()
	m.State = StatePlaying
	m.endedFor = 0
}

// Update updates the game state.
func (m *Manager) Update() error {
	const dt = 1.0 / 60.0

	if m.Sound != nil && m.InputMgr.IsKeyJustPressed(render.KeyM) {
		m.Sound.SetMuted(!m.Sound.Muted())
		m.Game.Muted = m.Sound.Muted()
	}
	if m.Game.Minimap != nil && m.InputMgr.IsKeyJustPressed(render.KeyTab) {
		m.Game.Minimap.Visible = !m.Game.Minimap.Visible
	}

	switch m.State {
	case StateStart:
		if m.Autoplay || m.InputMgr.IsKeyJustPressed(render.KeyEnter) || m.InputMgr.IsKeyJustPressed(render.KeySpace) {
			m.start()
			return nil
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
	case StatePlaying:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.State = StateStart
			return nil
		}
		if end := m.Game.Step(dt); end != EndingNone {
			m.State = StateEnded
			if end == EndingArrested || end == EndingWithdrawal {
				m.play(audio.CueWarning)
			}
		}
	case StateEnded:
		m.endedFor += dt
		if m.InputMgr.IsKeyJustPressed(render.KeyEnter) || (m.Autoplay && m.endedFor >= m.RestartDelay) {
			log.Printf("Restarting after %s", m.Game.Ending)
			m.start()
			return nil
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.State = StateStart
		}
	}
	return nil
}

func (m *Manager) play(c audio.Cue) {
	if m.Sound != nil {
		m.Sound.Play(c)
	}
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	if m.Game.HUD == nil {
		return
	}
	switch m.State {
	case StateStart:
		m.Game.HUD.DrawStart(screen)
	case StatePlaying:
		m.Game.Draw(screen)
	case StateEnded:
		m.Game.HUD.DrawEnding(screen, m.Game.EndingScreen())
	}
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
