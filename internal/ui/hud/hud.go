// Package hud draws the overlay on top of the lit scene: the nicotine bar,
// money, the active event, the zone the player stands in, a pointer to the
// nearest butt, the inner monologue, and the start and ending screens.
package hud

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/lastdrag/internal/core/gamestate"
	"chosenoffset.com/lastdrag/internal/render"
	"chosenoffset.com/lastdrag/internal/ui/dialogue"
)

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowZone    bool    `json:"show_zone" yaml:"show_zone"`
	ShowNearest bool    `json:"show_nearest" yaml:"show_nearest"`
	ShowClock   bool    `json:"show_clock" yaml:"show_clock"`
	HintSeconds float64 `json:"hint_seconds" yaml:"hint_seconds"` // how long the controls hint stays up
	Position    string  `json:"position" yaml:"position"`         // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity     float64 `json:"opacity" yaml:"opacity"`           // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowZone:    true,
		ShowNearest: true,
		ShowClock:   false,
		HintSeconds: 5,
		Position:    "top-left",
		Opacity:     0.7,
	}
}

// Status is what the HUD shows for one frame.
type Status struct {
	Nicotine    float64
	MaxNicotine float64
	Money       int
	Clock       float64

	Event          string // empty when no event is active
	EventRemaining float64

	Zone string

	HasNearest      bool
	NearestDistance float64
	NearestDX       float64
	NearestDY       float64

	Chased  bool
	Smoking bool
	Muted   bool
}

// Ending is what the ending screen shows.
type Ending struct {
	Title    string
	Message  string
	Survived float64
	Tally    []gamestate.Entry
}

var (
	colText    = color.RGBA{220, 220, 220, 255}
	colDim     = color.RGBA{150, 150, 150, 255}
	colEmber   = color.RGBA{255, 107, 53, 255}
	colPale    = color.RGBA{247, 197, 159, 255}
	colDanger  = color.RGBA{255, 68, 68, 255}
	colBarBack = color.RGBA{40, 20, 20, 255}
	colPolice  = color.RGBA{65, 105, 225, 255}
)

// HUD manages the heads-up display
type HUD struct {
	config       *HUDConfig
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	panelWidth  int
	panelHeight int
	elapsed     float64
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   200,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Update advances HUD timers (the hint fade and the low-nicotine pulse).
func (h *HUD) Update(dt float64) {
	h.elapsed += dt
}

// Reset restarts HUD timers for a new session.
func (h *HUD) Reset() {
	h.elapsed = 0
}

// BarColor returns the nicotine bar colour for a level, pulsing between
// dark and bright red while starved.
func BarColor(level, elapsed float64) color.RGBA {
	switch {
	case level < 20:
		pulse := 0.5 + 0.5*math.Sin(elapsed*2*math.Pi*2)
		return color.RGBA{uint8(139 + pulse*116), uint8(pulse * 68), uint8(pulse * 68), 255}
	case level > 80:
		return color.RGBA{255, 255, 255, 255}
	default:
		return colEmber
	}
}

// Compass names the direction of (dx, dy) in screen terms, with north up.
func Compass(dx, dy float64) string {
	if dx == 0 && dy == 0 {
		return "here"
	}
	names := [8]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}
	angle := math.Atan2(dy, dx)
	idx := int(math.Round(angle/(math.Pi/4))) % 8
	if idx < 0 {
		idx += 8
	}
	return names[idx]
}

// Draw renders the in-game overlay.
func (h *HUD) Draw(screen render.Image, st Status) {
	x, y := h.calculatePosition()
	h.drawPanel(screen, x, y)

	currentY := y + 8
	h.drawText(screen, "NICOTINE", x+8, currentY, colPale)
	currentY += 16
	currentY = h.drawNicotineBar(screen, x+8, currentY, st.Nicotine, st.MaxNicotine)
	currentY += 6

	h.drawText(screen, fmt.Sprintf("Money: %d", st.Money), x+8, currentY, colText)
	currentY += 16

	if h.config.ShowZone && st.Zone != "" {
		h.drawText(screen, st.Zone, x+8, currentY, colDim)
		currentY += 16
	}

	if h.config.ShowNearest {
		if st.HasNearest {
			h.drawText(screen, fmt.Sprintf("Butt: %dm %s", int(st.NearestDistance/10), Compass(st.NearestDX, st.NearestDY)), x+8, currentY, colEmber)
		} else {
			h.drawText(screen, "Butt: none around", x+8, currentY, colDim)
		}
		currentY += 16
	}

	if h.config.ShowClock {
		h.drawText(screen, fmt.Sprintf("Time: %s", FormatClock(st.Clock)), x+8, currentY, colDim)
		currentY += 16
	}

	if st.Muted {
		h.drawText(screen, "(muted)", x+8, currentY, colDim)
		currentY += 16
	}
	h.panelHeight = currentY - y + 4

	if st.Event != "" {
		h.drawBanner(screen, fmt.Sprintf("%s (%ds)", st.Event, int(math.Ceil(st.EventRemaining))), 12, colPale)
	}
	if st.Chased {
		h.drawBanner(screen, "!! POLICE !!", 32, colPolice)
	}

	if h.elapsed < h.config.HintSeconds {
		hint := "WASD or arrows to move / E to buy at the shop / M to mute"
		w, _ := h.renderer.MeasureText(hint, 1)
		h.drawText(screen, hint, (h.screenWidth-w)/2, h.screenHeight-24, colDim)
	}
}

// DrawDialogue draws a monologue line above the player at screen position
// (px, py). The line fades in its last 30% of time.
func (h *HUD) DrawDialogue(screen render.Image, line dialogue.Line, progress, px, py float64) {
	w, th := h.renderer.MeasureText(line.Text, 1)
	x := float32(px) - float32(w)/2 - 4
	y := float32(py) - 40
	alpha := uint8(200)
	if progress < 0.3 {
		alpha = uint8(200 * progress / 0.3)
	}
	bg := color.RGBA{10, 10, 10, alpha}
	if line.Style == dialogue.Shout {
		bg = color.RGBA{90, 10, 10, alpha}
	}
	h.renderer.FillRect(screen, x, y, float32(w)+8, float32(th)+6, bg)
	clr := colText
	if line.Style == dialogue.Thought {
		clr = colPale
	}
	h.drawText(screen, line.Text, int(x)+4, int(y)+2, clr)
}

// DrawStart renders the title screen.
func (h *HUD) DrawStart(screen render.Image) {
	screen.Fill(color.RGBA{10, 10, 10, 255})
	h.drawCentered(screen, "LAST DRAG", h.screenHeight/2-60, colEmber, 3)
	h.drawCentered(screen, "Find butts before the nicotine runs out.", h.screenHeight/2, colText, 1)
	h.drawCentered(screen, "When the world turns fully bright... you're free.", h.screenHeight/2+18, colText, 1)
	h.drawCentered(screen, "Press ENTER to start", h.screenHeight/2+60, colPale, 1)
}

// DrawEnding renders the ending screen with the session tally.
func (h *HUD) DrawEnding(screen render.Image, e Ending) {
	screen.Fill(color.RGBA{10, 10, 10, 255})
	y := h.screenHeight/2 - 100
	h.drawCentered(screen, e.Title, y, colEmber, 3)
	y += 60
	h.drawCentered(screen, e.Message, y, colText, 1)
	y += 30
	h.drawCentered(screen, fmt.Sprintf("Lasted %s", FormatClock(e.Survived)), y, colDim, 1)
	y += 24
	for _, entry := range e.Tally {
		h.drawCentered(screen, fmt.Sprintf("%-14s %5d", entry.Name, entry.Value), y, colDim, 1)
		y += 16
	}
	h.drawCentered(screen, "Press ENTER to try again", y+20, colPale, 1)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// calculatePosition returns the top-left corner of the HUD panel
func (h *HUD) calculatePosition() (int, int) {
	padding := 10

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - h.panelHeight - padding
	case "bottom-right":
		return h.screenWidth - h.panelWidth - padding, h.screenHeight - h.panelHeight - padding
	default: // "top-left"
		return padding, padding
	}
}

// drawPanel draws the semi-transparent background panel sized from the
// previous frame's content.
func (h *HUD) drawPanel(screen render.Image, x, y int) {
	height := h.panelHeight
	if height == 0 {
		height = 96
	}
	alpha := uint8(h.config.Opacity * 255)
	h.renderer.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), color.RGBA{20, 20, 30, alpha})
	h.renderer.StrokeRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), 1, color.RGBA{60, 60, 80, alpha})
}

// drawNicotineBar draws the bar and returns the y below it.
func (h *HUD) drawNicotineBar(screen render.Image, x, y int, level, maxLevel float64) int {
	if maxLevel <= 0 {
		maxLevel = 100
	}
	barWidth := h.panelWidth - 16
	barHeight := 12

	h.renderer.FillRect(screen, float32(x), float32(y), float32(barWidth), float32(barHeight), colBarBack)

	pct := math.Max(0, math.Min(1, level/maxLevel))
	if pct > 0 {
		fill := math.Max(1, float64(barWidth-2)*pct)
		h.renderer.FillRect(screen, float32(x+1), float32(y+1), float32(fill), float32(barHeight-2), BarColor(level, h.elapsed))
	}
	return y + barHeight + 4
}

func (h *HUD) drawBanner(screen render.Image, text string, y int, clr color.Color) {
	w, th := h.renderer.MeasureText(text, 1)
	x := (h.screenWidth - w) / 2
	h.renderer.FillRect(screen, float32(x-6), float32(y-2), float32(w+12), float32(th+4), color.RGBA{0, 0, 0, 160})
	h.drawText(screen, text, x, y, clr)
}

func (h *HUD) drawCentered(screen render.Image, text string, y int, clr color.Color, scale float64) {
	w, _ := h.renderer.MeasureText(text, scale)
	h.renderer.DrawText(screen, text, (h.screenWidth-w)/2, y, clr, scale)
}

// drawText draws text with a shadow for readability
func (h *HUD) drawText(screen render.Image, text string, x, y int, clr color.Color) {
	h.renderer.DrawText(screen, text, x+1, y+1, color.RGBA{0, 0, 0, 200}, 1)
	h.renderer.DrawText(screen, text, x, y, clr, 1)
}
