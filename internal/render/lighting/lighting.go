// Package lighting darkens the screen around the player. The visible circle
// grows with nicotine: starved players see almost nothing and the edges
// flicker, sated players get a faint white wash.
package lighting

import (
	"image/color"

	"chosenoffset.com/lastdrag/internal/render"
)

const (
	MinRadius = 60.0
	MaxRadius = 400.0

	// Below FlickerBelow the darkness pulses; above WashAbove the screen
	// is washed toward white.
	FlickerBelow = 20.0
	WashAbove    = 80.0

	darkness = 0.95
	rings    = 24
)

// Radius returns the visible radius in pixels for a nicotine level in
// [0, 100].
func Radius(nicotine float64) float64 {
	n := clamp01(nicotine / 100)
	return MinRadius + (MaxRadius-MinRadius)*n
}

// FlickerAlpha returns the extra darkness for this frame. roll is a uniform
// draw in [0, 1).
func FlickerAlpha(nicotine, roll float64) float64 {
	if nicotine >= FlickerBelow {
		return 0
	}
	intensity := (FlickerBelow - nicotine) / FlickerBelow
	return roll * intensity * 0.3
}

// WashAlpha returns the opacity of the white overlay.
func WashAlpha(nicotine float64) float64 {
	if nicotine <= WashAbove {
		return 0
	}
	return clamp01((nicotine-WashAbove)/(100-WashAbove)) * 0.3
}

// falloff is the target opacity of the cut-out at fraction t of the
// radius: solid to 0.7, then fading to nothing at the edge.
func falloff(t float64) float64 {
	switch {
	case t <= 0:
		return 1
	case t <= 0.7:
		return 1 - 0.2*(t/0.7)
	case t < 1:
		return 0.8 * (1 - (t-0.7)/0.3)
	default:
		return 0
	}
}

// ringAlphas returns the alpha of each concentric disc, outermost first,
// such that drawing them in order with source-over compositing reproduces
// falloff at each ring.
func ringAlphas(n int) []float64 {
	out := make([]float64, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		// disc i covers fractions [0, 1 - i/n]
		target := falloff(1 - float64(i+1)/float64(n))
		a := 1.0
		if prev < 1 {
			a = 1 - (1-target)/(1-prev)
		}
		if a < 0 {
			a = 0
		}
		out[i] = a
		prev = target
	}
	return out
}

// Manager owns the offscreen mask.
type Manager struct {
	renderer render.Renderer
	width    int
	height   int
	mask     render.Image
	hole     render.Image
	wash     render.Image
}

// NewManager creates a lighting manager for a screen of the given size.
func NewManager(r render.Renderer, width, height int) *Manager {
	return &Manager{renderer: r, width: width, height: height}
}

// Resize changes the mask size. The mask is rebuilt on the next Draw.
func (m *Manager) Resize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	if m.mask != nil {
		m.mask.Dispose()
		m.mask = nil
	}
	if m.wash != nil {
		m.wash.Dispose()
		m.wash = nil
	}
}

func (m *Manager) ensure() {
	if m.mask == nil {
		m.mask = m.renderer.NewImage(m.width, m.height)
	}
	if m.wash == nil {
		m.wash = m.renderer.NewImage(m.width, m.height)
		m.wash.Fill(color.White)
	}
	if m.hole == nil {
		size := int(2 * MaxRadius)
		m.hole = m.renderer.NewImage(size, size)
		alphas := ringAlphas(rings)
		for i, a := range alphas {
			r := MaxRadius * (1 - float64(i)/rings)
			m.renderer.FillCircle(m.hole, MaxRadius, MaxRadius, float32(r),
				color.NRGBA{0, 0, 0, uint8(a * 255)})
		}
	}
}

// Draw darkens screen around (x, y), in screen coordinates. roll drives the
// low-nicotine flicker and should be a fresh uniform draw each frame.
func (m *Manager) Draw(screen render.Image, x, y, nicotine, roll float64) {
	m.ensure()

	d := float64(darkness)
	m.mask.Fill(color.NRGBA{0, 0, 0, uint8(d * 255)})

	radius := Radius(nicotine)
	geo := render.NewGeoM()
	geo.Translate(-MaxRadius, -MaxRadius)
	geo.Scale(radius/MaxRadius, radius/MaxRadius)
	geo.Translate(x, y)
	m.mask.DrawImage(m.hole, &render.DrawImageOptions{GeoM: geo, Blend: render.BlendErase})

	if f := FlickerAlpha(nicotine, roll); f > 0 {
		m.renderer.FillRect(m.mask, 0, 0, float32(m.width), float32(m.height),
			color.NRGBA{0, 0, 0, uint8(f * 255)})
	}

	screen.DrawImage(m.mask, nil)

	if w := WashAlpha(nicotine); w > 0 {
		screen.DrawImage(m.wash, &render.DrawImageOptions{Alpha: float32(w)})
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
