// Package rendertest provides a recording Renderer and InputManager for
// tests that exercise drawing code without a window.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"chosenoffset.com/lastdrag/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// Op is one recorded draw call.
type Op struct {
	Kind  string // "rect", "strokerect", "circle", "strokecircle", "text", "image", "fill"
	X, Y  float64
	W, H  float64
	Text  string
	Color color.Color
	Blend render.Blend
}

// Renderer records every call made through it.
type Renderer struct {
	mu  sync.Mutex
	Ops []Op
}

// NewRenderer returns an empty recorder.
func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) record(op Op) {
	r.mu.Lock()
	r.Ops = append(r.Ops, op)
	r.mu.Unlock()
}

// Texts returns every string drawn so far.
func (r *Renderer) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any drawn string contains sub.
func (r *Renderer) HasText(sub string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// Count returns the number of recorded ops of a kind.
func (r *Renderer) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears the recording.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.Ops = nil
	r.mu.Unlock()
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{r: r, w: width, h: height}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.record(Op{Kind: "rect", X: float64(x), Y: float64(y), W: float64(width), H: float64(height), Color: clr})
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	r.record(Op{Kind: "strokerect", X: float64(x), Y: float64(y), W: float64(width), H: float64(height), Color: clr})
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.record(Op{Kind: "circle", X: float64(x), Y: float64(y), W: float64(radius), Color: clr})
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.record(Op{Kind: "strokecircle", X: float64(x), Y: float64(y), W: float64(radius), Color: clr})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.record(Op{Kind: "text", X: float64(x), Y: float64(y), Text: text, Color: clr})
}

func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(float64(len(text)) * 6 * scale), int(13 * scale)
}

// Image is an in-memory surface that forwards draws to its Renderer.
type Image struct {
	r        *Renderer
	w, h     int
	Disposed bool
}

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *Image) Size() (int, int)        { return i.w, i.h }
func (i *Image) Dispose()                { i.Disposed = true }
func (i *Image) String() string          { return fmt.Sprintf("image %dx%d", i.w, i.h) }

func (i *Image) Fill(clr color.Color) {
	i.r.record(Op{Kind: "fill", W: float64(i.w), H: float64(i.h), Color: clr})
}

func (i *Image) Clear() {
	i.r.record(Op{Kind: "fill", W: float64(i.w), H: float64(i.h)})
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := Op{Kind: "image"}
	if opts != nil {
		op.Blend = opts.Blend
		if g, ok := opts.GeoM.(*GeoM); ok {
			op.X, op.Y = g.TX, g.TY
		}
	}
	i.r.record(op)
}

// GeoM tracks translation and scale.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *GeoM) Scale(sx, sy float64) {
	if g.SX == 0 {
		g.SX, g.SY = 1, 1
	}
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

func (g *GeoM) Reset() { *g = GeoM{} }

// Input is a scripted InputManager. Held keys stay down until released;
// tapped keys are "just pressed" until the next Advance.
type Input struct {
	held   map[render.Key]bool
	tapped map[render.Key]bool
}

// NewInput returns an input with nothing pressed.
func NewInput() *Input {
	return &Input{held: map[render.Key]bool{}, tapped: map[render.Key]bool{}}
}

// Hold presses keys until Release.
func (in *Input) Hold(keys ...render.Key) {
	for _, k := range keys {
		in.held[k] = true
	}
}

// Release lets go of keys.
func (in *Input) Release(keys ...render.Key) {
	for _, k := range keys {
		delete(in.held, k)
	}
}

// Tap marks keys as just pressed for one frame.
func (in *Input) Tap(keys ...render.Key) {
	for _, k := range keys {
		in.tapped[k] = true
	}
}

// Advance ends the frame, clearing taps.
func (in *Input) Advance() {
	in.tapped = map[render.Key]bool{}
}

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.held[key] || in.tapped[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.tapped[key] }
