package hud

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/lastdrag/internal/core/gamestate"
	"chosenoffset.com/lastdrag/internal/render/rendertest"
	"chosenoffset.com/lastdrag/internal/ui/dialogue"
)

func TestCompass(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   string
	}{
		{0, -10, "N"},
		{10, -10, "NE"},
		{10, 0, "E"},
		{10, 10, "SE"},
		{0, 10, "S"},
		{-10, 10, "SW"},
		{-10, 0, "W"},
		{-10, -10, "NW"},
		{0, 0, "here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compass(tt.dx, tt.dy), "(%v,%v)", tt.dx, tt.dy)
	}
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, BarColor(90, 0))
	assert.Equal(t, colEmber, BarColor(50, 0))
	low := BarColor(10, 0)
	assert.Greater(t, low.R, low.G, "starved bar is red")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(-3))
	assert.Equal(t, "0:59", FormatClock(59.9))
	assert.Equal(t, "2:05", FormatClock(125))
}

func TestDrawShowsStatus(t *testing.T) {
	r := rendertest.NewRenderer()
	h := New(nil, r, 960, 640)
	screen := r.NewImage(960, 640)

	h.Draw(screen, Status{
		Nicotine:        42,
		MaxNicotine:     100,
		Money:           300,
		Event:           "Rush hour! Smokers everywhere",
		EventRemaining:  12.2,
		Zone:            "Park",
		HasNearest:      true,
		NearestDistance: 230,
		NearestDX:       -5,
		NearestDY:       0,
		Chased:          true,
	})

	assert.True(t, r.HasText("NICOTINE"))
	assert.True(t, r.HasText("Money: 300"))
	assert.True(t, r.HasText("Rush hour! Smokers everywhere (13s)"))
	assert.True(t, r.HasText("Park"))
	assert.True(t, r.HasText("Butt: 23m W"))
	assert.True(t, r.HasText("POLICE"))
	assert.True(t, r.HasText("WASD"), "hint visible at start")
}

func TestHintFades(t *testing.T) {
	r := rendertest.NewRenderer()
	h := New(nil, r, 960, 640)
	h.Update(6)
	h.Draw(r.NewImage(960, 640), Status{MaxNicotine: 100})
	assert.False(t, r.HasText("WASD"))
	assert.True(t, r.HasText("none around"))
}

func TestDrawEndingListsTally(t *testing.T) {
	r := rendertest.NewRenderer()
	h := New(nil, r, 960, 640)
	h.DrawEnding(r.NewImage(960, 640), Ending{
		Title:    "ARRESTED",
		Message:  "The cops caught you.",
		Survived: 75,
		Tally:    []gamestate.Entry{{Name: gamestate.Steals, Value: 3}},
	})
	assert.True(t, r.HasText("ARRESTED"))
	assert.True(t, r.HasText("Lasted 1:15"))
	assert.True(t, r.HasText(gamestate.Steals))
}

func TestDrawDialogue(t *testing.T) {
	r := rendertest.NewRenderer()
	h := New(nil, r, 960, 640)
	h.DrawDialogue(r.NewImage(960, 640), dialogue.Line{Text: "Run!", Style: dialogue.Shout, Duration: 1}, 1, 480, 320)
	assert.True(t, r.HasText("Run!"))
	assert.Equal(t, 1, r.Count("rect"))
}
