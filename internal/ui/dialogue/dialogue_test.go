package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/entity"
)

func newSystem() *System { return New(dice.Seeded(7)) }

func TestFirstLineShowsImmediately(t *testing.T) {
	s := newSystem()
	s.ButtCollected(entity.Long)

	line, ok := s.Current()
	require.True(t, ok)
	assert.Contains(t, collectLong, line.Text)
	assert.Equal(t, 2.5, line.Duration)
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
}

func TestQueueIsBounded(t *testing.T) {
	s := newSystem()
	for i := 0; i < 5; i++ {
		s.ButtCollected(entity.Normal)
	}
	assert.Equal(t, MaxQueued, s.Queued())
}

func TestQueuedLinePromotedWhenCurrentExpires(t *testing.T) {
	s := newSystem()
	s.ButtCollected(entity.Short)
	s.ShopBought()
	require.Equal(t, 1, s.Queued())

	s.Update(2.6)
	line, ok := s.Current()
	require.True(t, ok)
	assert.Contains(t, bought, line.Text)
	assert.Equal(t, Speak, line.Style)
	assert.Zero(t, s.Queued())

	s.Update(2.1)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestCooldownsSuppressRepeats(t *testing.T) {
	tests := []struct {
		name    string
		trigger func(*System)
		wait    float64
	}{
		{"steal", (*System).RivalStole, 8},
		{"shop denied", (*System).ShopDenied, 10},
		{"chase", func(s *System) { s.Chase(true) }, 5},
		{"critical", func(s *System) { s.Nicotine(10) }, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSystem()
			tt.trigger(s)
			tt.trigger(s)
			assert.Zero(t, s.Queued(), "second trigger inside cooldown")

			s.Update(tt.wait - 0.5)
			tt.trigger(s)
			assert.Zero(t, s.Queued())

			s.Update(1)
			tt.trigger(s)
			_, showing := s.Current()
			assert.True(t, showing || s.Queued() == 1)
		})
	}
}

func TestNicotineBands(t *testing.T) {
	s := newSystem()
	s.Nicotine(50)
	_, ok := s.Current()
	assert.False(t, ok, "comfortable level says nothing")

	s.Nicotine(90)
	line, ok := s.Current()
	require.True(t, ok)
	assert.Contains(t, high, line.Text)
}

func TestOpeningLineIsDelayed(t *testing.T) {
	s := newSystem()
	s.Started()
	s.Update(0.5)
	_, ok := s.Current()
	assert.False(t, ok)

	s.Update(0.6)
	line, ok := s.Current()
	require.True(t, ok)
	assert.Contains(t, opening, line.Text)
	assert.Equal(t, 3.0, line.Duration)

	s.Update(10)
	s.Update(10)
	_, ok = s.Current()
	assert.False(t, ok, "opening line fires once")
}

func TestPickAvoidsImmediateRepeat(t *testing.T) {
	s := newSystem()
	repeats := 0
	for i := 0; i < 100; i++ {
		s.last = escaped[0]
		if s.pick(escaped) == escaped[0] {
			repeats++
		}
	}
	assert.Less(t, repeats, 20)
	assert.Equal(t, "only", s.pick([]string{"only"}))
}

func TestReset(t *testing.T) {
	s := newSystem()
	s.RivalStole()
	s.Reset()
	_, ok := s.Current()
	assert.False(t, ok)
	s.RivalStole()
	_, ok = s.Current()
	assert.True(t, ok, "cooldowns cleared")
}
