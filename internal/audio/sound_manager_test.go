package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to the end and returns the sample count and peak.
func drain(s interface {
	Stream([][2]float64) (int, bool)
}) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestToneLengths(t *testing.T) {
	tests := []struct {
		cue Cue
		dur time.Duration
	}{
		{CueCollect, 100 * time.Millisecond},
		{CueSmoke, 300 * time.Millisecond},
		{CueWarning, 200 * time.Millisecond},
		{CuePolice, 150 * time.Millisecond},
		{CueCoin, 100 * time.Millisecond},
		{CueBuy, 150 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s, err := Tone(tt.cue)
			require.NoError(t, err)
			n, peak := drain(s)
			assert.Equal(t, sampleRate.N(tt.dur), n)
			assert.LessOrEqual(t, peak, 0.3+1e-9)
			assert.Greater(t, peak, 0.0)
		})
	}
}

func TestUnknownCue(t *testing.T) {
	_, err := Tone(Cue(99))
	assert.Error(t, err)
	assert.Equal(t, "cue(99)", Cue(99).String())
}

func TestFadeOutEndsNearSilence(t *testing.T) {
	s, err := Tone(CueCollect)
	require.NoError(t, err)
	n := sampleRate.N(100 * time.Millisecond)
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	require.Equal(t, n, got)
	assert.Less(t, math.Abs(buf[n-1][0]), 0.3/float64(n)*2)
}

// Audio devices are usually missing in CI, so everything must be a no-op
// until Initialize succeeds.
func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager()
	assert.NotPanics(t, func() {
		sm.Play(CueCollect)
		sm.Play(CuePolice)
		sm.SetMuted(true)
		sm.Play(CueBuy)
		sm.Cleanup()
	})
	assert.True(t, sm.Muted())
}
