// Package audio plays the short synthesized cues the game fires on pickups,
// purchases and police chases.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue names a sound effect.
type Cue int

const (
	CueCollect Cue = iota
	CueSmoke
	CueWarning
	CuePolice
	CueCoin
	CueBuy
)

func (c Cue) String() string {
	switch c {
	case CueCollect:
		return "collect"
	case CueSmoke:
		return "smoke"
	case CueWarning:
		return "warning"
	case CuePolice:
		return "police"
	case CueCoin:
		return "coin"
	case CueBuy:
		return "buy"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

type wave int

const (
	sine wave = iota
	square
	sawtooth
	triangle
)

type tone struct {
	freq     float64
	duration time.Duration
	wave     wave
}

var tones = map[Cue]tone{
	CueCollect: {440, 100 * time.Millisecond, sine},
	CueSmoke:   {220, 300 * time.Millisecond, sawtooth},
	CueWarning: {880, 200 * time.Millisecond, square},
	CuePolice:  {660, 150 * time.Millisecond, square},
	CueCoin:    {880, 100 * time.Millisecond, sine},
	CueBuy:     {550, 150 * time.Millisecond, triangle},
}

// SoundManager mixes cues into the speaker. Every method is safe to call
// before Initialize or after Cleanup; the calls are dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	// Volume is the sfx gain as a power of two (0 is unchanged, -1 is half).
	Volume float64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		Volume: -1,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted silences or restores playback.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports whether playback is silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play starts a cue. Overlapping cues mix.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s, err := sm.streamer(c)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func (sm *SoundManager) streamer(c Cue) (beep.Streamer, error) {
	s, err := Tone(c)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: sm.Volume}, nil
}

// Tone builds the finite streamer for a cue: an oscillator cut to the
// cue's length under a linear fade-out.
func Tone(c Cue) (beep.Streamer, error) {
	t, ok := tones[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %v", c)
	}
	var (
		osc beep.Streamer
		err error
	)
	switch t.wave {
	case square:
		osc, err = generators.SquareTone(sampleRate, t.freq)
	case sawtooth:
		osc, err = generators.SawtoothTone(sampleRate, t.freq)
	case triangle:
		osc, err = generators.TriangleTone(sampleRate, t.freq)
	default:
		osc, err = generators.SineTone(sampleRate, t.freq)
	}
	if err != nil {
		return nil, fmt.Errorf("cue %v: %w", c, err)
	}
	n := sampleRate.N(t.duration)
	return &fadeOut{s: beep.Take(n, osc), total: n, gain: 0.3}, nil
}

// fadeOut scales samples linearly from gain down to zero over total samples.
type fadeOut struct {
	s     beep.Streamer
	pos   int
	total int
	gain  float64
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		env := f.gain * (1 - float64(f.pos)/float64(f.total))
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.s.Err() }
