// Package event runs the city's mood cycle. After a quiet spell one event
// (rain, a police crackdown, rush hour or a lucky day) takes hold for a
// while and scales how fast butts, smokers and police turn up.
package event

import (
	"fmt"

	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/core/geom"
	"chosenoffset.com/lastdrag/internal/simulation"
)

// Kind identifies an event.
type Kind int

const (
	None Kind = iota
	Rain
	Crackdown
	RushHour
	LuckyDay
)

// Kinds lists the events that can be drawn, in draw order.
var Kinds = []Kind{Rain, Crackdown, RushHour, LuckyDay}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Rain:
		return "rain"
	case Crackdown:
		return "crackdown"
	case RushHour:
		return "rushHour"
	case LuckyDay:
		return "luckyDay"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message returns the banner shown while the event is active.
func (k Kind) Message() string {
	switch k {
	case Rain:
		return "It's raining... the butts are getting soaked"
	case Crackdown:
		return "Crackdown day! Watch out for the cops"
	case RushHour:
		return "Rush hour! Smokers everywhere"
	case LuckyDay:
		return "It's your lucky day!"
	default:
		return ""
	}
}

// Effects are the multipliers an event applies.
type Effects struct {
	ButtSpawn   float64
	ButtQuality float64
	SmokerSpawn float64
	// PoliceSpawn is reported for display; officers are never added mid-session.
	PoliceSpawn float64
	WetButts    bool
}

// Neutral is the effect set while no event is active.
var Neutral = Effects{ButtSpawn: 1, ButtQuality: 1, SmokerSpawn: 1, PoliceSpawn: 1}

func effectsFrom(c simulation.EffectsConfig) Effects {
	return Effects{
		ButtSpawn:   c.ButtSpawn,
		ButtQuality: c.ButtQuality,
		SmokerSpawn: c.SmokerSpawn,
		PoliceSpawn: c.PoliceSpawn,
		WetButts:    c.WetButts,
	}
}

// Change reports what happened during one Update. Both fields are None on
// a quiet tick.
type Change struct {
	Started Kind
	Ended   Kind
}

// Modifier is the event state machine. Exactly one event (or None) is
// active at any time.
type Modifier struct {
	cfg       simulation.EventConfig
	current   Kind
	elapsed   float64
	duration  float64
	sinceLast float64
}

// NewModifier creates a modifier with no active event.
func NewModifier(cfg simulation.EventConfig) *Modifier {
	return &Modifier{cfg: cfg}
}

func (m *Modifier) kindConfig(k Kind) simulation.EventKindConfig {
	switch k {
	case Rain:
		return m.cfg.Rain
	case Crackdown:
		return m.cfg.Crackdown
	case RushHour:
		return m.cfg.RushHour
	case LuckyDay:
		return m.cfg.LuckyDay
	default:
		return simulation.EventKindConfig{}
	}
}

// Current returns the active event.
func (m *Modifier) Current() Kind { return m.current }

// Effects returns the multipliers of the active event, or Neutral.
func (m *Modifier) Effects() Effects {
	if m.current == None {
		return Neutral
	}
	return effectsFrom(m.kindConfig(m.current).Effects)
}

// Message returns the active event's banner, empty when none is active.
func (m *Modifier) Message() string { return m.current.Message() }

// Remaining returns the seconds left in the active event.
func (m *Modifier) Remaining() float64 {
	if m.current == None {
		return 0
	}
	return max(m.duration-m.elapsed, 0)
}

// UntilNext returns the seconds until the next event may start, 0 while
// one is running.
func (m *Modifier) UntilNext() float64 {
	if m.current != None {
		return 0
	}
	return max(m.cfg.Interval-m.sinceLast, 0)
}

// Update advances the cycle by dt seconds. An event starts on the tick the
// quiet time reaches the interval and ends on the tick its elapsed time
// reaches its duration; the quiet timer restarts from zero when it ends.
func (m *Modifier) Update(dt float64, r *dice.Roller) Change {
	if m.current != None {
		m.elapsed += dt
		if !geom.Reached(m.elapsed, m.duration) {
			return Change{}
		}
		ended := m.current
		m.current = None
		m.elapsed = 0
		m.sinceLast = 0
		return Change{Ended: ended}
	}

	m.sinceLast += dt
	if !geom.Reached(m.sinceLast, m.cfg.Interval) {
		return Change{}
	}
	m.start(m.draw(r))
	return Change{Started: m.current}
}

func (m *Modifier) draw(r *dice.Roller) Kind {
	weights := make([]float64, len(Kinds))
	for i, k := range Kinds {
		weights[i] = m.kindConfig(k).Weight
	}
	return Kinds[r.Pick(weights)]
}

func (m *Modifier) start(k Kind) {
	m.current = k
	m.elapsed = 0
	m.duration = m.kindConfig(k).Duration
}

// Force starts k immediately, ending any active event. Forcing None ends
// the active event and restarts the quiet timer. Used by debug keys and
// tests.
func (m *Modifier) Force(k Kind) {
	if k == None {
		m.current = None
		m.elapsed = 0
		m.sinceLast = 0
		return
	}
	m.start(k)
}

// Reset returns to a quiet city with a fresh interval.
func (m *Modifier) Reset() {
	m.current = None
	m.elapsed = 0
	m.duration = 0
	m.sinceLast = 0
}
