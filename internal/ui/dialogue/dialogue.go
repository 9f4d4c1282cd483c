// Package dialogue is the player's inner monologue: short lines shown one
// at a time above the player, triggered by what happens in the session.
package dialogue

import (
	"chosenoffset.com/lastdrag/internal/core/dice"
	"chosenoffset.com/lastdrag/internal/entity"
)

// Style affects how a line is drawn.
type Style int

const (
	Thought Style = iota
	Speak
	Shout
)

// Line is one piece of monologue.
type Line struct {
	Text     string
	Duration float64
	Style    Style
}

// MaxQueued is how many lines may wait behind the current one. Further
// lines are dropped.
const MaxQueued = 2

// Cooldown keys and their lengths in seconds.
const (
	keyCritical = "nicotine_critical"
	keyLow      = "nicotine_low"
	keyHigh     = "nicotine_high"
	keyChase    = "police_chase"
	keyEscape   = "police_escape"
	keySteal    = "rival_steal"
	keyNoMoney  = "shop_no_money"
)

var cooldowns = map[string]float64{
	keyCritical: 8,
	keyLow:      12,
	keyHigh:     15,
	keyChase:    5,
	keyEscape:   5,
	keySteal:    8,
	keyNoMoney:  10,
}

var (
	collectShort = []string{
		"Burned right down to the filter.",
		"Better than nothing.",
		"Maybe one drag left in it.",
		"...pathetic.",
	}
	collectNormal = []string{
		"Still warm...",
		"Somebody's last drag.",
		"This one'll do.",
		"Thanks, stranger.",
	}
	collectLong = []string{
		"...jackpot.",
		"Barely touched!",
		"Good things still happen.",
		"Today's a good day.",
	}
	critical = []string{
		"My hands are shaking.",
		"My head's splitting.",
		"Please... anything...",
		"Everything's going blurry.",
	}
	low = []string{
		"Can't focus.",
		"Getting irritable.",
		"Need to find one. Fast.",
		"Where... where are they",
	}
	smoked = []string{
		"...haah.",
		"I can breathe again.",
		"That's the stuff.",
		"I can see a little now.",
	}
	high = []string{
		"...peaceful.",
		"Everything's so clear.",
		"Wish it could stay like this.",
	}
	chased = []string{
		"Run!",
		"Can't get caught.",
		"Please please please",
	}
	escaped = []string{
		"Phew... lost him.",
		"That was close.",
	}
	stolen = []string{
		"That bastard...!",
		"That was mine.",
		"Gotta move faster.",
	}
	noMoney = []string{
		"Not enough cash...",
		"If I just had five hundred...",
		"Those packs are taunting me.",
	}
	bought = []string{
		"Finally, the real thing.",
		"Nothing beats a fresh pack.",
		"A luxury. But I need it.",
	}
	opening = []string{
		"Here we go again.",
		"Anything good lying around?",
	}
)

// openingDelay is how long after the start the first line appears.
const openingDelay = 1.0

// System queues and times lines.
type System struct {
	roller    *dice.Roller
	current   *Line
	timer     float64
	queue     []Line
	cooldowns map[string]float64
	last      string
	opening   float64
}

// New creates a dialogue system drawing line choices from r.
func New(r *dice.Roller) *System {
	return &System{
		roller:    r,
		cooldowns: make(map[string]float64),
		opening:   -1,
	}
}

// Reset clears everything.
func (s *System) Reset() {
	s.current = nil
	s.timer = 0
	s.queue = nil
	s.cooldowns = make(map[string]float64)
	s.last = ""
	s.opening = -1
}

// Update advances timers and promotes the next queued line.
func (s *System) Update(dt float64) {
	for k, v := range s.cooldowns {
		v -= dt
		if v <= 0 {
			delete(s.cooldowns, k)
		} else {
			s.cooldowns[k] = v
		}
	}

	if s.opening >= 0 {
		s.opening -= dt
		if s.opening < 0 {
			s.enqueue(s.pick(opening), 3, Thought)
		}
	}

	if s.current != nil {
		s.timer -= dt
		if s.timer <= 0 {
			s.current = nil
			if len(s.queue) > 0 {
				next := s.queue[0]
				s.queue = s.queue[1:]
				s.show(next)
			}
		}
	}
}

// Current returns the line on screen.
func (s *System) Current() (Line, bool) {
	if s.current == nil {
		return Line{}, false
	}
	return *s.current, true
}

// Progress is the fraction of the current line's time still left.
func (s *System) Progress() float64 {
	if s.current == nil || s.current.Duration <= 0 {
		return 0
	}
	return s.timer / s.current.Duration
}

// Queued returns the number of waiting lines.
func (s *System) Queued() int { return len(s.queue) }

func (s *System) show(l Line) {
	s.current = &l
	s.timer = l.Duration
	s.last = l.Text
}

func (s *System) enqueue(text string, duration float64, style Style) {
	l := Line{Text: text, Duration: duration, Style: style}
	if s.current == nil {
		s.show(l)
		return
	}
	if len(s.queue) < MaxQueued {
		s.queue = append(s.queue, l)
	}
}

// pick returns a random line, avoiding an immediate repeat of the last one
// shown when there is a choice.
func (s *System) pick(lines []string) string {
	choice := lines[s.roller.Intn(len(lines))]
	for tries := 1; choice == s.last && len(lines) > 1 && tries < 5; tries++ {
		choice = lines[s.roller.Intn(len(lines))]
	}
	return choice
}

// ready reports whether key is off cooldown, and starts the cooldown if so.
func (s *System) ready(key string) bool {
	if _, busy := s.cooldowns[key]; busy {
		return false
	}
	s.cooldowns[key] = cooldowns[key]
	return true
}

// Started schedules the opening line.
func (s *System) Started() { s.opening = openingDelay }

// ButtCollected reacts to a pickup.
func (s *System) ButtCollected(q entity.Quality) {
	switch q {
	case entity.Short:
		s.enqueue(s.pick(collectShort), 2.5, Thought)
	case entity.Long:
		s.enqueue(s.pick(collectLong), 2.5, Thought)
	default:
		s.enqueue(s.pick(collectNormal), 2.5, Thought)
	}
}

// Smoked reacts to finishing a butt.
func (s *System) Smoked() { s.enqueue(s.pick(smoked), 2, Thought) }

// Nicotine reacts to the current level: critical below 15, low below 30,
// high above 80.
func (s *System) Nicotine(level float64) {
	switch {
	case level < 15:
		if s.ready(keyCritical) {
			s.enqueue(s.pick(critical), 2, Thought)
		}
	case level < 30:
		if s.ready(keyLow) {
			s.enqueue(s.pick(low), 2, Thought)
		}
	case level > 80:
		if s.ready(keyHigh) {
			s.enqueue(s.pick(high), 2.5, Thought)
		}
	}
}

// Chase reacts to a chase starting or ending.
func (s *System) Chase(started bool) {
	if started {
		if s.ready(keyChase) {
			s.enqueue(s.pick(chased), 1, Shout)
		}
		return
	}
	if s.ready(keyEscape) {
		s.enqueue(s.pick(escaped), 2, Thought)
	}
}

// RivalStole reacts to a rival taking a butt.
func (s *System) RivalStole() {
	if s.ready(keySteal) {
		s.enqueue(s.pick(stolen), 2, Speak)
	}
}

// ShopDenied reacts to being too poor at the counter.
func (s *System) ShopDenied() {
	if s.ready(keyNoMoney) {
		s.enqueue(s.pick(noMoney), 2, Thought)
	}
}

// ShopBought reacts to buying a pack.
func (s *System) ShopBought() { s.enqueue(s.pick(bought), 2, Speak) }
