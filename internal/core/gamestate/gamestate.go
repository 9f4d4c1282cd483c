// Package gamestate tracks the running tallies of a play session: what the
// player picked up, what rivals took, how often the police gave chase.
// The HUD, the ending screen and the terminal viewer all read from it.
package gamestate

import (
	"sort"
	"sync"
)

// Counter names used across the game.
const (
	ButtsShort  = "butts_short"
	ButtsNormal = "butts_normal"
	ButtsLong   = "butts_long"
	Steals      = "rival_steals"
	Coins       = "coins"
	PacksBought = "packs_bought"
	Chases      = "police_chases"
	Events      = "events"
	SmokerDrops = "smoker_drops"
)

// Tally holds the counters for one session
type Tally struct {
	mu sync.RWMutex

	counters map[string]int
}

// New creates a new empty Tally
func New() *Tally {
	return &Tally{counters: make(map[string]int)}
}

// Get returns the value of a counter (0 if not set)
func (t *Tally) Get(name string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counters[name]
}

// Add adds delta to a counter (can be negative) and returns the new value
func (t *Tally) Add(name string, delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counters[name] += delta
	return t.counters[name]
}

// Inc is Add(name, 1).
func (t *Tally) Inc(name string) int {
	return t.Add(name, 1)
}

// Butts returns the total number of butts the player collected.
func (t *Tally) Butts() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counters[ButtsShort] + t.counters[ButtsNormal] + t.counters[ButtsLong]
}

// Entry is a single named counter value.
type Entry struct {
	Name  string
	Value int
}

// Snapshot returns all non-zero counters sorted by name.
func (t *Tally) Snapshot() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, 0, len(t.counters))
	for name, v := range t.counters {
		if v != 0 {
			out = append(out, Entry{Name: name, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears every counter. Used when a new session starts.
func (t *Tally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counters = make(map[string]int)
}
