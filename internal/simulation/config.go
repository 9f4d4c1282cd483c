// Package simulation provides configuration for the game simulation rules.
// Every speed, range, timer and spawn rate the agents use lives here so a
// tuning file can rebalance a session without touching code.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/lastdrag/internal/core/geom"
)

// Config holds all simulation rules for a session
type Config struct {
	Population PopulationConfig `json:"population" yaml:"population"`
	Spawn      SpawnConfig      `json:"spawn" yaml:"spawn"`
	Butts      ButtConfig       `json:"butts" yaml:"butts"`
	Coins      CoinConfig       `json:"coins" yaml:"coins"`
	Police     PoliceConfig     `json:"police" yaml:"police"`
	Rival      RivalConfig      `json:"rival" yaml:"rival"`
	Smoker     SmokerConfig     `json:"smoker" yaml:"smoker"`
	Events     EventConfig      `json:"events" yaml:"events"`
	Shop       ShopConfig       `json:"shop" yaml:"shop"`
	Player     PlayerConfig     `json:"player" yaml:"player"`
}

// PopulationConfig sets starting counts and the bounds admission control
// steers toward.
type PopulationConfig struct {
	InitialButts   int `json:"initial_butts" yaml:"initial_butts"`
	InitialSmokers int `json:"initial_smokers" yaml:"initial_smokers"`
	InitialCoins   int `json:"initial_coins" yaml:"initial_coins"`

	ButtFloor     int `json:"butt_floor" yaml:"butt_floor"`         // respawn butts while below
	SmokerCeiling int `json:"smoker_ceiling" yaml:"smoker_ceiling"` // stop adding smokers at
	CoinFloor     int `json:"coin_floor" yaml:"coin_floor"`         // respawn coins while below

	PlacementAttempts int `json:"placement_attempts" yaml:"placement_attempts"` // tries per initial entity
}

// SpawnConfig controls ambient admission.
type SpawnConfig struct {
	ButtChance     float64 `json:"butt_chance" yaml:"butt_chance"`         // per tick, scaled by event
	CoinChance     float64 `json:"coin_chance" yaml:"coin_chance"`         // per tick
	SmokerInterval float64 `json:"smoker_interval" yaml:"smoker_interval"` // seconds, divided by event
	SmokerGate     float64 `json:"smoker_gate" yaml:"smoker_gate"`         // pass chance, times event multiplier
	Margin         float64 `json:"margin" yaml:"margin"`                   // keep spawns this far from the edge
}

// ButtConfig defines the ambient quality roll. A uniform roll u is skewed
// by the event quality multiplier to 1-(1-u)/mult, so multipliers above 1
// favour long butts; the result below ShortBelow is short, below
// NormalBelow normal, otherwise long.
type ButtConfig struct {
	ShortBelow  float64 `json:"short_below" yaml:"short_below"`
	NormalBelow float64 `json:"normal_below" yaml:"normal_below"`
}

// CoinConfig defines coin value.
type CoinConfig struct {
	Value int `json:"value" yaml:"value"`
}

// PoliceConfig defines patrol officers.
type PoliceConfig struct {
	Width          float64        `json:"width" yaml:"width"`
	Height         float64        `json:"height" yaml:"height"`
	Speed          float64        `json:"speed" yaml:"speed"`
	ChaseSpeed     float64        `json:"chase_speed" yaml:"chase_speed"`
	DetectRange    float64        `json:"detect_range" yaml:"detect_range"`
	ChaseRange     float64        `json:"chase_range" yaml:"chase_range"`
	CaptureRadius  float64        `json:"capture_radius" yaml:"capture_radius"`
	ArrivalEpsilon float64        `json:"arrival_epsilon" yaml:"arrival_epsilon"`
	Routes         [][]geom.Point `json:"routes" yaml:"routes"` // one officer per route
}

// RivalConfig defines competing scavengers.
type RivalConfig struct {
	Width         float64      `json:"width" yaml:"width"`
	Height        float64      `json:"height" yaml:"height"`
	Speed         float64      `json:"speed" yaml:"speed"`
	DetectRange   float64      `json:"detect_range" yaml:"detect_range"`
	CollectRadius float64      `json:"collect_radius" yaml:"collect_radius"`
	WanderMin     float64      `json:"wander_min" yaml:"wander_min"`
	WanderMax     float64      `json:"wander_max" yaml:"wander_max"`
	BoundsMargin  float64      `json:"bounds_margin" yaml:"bounds_margin"`
	Spawns        []geom.Point `json:"spawns" yaml:"spawns"` // one rival per entry
}

// SmokerKindConfig defines one kind of smoker.
type SmokerKindConfig struct {
	Weight   float64 `json:"weight" yaml:"weight"`
	Duration float64 `json:"duration" yaml:"duration"` // seconds until the butt drops
	Lingers  bool    `json:"lingers" yaml:"lingers"`   // never finishes, never drops

	// Drop table: roll < LongBelow is long, < NormalBelow is normal, else short.
	LongBelow   float64 `json:"long_below" yaml:"long_below"`
	NormalBelow float64 `json:"normal_below" yaml:"normal_below"`
}

// SmokerConfig defines smokers.
type SmokerConfig struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	DropJitter float64 `json:"drop_jitter" yaml:"drop_jitter"` // max horizontal offset of a drop
	DropBelow  float64 `json:"drop_below" yaml:"drop_below"`   // gap under the feet

	Worker  SmokerKindConfig `json:"worker" yaml:"worker"`
	Drunk   SmokerKindConfig `json:"drunk" yaml:"drunk"`
	Student SmokerKindConfig `json:"student" yaml:"student"`
	Vaper   SmokerKindConfig `json:"vaper" yaml:"vaper"`
}

// EffectsConfig is the multiplier tuple an event applies.
type EffectsConfig struct {
	ButtSpawn   float64 `json:"butt_spawn" yaml:"butt_spawn"`
	ButtQuality float64 `json:"butt_quality" yaml:"butt_quality"`
	SmokerSpawn float64 `json:"smoker_spawn" yaml:"smoker_spawn"`
	PoliceSpawn float64 `json:"police_spawn" yaml:"police_spawn"`
	WetButts    bool    `json:"wet_butts" yaml:"wet_butts"`
}

// EventKindConfig defines one event.
type EventKindConfig struct {
	Weight   float64       `json:"weight" yaml:"weight"`
	Duration float64       `json:"duration" yaml:"duration"`
	Effects  EffectsConfig `json:"effects" yaml:"effects"`
}

// EventConfig defines the event cycle.
type EventConfig struct {
	Interval  float64         `json:"interval" yaml:"interval"` // quiet seconds between events
	Rain      EventKindConfig `json:"rain" yaml:"rain"`
	Crackdown EventKindConfig `json:"crackdown" yaml:"crackdown"`
	RushHour  EventKindConfig `json:"rush_hour" yaml:"rush_hour"`
	LuckyDay  EventKindConfig `json:"lucky_day" yaml:"lucky_day"`
}

// ShopConfig defines the corner shop.
type ShopConfig struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Price    int     `json:"price" yaml:"price"`
	Radius   float64 `json:"radius" yaml:"radius"`     // interaction distance from the centre
	Nicotine float64 `json:"nicotine" yaml:"nicotine"` // granted per pack
}

// PlayerConfig defines the player. The simulation never moves the player;
// these values are read by the game loop.
type PlayerConfig struct {
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	Speed         float64 `json:"speed" yaml:"speed"`
	StartNicotine float64 `json:"start_nicotine" yaml:"start_nicotine"`
	MaxNicotine   float64 `json:"max_nicotine" yaml:"max_nicotine"`
	Decay         float64 `json:"decay" yaml:"decay"` // nicotine lost per second
	SmokeDuration float64 `json:"smoke_duration" yaml:"smoke_duration"`
	SlowBelow     float64 `json:"slow_below" yaml:"slow_below"`
	SlowFactor    float64 `json:"slow_factor" yaml:"slow_factor"`
	CrawlBelow    float64 `json:"crawl_below" yaml:"crawl_below"`
	CrawlFactor   float64 `json:"crawl_factor" yaml:"crawl_factor"`
}

// DefaultConfig returns the stock city rules
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			InitialButts:      10,
			InitialSmokers:    5,
			InitialCoins:      5,
			ButtFloor:         5,
			SmokerCeiling:     8,
			CoinFloor:         3,
			PlacementAttempts: 50,
		},
		Spawn: SpawnConfig{
			ButtChance:     0.01,
			CoinChance:     0.005,
			SmokerInterval: 5,
			SmokerGate:     0.5,
			Margin:         100,
		},
		Butts: ButtConfig{
			ShortBelow:  0.5,
			NormalBelow: 0.85,
		},
		Coins: CoinConfig{Value: 100},
		Police: PoliceConfig{
			Width:          28,
			Height:         36,
			Speed:          60,
			ChaseSpeed:     100,
			DetectRange:    120,
			ChaseRange:     200,
			CaptureRadius:  30,
			ArrivalEpsilon: 5,
			Routes: [][]geom.Point{
				{{X: 200, Y: 600}, {X: 400, Y: 600}, {X: 400, Y: 700}, {X: 200, Y: 700}},
				{{X: 850, Y: 1250}, {X: 1250, Y: 1250}, {X: 1250, Y: 1100}, {X: 850, Y: 1100}},
			},
		},
		Rival: RivalConfig{
			Width:         24,
			Height:        32,
			Speed:         70,
			DetectRange:   150,
			CollectRadius: 15,
			WanderMin:     2,
			WanderMax:     5,
			BoundsMargin:  50,
			Spawns:        []geom.Point{{X: 800, Y: 400}, {X: 1200, Y: 800}},
		},
		Smoker: SmokerConfig{
			Width:      16,
			Height:     22,
			DropJitter: 10,
			DropBelow:  5,
			Worker:     SmokerKindConfig{Weight: 0.35, Duration: 8, LongBelow: 0.2, NormalBelow: 0.6},
			Drunk:      SmokerKindConfig{Weight: 0.25, Duration: 15, LongBelow: 0.4, NormalBelow: 0.7},
			Student:    SmokerKindConfig{Weight: 0.25, Duration: 4, LongBelow: 0, NormalBelow: 0.1},
			Vaper:      SmokerKindConfig{Weight: 0.15, Duration: 999, Lingers: true},
		},
		Events: EventConfig{
			Interval: 30,
			Rain: EventKindConfig{Weight: 0.30, Duration: 20, Effects: EffectsConfig{
				ButtSpawn: 0.5, ButtQuality: 0.3, SmokerSpawn: 0.3, PoliceSpawn: 0.5, WetButts: true,
			}},
			Crackdown: EventKindConfig{Weight: 0.25, Duration: 25, Effects: EffectsConfig{
				ButtSpawn: 0.7, ButtQuality: 1, SmokerSpawn: 0.5, PoliceSpawn: 2.5,
			}},
			RushHour: EventKindConfig{Weight: 0.30, Duration: 15, Effects: EffectsConfig{
				ButtSpawn: 2, ButtQuality: 1.2, SmokerSpawn: 2.5, PoliceSpawn: 0.8,
			}},
			LuckyDay: EventKindConfig{Weight: 0.15, Duration: 10, Effects: EffectsConfig{
				ButtSpawn: 1.5, ButtQuality: 2, SmokerSpawn: 1.2, PoliceSpawn: 0.5,
			}},
		},
		Shop: ShopConfig{
			X:        100,
			Y:        650,
			Width:    64,
			Height:   48,
			Price:    500,
			Radius:   60,
			Nicotine: 40,
		},
		Player: PlayerConfig{
			Width:         16,
			Height:        22,
			Speed:         150,
			StartNicotine: 50,
			MaxNicotine:   100,
			Decay:         0.8,
			SmokeDuration: 1.5,
			SlowBelow:     30,
			SlowFactor:    0.8,
			CrawlBelow:    15,
			CrawlFactor:   0.6,
		},
	}
}

// LoadConfig loads simulation config from a JSON or YAML file, chosen by
// extension, on top of the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse simulation config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}
