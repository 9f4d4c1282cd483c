package simulation

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules the agents depend on. It reports
// every problem it finds, joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := c.Population
	check(p.InitialButts >= 0 && p.InitialSmokers >= 0 && p.InitialCoins >= 0, "population: initial counts must not be negative")
	check(p.PlacementAttempts > 0, "population: placement_attempts must be positive")
	check(p.SmokerCeiling >= 0 && p.ButtFloor >= 0 && p.CoinFloor >= 0, "population: floors and ceiling must not be negative")

	s := c.Spawn
	check(s.SmokerInterval > 0, "spawn: smoker_interval must be positive, got %g", s.SmokerInterval)
	check(s.ButtChance >= 0 && s.CoinChance >= 0 && s.SmokerGate >= 0, "spawn: chances must not be negative")
	check(s.Margin >= 0, "spawn: margin must not be negative")

	b := c.Butts
	check(b.ShortBelow > 0 && b.ShortBelow < b.NormalBelow && b.NormalBelow < 1,
		"butts: thresholds must satisfy 0 < short_below < normal_below < 1, got %g/%g", b.ShortBelow, b.NormalBelow)

	check(c.Coins.Value > 0, "coins: value must be positive")

	pol := c.Police
	check(pol.DetectRange > 0 && pol.DetectRange < pol.ChaseRange,
		"police: detect_range (%g) must be positive and below chase_range (%g)", pol.DetectRange, pol.ChaseRange)
	check(pol.Speed > 0 && pol.ChaseSpeed > pol.Speed,
		"police: chase_speed (%g) must exceed speed (%g)", pol.ChaseSpeed, pol.Speed)
	check(pol.CaptureRadius > 0 && pol.CaptureRadius < pol.DetectRange, "police: capture_radius must be positive and below detect_range")
	check(pol.ArrivalEpsilon > 0, "police: arrival_epsilon must be positive")
	check(len(pol.Routes) > 0, "police: at least one patrol route is required")
	for i, r := range pol.Routes {
		check(len(r) > 0, "police: route %d is empty", i)
	}

	r := c.Rival
	check(r.Speed > 0 && r.DetectRange > 0 && r.CollectRadius > 0, "rival: speed, detect_range and collect_radius must be positive")
	check(r.WanderMin > 0 && r.WanderMin <= r.WanderMax, "rival: wander window [%g, %g] is invalid", r.WanderMin, r.WanderMax)
	check(r.BoundsMargin >= 0, "rival: bounds_margin must not be negative")

	sm := c.Smoker
	total := 0.0
	smokers := []struct {
		name string
		k    SmokerKindConfig
	}{
		{"worker", sm.Worker}, {"drunk", sm.Drunk}, {"student", sm.Student}, {"vaper", sm.Vaper},
	}
	for _, e := range smokers {
		name, k := e.name, e.k
		total += k.Weight
		check(k.Weight >= 0, "smoker %s: weight must not be negative", name)
		check(k.Lingers || k.Duration > 0, "smoker %s: duration must be positive", name)
		check(k.LongBelow >= 0 && k.LongBelow <= k.NormalBelow && k.NormalBelow <= 1,
			"smoker %s: drop table must satisfy 0 <= long_below <= normal_below <= 1", name)
	}
	check(total > 0, "smoker: at least one kind needs a positive weight")

	ev := c.Events
	check(ev.Interval > 0, "events: interval must be positive")
	total = 0
	events := []struct {
		name string
		k    EventKindConfig
	}{
		{"rain", ev.Rain}, {"crackdown", ev.Crackdown}, {"rush_hour", ev.RushHour}, {"lucky_day", ev.LuckyDay},
	}
	for _, e := range events {
		name, k := e.name, e.k
		total += k.Weight
		check(k.Weight >= 0, "event %s: weight must not be negative", name)
		check(k.Duration > 0, "event %s: duration must be positive", name)
		check(k.Effects.ButtQuality > 0, "event %s: butt_quality multiplier must be positive", name)
		check(k.Effects.ButtSpawn >= 0 && k.Effects.SmokerSpawn >= 0 && k.Effects.PoliceSpawn >= 0,
			"event %s: multipliers must not be negative", name)
	}
	check(total > 0, "events: at least one event needs a positive weight")

	check(c.Shop.Price >= 0 && c.Shop.Radius > 0, "shop: price must not be negative and radius must be positive")

	pl := c.Player
	check(pl.Width > 0 && pl.Height > 0 && pl.Speed > 0, "player: size and speed must be positive")
	check(pl.StartNicotine > 0 && pl.StartNicotine < pl.MaxNicotine, "player: start_nicotine must lie in (0, max_nicotine)")

	return errors.Join(errs...)
}
