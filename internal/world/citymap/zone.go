package citymap

import (
	"fmt"

	"chosenoffset.com/lastdrag/internal/core/geom"
)

// ZoneKind names a neighbourhood of the city.
type ZoneKind string

const (
	Alley       ZoneKind = "alley"
	Convenience ZoneKind = "convenience"
	Park        ZoneKind = "park"
	BusStop     ZoneKind = "busStop"
	Office      ZoneKind = "office"
)

// Zone is a named rectangle with neighbourhood tunables in [0, 1].
// The values are descriptive only; spawning is uniform across the map.
type Zone struct {
	Kind            ZoneKind
	Bounds          geom.Rect
	SmokerDensity   float64
	PoliceFrequency float64
	ButtQuality     float64
}

// Label returns a short human readable name for HUD display.
func (z Zone) Label() string {
	switch z.Kind {
	case Alley:
		return "Back Alley"
	case Convenience:
		return "Convenience Store"
	case Park:
		return "Park"
	case BusStop:
		return "Bus Stop"
	case Office:
		return "Office Block"
	default:
		return string(z.Kind)
	}
}

func validateZone(z Zone) error {
	if z.Kind == "" {
		return fmt.Errorf("zone kind is required")
	}
	if z.Bounds.Width <= 0 || z.Bounds.Height <= 0 {
		return fmt.Errorf("zone %s has invalid size %.0fx%.0f", z.Kind, z.Bounds.Width, z.Bounds.Height)
	}
	for name, v := range map[string]float64{
		"smoker_density":   z.SmokerDensity,
		"police_frequency": z.PoliceFrequency,
		"butt_quality":     z.ButtQuality,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("zone %s: %s must be within [0,1], got %g", z.Kind, name, v)
		}
	}
	return nil
}
