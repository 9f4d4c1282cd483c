package citymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/lastdrag/internal/core/geom"
)

// SpawnPoint defines a player spawn location
type SpawnPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ZoneData is the file form of a Zone.
type ZoneData struct {
	Kind            string  `json:"kind" yaml:"kind"`
	X               float64 `json:"x" yaml:"x"`
	Y               float64 `json:"y" yaml:"y"`
	Width           float64 `json:"width" yaml:"width"`
	Height          float64 `json:"height" yaml:"height"`
	SmokerDensity   float64 `json:"smoker_density" yaml:"smoker_density"`
	PoliceFrequency float64 `json:"police_frequency" yaml:"police_frequency"`
	ButtQuality     float64 `json:"butt_quality" yaml:"butt_quality"`
}

// Layout describes a map as rows of legend characters:
//
//	.  ground    =  road    #  building
//	W  wall      b  bench   t  trash
type Layout struct {
	Name        string     `json:"name" yaml:"name"`
	TileSize    int        `json:"tile_size" yaml:"tile_size"`
	PlayerSpawn SpawnPoint `json:"player_spawn" yaml:"player_spawn"`
	Rows        []string   `json:"rows" yaml:"rows"`
	Zones       []ZoneData `json:"zones" yaml:"zones"`
}

// LoadLayout reads a layout from a JSON or YAML file (by extension) and
// builds the map.
func LoadLayout(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	var layout Layout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &layout)
	default:
		err = json.Unmarshal(data, &layout)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}

	m, err := Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout in %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a map from an in-memory layout.
func Parse(layout Layout) (*Map, error) {
	if err := validateLayout(&layout); err != nil {
		return nil, err
	}

	rows := len(layout.Rows)
	cols := len([]rune(layout.Rows[0]))
	tiles := make([][]Tile, rows)
	for r, line := range layout.Rows {
		tiles[r] = make([]Tile, cols)
		for c, ch := range []rune(line) {
			tiles[r][c] = newTile(legend[ch])
		}
	}

	zones := make([]Zone, 0, len(layout.Zones))
	for _, zd := range layout.Zones {
		z := Zone{
			Kind:            ZoneKind(zd.Kind),
			Bounds:          geom.Rect{X: zd.X, Y: zd.Y, Width: zd.Width, Height: zd.Height},
			SmokerDensity:   zd.SmokerDensity,
			PoliceFrequency: zd.PoliceFrequency,
			ButtQuality:     zd.ButtQuality,
		}
		if err := validateZone(z); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	name := layout.Name
	if name == "" {
		name = "untitled"
	}

	return &Map{
		name:     name,
		tileSize: float64(layout.TileSize),
		cols:     cols,
		rows:     rows,
		tiles:    tiles,
		zones:    zones,
		spawn:    geom.Point{X: layout.PlayerSpawn.X, Y: layout.PlayerSpawn.Y},
	}, nil
}

// validateLayout checks if the layout is valid
func validateLayout(layout *Layout) error {
	if layout.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", layout.TileSize)
	}

	if len(layout.Rows) == 0 {
		return fmt.Errorf("layout has no rows")
	}

	width := len([]rune(layout.Rows[0]))
	if width == 0 {
		return fmt.Errorf("layout row 0 is empty")
	}

	for y, row := range layout.Rows {
		runes := []rune(row)
		if len(runes) != width {
			return fmt.Errorf("row width mismatch at row %d: expected %d, got %d", y, width, len(runes))
		}
		for x, ch := range runes {
			if _, ok := legend[ch]; !ok {
				return fmt.Errorf("unknown tile %q at (%d, %d)", ch, x, y)
			}
		}
	}

	w := float64(width * layout.TileSize)
	h := float64(len(layout.Rows) * layout.TileSize)
	if layout.PlayerSpawn.X < 0 || layout.PlayerSpawn.X >= w || layout.PlayerSpawn.Y < 0 || layout.PlayerSpawn.Y >= h {
		return fmt.Errorf("player spawn (%.0f, %.0f) outside %.0fx%.0f map", layout.PlayerSpawn.X, layout.PlayerSpawn.Y, w, h)
	}

	return nil
}
