// Package citymap holds the static tile grid the game is played on and
// answers the collision and zone queries every moving entity relies on.
//
// Collision is corner sampled: a box is blocked when any of its four corners
// lands on a non-walkable tile or outside the grid. A box wider than a tile
// whose corners all straddle walkable tiles can therefore slip past a thin
// obstacle between them. Entities in the game are all smaller than a tile,
// so this is accepted as a known limitation of the test.
package citymap

import (
	"math"

	"chosenoffset.com/lastdrag/internal/core/geom"
)

// Map is an immutable tile grid plus zones.
type Map struct {
	name     string
	tileSize float64
	cols     int
	rows     int
	tiles    [][]Tile // [row][col]
	zones    []Zone
	spawn    geom.Point
}

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// TileSize returns the edge length of one tile in pixels.
func (m *Map) TileSize() float64 { return m.tileSize }

// Cols returns the grid width in tiles.
func (m *Map) Cols() int { return m.cols }

// Rows returns the grid height in tiles.
func (m *Map) Rows() int { return m.rows }

// Width returns the map width in pixels.
func (m *Map) Width() float64 { return float64(m.cols) * m.tileSize }

// Height returns the map height in pixels.
func (m *Map) Height() float64 { return float64(m.rows) * m.tileSize }

// Bounds returns the whole map as a rect anchored at the origin.
func (m *Map) Bounds() geom.Rect {
	return geom.Rect{Width: m.Width(), Height: m.Height()}
}

// PlayerSpawn returns where a new player starts.
func (m *Map) PlayerSpawn() geom.Point { return m.spawn }

// Zones returns a copy of the zone list in lookup order.
func (m *Map) Zones() []Zone {
	out := make([]Zone, len(m.zones))
	copy(out, m.zones)
	return out
}

// TileAt returns the tile at grid coordinates. ok is false outside the grid.
func (m *Map) TileAt(col, row int) (Tile, bool) {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return Tile{Kind: Wall}, false
	}
	return m.tiles[row][col], true
}

// TileAtPoint returns the tile under a world position.
func (m *Map) TileAtPoint(x, y float64) (Tile, bool) {
	return m.TileAt(m.cell(x), m.cell(y))
}

func (m *Map) cell(v float64) int {
	return int(math.Floor(v / m.tileSize))
}

// walkableAt is false for anything outside the grid so the border behaves
// as a wall even if a layout forgets one.
func (m *Map) walkableAt(x, y float64) bool {
	t, ok := m.TileAtPoint(x, y)
	return ok && t.Walkable
}

// IsBlocked reports whether the box at (x, y) of size w x h touches a
// non-walkable tile or leaves the grid at any of its corners.
func (m *Map) IsBlocked(x, y, w, h float64) bool {
	for _, c := range geom.RectAt(geom.Point{X: x, Y: y}, w, h).Corners() {
		if !m.walkableAt(c.X, c.Y) {
			return true
		}
	}
	return false
}

// RectBlocked is IsBlocked for a geom.Rect.
func (m *Map) RectBlocked(r geom.Rect) bool {
	return m.IsBlocked(r.X, r.Y, r.Width, r.Height)
}

// ZoneAt returns the first zone containing the point.
func (m *Map) ZoneAt(x, y float64) (Zone, bool) {
	p := geom.Point{X: x, Y: y}
	for _, z := range m.zones {
		if z.Bounds.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}
