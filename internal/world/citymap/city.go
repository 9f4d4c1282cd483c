package citymap

import (
	"chosenoffset.com/lastdrag/internal/core/geom"
)

// City dimensions in pixels and the tile edge length.
const (
	CityWidth    = 2400
	CityHeight   = 1600
	CityTileSize = 32
)

type block struct {
	col, row, w, h int
}

var (
	cityRoadRows = []int{15, 35}
	cityRoadCols = []int{20, 50}
	cityRoadSpan = 3

	cityBuildings = []block{
		{2, 2, 8, 6},
		{12, 2, 6, 5},
		{2, 20, 4, 4},
		{55, 2, 10, 8},
		{55, 20, 8, 6},
		{30, 2, 6, 5},
	}
	cityPark      = block{25, 40, 15, 8}
	cityBusStops  = [][2]int{{8, 15}, {45, 35}}
	citySpawn     = geom.Point{X: 400, Y: 800}
	cityZoneTable = []Zone{
		{Kind: Alley, Bounds: geom.Rect{X: 320, Y: 32, Width: 256, Height: 192}, SmokerDensity: 0.8, PoliceFrequency: 0.1, ButtQuality: 0.7},
		{Kind: Convenience, Bounds: geom.Rect{X: 32, Y: 640, Width: 192, Height: 160}, SmokerDensity: 0.5, PoliceFrequency: 0.6, ButtQuality: 0.5},
		{Kind: Park, Bounds: geom.Rect{X: 800, Y: 1280, Width: 512, Height: 256}, SmokerDensity: 0.3, PoliceFrequency: 0.2, ButtQuality: 0.3},
		{Kind: BusStop, Bounds: geom.Rect{X: 224, Y: 480, Width: 96, Height: 64}, SmokerDensity: 0.6, PoliceFrequency: 0.3, ButtQuality: 0.4},
		{Kind: Office, Bounds: geom.Rect{X: 32, Y: 32, Width: 288, Height: 224}, SmokerDensity: 0.7, PoliceFrequency: 0.2, ButtQuality: 0.5},
	}
)

// NewCity builds the fixed city map: two horizontal and two vertical
// three-lane roads, six buildings, a park with benches and a bin, two bus
// stop benches and a wall around the edge. The result is identical on
// every call.
func NewCity() *Map {
	cols := CityWidth / CityTileSize
	rows := CityHeight / CityTileSize

	g := newGrid(cols, rows)

	for _, r := range cityRoadRows {
		for off := 0; off < cityRoadSpan; off++ {
			for c := 0; c < cols; c++ {
				g.set(c, r+off, newTile(Road))
			}
		}
	}
	for _, c := range cityRoadCols {
		for off := 0; off < cityRoadSpan; off++ {
			for r := 0; r < rows; r++ {
				g.set(c+off, r, newTile(Road))
			}
		}
	}

	for i, b := range cityBuildings {
		t := newTile(Building)
		t.Variant = uint8(i)
		g.fill(b, t)
	}

	grass := newTile(Ground)
	grass.Variant = 1
	g.fill(cityPark, grass)
	g.set(cityPark.col+3, cityPark.row+2, newTile(Bench))
	g.set(cityPark.col+8, cityPark.row+5, newTile(Bench))
	g.set(cityPark.col+1, cityPark.row+1, newTile(Trash))

	for _, stop := range cityBusStops {
		bench := newTile(Bench)
		bench.Variant = 1
		g.set(stop[0], stop[1], bench)
	}

	g.border()

	return &Map{
		name:     "city",
		tileSize: CityTileSize,
		cols:     cols,
		rows:     rows,
		tiles:    g.tiles,
		zones:    append([]Zone(nil), cityZoneTable...),
		spawn:    citySpawn,
	}
}

type grid struct {
	cols, rows int
	tiles      [][]Tile
}

func newGrid(cols, rows int) *grid {
	tiles := make([][]Tile, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
		for c := range tiles[r] {
			tiles[r][c] = newTile(Ground)
		}
	}
	return &grid{cols: cols, rows: rows, tiles: tiles}
}

// set ignores writes that fall outside the grid.
func (g *grid) set(col, row int, t Tile) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.tiles[row][col] = t
}

func (g *grid) fill(b block, t Tile) {
	for r := b.row; r < b.row+b.h; r++ {
		for c := b.col; c < b.col+b.w; c++ {
			g.set(c, r, t)
		}
	}
}

func (g *grid) border() {
	wall := newTile(Wall)
	for c := 0; c < g.cols; c++ {
		g.set(c, 0, wall)
		g.set(c, g.rows-1, wall)
	}
	for r := 0; r < g.rows; r++ {
		g.set(0, r, wall)
		g.set(g.cols-1, r, wall)
	}
}
