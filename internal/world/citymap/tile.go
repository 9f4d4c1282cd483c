package citymap

import "fmt"

// TileKind is the surface type of a map tile.
type TileKind int

const (
	Ground TileKind = iota
	Road
	Building
	Wall
	Bench
	Trash
)

var tileKindNames = map[TileKind]string{
	Ground:   "ground",
	Road:     "road",
	Building: "building",
	Wall:     "wall",
	Bench:    "bench",
	Trash:    "trash",
}

func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TileKind(%d)", int(k))
}

// Walkable reports the default walkability for tiles of this kind.
func (k TileKind) Walkable() bool {
	return k == Ground || k == Road
}

// Tile is one grid cell. Tiles never change after the map is built.
type Tile struct {
	Kind     TileKind
	Walkable bool
	// Variant selects a cosmetic palette entry (building colour, park grass).
	Variant uint8
}

func newTile(kind TileKind) Tile {
	return Tile{Kind: kind, Walkable: kind.Walkable()}
}

// legend maps layout characters to tile kinds.
var legend = map[rune]TileKind{
	'.': Ground,
	'=': Road,
	'#': Building,
	'W': Wall,
	'b': Bench,
	't': Trash,
}
