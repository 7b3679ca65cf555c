package game

// TileKind identifies what occupies a battlefield tile.
type TileKind uint8

const (
	TileOpen       TileKind = iota // open ground
	TileHeavyCover                 // passable, sightlines through it are penalised
	TileBlocking                   // impassable, blocks sight entirely
	tileKindCount                  // sentinel
)

func (t TileKind) String() string {
	switch t {
	case TileOpen:
		return "open"
	case TileHeavyCover:
		return "heavy"
	case TileBlocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// tilePassable returns true if a model may stand on the tile.
func tilePassable(t TileKind) bool {
	return t != TileBlocking
}

// tileBlocksSight returns true if the tile fully blocks line of sight.
func tileBlocksSight(t TileKind) bool {
	return t == TileBlocking
}

// Grid is the rectangular battlefield. Occupancy is derived from the living
// model list, never stored on the tile itself.
type Grid struct {
	Width  int
	Height int
	tiles  []TileKind
}

// NewGrid creates an all-open grid of the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		Width:  w,
		Height: h,
		tiles:  make([]TileKind, w*h),
	}
}

// InBounds reports whether (x,y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt returns the tile kind at (x,y). Out-of-bounds coordinates read as
// blocking, so stray sightlines and moves off the edge fail safely.
func (g *Grid) TileAt(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileBlocking
	}
	return g.tiles[y*g.Width+x]
}

// SetTile writes a tile kind. Out-of-bounds writes are ignored.
func (g *Grid) SetTile(x, y int, t TileKind) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.Width+x] = t
}

// Passable reports whether a model may stand at (x,y).
func (g *Grid) Passable(x, y int) bool {
	return g.InBounds(x, y) && tilePassable(g.TileAt(x, y))
}
