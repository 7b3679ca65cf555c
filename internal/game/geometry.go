package game

import "math"

// Point is a grid tile coordinate.
type Point struct {
	X, Y int
}

// tilesPerUnit is the fixed range scale: 1 distance-unit = 2 tiles.
const tilesPerUnit = 2.0

// Chebyshev returns the chessboard distance between two tiles. Diagonals
// count as 1; this is the movement and adjacency metric.
func Chebyshev(a, b Point) int {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceUnits returns the straight-line distance between two tiles in
// distance-units (Euclidean tile distance divided by the 2-tiles-per-unit
// scale). Ranged combat uses this metric.
func DistanceUnits(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Hypot(dx, dy) / tilesPerUnit
}

// Adjacent reports whether two tiles touch, diagonals included.
func Adjacent(a, b Point) bool {
	return a != b && Chebyshev(a, b) <= 1
}

// TraceLine yields every tile crossed by the discrete line from a to b,
// endpoints included, with no doubled diagonal steps. The traced tile set is
// symmetric: TraceLine(a,b) visits exactly the tiles of TraceLine(b,a).
// Symmetry is guaranteed by tracing every line from its canonical endpoint.
func TraceLine(a, b Point) []Point {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		line := TraceLine(b, a)
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			line[i], line[j] = line[j], line[i]
		}
		return line
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := sign(b.X - a.X)
	sy := sign(b.Y - a.Y)
	err := dx + dy

	line := make([]Point, 0, dx-dy+1)
	x, y := a.X, a.Y
	for {
		line = append(line, Point{x, y})
		if x == b.X && y == b.Y {
			return line
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// CoverKind classifies the terrain protection a sightline grants the target.
type CoverKind uint8

const (
	CoverNone  CoverKind = iota
	CoverLight           // corner graze or hugging cover: -1 to hit
	CoverHeavy           // sightline crosses heavy cover: -3 to hit
)

func (c CoverKind) String() string {
	switch c {
	case CoverLight:
		return "light"
	case CoverHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// coverPenalty returns the to-hit modifier for a cover classification.
func coverPenalty(c CoverKind) int {
	switch c {
	case CoverLight:
		return -1
	case CoverHeavy:
		return -3
	default:
		return 0
	}
}

// SightReport is the result of a line-of-sight query.
type SightReport struct {
	Blocked bool
	Cover   CoverKind
}

// LineOfSight walks the traced line from attacker to target, skipping the
// origin tile. Any blocking tile on the way kills the sightline. Heavy cover
// anywhere on the path (target tile included) flags heavy. A diagonal step
// that squeezes past exactly one blocking corner, or a target tile adjacent
// to blocking or heavy terrain, flags light. Heavy always outranks light;
// the two penalties never stack.
func LineOfSight(from, to Point, g *Grid) SightReport {
	line := TraceLine(from, to)
	rep := SightReport{}

	for i := 1; i < len(line); i++ {
		p := line[i]
		if tileBlocksSight(g.TileAt(p.X, p.Y)) {
			return SightReport{Blocked: true}
		}
		if g.TileAt(p.X, p.Y) == TileHeavyCover {
			rep.Cover = CoverHeavy
		}

		// Corner graze: a diagonal step past a blocking tile. Both corners
		// blocked means the line threads a sealed gap and is cut; one
		// blocked corner is a clip worth light cover.
		prev := line[i-1]
		if p.X != prev.X && p.Y != prev.Y {
			aBlock := tileBlocksSight(g.TileAt(p.X, prev.Y))
			bBlock := tileBlocksSight(g.TileAt(prev.X, p.Y))
			if aBlock && bBlock {
				return SightReport{Blocked: true}
			}
			if (aBlock || bBlock) && rep.Cover == CoverNone {
				rep.Cover = CoverLight
			}
		}
	}

	// Hugging cover: a target next to blocking or heavy terrain is harder
	// to pick out even on a clean line.
	if rep.Cover == CoverNone {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !g.InBounds(to.X+dx, to.Y+dy) {
					continue // the board edge is not cover
				}
				t := g.TileAt(to.X+dx, to.Y+dy)
				if t == TileBlocking || t == TileHeavyCover {
					rep.Cover = CoverLight
				}
			}
		}
	}

	return rep
}

// RangePenalty returns the to-hit modifier for a shot at the given distance
// in units: point-blank band is free, the middle band costs -1, and anything
// past 3 units costs -3.
func RangePenalty(units float64) int {
	switch {
	case units <= 2.0:
		return 0
	case units <= 3.0:
		return -1
	default:
		return -3
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
