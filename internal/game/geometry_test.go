package game

import "testing"

func TestChebyshev_DiagonalsCountAsOne(t *testing.T) {
	if got := Chebyshev(Point{0, 0}, Point{2, 2}); got != 2 {
		t.Fatalf("Chebyshev diagonal = %d, want 2", got)
	}
	if got := Chebyshev(Point{3, 1}, Point{3, 5}); got != 4 {
		t.Fatalf("Chebyshev vertical = %d, want 4", got)
	}
}

func TestDistanceUnits_TwoTilesPerUnit(t *testing.T) {
	if got := DistanceUnits(Point{0, 0}, Point{4, 0}); got != 2.0 {
		t.Fatalf("4 tiles = %v units, want 2", got)
	}
	if got := DistanceUnits(Point{0, 0}, Point{3, 4}); got != 2.5 {
		t.Fatalf("3-4-5 triangle = %v units, want 2.5", got)
	}
}

func TestAdjacent(t *testing.T) {
	if !Adjacent(Point{2, 2}, Point{3, 3}) {
		t.Fatal("diagonal neighbours should be adjacent")
	}
	if Adjacent(Point{2, 2}, Point{2, 2}) {
		t.Fatal("a tile is not adjacent to itself")
	}
	if Adjacent(Point{2, 2}, Point{4, 2}) {
		t.Fatal("two tiles apart is not adjacent")
	}
}

func TestTraceLine_Endpoints(t *testing.T) {
	line := TraceLine(Point{1, 1}, Point{5, 3})
	if line[0] != (Point{1, 1}) || line[len(line)-1] != (Point{5, 3}) {
		t.Fatalf("line %v should start and end at the endpoints", line)
	}
}

func TestTraceLine_Symmetric(t *testing.T) {
	// The traced tile set must not depend on which end is the attacker.
	cases := [][2]Point{
		{{0, 0}, {7, 3}},
		{{4, 6}, {0, 1}},
		{{2, 2}, {2, 7}},
		{{5, 0}, {0, 5}},
		{{3, 3}, {3, 3}},
	}
	for _, c := range cases {
		fwd := TraceLine(c[0], c[1])
		rev := TraceLine(c[1], c[0])
		if len(fwd) != len(rev) {
			t.Fatalf("trace %v->%v: %d tiles forward, %d reverse", c[0], c[1], len(fwd), len(rev))
		}
		for i := range fwd {
			if fwd[i] != rev[len(rev)-1-i] {
				t.Fatalf("trace %v->%v asymmetric at %d: %v vs %v", c[0], c[1], i, fwd, rev)
			}
		}
	}
}

func TestLineOfSight_Clear(t *testing.T) {
	g := NewGrid(10, 10)
	rep := LineOfSight(Point{0, 5}, Point{8, 5}, g)
	if rep.Blocked || rep.Cover != CoverNone {
		t.Fatalf("open board should be clear, got %+v", rep)
	}
}

func TestLineOfSight_BlockedByWall(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(3, 5, TileBlocking)
	rep := LineOfSight(Point{0, 5}, Point{8, 5}, g)
	if !rep.Blocked {
		t.Fatal("wall on the line should block sight")
	}
}

func TestLineOfSight_HeavyCoverOnPath(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(3, 5, TileHeavyCover)
	rep := LineOfSight(Point{0, 5}, Point{8, 5}, g)
	if rep.Blocked {
		t.Fatal("heavy cover must not block sight entirely")
	}
	if rep.Cover != CoverHeavy {
		t.Fatalf("cover = %s, want heavy", rep.Cover)
	}
}

func TestLineOfSight_HeavyCoverOnTargetTile(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(8, 5, TileHeavyCover)
	rep := LineOfSight(Point{0, 5}, Point{8, 5}, g)
	if rep.Cover != CoverHeavy {
		t.Fatalf("target standing in heavy cover should count, got %s", rep.Cover)
	}
}

func TestLineOfSight_CornerGraze(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(1, 0, TileBlocking)
	rep := LineOfSight(Point{0, 0}, Point{2, 2}, g)
	if rep.Blocked {
		t.Fatal("one blocked corner should not cut the line")
	}
	if rep.Cover != CoverLight {
		t.Fatalf("grazing one corner should grant light cover, got %s", rep.Cover)
	}
}

func TestLineOfSight_SealedCorner(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(1, 0, TileBlocking)
	g.SetTile(0, 1, TileBlocking)
	rep := LineOfSight(Point{0, 0}, Point{2, 2}, g)
	if !rep.Blocked {
		t.Fatal("a diagonal through two blocked corners is sealed")
	}
}

func TestLineOfSight_HuggingCover(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(5, 4, TileBlocking) // beside the target, not on the line
	rep := LineOfSight(Point{0, 5}, Point{5, 5}, g)
	if rep.Blocked {
		t.Fatal("cover beside the target should not block")
	}
	if rep.Cover != CoverLight {
		t.Fatalf("target hugging cover should get light, got %s", rep.Cover)
	}
}

func TestLineOfSight_BoardEdgeIsNotCover(t *testing.T) {
	g := NewGrid(10, 10)
	rep := LineOfSight(Point{3, 0}, Point{0, 0}, g)
	if rep.Cover != CoverNone {
		t.Fatalf("a corner target on an open board has no cover, got %s", rep.Cover)
	}
}

func TestLineOfSight_HeavyOutranksLight(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetTile(3, 5, TileHeavyCover)
	g.SetTile(8, 4, TileBlocking) // hugging cover too
	rep := LineOfSight(Point{0, 5}, Point{8, 5}, g)
	if rep.Cover != CoverHeavy {
		t.Fatalf("heavy and light together should report heavy, got %s", rep.Cover)
	}
}

func TestRangePenalty_Bands(t *testing.T) {
	cases := []struct {
		units float64
		want  int
	}{
		{0.5, 0},
		{2.0, 0},
		{2.1, -1},
		{3.0, -1},
		{3.01, -3},
		{8.0, -3},
	}
	for _, c := range cases {
		if got := RangePenalty(c.units); got != c.want {
			t.Fatalf("RangePenalty(%v) = %d, want %d", c.units, got, c.want)
		}
	}
}

func TestGrid_OutOfBoundsReadsAsBlocking(t *testing.T) {
	g := NewGrid(4, 4)
	if g.TileAt(-1, 0) != TileBlocking || g.TileAt(0, 4) != TileBlocking {
		t.Fatal("out-of-bounds tiles should read as blocking")
	}
	if g.Passable(4, 0) {
		t.Fatal("off-board tiles are never passable")
	}
	g.SetTile(9, 9, TileBlocking) // must not panic or corrupt
	if !g.Passable(2, 2) {
		t.Fatal("in-bounds open tile should be passable")
	}
}
