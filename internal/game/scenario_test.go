package game

import "testing"

func TestSkirmish_GeneratedBoardIsPlayable(t *testing.T) {
	b := NewSkirmish(42)
	if b.Grid.Width != skirmishWidth || b.Grid.Height != skirmishHeight {
		t.Fatalf("board %dx%d", b.Grid.Width, b.Grid.Height)
	}
	if len(b.Models) != 2*warbandSize {
		t.Fatalf("fielded %d models, want %d", len(b.Models), 2*warbandSize)
	}

	// Deployment bands must stay clear of generated terrain.
	for _, team := range []Team{TeamA, TeamB} {
		minX, maxX := b.deployBand(team)
		for x := minX; x <= maxX; x++ {
			for y := 0; y < b.Grid.Height; y++ {
				if b.Grid.TileAt(x, y) != TileOpen {
					t.Fatalf("terrain at (%d,%d) inside team %s's band", x, y, team)
				}
			}
		}
	}
}

func TestAutoplay_RunsToAResult(t *testing.T) {
	b, out := RunReport(42, 25)
	if b.Round < 1 || b.Round > 25 {
		t.Fatalf("finished on round %d", b.Round)
	}
	if out.TotalA != warbandSize || out.TotalB != warbandSize {
		t.Fatalf("outcome totals %d/%d", out.TotalA, out.TotalB)
	}
	if out.SurvivorsA > out.TotalA || out.SurvivorsB > out.TotalB {
		t.Fatalf("survivor counts exceed totals: %+v", out)
	}
	if !b.Log.HasEntry("round", "start", "") {
		t.Fatal("a played battle logs its round starts")
	}
	if !b.Log.HasEntry("outcome", out.Outcome.String(), "") {
		t.Fatal("the final outcome is logged")
	}

	// The log's body count must agree with the outcome's survivor counts.
	deaths := b.Log.CountCategory("death", "slain")
	want := (out.TotalA - out.SurvivorsA) + (out.TotalB - out.SurvivorsB)
	if deaths != want {
		t.Fatalf("log records %d deaths, outcome implies %d", deaths, want)
	}
}

func TestAutoplay_SameSeedSameBattle(t *testing.T) {
	b1, out1 := RunReport(7, 25)
	b2, out2 := RunReport(7, 25)
	if b1.Round != b2.Round {
		t.Fatalf("rounds diverged: %d vs %d", b1.Round, b2.Round)
	}
	if out1 != out2 {
		t.Fatalf("outcomes diverged: %+v vs %+v", out1, out2)
	}
	if len(b1.Log.Entries()) != len(b2.Log.Entries()) {
		t.Fatalf("log lengths diverged: %d vs %d",
			len(b1.Log.Entries()), len(b2.Log.Entries()))
	}
}

func TestAutoplay_DeadModelsStayOffTheBoard(t *testing.T) {
	b, _ := RunReport(11, 25)
	for _, m := range b.Models {
		if m.Dead {
			if b.ModelAt(m.Pos()) == m {
				t.Fatalf("%s is dead but still occupies %v", m.Label(), m.Pos())
			}
			continue
		}
		if m.Deployed && !b.Grid.InBounds(m.X, m.Y) {
			t.Fatalf("%s stands off the board at %v", m.Label(), m.Pos())
		}
	}
}
