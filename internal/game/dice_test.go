package game

import "testing"

func TestDice_D20Range(t *testing.T) {
	d := NewDice(99)
	for i := 0; i < 1000; i++ {
		v := d.D20()
		if v < 1 || v > 20 {
			t.Fatalf("d20 rolled %d", v)
		}
	}
}

func TestDice_SeededStreamsMatch(t *testing.T) {
	a := NewDice(7)
	b := NewDice(7)
	for i := 0; i < 50; i++ {
		if a.D20() != b.D20() {
			t.Fatalf("same seed diverged at roll %d", i)
		}
	}
}

func TestScriptedSource_ReplaysAndWraps(t *testing.T) {
	d := NewDiceFrom(newScriptedSource(20, 1, 13))
	want := []int{20, 1, 13, 20, 1} // wraps after the script runs out
	for i, w := range want {
		if got := d.D20(); got != w {
			t.Fatalf("roll %d = %d, want %d", i, got, w)
		}
	}
}

func TestScriptedSource_ScalesToSmallerDice(t *testing.T) {
	src := newScriptedSource(3)
	if got := src.Intn(2); got != 0 {
		t.Fatalf("Intn(2) = %d, want the scripted value folded in range", got)
	}
}
