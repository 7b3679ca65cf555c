package main

import (
	"testing"

	"github.com/Garsondee/Warband-Tactics/internal/game"
)

func TestFirstRound(t *testing.T) {
	log := game.NewBattleLog()
	log.Add(1, "A0", "A", "shoot", "to_hit", "miss", 0)
	log.Add(2, "A0", "A", "death", "slain", "removed", 0)
	log.Add(3, "B1", "B", "death", "slain", "removed", 0)

	if got := firstRound(log, "death", "slain"); got != 2 {
		t.Fatalf("expected first death in round 2, got %d", got)
	}
	if got := firstRound(log, "charge", "shock"); got != -1 {
		t.Fatalf("expected -1 for missing category, got %d", got)
	}
}

func TestAvg(t *testing.T) {
	if got := avg(10, 4); got != 2.5 {
		t.Fatalf("avg(10,4) = %v, want 2.5", got)
	}
	if got := avg(3, 0); got != 0 {
		t.Fatalf("avg over zero runs should be 0, got %v", got)
	}
}

func TestRoundStrings(t *testing.T) {
	if got := roundString(-1); got != "n/a" {
		t.Fatalf("roundString(-1) = %q", got)
	}
	if got := roundString(7); got != "7" {
		t.Fatalf("roundString(7) = %q", got)
	}
	if got := avgRoundString(nil); got != "n/a" {
		t.Fatalf("avgRoundString(nil) = %q", got)
	}
	if got := avgRoundString([]int{1, 2}); got != "1.5" {
		t.Fatalf("avgRoundString = %q, want 1.5", got)
	}
}
