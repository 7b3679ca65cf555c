package game

import (
	"strings"
	"testing"
)

func TestBattleLog_FiltersAndCounts(t *testing.T) {
	log := NewBattleLog()
	log.Add(1, "A0", "A", "shoot", "to_hit", "d20=14", 14)
	log.Add(1, "B0", "B", "shoot", "suppressed", "pinned", 0)
	log.Add(2, "A0", "A", "shoot", "to_hit", "d20=3", 3)
	log.Add(2, "--", "--", "round", "complete", "both teams exhausted", 0)

	if got := log.CountCategory("shoot", "to_hit"); got != 2 {
		t.Fatalf("counted %d to-hit entries, want 2", got)
	}
	if got := len(log.FilterModel("A0")); got != 2 {
		t.Fatalf("A0 has %d entries, want 2", got)
	}
	if got := len(log.FilterRound(2)); got != 2 {
		t.Fatalf("round 2 has %d entries, want 2", got)
	}
	last, ok := log.LastOf("shoot", "to_hit")
	if !ok || last.Round != 2 {
		t.Fatalf("LastOf = %+v ok=%v, want the round-2 entry", last, ok)
	}
	if !log.HasEntry("round", "complete", "exhausted") {
		t.Fatal("substring match should find the round entry")
	}
	if log.HasEntry("round", "complete", "nonsense") {
		t.Fatal("wrong substring must not match")
	}
}

func TestBattleLog_SinkStreamsFormattedLines(t *testing.T) {
	log := NewBattleLog()
	var streamed []string
	log.Sink = func(line string) { streamed = append(streamed, line) }

	log.Add(3, "A1", "A", "move", "step", "(0,0) -> (2,0)", 0)
	if len(streamed) != 1 {
		t.Fatalf("sink received %d lines, want 1", len(streamed))
	}
	if !strings.Contains(streamed[0], "[R=03]") || !strings.Contains(streamed[0], "A1") {
		t.Fatalf("sink line %q missing the fixed-width prefix", streamed[0])
	}
}

func TestBattleLog_TailKeepsTheNewest(t *testing.T) {
	log := NewBattleLog()
	for i := 1; i <= 5; i++ {
		log.Add(i, "A0", "A", "aim", "steady", "", float64(i))
	}
	tail := log.Tail(2)
	if len(tail) != 2 || !strings.Contains(tail[1], "[R=05]") {
		t.Fatalf("tail = %v", tail)
	}
	if got := log.Tail(99); len(got) != 5 {
		t.Fatalf("oversized tail returned %d lines", len(got))
	}
}
