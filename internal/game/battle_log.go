package game

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded event during a battle.
type LogEntry struct {
	Round    int
	Model    string  // label e.g. "A0", "B3", or "--" for global events
	Team     string  // "A", "B", or "--"
	Category string  // round, activation, action, shoot, fight, move, horror, save...
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[R=03] A0   shoot   to_hit   d20=14 +1 shoot -1 cover = 14 vs AC 12
func (e LogEntry) String() string {
	return fmt.Sprintf("[R=%02d] %-4s %-10s %-16s %s",
		e.Round, e.Model, e.Category, e.Key, e.Value)
}

// BattleLog collects structured events for the whole match. It is unbounded
// and append-only; tests assert on its contents, and the UI tails it. An
// optional Sink receives each formatted line as it is recorded.
type BattleLog struct {
	entries []LogEntry
	Sink    func(line string)
}

// NewBattleLog creates an empty log.
func NewBattleLog() *BattleLog {
	return &BattleLog{}
}

// Add records a new entry.
func (bl *BattleLog) Add(round int, model, team, category, key, value string, numVal float64) {
	e := LogEntry{
		Round:    round,
		Model:    model,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	bl.entries = append(bl.entries, e)
	if bl.Sink != nil {
		bl.Sink(e.String())
	}
}

// Entries returns all recorded entries.
func (bl *BattleLog) Entries() []LogEntry {
	return bl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (bl *BattleLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterModel returns entries for a specific model label.
func (bl *BattleLog) FilterModel(label string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Model == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterRound returns entries recorded during one round.
func (bl *BattleLog) FilterRound(round int) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (bl *BattleLog) CountCategory(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (bl *BattleLog) LastOf(category, key string) (LogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring. Empty arguments match anything.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns the last n formatted lines for on-screen display.
func (bl *BattleLog) Tail(n int) []string {
	start := len(bl.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(bl.entries)-start)
	for _, e := range bl.entries[start:] {
		out = append(out, e.String())
	}
	return out
}

// Format returns the full log as a single string for t.Log output.
func (bl *BattleLog) Format() string {
	var sb strings.Builder
	for _, e := range bl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
