package game

import "math/rand"

// DieSource is the subset of rand.Rand the engine rolls through. Tests swap
// in a scripted source to make every resolution deterministic.
type DieSource interface {
	Intn(n int) int
}

// Dice wraps a DieSource with the handful of rolls the rules use.
type Dice struct {
	src DieSource
}

// NewDice creates a seeded production dice pool.
func NewDice(seed int64) *Dice {
	return &Dice{src: rand.New(rand.NewSource(seed))} // #nosec G404 -- game only
}

// NewDiceFrom wraps an existing source (scripted dice in tests).
func NewDiceFrom(src DieSource) *Dice {
	return &Dice{src: src}
}

// D20 rolls one 20-sided die.
func (d *Dice) D20() int {
	return d.src.Intn(20) + 1
}

// Intn exposes the underlying source for non-roll randomness (warband
// generation draws, tie-breaks).
func (d *Dice) Intn(n int) int {
	return d.src.Intn(n)
}

// scriptedSource replays a fixed list of die results. Each queued value v is
// served so that Intn(n)+1 == v; it wraps around when exhausted so long
// scenarios keep running.
type scriptedSource struct {
	rolls []int
	next  int
}

func newScriptedSource(rolls ...int) *scriptedSource {
	if len(rolls) == 0 {
		rolls = []int{10}
	}
	return &scriptedSource{rolls: rolls}
}

func (s *scriptedSource) Intn(n int) int {
	v := s.rolls[s.next%len(s.rolls)]
	s.next++
	return (v - 1) % n
}
