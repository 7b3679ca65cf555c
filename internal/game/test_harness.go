package game

import "fmt"

// TestBattle wraps a Battle wired for deterministic tests: scripted or
// seeded dice, hand-placed terrain, and pre-deployed models. Round 1 is
// opened directly, without an initiative roll, so scripted dice line up
// with the action under test.
type TestBattle struct {
	*Battle
}

// TestOption configures a TestBattle. Options are applied in order:
// terrain first, then models, so a model option may assume the grid exists.
type TestOption func(*testSetup)

type testSetup struct {
	width, height int
	seed          int64
	rolls         []int
	tiles         map[Point]TileKind
	modelsA       []*Model
	modelsB       []*Model
}

// WithGridSize sets the board dimensions. Defaults to 12x8.
func WithGridSize(w, h int) TestOption {
	return func(s *testSetup) {
		s.width, s.height = w, h
	}
}

// WithSeed selects the random stream for unscripted rolls.
func WithSeed(seed int64) TestOption {
	return func(s *testSetup) {
		s.seed = seed
	}
}

// WithRolls scripts the die faces, consumed in order. The script wraps
// around if a test rolls past its end.
func WithRolls(rolls ...int) TestOption {
	return func(s *testSetup) {
		s.rolls = rolls
	}
}

// WithBlockingAt raises a sight-blocking, impassable tile.
func WithBlockingAt(x, y int) TestOption {
	return func(s *testSetup) {
		s.tiles[Point{x, y}] = TileBlocking
	}
}

// WithHeavyCoverAt raises a heavy-cover tile.
func WithHeavyCoverAt(x, y int) TestOption {
	return func(s *testSetup) {
		s.tiles[Point{x, y}] = TileHeavyCover
	}
}

// ModelOption tweaks one harness model after its defaults are set.
type ModelOption func(*Model)

// Tiers sets all four attribute tiers at once (defense, will, shoot, fight).
func Tiers(def, will, shoot, fight int) ModelOption {
	return func(m *Model) {
		m.Tiers = [attributeCount]int{def, will, shoot, fight}
		m.Wounds = m.WoundsMax()
	}
}

// RangedWeapon arms the model with a named entry from the shoot table.
func RangedWeapon(name string) ModelOption {
	return func(m *Model) {
		if w, ok := DefaultRules().ShootByName(name); ok {
			m.Ranged = &w
		}
	}
}

// MeleeArm arms the model with a named entry from the fight table.
func MeleeArm(name string) ModelOption {
	return func(m *Model) {
		if w, ok := DefaultRules().FightByName(name); ok {
			m.Melee = &w
		}
	}
}

// Carrying adds a named accessory from the default rules.
func Carrying(name string) ModelOption {
	return func(m *Model) {
		for _, a := range DefaultRules().Accessories {
			if a.Name == name {
				m.Accessories = append(m.Accessories, a)
				m.Wounds = m.WoundsMax()
				return
			}
		}
	}
}

// Horrified starts the model with horror tokens.
func Horrified(tokens int) ModelOption {
	return func(m *Model) {
		m.Horror = tokens
	}
}

// Pinned starts the model suppressed.
func Pinned() ModelOption {
	return func(m *Model) {
		m.Suppressed = true
	}
}

// Undeployed leaves the model off the board awaiting placement.
func Undeployed() ModelOption {
	return func(m *Model) {
		m.Deployed = false
	}
}

// WithModelA places a team A model at a tile, deployed and at tier 1 in
// everything unless options say otherwise.
func WithModelA(x, y int, opts ...ModelOption) TestOption {
	return func(s *testSetup) {
		s.modelsA = append(s.modelsA, newHarnessModel(TeamA, len(s.modelsA), x, y, opts))
	}
}

// WithModelB places a team B model at a tile.
func WithModelB(x, y int, opts ...ModelOption) TestOption {
	return func(s *testSetup) {
		s.modelsB = append(s.modelsB, newHarnessModel(TeamB, len(s.modelsB), x, y, opts))
	}
}

func newHarnessModel(team Team, ordinal, x, y int, opts []ModelOption) *Model {
	id := ordinal
	if team == TeamB {
		id += warbandSize
	}
	m := &Model{
		ID:       id,
		Team:     team,
		Name:     fmt.Sprintf("%s test model %d", team, ordinal),
		Leader:   ordinal == 0,
		Tiers:    [attributeCount]int{1, 1, 1, 1},
		X:        x,
		Y:        y,
		Deployed: true,
	}
	m.Wounds = m.WoundsMax()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestBattle builds the battle and opens round 1 with team A active.
func NewTestBattle(opts ...TestOption) *TestBattle {
	s := &testSetup{
		width:  12,
		height: 8,
		seed:   1,
		tiles:  map[Point]TileKind{},
	}
	for _, opt := range opts {
		opt(s)
	}

	grid := NewGrid(s.width, s.height)
	for p, k := range s.tiles {
		grid.SetTile(p.X, p.Y, k)
	}

	var dice *Dice
	if len(s.rolls) > 0 {
		dice = NewDiceFrom(newScriptedSource(s.rolls...))
	} else {
		dice = NewDice(s.seed)
	}

	b := NewBattle(grid, DefaultRules(), s.modelsA, s.modelsB, dice)
	b.Round = 1
	b.ActiveTeam = TeamA
	b.phase = PhaseAwaitingActivation
	return &TestBattle{Battle: b}
}

// ModelByLabel finds a model by its board label, e.g. "A0" or "B2".
func (tb *TestBattle) ModelByLabel(label string) *Model {
	for _, m := range tb.Models {
		if m.Label() == label {
			return m
		}
	}
	return nil
}

// Activate begins the labelled model's activation directly.
func (tb *TestBattle) Activate(label string) *Model {
	m := tb.ModelByLabel(label)
	if m == nil {
		panic(fmt.Sprintf("no model labelled %q", label))
	}
	tb.ActiveTeam = m.Team
	tb.beginActivation(m)
	return m
}
