package game

import "fmt"

// Team distinguishes the two warbands.
type Team int

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Enemy returns the opposing team.
func (t Team) Enemy() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

const (
	baseActions      = 3 // actions per activation before penalties
	horrorCap        = 5 // maximum horror tokens a model can carry
	actionPenaltyCap = 2 // stacking cap on carried-over action penalties
	maxAimStreak     = 2 // consecutive aims that still improve the bonus
	warbandSize      = 5 // leader + four followers
	deployBandTiles  = 2 // width of each team's deployment strip
	moveRadius       = 2 // Chebyshev move/charge radius per action
)

// Model is one combat actor on the battlefield. It is created before the
// match, persists for its whole duration, and is only ever destroyed
// logically (marked dead and taken off the board).
type Model struct {
	ID     int
	Team   Team
	Name   string
	Leader bool

	Tiers [attributeCount]int

	Ranged      *WeaponDef
	Melee       *WeaponDef
	Accessories []AccessoryDef
	Powers      []PowerDef
	Mutations   []MutationDef

	X, Y     int
	Deployed bool

	Wounds     int
	Dead       bool
	Exhausted  bool
	Suppressed bool

	Horror            int
	horrorThisRound   bool // at most one token gained per round
	AimStreak         int
	ActionsLeft       int
	PendingPenalty    int
	rerollUsed        bool // once-per-round to-hit reroll spent
	recoveredThisTurn bool // Recover is once per activation
}

// Label is the short log identifier, e.g. "A0" for team A's leader.
func (m *Model) Label() string {
	return fmt.Sprintf("%s%d", m.Team, m.ID%warbandSize)
}

// Pos returns the model's tile.
func (m *Model) Pos() Point {
	return Point{m.X, m.Y}
}

// Modifier returns the model's combat modifier for an attribute, gear
// bonuses included for Shoot and Fight.
func (m *Model) Modifier(a Attribute) int {
	mod := TierModifier(a, m.Tiers[a])
	switch a {
	case AttrShoot:
		mod += m.gear().ShootBonus
	case AttrFight:
		mod += m.gear().FightBonus
	}
	return mod
}

// ArmorClass is the to-hit target: 10 plus the Defense modifier plus gear.
func (m *Model) ArmorClass() int {
	return 10 + TierModifier(AttrDefense, m.Tiers[AttrDefense]) + m.gear().ArmorBonus
}

// SaveTarget is the base saving-throw and horror-test target, keyed by Will
// tier and floored at 10. Gear save bonuses lower it further, but never
// below the floor.
func (m *Model) SaveTarget() int {
	t := SaveTargetForWill(m.Tiers[AttrWill]) - m.gear().SaveBonus
	if t < saveTargetFloor {
		t = saveTargetFloor
	}
	return t
}

// WoundsMax is the sum of all four tiers plus gear bonuses.
func (m *Model) WoundsMax() int {
	sum := 0
	for a := Attribute(0); a < attributeCount; a++ {
		sum += m.Tiers[a]
	}
	return sum + m.gear().WoundsBonus
}

// gear folds every equipped passive bonus into a single effects value.
func (m *Model) gear() GearEffects {
	var g GearEffects
	add := func(e GearEffects) {
		g.ArmorBonus += e.ArmorBonus
		g.WoundsBonus += e.WoundsBonus
		g.ShootBonus += e.ShootBonus
		g.FightBonus += e.FightBonus
		g.SaveBonus += e.SaveBonus
		g.HorrorTestBonus += e.HorrorTestBonus
		g.RerollToHit = g.RerollToHit || e.RerollToHit
	}
	for _, a := range m.Accessories {
		add(a.Effects)
	}
	for _, p := range m.Powers {
		add(p.Effects)
	}
	for _, mu := range m.Mutations {
		add(mu.Effects)
	}
	return g
}

// MeleeWeapon returns the equipped fight weapon, or the unarmed profile.
func (m *Model) MeleeWeapon() WeaponDef {
	if m.Melee != nil {
		return *m.Melee
	}
	return Unarmed
}

// GainHorror adds one horror token, honouring both the 0-5 cap and the
// once-per-round gain latch. Returns true if a token was actually added.
func (m *Model) GainHorror() bool {
	if m.horrorThisRound || m.Horror >= horrorCap {
		return false
	}
	m.Horror++
	m.horrorThisRound = true
	return true
}

// TakeDamage applies wounds and handles logical destruction. A dead model
// no longer occupies a tile and is excluded from every readiness check.
func (m *Model) TakeDamage(n int) {
	if n <= 0 || m.Dead {
		return
	}
	m.Wounds -= n
	if m.Wounds <= 0 {
		m.Wounds = 0
		m.Dead = true
	}
}

// ResetForRound clears round-scoped state. Horror tokens and suppression
// persist across rounds; only the gain latch, exhaustion, the reroll grant,
// and the aim streak reset.
func (m *Model) ResetForRound() {
	if m.Dead {
		return
	}
	m.Exhausted = false
	m.horrorThisRound = false
	m.AimStreak = 0
	m.rerollUsed = false
}

// BeginActivation grants the action allowance for this activation, applying
// any carried-over penalty exactly once. The result is clamped to [1, 3].
func (m *Model) BeginActivation() {
	actions := baseActions - m.PendingPenalty
	if actions < 1 {
		actions = 1
	}
	if actions > baseActions {
		actions = baseActions
	}
	m.ActionsLeft = actions
	m.PendingPenalty = 0
	m.recoveredThisTurn = false
}

// AddActionPenalty queues a malus for the model's next activation, capped.
func (m *Model) AddActionPenalty(n int) {
	m.PendingPenalty += n
	if m.PendingPenalty > actionPenaltyCap {
		m.PendingPenalty = actionPenaltyCap
	}
}

// Ready reports whether the model can still be activated this round.
func (m *Model) Ready() bool {
	return !m.Dead && !m.Exhausted
}
