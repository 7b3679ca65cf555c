package game

import "fmt"

// AttackResult is the structured outcome of one Shoot or Fight resolution.
// Every number the log narrates is also available here for callers that
// prefer data over text.
type AttackResult struct {
	Attacker string
	Defender string
	Kind     ActionKind

	Roll     int // final d20 face after any reroll
	Total    int
	TargetAC int
	Hit      bool
	Crit     bool // natural 20
	Fumble   bool // natural 1
	Rerolled bool

	Cover     CoverKind
	StatMod   int
	AimMod    int
	HorrorMod int
	CoverMod  int
	RangeMod  int
	WeaponMod int

	SaveDenied bool
	SaveRoll   int
	SaveTarget int
	Saved      bool

	Damage int
	Slain  bool
}

// aimBonusFor maps an aim streak to its to-hit bonus.
func aimBonusFor(streak int) int {
	switch {
	case streak >= maxAimStreak:
		return 3
	case streak == 1:
		return 1
	default:
		return 0
	}
}

// reject reports an illegal action without mutating any game state and
// returns the machine to action selection.
func (b *Battle) reject(m *Model, msg string) string {
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "action", "illegal", msg, 0)
	b.hasPending = false
	b.phase = PhaseAwaitingAction
	return msg
}

// resolveTargeted dispatches a pending action once its target arrives.
func (b *Battle) resolveTargeted(kind ActionKind, p Point) string {
	m := b.Active
	switch kind {
	case ActionMove:
		return b.resolveMove(m, p)
	case ActionCharge:
		return b.resolveCharge(m, p)
	case ActionShoot:
		return b.resolveShoot(m, p)
	case ActionFight:
		return b.resolveFight(m, p)
	case ActionDisengage:
		return b.resolveDisengage(m, p)
	default:
		return b.reject(m, "that action takes no target")
	}
}

// horrorTest rolls d20 + Will modifier - horror tokens against the model's
// save target. The consequence of failure belongs to the caller.
func (b *Battle) horrorTest(m *Model, reason string) bool {
	roll := b.dice.D20()
	total := roll + m.Modifier(AttrWill) - m.Horror + m.gear().HorrorTestBonus
	pass := total >= m.SaveTarget()
	verdict := "passed"
	if !pass {
		verdict = "FAILED"
	}
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "horror", "test",
		fmt.Sprintf("%s: d20=%d total=%d vs %d — %s", reason, roll, total, m.SaveTarget(), verdict),
		float64(total))
	return pass
}

// resolveMove walks the active model up to two tiles. A suppressed mover
// must pass a horror test first; failing it still costs the action.
func (b *Battle) resolveMove(m *Model, dest Point) string {
	if dest == m.Pos() {
		return b.reject(m, fmt.Sprintf("%s is already there", m.Label()))
	}
	if Chebyshev(m.Pos(), dest) > moveRadius {
		return b.reject(m, fmt.Sprintf("(%d,%d) is out of move range", dest.X, dest.Y))
	}
	if !b.Grid.Passable(dest.X, dest.Y) {
		return b.reject(m, fmt.Sprintf("(%d,%d) is impassable", dest.X, dest.Y))
	}
	if occ := b.ModelAt(dest); occ != nil {
		return b.reject(m, fmt.Sprintf("(%d,%d) is occupied by %s", dest.X, dest.Y, occ.Label()))
	}

	b.consumeAction(ActionMove)
	if m.Suppressed && !b.horrorTest(m, "move while suppressed") {
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "move", "frozen",
			"suppression holds the model in place", 0)
		b.finishAction()
		return fmt.Sprintf("%s fails its nerve and stays put", m.Label())
	}

	from := m.Pos()
	m.X, m.Y = dest.X, dest.Y
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "move", "step",
		fmt.Sprintf("(%d,%d) -> (%d,%d)", from.X, from.Y, dest.X, dest.Y), 0)
	b.finishAction()
	return fmt.Sprintf("%s moves to (%d,%d)", m.Label(), dest.X, dest.Y)
}

// resolveCharge rushes the active model onto a tile adjacent to the chosen
// enemy, then puts the defender through a Charge Shock test.
func (b *Battle) resolveCharge(m *Model, p Point) string {
	def := b.ModelAt(p)
	if def == nil || def.Team == m.Team {
		return b.reject(m, "charge needs a living enemy target")
	}

	// Best reachable tile adjacent to the defender: ties broken by minimum
	// resulting distance to the enemy, so orthogonal contact beats diagonal.
	var best Point
	bestDist := -1.0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			t := Point{def.X + dx, def.Y + dy}
			if !b.Grid.Passable(t.X, t.Y) {
				continue
			}
			if occ := b.ModelAt(t); occ != nil && occ != m {
				continue
			}
			if Chebyshev(m.Pos(), t) > moveRadius {
				continue
			}
			d := DistanceUnits(t, def.Pos())
			if bestDist < 0 || d < bestDist {
				best, bestDist = t, d
			}
		}
	}
	if bestDist < 0 {
		return b.reject(m, fmt.Sprintf("%s cannot reach %s", m.Label(), def.Label()))
	}

	b.consumeAction(ActionCharge)
	if m.Suppressed && !b.horrorTest(m, "charge while suppressed") {
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "charge", "frozen",
			"suppression holds the model in place", 0)
		b.finishAction()
		return fmt.Sprintf("%s fails its nerve and stays put", m.Label())
	}

	from := m.Pos()
	m.X, m.Y = best.X, best.Y
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "charge", "contact",
		fmt.Sprintf("(%d,%d) -> (%d,%d), into %s", from.X, from.Y, best.X, best.Y, def.Label()), 0)

	// Charge Shock: the defender tests or reels into its next activation.
	if !b.horrorTest(def, "charge shock") {
		if def.GainHorror() {
			b.Log.Add(b.Round, def.Label(), def.Team.String(), "horror", "token",
				fmt.Sprintf("horror rises to %d", def.Horror), float64(def.Horror))
		}
		def.AddActionPenalty(1)
		b.Log.Add(b.Round, def.Label(), def.Team.String(), "charge", "shock",
			fmt.Sprintf("next activation at -%d actions", def.PendingPenalty), float64(def.PendingPenalty))
	}

	b.finishAction()
	return fmt.Sprintf("%s charges %s", m.Label(), def.Label())
}

// resolveShoot fires the active model's ranged weapon. The target is
// suppressed by the attempt itself, hit or miss.
func (b *Battle) resolveShoot(m *Model, p Point) string {
	def := b.ModelAt(p)
	if def == nil || def.Team == m.Team {
		return b.reject(m, "shoot needs a living enemy target")
	}
	if b.Engaged(m) {
		return b.reject(m, fmt.Sprintf("%s is engaged and cannot shoot", m.Label()))
	}
	if m.Ranged == nil {
		return b.reject(m, fmt.Sprintf("%s has no ranged weapon", m.Label()))
	}
	w := *m.Ranged

	sight := LineOfSight(m.Pos(), def.Pos(), b.Grid)
	if sight.Blocked {
		return b.reject(m, fmt.Sprintf("no line of sight to %s", def.Label()))
	}
	dist := DistanceUnits(m.Pos(), def.Pos())
	if w.RequiresAimStreak > m.AimStreak {
		return b.reject(m, fmt.Sprintf("%s needs an aim streak of %d to fire", w.Name, w.RequiresAimStreak))
	}
	if w.BlocksWithinUnits > 0 && dist <= w.BlocksWithinUnits {
		return b.reject(m, fmt.Sprintf("%s cannot fire within %.0f unit(s)", w.Name, w.BlocksWithinUnits))
	}

	// Commit. The aim streak is read now and spent by the attempt.
	aimMod := aimBonusFor(m.AimStreak)
	b.consumeAction(ActionShoot)

	def.Suppressed = true
	b.Log.Add(b.Round, def.Label(), def.Team.String(), "shoot", "suppressed",
		fmt.Sprintf("pinned by fire from %s", m.Label()), 0)

	res := &AttackResult{
		Attacker:  m.Label(),
		Defender:  def.Label(),
		Kind:      ActionShoot,
		TargetAC:  def.ArmorClass(),
		Cover:     sight.Cover,
		StatMod:   m.Modifier(AttrShoot),
		AimMod:    aimMod,
		HorrorMod: -m.Horror,
		CoverMod:  coverPenalty(sight.Cover),
	}
	if !w.IgnoresRangePenalty {
		res.RangeMod = RangePenalty(dist)
	}
	if w.FalloffBeyondUnits > 0 && dist > w.FalloffBeyondUnits {
		res.WeaponMod = w.FalloffPenalty
	}

	modSum := res.StatMod + res.AimMod + res.HorrorMod + res.CoverMod + res.RangeMod + res.WeaponMod
	b.rollToHit(m, modSum, res)
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "shoot", "to_hit",
		fmt.Sprintf("%s at %s: d20=%d total=%d vs AC %d (aim %+d horror %+d cover %+d range %+d weapon %+d)",
			w.Name, def.Label(), res.Roll, res.Total, res.TargetAC,
			res.AimMod, res.HorrorMod, res.CoverMod, res.RangeMod, res.WeaponMod),
		float64(res.Total))

	if !res.Hit {
		b.LastAttack = res
		b.finishAction()
		return fmt.Sprintf("%s misses %s", m.Label(), def.Label())
	}

	dmg := w.Damage
	ap := w.AP
	if res.Crit {
		dmg++
	}
	if w.CloseWithinUnits > 0 && dist <= w.CloseWithinUnits {
		dmg += w.CloseBonusDamage
		if w.CloseLosesAP {
			ap = 0
		}
	}
	// A natural 20 denies the save, but not against a defender under heavy
	// cover. Save-denying weapons allow none regardless.
	denied := w.DeniesSave || (res.Crit && sight.Cover != CoverHeavy)
	b.resolveSave(def, ap, denied, dmg, res)

	b.LastAttack = res
	b.finishAction()
	return b.describeHit(m, def, res)
}

// resolveFight swings at an adjacent enemy. Cover and range never apply.
func (b *Battle) resolveFight(m *Model, p Point) string {
	def := b.ModelAt(p)
	if def == nil || def.Team == m.Team {
		return b.reject(m, "fight needs a living enemy target")
	}
	if !Adjacent(m.Pos(), def.Pos()) {
		return b.reject(m, fmt.Sprintf("%s is not in reach of %s", def.Label(), m.Label()))
	}
	b.consumeAction(ActionFight)
	res := b.fightAttack(m, def)
	b.LastAttack = res
	b.finishAction()
	if !res.Hit {
		return fmt.Sprintf("%s misses %s", m.Label(), def.Label())
	}
	return b.describeHit(m, def, res)
}

// fightAttack resolves one melee swing, shared by Fight and the free
// opportunity attack during Disengage.
func (b *Battle) fightAttack(att, def *Model) *AttackResult {
	w := att.MeleeWeapon()
	res := &AttackResult{
		Attacker:  att.Label(),
		Defender:  def.Label(),
		Kind:      ActionFight,
		TargetAC:  def.ArmorClass(),
		StatMod:   att.Modifier(AttrFight),
		HorrorMod: -att.Horror,
	}
	modSum := res.StatMod + res.HorrorMod
	b.rollToHit(att, modSum, res)
	b.Log.Add(b.Round, att.Label(), att.Team.String(), "fight", "to_hit",
		fmt.Sprintf("%s at %s: d20=%d total=%d vs AC %d (horror %+d)",
			w.Name, def.Label(), res.Roll, res.Total, res.TargetAC, res.HorrorMod),
		float64(res.Total))
	if !res.Hit {
		return res
	}
	dmg := w.Damage
	if res.Crit {
		dmg++
	}
	denied := w.DeniesSave || res.Crit
	b.resolveSave(def, w.AP, denied, dmg, res)
	return res
}

// resolveDisengage breaks contact: the first adjacent enemy always takes its
// free swing before the relocation is even examined.
func (b *Battle) resolveDisengage(m *Model, dest Point) string {
	enemies := b.engagedWith(m)
	if len(enemies) == 0 {
		return b.reject(m, fmt.Sprintf("%s is not engaged", m.Label()))
	}
	b.consumeAction(ActionDisengage)

	opp := enemies[0]
	b.Log.Add(b.Round, opp.Label(), opp.Team.String(), "disengage", "opportunity",
		fmt.Sprintf("free attack on %s as it breaks away", m.Label()), 0)
	res := b.fightAttack(opp, m)
	if res.Slain {
		b.finishAction()
		return fmt.Sprintf("%s is cut down while disengaging", m.Label())
	}

	// The opportunity attack stands whatever happens next.
	fail := func(why string) string {
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "disengage", "failed", why, 0)
		b.finishAction()
		return fmt.Sprintf("%s fails to disengage: %s", m.Label(), why)
	}
	if Chebyshev(m.Pos(), dest) > moveRadius || dest == m.Pos() {
		return fail("destination out of reach")
	}
	if !b.Grid.Passable(dest.X, dest.Y) {
		return fail("destination impassable")
	}
	if occ := b.ModelAt(dest); occ != nil {
		return fail("destination occupied")
	}
	for _, e := range b.Models {
		if e.Team != m.Team && !e.Dead && e.Deployed && Adjacent(dest, e.Pos()) {
			return fail("destination still in enemy reach")
		}
	}

	from := m.Pos()
	m.X, m.Y = dest.X, dest.Y
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "disengage", "clear",
		fmt.Sprintf("(%d,%d) -> (%d,%d)", from.X, from.Y, dest.X, dest.Y), 0)
	b.finishAction()
	return fmt.Sprintf("%s breaks away to (%d,%d)", m.Label(), dest.X, dest.Y)
}

// resolveAim steadies the active model. Two in a row is as steady as it gets.
func (b *Battle) resolveAim(m *Model) string {
	b.consumeAction(ActionAim)
	if m.AimStreak < maxAimStreak {
		m.AimStreak++
	}
	bonus := aimBonusFor(m.AimStreak)
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "aim", "steady",
		fmt.Sprintf("aim streak %d (+%d on next shot)", m.AimStreak, bonus), float64(m.AimStreak))
	b.finishAction()
	return fmt.Sprintf("%s takes aim (+%d on next shot)", m.Label(), bonus)
}

// resolveRecover sheds one horror token, or failing that, suppression.
func (b *Battle) resolveRecover(m *Model) string {
	b.consumeAction(ActionRecover)
	m.recoveredThisTurn = true
	var msg string
	switch {
	case m.Horror > 0:
		m.Horror--
		msg = fmt.Sprintf("%s steadies itself: horror drops to %d", m.Label(), m.Horror)
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "recover", "horror",
			fmt.Sprintf("horror drops to %d", m.Horror), float64(m.Horror))
	case m.Suppressed:
		m.Suppressed = false
		msg = fmt.Sprintf("%s shakes off suppression", m.Label())
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "recover", "suppression", "no longer suppressed", 0)
	default:
		msg = fmt.Sprintf("%s has nothing to recover from", m.Label())
		b.Log.Add(b.Round, m.Label(), m.Team.String(), "recover", "wasted", "nothing to recover", 0)
	}
	b.finishAction()
	return msg
}

// rollToHit rolls the attack die and settles hit/miss, spending the
// attacker's once-per-round reroll on a miss when one is available. A
// natural 20 always hits; a natural 1 always misses.
func (b *Battle) rollToHit(att *Model, modSum int, res *AttackResult) {
	evaluate := func(roll int) {
		res.Roll = roll
		res.Total = roll + modSum
		res.Crit = roll == 20
		res.Fumble = roll == 1
		switch {
		case res.Fumble:
			res.Hit = false
		case res.Crit:
			res.Hit = true
		default:
			res.Hit = res.Total >= res.TargetAC
		}
	}
	evaluate(b.dice.D20())
	if !res.Hit && att.gear().RerollToHit && !att.rerollUsed {
		att.rerollUsed = true
		res.Rerolled = true
		b.Log.Add(b.Round, att.Label(), att.Team.String(), "action", "reroll",
			fmt.Sprintf("rerolling a miss (d20=%d)", res.Roll), 0)
		evaluate(b.dice.D20())
	}
}

// resolveSave runs the defender's saving throw and applies damage. AP is the
// weapon's printed value: negative AP raises the effective save target, and
// the target never drops below the floor of 10.
func (b *Battle) resolveSave(def *Model, ap int, denied bool, dmg int, res *AttackResult) {
	res.SaveDenied = denied
	res.SaveTarget = def.SaveTarget() - ap
	if res.SaveTarget < saveTargetFloor {
		res.SaveTarget = saveTargetFloor
	}

	if denied {
		b.Log.Add(b.Round, def.Label(), def.Team.String(), "save", "denied", "no save allowed", 0)
	} else {
		roll := b.dice.D20()
		res.SaveRoll = roll
		total := roll + def.Modifier(AttrWill) - def.Horror
		res.Saved = total >= res.SaveTarget
		verdict := "FAILED"
		if res.Saved {
			verdict = "saved"
		}
		b.Log.Add(b.Round, def.Label(), def.Team.String(), "save", "roll",
			fmt.Sprintf("d20=%d total=%d vs %d — %s", roll, total, res.SaveTarget, verdict),
			float64(total))
		if res.Saved {
			return
		}
	}

	res.Damage = dmg
	def.TakeDamage(dmg)
	b.Log.Add(b.Round, def.Label(), def.Team.String(), "damage", "taken",
		fmt.Sprintf("%d damage, %d wounds left", dmg, def.Wounds), float64(dmg))
	if def.Dead {
		res.Slain = true
		b.Log.Add(b.Round, def.Label(), def.Team.String(), "death", "slain", "removed from the board", 0)
	}
}

// describeHit turns an AttackResult into the surface's outcome string.
func (b *Battle) describeHit(att, def *Model, res *AttackResult) string {
	switch {
	case res.Slain:
		return fmt.Sprintf("%s slays %s", att.Label(), def.Label())
	case res.Saved:
		return fmt.Sprintf("%s hits %s, but the blow is turned", att.Label(), def.Label())
	default:
		return fmt.Sprintf("%s wounds %s for %d", att.Label(), def.Label(), res.Damage)
	}
}
