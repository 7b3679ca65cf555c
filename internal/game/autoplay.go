package game

import "fmt"

const (
	skirmishWidth  = 24
	skirmishHeight = 16

	// terrainFeatures is how many cover pieces a generated board scatters
	// across its midfield.
	terrainFeatures = 18

	// activationStepCap bounds how many surface calls the bot issues per
	// activation before giving up and ending it.
	activationStepCap = 8
)

// NewSkirmish builds a full random match: a midfield scattered with cover
// and two generated warbands, all from one seed.
func NewSkirmish(seed int64) *Battle {
	dice := NewDice(seed)
	grid := NewGrid(skirmishWidth, skirmishHeight)

	// Terrain stays out of the deployment bands so placement never jams.
	minX := deployBandTiles + 1
	maxX := skirmishWidth - deployBandTiles - 2
	for i := 0; i < terrainFeatures; i++ {
		x := minX + dice.Intn(maxX-minX+1)
		y := dice.Intn(skirmishHeight)
		kind := TileHeavyCover
		if dice.Intn(3) == 0 {
			kind = TileBlocking
		}
		grid.SetTile(x, y, kind)
	}

	rules := DefaultRules()
	a := GenerateWarband(TeamA, rules, dice)
	b := GenerateWarband(TeamB, rules, dice)
	return NewBattle(grid, rules, a, b, dice)
}

// Autoplay drives a battle to completion through the same action surface a
// player uses. The policy is greedy: fight when engaged, shoot when a shot
// exists, steady the nerves when shaken, otherwise close the distance.
type Autoplay struct {
	Battle    *Battle
	MaxRounds int
}

// Run plays rounds until one side is wiped out or MaxRounds passes.
func (a *Autoplay) Run() OutcomeReason {
	b := a.Battle
	for {
		if b.Phase() == PhaseRoundComplete {
			out := b.DetermineOutcome()
			if out.Outcome != OutcomeInconclusive {
				return out
			}
			if a.MaxRounds > 0 && b.Round >= a.MaxRounds {
				return out
			}
			b.StartRound()
			continue
		}
		a.step()
	}
}

// step issues one batch of surface calls: pick a model, then play out its
// whole activation.
func (a *Autoplay) step() {
	b := a.Battle
	switch b.Phase() {
	case PhaseAwaitingActivation:
		a.activateNext()
	case PhaseDeploying:
		b.SelectAction(ActionMove)
		if b.Phase() == PhaseDeploying {
			// No room in the band; skip this model's turn.
			b.EndActivation()
		}
	case PhaseAwaitingAction:
		a.playActivation()
	case PhaseAwaitingTarget:
		// The policy always supplies targets itself; a stray pending
		// action is abandoned.
		b.EndActivation()
	}
}

// activateNext picks the active team's first ready model.
func (a *Autoplay) activateNext() {
	b := a.Battle
	for _, m := range b.Models {
		if m.Team != b.ActiveTeam || !m.Ready() {
			continue
		}
		if m.Deployed {
			b.ClickTile(m.X, m.Y)
		} else {
			minX, _ := b.deployBand(b.ActiveTeam)
			b.ClickTile(minX, 0)
		}
		return
	}
	// No ready model on the nominally active team: force the round over
	// rather than spin.
	b.ForceNextRound()
}

// playActivation spends the active model's actions one at a time.
func (a *Autoplay) playActivation() {
	b := a.Battle
	for steps := 0; steps < activationStepCap; steps++ {
		m := b.Active
		if m == nil || b.Phase() != PhaseAwaitingAction {
			return
		}
		if !a.actOnce(m) {
			b.EndActivation()
			return
		}
	}
	if b.Active != nil {
		b.EndActivation()
	}
}

// actOnce issues one action for m. It returns false when nothing useful is
// left to do.
func (a *Autoplay) actOnce(m *Model) bool {
	b := a.Battle

	if enemies := b.engagedWith(m); len(enemies) > 0 {
		b.SelectAction(ActionFight)
		b.ClickTile(enemies[0].X, enemies[0].Y)
		return true
	}

	if target, ok := a.shotAt(m); ok {
		if m.Ranged.RequiresAimStreak > m.AimStreak {
			if m.Suppressed {
				b.SelectAction(ActionRecover)
				return true
			}
			b.SelectAction(ActionAim)
			return true
		}
		b.SelectAction(ActionShoot)
		b.ClickTile(target.X, target.Y)
		return true
	}

	if (m.Suppressed || m.Horror > 0) && !m.recoveredThisTurn {
		b.SelectAction(ActionRecover)
		return true
	}

	if dest, ok := a.advanceTile(m); ok {
		b.SelectAction(ActionMove)
		b.ClickTile(dest.X, dest.Y)
		return true
	}
	return false
}

// shotAt finds the nearest enemy the model's ranged weapon can legally
// engage from where it stands.
func (a *Autoplay) shotAt(m *Model) (*Model, bool) {
	b := a.Battle
	if m.Ranged == nil {
		return nil, false
	}
	w := m.Ranged
	var best *Model
	bestDist := 0.0
	for _, e := range b.Living(m.Team.Enemy()) {
		if !e.Deployed {
			continue
		}
		sight := LineOfSight(m.Pos(), e.Pos(), b.Grid)
		if sight.Blocked {
			continue
		}
		d := DistanceUnits(m.Pos(), e.Pos())
		if w.BlocksWithinUnits > 0 && d <= w.BlocksWithinUnits {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// advanceTile picks the reachable tile that closes the most distance to the
// nearest living enemy. No tile strictly closer than standing still means
// no move.
func (a *Autoplay) advanceTile(m *Model) (Point, bool) {
	b := a.Battle
	enemies := b.Living(m.Team.Enemy())
	nearest := func(p Point) float64 {
		best := -1.0
		for _, e := range enemies {
			if !e.Deployed {
				continue
			}
			d := DistanceUnits(p, e.Pos())
			if best < 0 || d < best {
				best = d
			}
		}
		return best
	}

	here := nearest(m.Pos())
	if here < 0 {
		return Point{}, false
	}
	var best Point
	bestDist := here
	found := false
	for dy := -moveRadius; dy <= moveRadius; dy++ {
		for dx := -moveRadius; dx <= moveRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := Point{m.X + dx, m.Y + dy}
			if !b.Grid.Passable(p.X, p.Y) || b.ModelAt(p) != nil {
				continue
			}
			if d := nearest(p); d < bestDist {
				best, bestDist = p, d
				found = true
			}
		}
	}
	return best, found
}

// RunReport plays one seeded match to completion and returns its outcome
// together with the battle for inspection.
func RunReport(seed int64, maxRounds int) (*Battle, OutcomeReason) {
	b := NewSkirmish(seed)
	ap := &Autoplay{Battle: b, MaxRounds: maxRounds}
	out := ap.Run()
	b.Log.Add(b.Round, "--", "--", "outcome", out.Outcome.String(),
		fmt.Sprintf("%s (A %d/%d, B %d/%d)", out.Description,
			out.SurvivorsA, out.TotalA, out.SurvivorsB, out.TotalB), 0)
	return b, out
}
