package game

import "fmt"

// Phase is the activation state machine's current state. Round rollover is a
// visible transition: the driving loop watches for PhaseRoundComplete and
// calls StartRound, rather than the engine re-entering itself.
type Phase int

const (
	PhaseAwaitingActivation Phase = iota // waiting for a ready model to be picked
	PhaseDeploying                       // active model has not been placed yet
	PhaseAwaitingAction                  // active model is choosing an action
	PhaseAwaitingTarget                  // chosen action needs a target tile
	PhaseRoundComplete                   // both teams spent; driver restarts the round
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingActivation:
		return "awaiting_activation"
	case PhaseDeploying:
		return "deploying"
	case PhaseAwaitingAction:
		return "awaiting_action"
	case PhaseAwaitingTarget:
		return "awaiting_target"
	case PhaseRoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// ActionKind enumerates the actions a model may take.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionCharge
	ActionShoot
	ActionFight
	ActionDisengage
	ActionAim
	ActionRecover
)

func (a ActionKind) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionCharge:
		return "charge"
	case ActionShoot:
		return "shoot"
	case ActionFight:
		return "fight"
	case ActionDisengage:
		return "disengage"
	case ActionAim:
		return "aim"
	case ActionRecover:
		return "recover"
	default:
		return "unknown"
	}
}

// needsTarget reports whether the action waits for a follow-up tile click.
func needsTarget(a ActionKind) bool {
	switch a {
	case ActionAim, ActionRecover:
		return false
	default:
		return true
	}
}

// Battle is the single logical game-state instance. It owns the grid and the
// model list exclusively; every resolver is a method on it and there are no
// ambient globals. Action requests must be delivered one at a time — each
// call runs to completion before the next is accepted.
type Battle struct {
	Grid   *Grid
	Models []*Model
	Rules  *RuleSet
	Log    *BattleLog

	Round      int
	ActiveTeam Team
	Active     *Model

	// LastAttack is the structured outcome of the most recent attack
	// resolution, for callers that prefer data over log lines.
	LastAttack *AttackResult

	phase      Phase
	pending    ActionKind
	hasPending bool
	dice       *Dice
}

// NewBattle assembles a battle from two five-model warbands. Rules must be
// fully loaded before this is called; the match never starts on a partial
// rule set.
func NewBattle(grid *Grid, rules *RuleSet, a, b []*Model, dice *Dice) *Battle {
	models := make([]*Model, 0, len(a)+len(b))
	models = append(models, a...)
	models = append(models, b...)
	return &Battle{
		Grid:   grid,
		Models: models,
		Rules:  rules,
		Log:    NewBattleLog(),
		dice:   dice,
		phase:  PhaseRoundComplete, // driver's first StartRound opens round 1
	}
}

// Phase returns the state machine's current phase.
func (b *Battle) Phase() Phase {
	return b.phase
}

// Living returns the living models of one team.
func (b *Battle) Living(t Team) []*Model {
	var out []*Model
	for _, m := range b.Models {
		if m.Team == t && !m.Dead {
			out = append(out, m)
		}
	}
	return out
}

// readyCount counts models that can still activate this round.
func (b *Battle) readyCount(t Team) int {
	n := 0
	for _, m := range b.Models {
		if m.Team == t && m.Ready() {
			n++
		}
	}
	return n
}

// ModelAt returns the living, deployed model occupying a tile, if any.
func (b *Battle) ModelAt(p Point) *Model {
	for _, m := range b.Models {
		if !m.Dead && m.Deployed && m.X == p.X && m.Y == p.Y {
			return m
		}
	}
	return nil
}

// engagedWith returns the living enemies adjacent to m, lowest ID first.
func (b *Battle) engagedWith(m *Model) []*Model {
	var out []*Model
	for _, e := range b.Models {
		if e.Team == m.Team || e.Dead || !e.Deployed {
			continue
		}
		if Adjacent(m.Pos(), e.Pos()) {
			out = append(out, e)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID < out[j-1].ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Engaged reports whether any living enemy stands adjacent to m.
func (b *Battle) Engaged(m *Model) bool {
	return len(b.engagedWith(m)) > 0
}

// bestWillMod returns the highest Will modifier among a team's living models.
func (b *Battle) bestWillMod(t Team) int {
	best := 0
	for _, m := range b.Living(t) {
		if mod := m.Modifier(AttrWill); mod > best {
			best = mod
		}
	}
	return best
}

// StartRound advances the round counter, resets round-scoped model state,
// and rolls initiative. Exact initiative ties re-roll both dice in full.
func (b *Battle) StartRound() {
	b.Round++
	for _, m := range b.Models {
		m.ResetForRound()
	}
	b.Active = nil
	b.hasPending = false

	for {
		rollA := b.dice.D20() + b.bestWillMod(TeamA)
		rollB := b.dice.D20() + b.bestWillMod(TeamB)
		b.Log.Add(b.Round, "--", "--", "round", "initiative",
			fmt.Sprintf("A=%d B=%d", rollA, rollB), 0)
		if rollA == rollB {
			b.Log.Add(b.Round, "--", "--", "round", "initiative_tie", "re-rolling", 0)
			continue
		}
		if rollA > rollB {
			b.ActiveTeam = TeamA
		} else {
			b.ActiveTeam = TeamB
		}
		break
	}
	b.phase = PhaseAwaitingActivation
	b.Log.Add(b.Round, "--", b.ActiveTeam.String(), "round", "start",
		fmt.Sprintf("round %d, team %s activates first", b.Round, b.ActiveTeam), float64(b.Round))
}

// beginActivation makes m the activating model and grants its actions.
func (b *Battle) beginActivation(m *Model) string {
	penalty := m.PendingPenalty
	m.BeginActivation()
	b.Active = m
	if m.Deployed {
		b.phase = PhaseAwaitingAction
	} else {
		b.phase = PhaseDeploying
	}
	msg := fmt.Sprintf("%s activates with %d actions", m.Label(), m.ActionsLeft)
	if penalty > 0 {
		msg += fmt.Sprintf(" (%d carried penalty)", penalty)
	}
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "activation", "begin", msg, float64(m.ActionsLeft))
	return msg
}

// endActivation exhausts the active model and hands control onward. When
// neither team has a ready model left, the round completes — regardless of
// which team triggered it.
func (b *Battle) endActivation() string {
	m := b.Active
	if m == nil {
		return "no model is activating"
	}
	m.Exhausted = true
	m.ActionsLeft = 0
	m.AimStreak = 0
	b.Active = nil
	b.hasPending = false
	b.Log.Add(b.Round, m.Label(), m.Team.String(), "activation", "end", "exhausted", 0)

	enemy := m.Team.Enemy()
	switch {
	case b.readyCount(enemy) > 0:
		b.ActiveTeam = enemy
		b.phase = PhaseAwaitingActivation
		return fmt.Sprintf("%s done; team %s to activate", m.Label(), enemy)
	case b.readyCount(m.Team) > 0:
		b.ActiveTeam = m.Team
		b.phase = PhaseAwaitingActivation
		return fmt.Sprintf("%s done; team %s continues", m.Label(), m.Team)
	default:
		b.phase = PhaseRoundComplete
		b.Log.Add(b.Round, "--", "--", "round", "complete", "both teams exhausted", 0)
		return fmt.Sprintf("%s done; round %d complete", m.Label(), b.Round)
	}
}

// finishAction runs the post-resolution bookkeeping shared by every action:
// the activation ends on its own when the model is out of actions or dead.
func (b *Battle) finishAction() {
	if b.Active == nil {
		return
	}
	b.hasPending = false
	if b.Active.Dead || b.Active.ActionsLeft <= 0 {
		b.endActivation()
		return
	}
	b.phase = PhaseAwaitingAction
}

// consumeAction spends one action. Any non-Aim action breaks the aim streak.
func (b *Battle) consumeAction(kind ActionKind) {
	b.Active.ActionsLeft--
	if kind != ActionAim {
		b.Active.AimStreak = 0
	}
}

// deployBand returns the inclusive column range of a team's deployment strip.
func (b *Battle) deployBand(t Team) (minX, maxX int) {
	if t == TeamA {
		return 0, deployBandTiles - 1
	}
	return b.Grid.Width - deployBandTiles, b.Grid.Width - 1
}

// deploy places the active model on the first free tile of its band,
// consuming one action. No target click is required.
func (b *Battle) deploy() string {
	m := b.Active
	minX, maxX := b.deployBand(m.Team)
	for x := minX; x <= maxX; x++ {
		for y := 0; y < b.Grid.Height; y++ {
			p := Point{x, y}
			if !b.Grid.Passable(x, y) || b.ModelAt(p) != nil {
				continue
			}
			m.X, m.Y = x, y
			m.Deployed = true
			b.consumeAction(ActionMove)
			b.Log.Add(b.Round, m.Label(), m.Team.String(), "deploy", "placed",
				fmt.Sprintf("deployed at (%d,%d)", x, y), 0)
			b.finishAction()
			return fmt.Sprintf("%s deploys at (%d,%d)", m.Label(), x, y)
		}
	}
	return fmt.Sprintf("no room to deploy %s", m.Label())
}

// --- External action-request surface ---

// SelectAction chooses the active model's next action. Actions that need a
// target move the machine to PhaseAwaitingTarget; the rest resolve here. An
// undeployed model's first selection resolves as placement instead.
func (b *Battle) SelectAction(kind ActionKind) string {
	switch b.phase {
	case PhaseDeploying:
		return b.deploy()
	case PhaseAwaitingAction:
		// handled below
	default:
		return fmt.Sprintf("cannot select an action while %s", b.phase)
	}

	m := b.Active
	if m.ActionsLeft <= 0 {
		return fmt.Sprintf("%s has no actions remaining", m.Label())
	}

	// Selection-time legality. Rejections mutate nothing.
	switch kind {
	case ActionAim:
		if m.Suppressed {
			return fmt.Sprintf("%s is suppressed and cannot aim", m.Label())
		}
	case ActionShoot:
		if b.Engaged(m) {
			return fmt.Sprintf("%s is engaged and cannot shoot", m.Label())
		}
		if m.Ranged == nil {
			return fmt.Sprintf("%s has no ranged weapon", m.Label())
		}
	case ActionDisengage:
		if !b.Engaged(m) {
			return fmt.Sprintf("%s is not engaged", m.Label())
		}
	case ActionRecover:
		if m.recoveredThisTurn {
			return fmt.Sprintf("%s already recovered this activation", m.Label())
		}
	}

	if needsTarget(kind) {
		b.pending = kind
		b.hasPending = true
		b.phase = PhaseAwaitingTarget
		return fmt.Sprintf("%s: select a target for %s", m.Label(), kind)
	}

	switch kind {
	case ActionAim:
		return b.resolveAim(m)
	case ActionRecover:
		return b.resolveRecover(m)
	}
	return "unknown action"
}

// ClickTile is the pointer entry point: it selects a friendly model when
// awaiting activation and supplies the target tile when an action awaits one.
func (b *Battle) ClickTile(x, y int) string {
	if !b.Grid.InBounds(x, y) {
		return "off the battlefield"
	}
	p := Point{x, y}

	switch b.phase {
	case PhaseAwaitingActivation:
		m := b.modelToActivate(p)
		if m == nil {
			return fmt.Sprintf("select a ready team %s model", b.ActiveTeam)
		}
		return b.beginActivation(m)

	case PhaseAwaitingTarget:
		return b.resolveTargeted(b.pending, p)

	case PhaseDeploying:
		return fmt.Sprintf("%s must deploy first: select any action", b.Active.Label())

	case PhaseAwaitingAction:
		return fmt.Sprintf("%s is activating: select an action or end the activation", b.Active.Label())

	default:
		return "the round is complete"
	}
}

// modelToActivate matches a click to a ready model of the active team. An
// undeployed model has no tile yet, so any click on its team's deployment
// band picks the first ready undeployed model.
func (b *Battle) modelToActivate(p Point) *Model {
	if m := b.ModelAt(p); m != nil && m.Team == b.ActiveTeam && m.Ready() {
		return m
	}
	minX, maxX := b.deployBand(b.ActiveTeam)
	if p.X >= minX && p.X <= maxX {
		for _, m := range b.Models {
			if m.Team == b.ActiveTeam && m.Ready() && !m.Deployed {
				return m
			}
		}
	}
	return nil
}

// EndActivation ends the active model's turn early.
func (b *Battle) EndActivation() string {
	if b.phase != PhaseAwaitingAction && b.phase != PhaseAwaitingTarget && b.phase != PhaseDeploying {
		return "no activation in progress"
	}
	return b.endActivation()
}

// ForceNextRound exhausts every living model and completes the round. The
// driver observes PhaseRoundComplete and starts the next one.
func (b *Battle) ForceNextRound() string {
	for _, m := range b.Models {
		if !m.Dead {
			m.Exhausted = true
		}
	}
	b.Active = nil
	b.hasPending = false
	b.phase = PhaseRoundComplete
	b.Log.Add(b.Round, "--", "--", "round", "forced", "round forced to completion", 0)
	return fmt.Sprintf("round %d forced to completion", b.Round)
}
