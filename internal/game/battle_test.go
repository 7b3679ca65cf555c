package game

import "testing"

func TestStartRound_InitiativeTieRerolls(t *testing.T) {
	tb := NewTestBattle(
		WithRolls(10, 10, 15, 5), // tie, then A wins the reroll
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	tb.StartRound()

	if !tb.Log.HasEntry("round", "initiative_tie", "") {
		t.Fatal("an exact tie must be logged and rerolled")
	}
	if tb.ActiveTeam != TeamA {
		t.Fatalf("active team = %s, want A after winning the reroll", tb.ActiveTeam)
	}
	if tb.Phase() != PhaseAwaitingActivation {
		t.Fatalf("phase = %s, want awaiting_activation", tb.Phase())
	}
}

func TestRound_AlternatesAndCompletesOnce(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelA(0, 2),
		WithModelB(11, 0),
	)

	tb.Activate("A0")
	tb.EndActivation()
	if tb.ActiveTeam != TeamB {
		t.Fatalf("after A0, team %s should act, want B", tb.ActiveTeam)
	}

	tb.Activate("B0")
	tb.EndActivation()
	if tb.ActiveTeam != TeamA {
		t.Fatal("with only A models left ready, team A continues")
	}

	tb.Activate("A1")
	tb.EndActivation()
	if tb.Phase() != PhaseRoundComplete {
		t.Fatalf("phase = %s, want round_complete when everyone is spent", tb.Phase())
	}
	if got := tb.Log.CountCategory("round", "complete"); got != 1 {
		t.Fatalf("round completed %d times, want exactly 1", got)
	}

	round := tb.Round
	tb.StartRound()
	if tb.Round != round+1 {
		t.Fatalf("round = %d, want %d", tb.Round, round+1)
	}
}

func TestActivation_EndsItselfAtZeroActions(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	a0 := tb.Activate("A0")
	tb.SelectAction(ActionAim)
	tb.SelectAction(ActionAim)
	tb.SelectAction(ActionAim)

	if !a0.Exhausted || tb.Active != nil {
		t.Fatal("spending the last action should end the activation on its own")
	}
	if tb.ActiveTeam != TeamB || tb.Phase() != PhaseAwaitingActivation {
		t.Fatalf("control should pass to team B, got team %s in %s", tb.ActiveTeam, tb.Phase())
	}
}

func TestActivation_ChargeShockPenaltyBitesNextTurn(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	b0 := tb.ModelByLabel("B0")
	b0.AddActionPenalty(2)

	tb.Activate("B0")
	if b0.ActionsLeft != 1 {
		t.Fatalf("actions = %d, want 1 under the capped penalty", b0.ActionsLeft)
	}
	if b0.PendingPenalty != 0 {
		t.Fatal("the penalty applies exactly once")
	}
}

func TestDeployment_FirstSelectionPlacesTheModel(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0, Undeployed()),
		WithModelB(11, 0),
	)
	// Clicking anywhere in team A's band picks the undeployed model.
	tb.ClickTile(1, 5)
	if tb.Phase() != PhaseDeploying {
		t.Fatalf("phase = %s, want deploying", tb.Phase())
	}

	a0 := tb.ModelByLabel("A0")
	tb.SelectAction(ActionShoot) // any selection resolves as placement
	if !a0.Deployed {
		t.Fatal("the first selection deploys the model")
	}
	if a0.X > deployBandTiles-1 {
		t.Fatalf("deployed at x=%d, outside the band", a0.X)
	}
	if a0.ActionsLeft != baseActions-1 {
		t.Fatal("deployment costs one action")
	}
}

func TestClickTile_SelectsOnlyReadyFriendlies(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	tb.ClickTile(11, 0) // enemy model
	if tb.Active != nil {
		t.Fatal("clicking an enemy must not activate it")
	}
	tb.ClickTile(0, 0)
	if tb.Active == nil || tb.Active.Label() != "A0" {
		t.Fatal("clicking a ready friendly activates it")
	}
}

func TestForceNextRound_ExhaustsEveryone(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	tb.Activate("A0")
	tb.ForceNextRound()

	if tb.Phase() != PhaseRoundComplete {
		t.Fatalf("phase = %s, want round_complete", tb.Phase())
	}
	for _, m := range tb.Models {
		if !m.Exhausted {
			t.Fatalf("%s should be exhausted", m.Label())
		}
	}
}

func TestMove_ValidationRejectsForFree(t *testing.T) {
	tb := NewTestBattle(
		WithBlockingAt(2, 0),
		WithModelA(0, 0),
		WithModelA(1, 1),
		WithModelB(11, 0),
	)
	a0 := tb.Activate("A0")

	cases := []Point{
		{4, 0}, // out of move range
		{2, 0}, // impassable
		{1, 1}, // occupied by A1
		{0, 0}, // standing still
	}
	for _, dest := range cases {
		tb.SelectAction(ActionMove)
		tb.ClickTile(dest.X, dest.Y)
		if a0.Pos() != (Point{0, 0}) {
			t.Fatalf("move to %v should be rejected in place", dest)
		}
		if a0.ActionsLeft != baseActions {
			t.Fatalf("rejected move to %v must cost nothing", dest)
		}
	}
}

func TestModelAt_IgnoresTheDead(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(3, 3),
		WithModelB(11, 0),
	)
	a0 := tb.ModelByLabel("A0")
	if tb.ModelAt(Point{3, 3}) != a0 {
		t.Fatal("living model should occupy its tile")
	}
	a0.TakeDamage(99)
	if tb.ModelAt(Point{3, 3}) != nil {
		t.Fatal("a dead model no longer occupies a tile")
	}
}

func TestDetermineOutcome(t *testing.T) {
	tb := NewTestBattle(
		WithModelA(0, 0),
		WithModelB(11, 0),
	)
	if out := tb.DetermineOutcome(); out.Outcome != OutcomeInconclusive {
		t.Fatalf("both sides fielded: %s, want inconclusive", out.Outcome)
	}

	tb.ModelByLabel("B0").TakeDamage(99)
	if out := tb.DetermineOutcome(); out.Outcome != OutcomeTeamAVictory {
		t.Fatalf("B wiped: %s, want team_a_victory", out.Outcome)
	}

	tb.ModelByLabel("A0").TakeDamage(99)
	if out := tb.DetermineOutcome(); out.Outcome != OutcomeDraw {
		t.Fatalf("mutual annihilation: %s, want draw", out.Outcome)
	}
}
