package game

// BattleOutcome classifies a finished (or abandoned) match.
type BattleOutcome int

const (
	OutcomeInconclusive BattleOutcome = iota
	OutcomeTeamAVictory
	OutcomeTeamBVictory
	OutcomeDraw
)

func (o BattleOutcome) String() string {
	switch o {
	case OutcomeTeamAVictory:
		return "team_a_victory"
	case OutcomeTeamBVictory:
		return "team_b_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// OutcomeReason carries the classification with its supporting counts.
type OutcomeReason struct {
	Outcome     BattleOutcome
	SurvivorsA  int
	SurvivorsB  int
	TotalA      int
	TotalB      int
	Description string
}

// DetermineOutcome classifies the battle from survivor counts. A wiped team
// loses; mutual annihilation is a draw; anything else is inconclusive and
// the match continues.
func (b *Battle) DetermineOutcome() OutcomeReason {
	r := OutcomeReason{}
	for _, m := range b.Models {
		if m.Team == TeamA {
			r.TotalA++
			if !m.Dead {
				r.SurvivorsA++
			}
		} else {
			r.TotalB++
			if !m.Dead {
				r.SurvivorsB++
			}
		}
	}

	switch {
	case r.SurvivorsA == 0 && r.SurvivorsB == 0:
		r.Outcome = OutcomeDraw
		r.Description = "mutual_annihilation"
	case r.SurvivorsA == 0:
		r.Outcome = OutcomeTeamBVictory
		r.Description = "team_a_eliminated"
	case r.SurvivorsB == 0:
		r.Outcome = OutcomeTeamAVictory
		r.Description = "team_b_eliminated"
	default:
		r.Outcome = OutcomeInconclusive
		r.Description = "both_teams_fielded"
	}
	return r
}
