package game

import (
	"fmt"
	"strings"
)

// BuildReport renders the battle as a shareable after-action text: header,
// roster fates, a per-round digest, and the raw log tail. This is what the
// clipboard copy carries.
func (b *Battle) BuildReport() string {
	var sb strings.Builder
	out := b.DetermineOutcome()

	fmt.Fprintf(&sb, "--- Warband Tactics battle report ---\n")
	fmt.Fprintf(&sb, "rounds=%d outcome=%s (%s)\n", b.Round, out.Outcome, out.Description)
	fmt.Fprintf(&sb, "survivors: A=%d/%d B=%d/%d\n\n", out.SurvivorsA, out.TotalA, out.SurvivorsB, out.TotalB)

	writeRoster := func(team Team) {
		fmt.Fprintf(&sb, "== Team %s ==\n", team)
		for _, m := range b.Models {
			if m.Team != team {
				continue
			}
			fate := fmt.Sprintf("%d/%d wounds", m.Wounds, m.WoundsMax())
			if m.Dead {
				fate = "SLAIN"
			}
			role := "follower"
			if m.Leader {
				role = "leader"
			}
			ranged := "-"
			if m.Ranged != nil {
				ranged = m.Ranged.Name
			}
			fmt.Fprintf(&sb, "  %s %-8s %-18s ranged:%-14s melee:%-12s horror:%d  %s\n",
				m.Label(), role, m.Name, ranged, m.MeleeWeapon().Name, m.Horror, fate)
		}
		sb.WriteByte('\n')
	}
	writeRoster(TeamA)
	writeRoster(TeamB)

	sb.WriteString("== Round digest ==\n")
	for round := 1; round <= b.Round; round++ {
		entries := b.Log.FilterRound(round)
		if len(entries) == 0 {
			continue
		}
		shots, melee, deaths, shocks, frozen := 0, 0, 0, 0, 0
		for _, e := range entries {
			switch {
			case e.Category == "shoot" && e.Key == "to_hit":
				shots++
			case e.Category == "fight" && e.Key == "to_hit":
				melee++
			case e.Category == "death":
				deaths++
			case e.Category == "charge" && e.Key == "shock":
				shocks++
			case e.Key == "frozen":
				frozen++
			}
		}
		fmt.Fprintf(&sb, "  R%02d: shots=%d melee=%d deaths=%d charge_shocks=%d frozen=%d\n",
			round, shots, melee, deaths, shocks, frozen)
	}
	sb.WriteByte('\n')

	sb.WriteString("== Log ==\n")
	sb.WriteString(b.Log.Format())
	return sb.String()
}
