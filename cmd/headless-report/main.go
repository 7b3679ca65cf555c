package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Garsondee/Warband-Tactics/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	rounds   int
	outcome  game.OutcomeReason

	shots       int
	melee       int
	suppressed  int
	frozen      int
	chargeShock int
	horrorTests int
	horrorFails int
	savesDenied int
	deaths      int
	rerolls     int

	firstBloodRound  int
	firstHorrorRound int
	firstChargeRound int
}

func main() {
	var runs int
	var maxRounds int
	var seedBase int64
	var seedStep int64
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless battles")
	flag.IntVar(&maxRounds, "max-rounds", 30, "round cap per battle")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&verbose, "v", false, "print the full battle log of each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxRounds <= 0 {
		fmt.Println("error: -max-rounds must be > 0")
		return
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("runs=%d max_rounds=%d seed_base=%d seed_step=%d\n\n", runs, maxRounds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runBattle(i+1, seed, maxRounds, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runBattle(runIndex int, seed int64, maxRounds int, verbose bool) runStats {
	b, out := game.RunReport(seed, maxRounds)
	if verbose {
		fmt.Print(b.Log.Format())
	}

	log := b.Log
	horrorFails := 0
	for _, e := range log.Filter("horror", "test") {
		if strings.Contains(e.Value, "FAILED") {
			horrorFails++
		}
	}

	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		rounds:           b.Round,
		outcome:          out,
		shots:            log.CountCategory("shoot", "to_hit"),
		melee:            log.CountCategory("fight", "to_hit"),
		suppressed:       log.CountCategory("shoot", "suppressed"),
		frozen:           log.CountCategory("move", "frozen") + log.CountCategory("charge", "frozen"),
		chargeShock:      log.CountCategory("charge", "shock"),
		horrorTests:      log.CountCategory("horror", "test"),
		horrorFails:      horrorFails,
		savesDenied:      log.CountCategory("save", "denied"),
		deaths:           log.CountCategory("death", "slain"),
		rerolls:          log.CountCategory("action", "reroll"),
		firstBloodRound:  firstRound(log, "death", "slain"),
		firstHorrorRound: firstRound(log, "horror", "token"),
		firstChargeRound: firstRound(log, "charge", "contact"),
	}
}

// firstRound returns the round of the first matching entry, or -1.
func firstRound(log *game.BattleLog, category, key string) int {
	entries := log.Filter(category, key)
	if len(entries) == 0 {
		return -1
	}
	return entries[0].Round
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: %s (%s) after %d rounds, survivors A=%d/%d B=%d/%d\n",
		rs.outcome.Outcome, rs.outcome.Description, rs.rounds,
		rs.outcome.SurvivorsA, rs.outcome.TotalA, rs.outcome.SurvivorsB, rs.outcome.TotalB)
	fmt.Printf("attacks: shots=%d melee=%d rerolls=%d saves_denied=%d deaths=%d\n",
		rs.shots, rs.melee, rs.rerolls, rs.savesDenied, rs.deaths)
	fmt.Printf("morale: suppressions=%d frozen=%d charge_shocks=%d horror_tests=%d (failed=%d)\n",
		rs.suppressed, rs.frozen, rs.chargeShock, rs.horrorTests, rs.horrorFails)
	fmt.Printf("phase_markers: first_blood=%s first_horror=%s first_charge=%s\n\n",
		roundString(rs.firstBloodRound), roundString(rs.firstHorrorRound), roundString(rs.firstChargeRound))
}

func printAggregate(all []runStats) {
	winsA, winsB, draws, unresolved := 0, 0, 0, 0
	totalRounds, totalShots, totalMelee, totalDeaths := 0, 0, 0, 0
	totalTests, totalFails, totalShocks := 0, 0, 0
	bloodRounds := make([]int, 0, len(all))

	for _, rs := range all {
		switch rs.outcome.Outcome {
		case game.OutcomeTeamAVictory:
			winsA++
		case game.OutcomeTeamBVictory:
			winsB++
		case game.OutcomeDraw:
			draws++
		default:
			unresolved++
		}
		totalRounds += rs.rounds
		totalShots += rs.shots
		totalMelee += rs.melee
		totalDeaths += rs.deaths
		totalTests += rs.horrorTests
		totalFails += rs.horrorFails
		totalShocks += rs.chargeShock
		if rs.firstBloodRound >= 0 {
			bloodRounds = append(bloodRounds, rs.firstBloodRound)
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins_a=%d wins_b=%d draws=%d unresolved=%d\n", n, winsA, winsB, draws, unresolved)
	fmt.Printf("avg_per_run: rounds=%.1f shots=%.1f melee=%.1f deaths=%.1f\n",
		avg(totalRounds, n), avg(totalShots, n), avg(totalMelee, n), avg(totalDeaths, n))
	fmt.Printf("morale_per_run: horror_tests=%.1f horror_fails=%.1f charge_shocks=%.1f\n",
		avg(totalTests, n), avg(totalFails, n), avg(totalShocks, n))
	fmt.Printf("first_blood_avg_round=%s\n", avgRoundString(bloodRounds))
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func roundString(r int) string {
	if r < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", r)
}

func avgRoundString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
