package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
	"github.com/Garsondee/vice-streets/internal/logging"
	"github.com/Garsondee/vice-streets/internal/storage"
)

type runStats struct {
	runIndex int
	seed     uint64

	outcome game.RunOutcomeReason

	firstKillTick     int
	firstHitTick      int
	firstEvidenceTick int
	firstClearTick    int
	firstVehicleTick  int

	kills          int
	hitsTaken      int
	damageTaken    float64
	evidence       int
	pickups        int
	coverDestroyed int
	vehicleEntries int
	wrecks         int
	aiStateChanges int
}

type options struct {
	runs     int
	ticks    int
	seedBase uint64
	seedStep uint64
	dbPath   string
	copy     bool
	verbose  bool
	logLevel string
}

func main() {
	var opt options
	flag.IntVar(&opt.runs, "runs", 5, "number of headless runs")
	flag.IntVar(&opt.ticks, "ticks", 3600, "maximum ticks per run")
	flag.Uint64Var(&opt.seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Uint64Var(&opt.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&opt.dbPath, "db", "", "record final scores in this SQLite database")
	flag.BoolVar(&opt.copy, "copy", false, "copy the report to the clipboard")
	flag.BoolVar(&opt.verbose, "verbose", false, "record per-tick AI transitions and hits")
	flag.StringVar(&opt.logLevel, "log-level", "warn", "diagnostic log level")
	flag.Parse()

	log := logging.New(os.Stderr, opt.logLevel)
	if err := run(opt, os.Stdout, log); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func run(opt options, out io.Writer, log zerolog.Logger) error {
	if opt.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	if opt.ticks <= 0 {
		return fmt.Errorf("-ticks must be > 0")
	}

	var report strings.Builder
	fmt.Fprintf(&report, "=== Headless Autopilot Report ===\n")
	fmt.Fprintf(&report, "runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", opt.runs, opt.ticks, opt.seedBase, opt.seedStep)

	all := make([]runStats, 0, opt.runs)
	for i := 0; i < opt.runs; i++ {
		seed := opt.seedBase + uint64(i)*opt.seedStep
		rs := runAutopilot(i+1, seed, opt.ticks, opt.verbose, log)
		all = append(all, rs)
		printRun(&report, rs)
	}
	printAggregate(&report, all)

	if _, err := io.WriteString(out, report.String()); err != nil {
		return err
	}

	if opt.dbPath != "" {
		if err := recordScores(opt.dbPath, all, log); err != nil {
			return err
		}
	}
	if opt.copy {
		if err := clipboard.WriteAll(report.String()); err != nil {
			log.Warn().Err(err).Msg("clipboard write failed")
		}
	}
	return nil
}

func runAutopilot(runIndex int, seed uint64, ticks int, verbose bool, log zerolog.Logger) runStats {
	ap := game.NewAutopilot()
	ts := game.NewTestSim(
		game.WithGeneratedLevel(),
		game.WithVerbose(verbose),
		game.WithSimOptions(
			game.WithSeed(seed),
			game.WithInput(ap),
			game.WithLogger(logging.Component(log, "sim")),
		),
	)
	ap.Bind(ts.Sim)
	log.Debug().Uint64("seed", seed).Int("run", runIndex).Msg("run started")
	for i := 0; i < ticks && ts.Status() == game.StatePlaying; i++ {
		ts.Tick(ap.Poll())
	}

	sl := ts.SimLog
	entries := sl.Entries()
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		outcome:           game.DetermineRunOutcome(ts.State(), sl),
		firstKillTick:     firstTick(entries, "combat", "kill", ""),
		firstHitTick:      firstTick(entries, "combat", "player_hit", ""),
		firstEvidenceTick: firstTick(entries, "economy", "evidence", ""),
		firstClearTick:    firstTick(entries, "mission", "complete", ""),
		firstVehicleTick:  firstTick(entries, "vehicle", "enter", ""),
		kills:             ts.State().Economy.Kills,
		hitsTaken:         sl.CountCategory("combat", "player_hit"),
		damageTaken:       sl.Total("combat", "player_hit"),
		evidence:          sl.CountCategory("economy", "evidence"),
		pickups:           sl.CountCategory("economy", "pickup"),
		coverDestroyed:    sl.CountCategory("cover", "destroyed"),
		vehicleEntries:    sl.CountCategory("vehicle", "enter"),
		wrecks:            sl.CountCategory("vehicle", "destroyed"),
		aiStateChanges:    sl.CountCategory("ai", "state"),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	o := rs.outcome
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome=%s %s\n", o.Outcome, o.Description)
	fmt.Fprintf(w, "phase_markers: first_kill=%d first_hit=%d first_evidence=%d first_clear=%d first_vehicle=%d death=%d\n",
		rs.firstKillTick, rs.firstHitTick, rs.firstEvidenceTick, rs.firstClearTick, rs.firstVehicleTick, o.DeathTick)
	fmt.Fprintf(w, "combat: kills=%d hits_taken=%d damage_taken=%.0f\n", rs.kills, rs.hitsTaken, rs.damageTaken)
	fmt.Fprintf(w, "economy: score=%d cash=$%d evidence=%d pickups=%d\n", o.Score, o.Cash, rs.evidence, rs.pickups)
	fmt.Fprintf(w, "world: levels_cleared=%d level=%d cover_destroyed=%d vehicle_entries=%d wrecks=%d ai_state_changes=%d\n",
		o.LevelsCleared, o.Level, rs.coverDestroyed, rs.vehicleEntries, rs.wrecks, rs.aiStateChanges)
	if stalled, reason := detectStall(rs); stalled {
		fmt.Fprintf(w, "STALL: %s\n", reason)
	}
	fmt.Fprintln(w)
}

// detectStall flags runs where the autopilot survived without making
// progress, which usually means it is wedged against geometry.
func detectStall(rs runStats) (bool, string) {
	if rs.outcome.Outcome != game.OutcomeInProgress {
		return false, ""
	}
	if rs.evidence == 0 && rs.kills == 0 {
		return true, "alive_without_progress"
	}
	if rs.evidence > 0 && rs.outcome.LevelsCleared == 0 && rs.kills == 0 {
		return true, "evidence_only_no_engagement"
	}
	return false, ""
}

func printAggregate(w io.Writer, all []runStats) {
	var died, cleared, stalled int
	var totalKills, totalHits, totalEvidence, totalLevels, totalScore int
	var deathTicks, clearTicks, killTicks []int
	for _, rs := range all {
		switch rs.outcome.Outcome {
		case game.OutcomeDied:
			died++
		case game.OutcomeLevelCleared:
			cleared++
		}
		if ok, _ := detectStall(rs); ok {
			stalled++
		}
		totalKills += rs.kills
		totalHits += rs.hitsTaken
		totalEvidence += rs.evidence
		totalLevels += rs.outcome.LevelsCleared
		totalScore += rs.outcome.Score
		if rs.outcome.DeathTick >= 0 {
			deathTicks = append(deathTicks, rs.outcome.DeathTick)
		}
		if rs.firstClearTick >= 0 {
			clearTicks = append(clearTicks, rs.firstClearTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}

	n := len(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d died=%d cleared=%d stalled=%d\n", n, died, cleared, stalled)
	fmt.Fprintf(w, "avg_per_run: kills=%.1f hits_taken=%.1f evidence=%.1f levels_cleared=%.1f score=%.1f\n",
		avg(totalKills, n), avg(totalHits, n), avg(totalEvidence, n), avg(totalLevels, n), avg(totalScore, n))
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_kill=%s first_clear=%s death=%s\n",
		avgTickString(killTicks), avgTickString(clearTicks), avgTickString(deathTicks))
}

func recordScores(path string, all []runStats, log zerolog.Logger) error {
	store, err := storage.Open(path, logging.Component(log, "storage"))
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()
	for _, rs := range all {
		if _, err := store.RecordScore(ctx, storage.ScoreFromOutcome("autopilot", rs.seed, rs.outcome)); err != nil {
			return err
		}
	}
	return nil
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
