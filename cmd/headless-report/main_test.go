package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
)

func TestDetectStall_TrueWhenAliveWithoutProgress(t *testing.T) {
	rs := runStats{outcome: game.RunOutcomeReason{Outcome: game.OutcomeInProgress, DeathTick: -1}}

	stalled, reason := detectStall(rs)
	if !stalled {
		t.Fatalf("expected stall=true, got false (reason=%s)", reason)
	}
	if reason != "alive_without_progress" {
		t.Fatalf("unexpected reason: %s", reason)
	}
}

func TestDetectStall_FalseWhenDied(t *testing.T) {
	rs := runStats{outcome: game.RunOutcomeReason{Outcome: game.OutcomeDied, DeathTick: 120}}
	if stalled, reason := detectStall(rs); stalled {
		t.Fatalf("a death is not a stall (reason=%s)", reason)
	}
}

func TestDetectStall_FalseWhenEngaging(t *testing.T) {
	rs := runStats{
		outcome: game.RunOutcomeReason{Outcome: game.OutcomeInProgress, DeathTick: -1},
		kills:   2,
	}
	if stalled, reason := detectStall(rs); stalled {
		t.Fatalf("expected stall=false with kills (reason=%s)", reason)
	}
}

func TestFirstTick_MatchesCategoryKeyAndValue(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "vehicle", Key: "enter", Value: "cruiser"},
		{Tick: 9, Category: "vehicle", Key: "enter", Value: "sports"},
		{Tick: 12, Category: "combat", Key: "kill"},
	}
	if got := firstTick(entries, "vehicle", "enter", ""); got != 3 {
		t.Fatalf("first vehicle entry = %d, want 3", got)
	}
	if got := firstTick(entries, "vehicle", "enter", "sports"); got != 9 {
		t.Fatalf("first sports entry = %d, want 9", got)
	}
	if got := firstTick(entries, "mission", "complete", ""); got != -1 {
		t.Fatalf("missing event = %d, want -1", got)
	}
}

func TestAvgHelpers(t *testing.T) {
	if got := avg(7, 2); got != 3.5 {
		t.Fatalf("avg = %v", got)
	}
	if got := avg(5, 0); got != 0 {
		t.Fatalf("avg over zero runs = %v", got)
	}
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("empty avg = %q", got)
	}
	if got := avgTickString([]int{10, 20, 40}); got != "23.3" {
		t.Fatalf("avg ticks = %q", got)
	}
}

func TestRun_RejectsBadFlags(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{runs: 0, ticks: 10}, &out, zerolog.Nop()); err == nil {
		t.Fatal("expected error for zero runs")
	}
	if err := run(options{runs: 1, ticks: 0}, &out, zerolog.Nop()); err == nil {
		t.Fatal("expected error for zero ticks")
	}
}

func TestRun_PrintsPerRunAndAggregate(t *testing.T) {
	var out bytes.Buffer
	opt := options{runs: 2, ticks: 60, seedBase: 7, seedStep: 3}
	if err := run(opt, &out, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	report := out.String()
	for _, want := range []string{
		"=== Headless Autopilot Report ===",
		"--- Run 1 (seed=7) ---",
		"--- Run 2 (seed=10) ---",
		"=== Aggregate ===",
		"runs=2",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRun_RecordsScores(t *testing.T) {
	var out bytes.Buffer
	path := t.TempDir() + "/scores.db"
	opt := options{runs: 1, ticks: 30, seedBase: 1, seedStep: 1, dbPath: path}
	if err := run(opt, &out, zerolog.Nop()); err != nil {
		t.Fatalf("run with db: %v", err)
	}
}
