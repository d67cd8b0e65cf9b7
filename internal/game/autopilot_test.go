package game

import (
	"strings"
	"testing"
)

func TestAutopilot_CollectsEvidenceAndClearsLevel(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(100, 100),
		WithEvidenceAt(300, 100),
	)
	ap := NewAutopilot()
	ap.Bind(ts.Sim)

	done := -1
	for i := 0; i < 200; i++ {
		ts.Tick(ap.Poll())
		if ts.st.Mission.Completed {
			done = ts.st.Tick
			break
		}
	}
	if done < 0 {
		t.Fatalf("autopilot never cleared the level\n%s", ts.SimLog.Summary(ts.st))
	}

	r := DetermineRunOutcome(ts.st, ts.SimLog)
	if r.Outcome != OutcomeLevelCleared || r.LevelsCleared != 1 || r.Evidence != 1 {
		t.Fatalf("outcome = %+v", r)
	}
	if r.DeathTick != -1 {
		t.Fatalf("death tick = %d for a living player", r.DeathTick)
	}
}

func TestAutopilot_ReloadsWhenEmpty(t *testing.T) {
	ts := quietSim()
	ts.st.Player.Ammo = 0
	ap := NewAutopilot()
	ap.Bind(ts.Sim)
	if in := ap.Poll(); !in.Reload || in.PointerDown {
		t.Fatalf("empty magazine input = %+v", in)
	}
}

func TestAutopilot_UnboundIsIdle(t *testing.T) {
	if in := NewAutopilot().Poll(); in != (InputState{}) {
		t.Fatalf("unbound autopilot produced %+v", in)
	}
}

func TestAutopilot_ShootsVisibleEnemy(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 300),
		WithEnemyAt(400, 300),
	)
	ap := NewAutopilot()
	ap.Bind(ts.Sim)
	in := ap.Poll()
	ex, ey := ts.st.Enemies[0].Center()
	if !in.PointerDown || in.PointerX != ex || in.PointerY != ey {
		t.Fatalf("input = %+v, want fire at (%.0f,%.0f)", in, ex, ey)
	}
}

func TestDetermineRunOutcome_Died(t *testing.T) {
	ts := quietSim()
	ts.st.Player.Health = 0
	ts.RunTicks(1)
	r := DetermineRunOutcome(ts.st, ts.SimLog)
	if r.Outcome != OutcomeDied || r.DeathTick != 1 {
		t.Fatalf("outcome = %+v", r)
	}
	if !strings.Contains(r.Description, "killed on level 1") {
		t.Fatalf("description = %q", r.Description)
	}
}

func TestDetermineRunOutcome_InProgress(t *testing.T) {
	ts := quietSim()
	ts.RunTicks(1)
	if r := DetermineRunOutcome(ts.st, ts.SimLog); r.Outcome != OutcomeInProgress {
		t.Fatalf("outcome = %s", r.Outcome)
	}
}

func TestDebugReport_IncludesHeaderAndEvents(t *testing.T) {
	ts := quietSim(WithPlayerAt(200, 200), WithEvidenceAt(205, 205))
	ts.RunTicks(2)
	rep := ts.DebugReport(10)
	for _, want := range []string{"seed=1", "tick_range=[0..2]", "economy", "Level 1"} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report missing %q:\n%s", want, rep)
		}
	}
}
