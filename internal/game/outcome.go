package game

import "fmt"

// RunOutcome classifies how a run ended.
type RunOutcome int

const (
	OutcomeInProgress RunOutcome = iota
	OutcomeDied
	OutcomeLevelCleared // at least one mission completed, still alive
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeDied:
		return "died"
	case OutcomeLevelCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// RunOutcomeReason explains an outcome with the numbers behind it.
type RunOutcomeReason struct {
	Outcome       RunOutcome
	LevelsCleared int
	Level         int
	Score         int
	Cash          int
	Kills         int
	HitsTaken     int
	Evidence      int
	DeathTick     int // -1 while alive
	Description   string
}

// DetermineRunOutcome summarises a run from its state and event log.
func DetermineRunOutcome(st *State, sl *SimLog) RunOutcomeReason {
	r := RunOutcomeReason{
		LevelsCleared: sl.CountCategory("mission", "complete"),
		Level:         st.Level,
		Score:         st.Economy.Score,
		Cash:          st.Economy.Cash,
		Kills:         st.Economy.Kills,
		HitsTaken:     sl.CountCategory("combat", "player_hit"),
		Evidence:      sl.CountCategory("economy", "evidence"),
		DeathTick:     -1,
	}
	if e, ok := sl.LastOf("mission", "game_over"); ok {
		r.DeathTick = e.Tick
	}
	switch {
	case st.Status == StateGameOver:
		r.Outcome = OutcomeDied
		r.Description = fmt.Sprintf("killed on level %d at T=%d", st.Level, r.DeathTick)
	case r.LevelsCleared > 0:
		r.Outcome = OutcomeLevelCleared
		r.Description = fmt.Sprintf("cleared %d level(s), alive on level %d", r.LevelsCleared, st.Level)
	default:
		r.Outcome = OutcomeInProgress
		r.Description = fmt.Sprintf("alive on level %d, %d evidence and %d enemies left",
			st.Level, st.Mission.EvidenceRemaining, st.EnemiesRemaining())
	}
	return r
}
