package game

import "strconv"

const (
	missionScore = 500
	missionCash  = 200
)

// MissionTitle is the HUD heading for level.
func MissionTitle(level int) string {
	return "MISSION: LEVEL " + strconv.Itoa(level)
}

// evaluateMission ends the game on player death, or completes the mission
// once every evidence item is collected and no enemy is left. Completion is
// latched until the scheduled regeneration builds the next level.
func (s *Sim) evaluateMission() {
	st := s.st
	if st.Player.Health <= 0 {
		st.Status = StateGameOver
		st.Timers = nil
		s.play(CueGameOver)
		s.events.Add(st.Tick, "P", "mission", "game_over", "", float64(st.Economy.Score))
		s.log.Info().
			Int("level", st.Level).
			Int("score", st.Economy.Score).
			Int("kills", st.Economy.Kills).
			Msg("game over")
		return
	}
	if st.Mission.Completed || st.Mission.EvidenceRemaining > 0 || st.EnemiesRemaining() > 0 {
		return
	}
	st.Mission.Completed = true
	st.Economy.Score += missionScore
	st.Economy.Cash += missionCash
	cleared := st.Level
	st.Level++
	s.play(CueMissionComplete)
	s.schedule(EventRegenerateLevel, s.cfg.regenDelayMs)
	s.metrics.mission(cleared)
	s.events.Add(st.Tick, "P", "mission", "complete", "", float64(cleared))
	s.log.Info().Int("level", cleared).Int("score", st.Economy.Score).Msg("mission complete")
}
