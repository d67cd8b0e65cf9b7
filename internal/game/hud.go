package game

import "fmt"

// HUD is the derived display state for the UI shell.
type HUD struct {
	Status           GameState
	HealthPct        float64 // 0..100
	Ammo             int
	MaxAmmo          int
	Reloading        bool
	WeaponName       string
	Cash             int
	Score            int
	Kills            int
	Level            int
	MissionTitle     string
	Objective        string
	Mode             VehicleMode
	VehicleName      string
	VehicleHealthPct float64 // 0..100, zero on foot
	InCover          bool
}

// HUD derives the display values from the current state.
func (s *Sim) HUD() HUD {
	return s.st.HUD()
}

// HUD derives the display values from st.
func (st *State) HUD() HUD {
	p := &st.Player
	h := HUD{
		Status:       st.Status,
		HealthPct:    pct(p.Health, p.MaxHealth),
		Ammo:         p.Ammo,
		MaxAmmo:      p.MaxAmmo,
		Reloading:    p.Reloading(),
		WeaponName:   st.equipped().Name,
		Cash:         st.Economy.Cash,
		Score:        st.Economy.Score,
		Kills:        st.Economy.Kills,
		Level:        st.Level,
		MissionTitle: MissionTitle(st.Level),
		Objective:    fmt.Sprintf("Evidence: %d | Enemies: %d", max(st.Mission.EvidenceRemaining, 0), st.EnemiesRemaining()),
		Mode:         st.Vehicles.Mode(),
		InCover:      st.Cover.PlayerInCover,
	}
	if v := st.Vehicles.Player; v != nil {
		h.VehicleName = vehicleSpecs[v.Kind].Name
		h.VehicleHealthPct = pct(v.Health, v.MaxHealth)
	}
	return h
}

func pct(v, maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return clamp(v/maxV*100, 0, 100)
}
