package game

import "math"

const (
	autopilotStuckTicks  = 30 // ticks without progress before sidestepping
	autopilotDetourTicks = 40
	autopilotArrive      = 4.0
)

// Autopilot is an InputSource that plays the game: it walks to the nearest
// evidence, shoots the nearest visible enemy and reloads when empty. It reads
// the bound Sim's live state and never mutates it.
type Autopilot struct {
	sim *Sim

	lastX, lastY float64
	stuck        int
	detour       int
	detourDir    int
}

// NewAutopilot returns an unbound autopilot; call Bind before polling.
func NewAutopilot() *Autopilot {
	return &Autopilot{detourDir: 1}
}

// Bind attaches the autopilot to the sim it drives.
func (a *Autopilot) Bind(s *Sim) {
	a.sim = s
}

// Poll implements InputSource.
func (a *Autopilot) Poll() InputState {
	var in InputState
	if a.sim == nil {
		return in
	}
	st := a.sim.st
	p := &st.Player
	px, py := p.Center()
	in.PointerX, in.PointerY = px+1, py

	if p.Ammo == 0 && !p.Reloading() {
		in.Reload = true
	}

	if e := nearestVisibleEnemy(st, px, py); e != nil {
		in.PointerX, in.PointerY = e.Center()
		in.PointerDown = p.Ammo > 0
	}

	tx, ty, ok := a.goal(st, px, py)
	if !ok {
		return in
	}
	a.trackProgress(px, py)
	dx, dy := tx-px, ty-py
	if a.detour > 0 {
		a.detour--
		dx, dy = -dy*float64(a.detourDir), dx*float64(a.detourDir)
	}
	in.Left = dx < -autopilotArrive
	in.Right = dx > autopilotArrive
	in.Up = dy < -autopilotArrive
	in.Down = dy > autopilotArrive
	in.Sprint = true
	return in
}

// goal is the nearest evidence, or the nearest enemy once evidence is gone.
func (a *Autopilot) goal(st *State, px, py float64) (float64, float64, bool) {
	best := math.Inf(1)
	var gx, gy float64
	for _, ev := range st.Evidence {
		cx, cy := ev.Center()
		if d := distance(px, py, cx, cy); d < best {
			best, gx, gy = d, cx, cy
		}
	}
	if !math.IsInf(best, 1) {
		return gx, gy, true
	}
	for _, e := range st.Enemies {
		cx, cy := e.Center()
		if d := distance(px, py, cx, cy); d < best {
			best, gx, gy = d, cx, cy
		}
	}
	return gx, gy, !math.IsInf(best, 1)
}

func (a *Autopilot) trackProgress(px, py float64) {
	if distance(px, py, a.lastX, a.lastY) < 0.5 {
		a.stuck++
	} else {
		a.stuck = 0
	}
	a.lastX, a.lastY = px, py
	if a.stuck >= autopilotStuckTicks && a.detour == 0 {
		a.detour = autopilotDetourTicks
		a.detourDir = -a.detourDir
		a.stuck = 0
	}
}

func nearestVisibleEnemy(st *State, px, py float64) *Enemy {
	var best *Enemy
	bestD := math.Inf(1)
	for i := range st.Enemies {
		e := &st.Enemies[i]
		ex, ey := e.Center()
		d := distance(px, py, ex, ey)
		if d < bestD && HasLineOfSight(px, py, ex, ey, st.Walls) {
			best, bestD = e, d
		}
	}
	return best
}
