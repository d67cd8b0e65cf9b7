package game

import (
	"math"
	"testing"
)

// quietSim builds a harness whose mission cannot complete on its own, so
// tests that are not about missions do not see a level regenerate under them.
func quietSim(opts ...SimOption) *TestSim {
	return NewTestSim(append([]SimOption{WithPendingObjective()}, opts...)...)
}

func TestMoveVector_DiagonalMatchesAxial(t *testing.T) {
	for _, sprint := range []bool{false, true} {
		ax, ay := moveVector(InputState{Right: true, Sprint: sprint}, playerSpeed)
		dx, dy := moveVector(InputState{Up: true, Right: true, Sprint: sprint}, playerSpeed)
		axial := math.Hypot(ax, ay)
		diag := math.Hypot(dx, dy)
		if math.Abs(axial-diag) > 1e-9 {
			t.Fatalf("sprint=%v: diagonal magnitude %.6f, axial %.6f", sprint, diag, axial)
		}
	}
}

func TestMoveVector_SprintMultiplier(t *testing.T) {
	dx, _ := moveVector(InputState{Right: true, Sprint: true}, 2)
	if dx != 3 {
		t.Fatalf("sprint dx = %v, want 3", dx)
	}
	dx, dy := moveVector(InputState{Left: true, Right: true}, 2)
	if dx != 0 || dy != 0 {
		t.Fatalf("opposing keys should cancel, got (%v,%v)", dx, dy)
	}
}

func TestPlayer_DiagonalDisplacementInSim(t *testing.T) {
	axial := quietSim(WithPlayerAt(400, 400))
	axial.Held = InputState{Right: true}
	axial.RunTicks(10)

	diag := quietSim(WithPlayerAt(400, 400))
	diag.Held = InputState{Down: true, Right: true}
	diag.RunTicks(10)

	a := math.Hypot(axial.st.Player.X-400, axial.st.Player.Y-400)
	d := math.Hypot(diag.st.Player.X-400, diag.st.Player.Y-400)
	if math.Abs(a-d) > 1e-6 {
		t.Fatalf("diagonal travelled %.4f, axial %.4f", d, a)
	}
	if math.Abs(a-30) > 1e-9 {
		t.Fatalf("axial travelled %.4f, want 30", a)
	}
}

func TestPlayer_WallBlocksOneAxisOnly(t *testing.T) {
	// Wall directly to the right; moving down-right should still slide down.
	ts := quietSim(
		WithPlayerAt(100, 100),
		WithWall(121, 0, 20, 400),
	)
	ts.Held = InputState{Down: true, Right: true}
	ts.RunTicks(5)

	p := ts.st.Player
	if p.X+p.Width > 121 {
		t.Fatalf("player entered wall: x=%.2f", p.X)
	}
	if p.Y <= 100 {
		t.Fatalf("player should slide along the wall, y=%.2f", p.Y)
	}
}

func TestPlayer_ClampedToWorld(t *testing.T) {
	ts := quietSim(WithMapSize(200, 200), WithPlayerAt(5, 5))
	ts.Held = InputState{Up: true, Left: true, Sprint: true}
	ts.RunTicks(10)
	if ts.st.Player.X != 0 || ts.st.Player.Y != 0 {
		t.Fatalf("player at (%.2f,%.2f), want (0,0)", ts.st.Player.X, ts.st.Player.Y)
	}
}

func TestPlayer_FireRateGatesShots(t *testing.T) {
	ts := quietSim()
	ts.Held = InputState{PointerDown: true, PointerX: 0, PointerY: 0}

	ts.RunTicks(1)
	if got := ts.st.Player.Ammo; got != 29 {
		t.Fatalf("after first tick ammo = %d, want 29", got)
	}
	// Pistol fires every 300ms; 19 more ticks is 304ms after the first shot.
	ts.RunTicks(18)
	if got := ts.st.Player.Ammo; got != 29 {
		t.Fatalf("fired before cooldown, ammo = %d", got)
	}
	ts.RunTicks(1)
	if got := ts.st.Player.Ammo; got != 28 {
		t.Fatalf("after cooldown ammo = %d, want 28", got)
	}
}

func TestPlayer_NoShotWithoutAmmo(t *testing.T) {
	ts := quietSim()
	ts.st.Player.Ammo = 0
	ts.Held = InputState{PointerDown: true}
	ts.RunTicks(5)
	if n := len(ts.st.Bullets); n != 0 {
		t.Fatalf("empty magazine fired %d bullets", n)
	}
}

func TestPlayer_ReloadRefillsImmediatelyAndBlocksFire(t *testing.T) {
	ts := quietSim()
	ts.st.Player.Ammo = 5

	ts.Script(InputState{Reload: true})
	ts.RunTicks(1)
	p := &ts.st.Player
	if p.Ammo != 30 {
		t.Fatalf("ammo after reload = %d, want 30", p.Ammo)
	}
	if want := 1500.0 - 16; p.ReloadMs != want {
		t.Fatalf("reload timer = %.0f, want %.0f", p.ReloadMs, want)
	}

	ts.Held = InputState{PointerDown: true}
	ts.RunTicks(50)
	if p.Ammo != 30 {
		t.Fatalf("fired while reloading, ammo = %d", p.Ammo)
	}
	ts.RunTicks(50)
	if p.ReloadMs != 0 {
		t.Fatalf("reload timer should bottom out at 0, got %.2f", p.ReloadMs)
	}
	if p.Ammo >= 30 {
		t.Fatal("expected firing to resume after the reload timer expired")
	}
}

func TestPlayer_ReloadIgnoredWhileReloading(t *testing.T) {
	ts := quietSim()
	ts.Script(InputState{Reload: true})
	ts.RunTicks(1)
	before := ts.st.Player.ReloadMs

	ts.Script(InputState{Reload: true})
	ts.RunTicks(1)
	if ts.st.Player.ReloadMs != before-16 {
		t.Fatalf("second reload restarted the timer: %.0f", ts.st.Player.ReloadMs)
	}
}

func TestPlayer_ShotgunFiresPellets(t *testing.T) {
	ts := quietSim(WithCash(500))
	if err := ts.Buy(WeaponShotgun); err != nil {
		t.Fatalf("buy: %v", err)
	}
	ts.Script(InputState{PointerDown: true, PointerX: 900, PointerY: 384})
	ts.RunTicks(1)

	var primary, pellets int
	for _, b := range ts.st.Bullets {
		switch b.Kind {
		case "pellet":
			pellets++
			if b.Damage != 30 || b.Speed != pelletSpeed || b.Life != pelletLife-1 {
				t.Fatalf("pellet shape wrong: %+v", b)
			}
			if math.Abs(angleDiff(ts.st.Player.Angle, b.Angle)) > pelletSpread+1e-9 {
				t.Fatalf("pellet outside spread: %.3f vs %.3f", b.Angle, ts.st.Player.Angle)
			}
		case string(WeaponShotgun):
			primary++
		}
	}
	if primary != 1 || pellets != 5 {
		t.Fatalf("primary=%d pellets=%d, want 1 and 5", primary, pellets)
	}
}

func TestPlayer_AimFollowsPointer(t *testing.T) {
	ts := quietSim(WithPlayerAt(100, 100))
	ts.Script(InputState{PointerX: 110, PointerY: 210})
	ts.RunTicks(1)
	if math.Abs(ts.st.Player.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("angle = %.4f, want π/2", ts.st.Player.Angle)
	}
}

func TestPlayer_InvulnerabilityCountsDownToZero(t *testing.T) {
	ts := quietSim()
	ts.st.Player.InvulnerableMs = 40
	ts.RunTicks(2)
	if got := ts.st.Player.InvulnerableMs; got != 8 {
		t.Fatalf("invulnerable = %.0f, want 8", got)
	}
	ts.RunTicks(1)
	if got := ts.st.Player.InvulnerableMs; got != 0 {
		t.Fatalf("invulnerable = %.0f, want 0", got)
	}
}

func TestPlayer_StartNudgedOffCentreWall(t *testing.T) {
	ts := quietSim(WithWall(500, 370, 60, 60)) // covers the (512,384) start
	ts.resetPlayer()

	p := ts.st.Player
	if CollidesWithWalls(p.Rect(), ts.st.Walls) {
		t.Fatalf("player started inside a wall at (%.0f,%.0f)", p.X, p.Y)
	}
	if p.X == 512 && p.Y == 384 {
		t.Fatal("player was not moved off the walled centre")
	}

	x0, y0 := p.X, p.Y
	ts.Held = InputState{Up: true, Left: true}
	ts.RunTicks(3)
	if ts.st.Player.X == x0 && ts.st.Player.Y == y0 {
		t.Fatal("player is still stuck after the nudge")
	}
}

func TestPlayer_StartKeepsClearCentre(t *testing.T) {
	ts := quietSim(WithWall(100, 100, 40, 40))
	ts.resetPlayer()
	if ts.st.Player.X != 512 || ts.st.Player.Y != 384 {
		t.Fatalf("player at (%.0f,%.0f), want centre (512,384)", ts.st.Player.X, ts.st.Player.Y)
	}
}
