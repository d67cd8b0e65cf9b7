package game

import (
	"math"
	"testing"
	"time"
)

func TestVehicle_EnterOnInteractEdgeOnly(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 100),
		WithVehicleAt(105, 105, VehiclePolice, true),
	)
	held := InputState{Interact: true}
	ts.Script(held, held, held)
	ts.RunTicks(3)

	if !ts.st.InVehicle() {
		t.Fatal("player should be driving after pressing interact on a vehicle")
	}
	if len(ts.st.Vehicles.Free) != 0 {
		t.Fatalf("entered vehicle still in the free set: %+v", ts.st.Vehicles.Free)
	}
	v := ts.st.Vehicles.Player
	if !v.IsPlayer || v.Parked {
		t.Fatalf("player vehicle flags: isPlayer=%v parked=%v", v.IsPlayer, v.Parked)
	}
	if ts.HUD().Mode != ModeDriving || ts.HUD().VehicleName != "Police Cruiser" {
		t.Fatalf("HUD = %+v", ts.HUD())
	}
	if n := ts.SimLog.CountCategory("vehicle", "enter"); n != 1 {
		t.Fatalf("enter events = %d, want 1", n)
	}
}

func TestVehicle_ExitDiscardsVehicle(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 100),
		WithVehicleAt(105, 105, VehiclePolice, true),
	)
	ts.Script(InputState{Interact: true}, InputState{}, InputState{Interact: true})
	ts.RunTicks(3)

	if ts.st.InVehicle() {
		t.Fatal("second interact press should exit")
	}
	if len(ts.st.Vehicles.Free) != 0 {
		t.Fatal("exited vehicle should not return to the free set")
	}
	// Police cruiser is 40x20 at (105,105) and never moved: centre (125,115).
	p := ts.st.Player
	if p.X != 115 || p.Y != 105 {
		t.Fatalf("player placed at (%.1f,%.1f), want (115,105)", p.X, p.Y)
	}
}

func TestVehicle_EnterRequiresOverlap(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 100),
		WithVehicleAt(400, 400, VehiclePolice, true),
	)
	ts.Script(InputState{Interact: true})
	ts.RunTicks(1)
	if ts.st.InVehicle() {
		t.Fatal("entered a vehicle out of reach")
	}
}

func TestVehicle_EnterIsNoOpWhileDriving(t *testing.T) {
	ts := quietSim(
		WithVehicleAt(100, 100, VehiclePolice, true),
		WithVehicleAt(100, 100, VehicleTruck, true),
	)
	if !ts.enterVehicle(0) {
		t.Fatal("first entry failed")
	}
	if ts.enterVehicle(0) {
		t.Fatal("entered a second vehicle while driving")
	}
	if len(ts.st.Vehicles.Free) != 1 || ts.st.Vehicles.Player.Kind != VehiclePolice {
		t.Fatal("fleet changed by a rejected entry")
	}
	ts.exitVehicle()
	if ts.exitVehicle() {
		t.Fatal("exit while on foot should be a no-op")
	}
}

func TestVehicle_DriveAcceleratesCapsAndCoasts(t *testing.T) {
	ts := quietSim(WithVehicleAt(100, 380, VehiclePolice, true))
	ts.enterVehicle(0)
	v := ts.st.Vehicles.Player

	ts.Held = InputState{Up: true}
	ts.RunTicks(1)
	if math.Abs(v.VX-accelForward) > 1e-9 || v.VY != 0 {
		t.Fatalf("velocity after one tick = (%.3f,%.3f)", v.VX, v.VY)
	}
	ts.RunTicks(30)
	if sp := math.Hypot(v.VX, v.VY); math.Abs(sp-v.Speed) > 1e-9 {
		t.Fatalf("speed = %.4f, want capped at %.1f", sp, v.Speed)
	}

	ts.Held = InputState{}
	before := v.VX
	ts.RunTicks(1)
	if math.Abs(v.VX-before*friction) > 1e-9 {
		t.Fatalf("coasting vx = %.4f, want %.4f", v.VX, before*friction)
	}
}

func TestVehicle_TurnRotatesHeading(t *testing.T) {
	ts := quietSim(WithVehicleAt(300, 300, VehicleSports, true))
	ts.enterVehicle(0)
	ts.Held = InputState{Right: true}
	ts.RunTicks(10)
	if got := ts.st.Vehicles.Player.Angle; math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("angle = %.4f, want 0.8", got)
	}
}

func TestVehicle_PlayerVehicleFires(t *testing.T) {
	ts := quietSim(WithVehicleAt(300, 300, VehicleTruck, true))
	ts.enterVehicle(0)
	ts.Held = InputState{PointerDown: true}
	ts.RunTicks(1)
	if len(ts.st.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(ts.st.Bullets))
	}
	b := ts.st.Bullets[0]
	if b.Owner != OwnerPlayer || b.Kind != "vehicle:turret" || b.Damage != vehicleDamage {
		t.Fatalf("bullet = %+v", b)
	}
	ts.RunTicks(31) // 496ms after the first shot
	if len(ts.st.Bullets) != 1 {
		t.Fatalf("vehicle fired before its 500ms cooldown: %d bullets", len(ts.st.Bullets))
	}
	ts.RunTicks(1)
	if len(ts.st.Bullets) != 2 {
		t.Fatalf("bullets = %d, want 2 after cooldown", len(ts.st.Bullets))
	}
}

func TestVehicle_AISteersTowardPlayer(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 400),
		WithVehicleAt(90, 100, VehiclePolice, false), // centre (110,110), target straight down
	)
	ts.RunTicks(1)
	v := ts.st.Vehicles.Free[0]
	if math.Abs(v.Angle-v.TurnSpeed) > 1e-9 {
		t.Fatalf("angle after one tick = %.4f, want %.2f", v.Angle, v.TurnSpeed)
	}
	if math.Abs(math.Hypot(v.VX, v.VY)-v.Speed*aiSpeedMul) > 1e-9 {
		t.Fatalf("AI speed = %.3f, want half of %.1f", math.Hypot(v.VX, v.VY), v.Speed)
	}

	ts.RunTicks(60)
	v = ts.st.Vehicles.Free[0]
	vx, vy := v.Center()
	px, py := ts.st.Player.Center()
	if math.Abs(angleDiff(v.Angle, math.Atan2(py-vy, px-vx))) > aiTurnDeadband+v.TurnSpeed {
		t.Fatalf("AI vehicle heading %.3f did not converge on the player", v.Angle)
	}
}

func TestVehicle_AITurnsInPlaceWhenFacingAway(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 400),
		WithVehicleAt(90, 100, VehicleTruck, false),
	)
	ts.st.Vehicles.Free[0].Angle = -math.Pi / 2 // facing straight away
	x0, y0 := ts.st.Vehicles.Free[0].X, ts.st.Vehicles.Free[0].Y
	ts.RunTicks(1)
	v := ts.st.Vehicles.Free[0]
	if v.X != x0 || v.Y != y0 {
		t.Fatalf("vehicle moved while facing away: (%.2f,%.2f)", v.X, v.Y)
	}
}

func TestVehicle_AIFiresWithinRange(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 200),
		WithVehicleAt(90, 100, VehicleSports, false),
	)
	ts.RunTicks(1)
	var enemyShots int
	for _, b := range ts.st.Bullets {
		if b.Owner == OwnerEnemy && b.Kind == "vehicle:none" {
			enemyShots++
		}
	}
	if enemyShots != 1 {
		t.Fatalf("AI vehicle shots = %d, want 1", enemyShots)
	}
}

func TestVehicle_ParkedVehicleIdle(t *testing.T) {
	ts := quietSim(
		WithPlayerAt(100, 200),
		WithVehicleAt(90, 100, VehiclePolice, true),
	)
	ts.RunTicks(20)
	v := ts.st.Vehicles.Free[0]
	if v.X != 90 || v.Y != 100 || len(ts.st.Bullets) != 0 {
		t.Fatalf("parked vehicle acted: pos=(%.1f,%.1f) bullets=%d", v.X, v.Y, len(ts.st.Bullets))
	}
}

func TestVehicle_RammingKillsEnemyWithCredit(t *testing.T) {
	ts := quietSim(WithVehicleAt(300, 300, VehicleTruck, true))
	ts.enterVehicle(0)
	ts.st.Enemies = append(ts.st.Enemies, ts.newEnemy(317, 304))
	ts.st.Enemies[0].FireRateMs = math.Inf(1)

	ts.RunTicks(1)
	if len(ts.st.Enemies) != 0 {
		t.Fatal("rammed enemy should be removed")
	}
	if ts.st.Economy.Kills != 1 || ts.st.Economy.Score != killScore || ts.st.Economy.Cash != killCash {
		t.Fatalf("economy after ram = %+v", ts.st.Economy)
	}
	if got := ts.st.Vehicles.Player.Health; got != 300-ramSelfDamage {
		t.Fatalf("vehicle health = %.0f, want %.0f", got, 300-ramSelfDamage)
	}
}

func TestVehicle_CrashDamagesBothEveryTick(t *testing.T) {
	ts := quietSim(
		WithVehicleAt(200, 200, VehiclePolice, true),
		WithVehicleAt(210, 205, VehicleSports, true),
	)
	ts.RunTicks(2)
	free := ts.st.Vehicles.Free
	if free[0].Health != 150-2*crashDamage || free[1].Health != 100-2*crashDamage {
		t.Fatalf("health after two overlapping ticks = %.0f, %.0f", free[0].Health, free[1].Health)
	}
	var collisions int
	for _, ex := range ts.st.Explosions {
		if ex.Kind == ExplosionCollision {
			collisions++
		}
	}
	if collisions != 2 {
		t.Fatalf("collision explosions = %d, want 2", collisions)
	}
}

func TestVehicle_CrashCooldown(t *testing.T) {
	ts := quietSim(
		WithSimOptions(WithVehicleCollisionCooldown(500*time.Millisecond)),
		WithVehicleAt(200, 200, VehiclePolice, true),
		WithVehicleAt(210, 205, VehicleSports, true),
	)
	ts.RunTicks(10)
	if got := ts.st.Vehicles.Free[0].Health; got != 150-crashDamage {
		t.Fatalf("health inside cooldown = %.0f, want %.0f", got, 150-crashDamage)
	}
	ts.RunTicks(30)
	if got := ts.st.Vehicles.Free[0].Health; got != 150-2*crashDamage {
		t.Fatalf("health after cooldown = %.0f, want %.0f", got, 150-2*crashDamage)
	}
}

func TestVehicle_DestroyedPlayerVehicleForcesExit(t *testing.T) {
	ts := quietSim(WithVehicleAt(300, 300, VehiclePolice, true))
	ts.enterVehicle(0)
	ts.st.Vehicles.Player.Health = 0

	ts.RunTicks(1)
	if ts.st.InVehicle() {
		t.Fatal("player still driving a wreck")
	}
	p := ts.st.Player
	if p.X != 310 || p.Y != 300 {
		t.Fatalf("player ejected at (%.1f,%.1f), want wreck centre (310,300)", p.X, p.Y)
	}
	found := false
	for _, ex := range ts.st.Explosions {
		found = found || ex.Kind == ExplosionVehicle
	}
	if !found {
		t.Fatal("wreck should explode")
	}
}

func TestVehicle_DestroyedFreeVehicleRemoved(t *testing.T) {
	ts := quietSim(
		WithVehicleAt(100, 100, VehiclePolice, true),
		WithVehicleAt(600, 600, VehicleTruck, true),
	)
	ts.st.Vehicles.Free[0].Health = -5
	ts.RunTicks(1)
	if len(ts.st.Vehicles.Free) != 1 || ts.st.Vehicles.Free[0].Kind != VehicleTruck {
		t.Fatalf("free vehicles = %+v", ts.st.Vehicles.Free)
	}
}

func TestVehicle_RamsDestructibleCover(t *testing.T) {
	ts := quietSim(
		WithVehicleAt(300, 300, VehiclePolice, true),
		WithCoverAt(310, 305, CoverDumpster),
		WithCoverAt(320, 305, CoverConcrete),
	)
	ts.enterVehicle(0)
	ts.RunTicks(2)
	objs := ts.st.Cover.Objects
	if objs[0].Health != coverHealth-2*coverRamDamage {
		t.Fatalf("dumpster health = %.0f", objs[0].Health)
	}
	if objs[1].Health != coverHealth {
		t.Fatalf("concrete took ram damage: %.0f", objs[1].Health)
	}
}

func TestVehicle_EnemyBulletsHitVehicleNotPlayer(t *testing.T) {
	ts := quietSim(WithVehicleAt(300, 300, VehicleTruck, true))
	ts.enterVehicle(0)
	ts.st.Bullets = []Bullet{{X: 310, Y: 305, Damage: 15, Owner: OwnerEnemy, Life: 120, Size: enemyBulletSize}}
	ts.RunTicks(1)
	if got := ts.st.Vehicles.Player.Health; got != 285 {
		t.Fatalf("vehicle health = %.0f, want 285", got)
	}
	if ts.st.Player.Health != 100 {
		t.Fatal("hidden player took damage while driving")
	}
}
