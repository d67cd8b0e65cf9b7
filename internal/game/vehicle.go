package game

import (
	"fmt"
	"math"
)

// VehicleKind names a vehicle archetype.
type VehicleKind string

const (
	VehiclePolice VehicleKind = "police"
	VehicleSports VehicleKind = "sports"
	VehicleTruck  VehicleKind = "truck"
)

// VehicleWeapon is the mounted weapon kind; it only tags fired bullets.
type VehicleWeapon string

const (
	VehicleWeaponSiren  VehicleWeapon = "siren"
	VehicleWeaponNone   VehicleWeapon = "none"
	VehicleWeaponTurret VehicleWeapon = "turret"
)

// VehicleSpec is the static stat block for a kind.
type VehicleSpec struct {
	Name      string
	Speed     float64
	TurnSpeed float64
	Health    float64
	Width     float64
	Height    float64
	Weapon    VehicleWeapon
}

var vehicleSpecs = map[VehicleKind]VehicleSpec{
	VehiclePolice: {Name: "Police Cruiser", Speed: 4, TurnSpeed: 0.05, Health: 150, Width: 40, Height: 20, Weapon: VehicleWeaponSiren},
	VehicleSports: {Name: "Sports Car", Speed: 6, TurnSpeed: 0.08, Health: 100, Width: 35, Height: 18, Weapon: VehicleWeaponNone},
	VehicleTruck:  {Name: "Armored Truck", Speed: 2.5, TurnSpeed: 0.03, Health: 300, Width: 50, Height: 25, Weapon: VehicleWeaponTurret},
}

// SpecFor returns the stat block for kind.
func SpecFor(kind VehicleKind) (VehicleSpec, bool) {
	spec, ok := vehicleSpecs[kind]
	return spec, ok
}

const (
	vehicleFireRateMs  = 500.0
	vehicleDamage      = 30.0
	vehicleBulletSpeed = 6.0
	vehicleBulletLife  = 120
	vehicleBulletSize  = 5.0

	accelForward = 0.3
	accelReverse = -0.2
	friction     = 0.9

	aiSpeedMul      = 0.5
	aiTurnDeadband  = 0.1
	aiDriveMaxError = math.Pi / 2
	aiEngageRange   = 200.0

	ramEnemyDamage = 50.0 // to the enemy
	ramSelfDamage  = 10.0 // to the player vehicle
	crashDamage    = 20.0 // to each free vehicle in a collision
	coverRamDamage = 5.0  // to destructible cover per overlapping tick
)

// VehicleMode is whether the player is on foot or driving.
type VehicleMode int

const (
	ModeOnFoot VehicleMode = iota
	ModeDriving
)

func (m VehicleMode) String() string {
	if m == ModeDriving {
		return "driving"
	}
	return "onFoot"
}

// Vehicle is a ground vehicle, either free-roaming or driven by the player.
type Vehicle struct {
	Body
	ID                  int           `json:"id"`
	Kind                VehicleKind   `json:"kind"`
	Speed               float64       `json:"speed"`
	TurnSpeed           float64       `json:"turnSpeed"`
	Health              float64       `json:"health"`
	MaxHealth           float64       `json:"maxHealth"`
	VX                  float64       `json:"vx"`
	VY                  float64       `json:"vy"`
	Weapon              VehicleWeapon `json:"weapon"`
	IsPlayer            bool          `json:"isPlayer"`
	Parked              bool          `json:"parked,omitempty"` // AI idle until driven
	FireRateMs          float64       `json:"fireRateMs"`
	Damage              float64       `json:"damage"`
	LastShotMs          float64       `json:"lastShotMs"`
	CollisionCooldownMs float64       `json:"collisionCooldownMs"`
}

func (v *Vehicle) label() string {
	return fmt.Sprintf("V%d", v.ID)
}

// Fleet holds the vehicles. A vehicle is either the single player vehicle or
// a member of Free, never both.
type Fleet struct {
	Free   []Vehicle `json:"free"`
	Player *Vehicle  `json:"player,omitempty"`
}

// Mode returns the player's vehicle mode.
func (f *Fleet) Mode() VehicleMode {
	if f.Player != nil {
		return ModeDriving
	}
	return ModeOnFoot
}

// spawnVehicle adds a free vehicle of kind at (x, y).
func (s *Sim) spawnVehicle(x, y float64, kind VehicleKind, parked bool) *Vehicle {
	spec, ok := vehicleSpecs[kind]
	if !ok {
		spec, kind = vehicleSpecs[VehiclePolice], VehiclePolice
	}
	s.st.Vehicles.Free = append(s.st.Vehicles.Free, Vehicle{
		Body:       Body{X: x, Y: y, Width: spec.Width, Height: spec.Height},
		ID:         s.st.nextID(),
		Kind:       kind,
		Speed:      spec.Speed,
		TurnSpeed:  spec.TurnSpeed,
		Health:     spec.Health,
		MaxHealth:  spec.Health,
		Weapon:     spec.Weapon,
		Parked:     parked,
		FireRateMs: vehicleFireRateMs,
		Damage:     vehicleDamage,
		LastShotMs: neverMs,
	})
	return &s.st.Vehicles.Free[len(s.st.Vehicles.Free)-1]
}

// tryEnterVehicle boards the first free vehicle overlapping the player.
func (s *Sim) tryEnterVehicle() bool {
	pr := s.st.Player.Rect()
	for i := range s.st.Vehicles.Free {
		if Intersects(pr, s.st.Vehicles.Free[i].Rect()) {
			return s.enterVehicle(i)
		}
	}
	return false
}

// enterVehicle moves Free[i] into the player slot. It is a no-op while
// already driving or for a bad index.
func (s *Sim) enterVehicle(i int) bool {
	f := &s.st.Vehicles
	if f.Player != nil || i < 0 || i >= len(f.Free) {
		return false
	}
	v := f.Free[i]
	f.Free = append(f.Free[:i], f.Free[i+1:]...)
	v.IsPlayer = true
	v.Parked = false
	f.Player = &v
	s.events.Add(s.st.Tick, v.label(), "vehicle", "enter", string(v.Kind), v.Health)
	s.log.Debug().Str("vehicle", v.label()).Str("kind", string(v.Kind)).Msg("entered vehicle")
	return true
}

// exitVehicle puts the player down at the vehicle's centre and clears the
// player slot. The vehicle is discarded, not returned to the free set.
func (s *Sim) exitVehicle() bool {
	f := &s.st.Vehicles
	v := f.Player
	if v == nil {
		return false
	}
	cx, cy := v.Center()
	p := &s.st.Player
	p.X = clamp(cx-p.Width/2, 0, s.st.Width-p.Width)
	p.Y = clamp(cy-p.Height/2, 0, s.st.Height-p.Height)
	f.Player = nil
	s.events.Add(s.st.Tick, v.label(), "vehicle", "exit", string(v.Kind), v.Health)
	s.log.Debug().Str("vehicle", v.label()).Msg("exited vehicle")
	return true
}

// updateVehicles drives the player vehicle and the AI vehicles, then
// removes wrecks. A wrecked player vehicle ejects the player.
func (s *Sim) updateVehicles(in InputState, f *frameInput) {
	if v := s.st.Vehicles.Player; v != nil {
		s.drive(v, in)
		if f.interact {
			f.interact = false
			s.exitVehicle()
		}
	}

	free := s.st.Vehicles.Free
	for i := range free {
		v := &free[i]
		v.CollisionCooldownMs = countdown(v.CollisionCooldownMs, s.st.FrameMs)
		if !v.Parked {
			s.steerAI(v)
		}
	}

	kept := free[:0]
	for _, v := range free {
		if v.Health <= 0 {
			s.wreck(&v)
			continue
		}
		kept = append(kept, v)
	}
	s.st.Vehicles.Free = kept

	if v := s.st.Vehicles.Player; v != nil && v.Health <= 0 {
		s.exitVehicle()
		s.wreck(v)
	}
}

func (s *Sim) wreck(v *Vehicle) {
	s.spawnExplosion(v.X, v.Y, ExplosionVehicle)
	s.play(CueExplosion)
	s.events.Add(s.st.Tick, v.label(), "vehicle", "destroyed", string(v.Kind), 0)
	s.log.Debug().Str("vehicle", v.label()).Bool("player", v.IsPlayer).Msg("vehicle destroyed")
}

// drive applies player controls: thrust along the heading, friction when
// idle, a speed cap, and turning.
func (s *Sim) drive(v *Vehicle, in InputState) {
	var accel, turn float64
	if in.Up {
		accel = accelForward
	}
	if in.Down {
		accel = accelReverse
	}
	if in.Left {
		turn = -1
	}
	if in.Right {
		turn = 1
	}
	v.Angle += turn * v.TurnSpeed

	if accel != 0 {
		v.VX += math.Cos(v.Angle) * accel
		v.VY += math.Sin(v.Angle) * accel
	} else {
		v.VX *= friction
		v.VY *= friction
	}
	if sp := math.Hypot(v.VX, v.VY); sp > v.Speed {
		ratio := v.Speed / sp
		v.VX *= ratio
		v.VY *= ratio
	}

	moveBody(&v.Body, v.VX, v.VY, s.st.Walls, s.st.Width, s.st.Height)

	if in.PointerDown && s.st.NowMs-v.LastShotMs > v.FireRateMs {
		s.vehicleShoot(v)
		v.LastShotMs = s.st.NowMs
	}
}

// steerAI turns a hostile vehicle toward the player, drives at half speed
// once roughly aligned and fires inside the engagement radius.
func (s *Sim) steerAI(v *Vehicle) {
	vx, vy := v.Center()
	tx, ty := s.st.targetPoint()
	dist := distance(vx, vy, tx, ty)
	if dist > 0 {
		diff := angleDiff(v.Angle, math.Atan2(ty-vy, tx-vx))
		if math.Abs(diff) > aiTurnDeadband {
			step := math.Min(math.Abs(diff), v.TurnSpeed)
			v.Angle += math.Copysign(step, diff)
			diff -= math.Copysign(step, diff)
		}
		if math.Abs(diff) < aiDriveMaxError {
			v.VX = math.Cos(v.Angle) * v.Speed * aiSpeedMul
			v.VY = math.Sin(v.Angle) * v.Speed * aiSpeedMul
		} else {
			v.VX, v.VY = 0, 0
		}
		moveBody(&v.Body, v.VX, v.VY, s.st.Walls, s.st.Width, s.st.Height)
	}

	if dist < aiEngageRange && s.st.NowMs-v.LastShotMs > v.FireRateMs {
		s.vehicleShoot(v)
		v.LastShotMs = s.st.NowMs
	}
}

func (s *Sim) vehicleShoot(v *Vehicle) {
	owner, cue := OwnerEnemy, CueEnemyShoot
	if v.IsPlayer {
		owner, cue = OwnerPlayer, CueShoot
		s.metrics.shot()
	}
	cx, cy := v.Center()
	s.st.Bullets = append(s.st.Bullets, Bullet{
		X: cx, Y: cy, Angle: v.Angle,
		Speed: vehicleBulletSpeed, Damage: v.Damage,
		Owner: owner, Life: vehicleBulletLife,
		Kind: "vehicle:" + string(v.Weapon), Size: vehicleBulletSize,
	})
	s.play(cue)
}

// resolveVehicleCollisions applies ramming, vehicle-vs-vehicle crashes and
// cover damage from vehicles.
func (s *Sim) resolveVehicleCollisions() {
	if v := s.st.Vehicles.Player; v != nil {
		vr := v.Rect()
		kept := s.st.Enemies[:0]
		for _, e := range s.st.Enemies {
			if Intersects(vr, e.Rect()) {
				e.Health -= ramEnemyDamage
				v.Health -= ramSelfDamage
				s.killEnemy(e)
				continue
			}
			kept = append(kept, e)
		}
		s.st.Enemies = kept
	}

	free := s.st.Vehicles.Free
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			a, b := &free[i], &free[j]
			if a.CollisionCooldownMs > 0 || b.CollisionCooldownMs > 0 {
				continue
			}
			if !Intersects(a.Rect(), b.Rect()) {
				continue
			}
			a.Health -= crashDamage
			b.Health -= crashDamage
			a.CollisionCooldownMs = s.cfg.collisionCooldownMs
			b.CollisionCooldownMs = s.cfg.collisionCooldownMs
			ax, ay := a.Center()
			bx, by := b.Center()
			s.spawnExplosion((ax+bx)/2, (ay+by)/2, ExplosionCollision)
		}
	}

	s.ramCover()
}

func (s *Sim) ramCover() {
	objs := s.st.Cover.Objects
	hit := func(r Rect) {
		for i := range objs {
			if objs[i].Destructible && Intersects(r, objs[i].Rect) {
				objs[i].Health -= coverRamDamage
			}
		}
	}
	if v := s.st.Vehicles.Player; v != nil {
		hit(v.Rect())
	}
	for i := range s.st.Vehicles.Free {
		hit(s.st.Vehicles.Free[i].Rect())
	}
}
