package game

import (
	"math"
)

const (
	playerSize        = 20
	playerSpeed       = 3.0
	playerMaxHealth   = 100.0
	sprintMul         = 1.5
	diagonalMul       = math.Sqrt2 / 2
	invulnerabilityMs = 1000.0

	playerBulletSpeed = 8.0
	playerBulletLife  = 120
	playerBulletSize  = 4.0

	startNudgeStep = 10.0 // ring spacing when the centre start is walled in
)

// Player is the on-foot avatar. While driving it is frozen in place and
// hidden; the player vehicle stands in for it.
type Player struct {
	Body
	Speed          float64  `json:"speed"`
	Health         float64  `json:"health"`
	MaxHealth      float64  `json:"maxHealth"`
	Weapon         WeaponID `json:"weapon"`
	Ammo           int      `json:"ammo"`
	MaxAmmo        int      `json:"maxAmmo"`
	ReloadMs       float64  `json:"reloadMs"`       // remaining, blocks firing while > 0
	InvulnerableMs float64  `json:"invulnerableMs"` // remaining, blocks damage while > 0
	LastShotMs     float64  `json:"lastShotMs"`
}

func newPlayer(worldW, worldH float64) Player {
	p := Player{
		Body:       Body{Width: playerSize, Height: playerSize},
		Speed:      playerSpeed,
		Health:     playerMaxHealth,
		MaxHealth:  playerMaxHealth,
		Weapon:     WeaponPistol,
		LastShotMs: neverMs,
	}
	p.place(worldW, worldH, nil)
	return p
}

// place puts the player at the world centre. When a wall covers the centre
// it searches outward in rings for the nearest clear spot, keeping the
// centre if the whole search is blocked.
func (p *Player) place(worldW, worldH float64, walls []Wall) {
	cx, cy := worldW/2, worldH/2
	p.X, p.Y = cx, cy
	if !CollidesWithWalls(p.Rect(), walls) {
		return
	}
	for ring := 1; ring <= placementAttempts; ring++ {
		d := float64(ring) * startNudgeStep
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			r := Rect{
				X: clamp(cx+d*math.Cos(a), 0, worldW-p.Width),
				Y: clamp(cy+d*math.Sin(a), 0, worldH-p.Height),
				W: p.Width,
				H: p.Height,
			}
			if !CollidesWithWalls(r, walls) {
				p.X, p.Y = r.X, r.Y
				return
			}
		}
	}
	p.X, p.Y = cx, cy
}

// Reloading reports whether the reload timer still blocks firing.
func (p *Player) Reloading() bool {
	return p.ReloadMs > 0
}

// moveVector turns held direction keys into a displacement. Diagonals are
// scaled so their length matches a single-axis move.
func moveVector(in InputState, speed float64) (float64, float64) {
	if in.Sprint {
		speed *= sprintMul
	}
	var dx, dy float64
	if in.Up {
		dy -= speed
	}
	if in.Down {
		dy += speed
	}
	if in.Left {
		dx -= speed
	}
	if in.Right {
		dx += speed
	}
	if dx != 0 && dy != 0 {
		dx *= diagonalMul
		dy *= diagonalMul
	}
	return dx, dy
}

// updatePlayer runs the on-foot controller. It is skipped entirely while driving.
func (s *Sim) updatePlayer(in InputState, f *frameInput) {
	if s.st.InVehicle() {
		return
	}
	p := &s.st.Player

	dx, dy := moveVector(in, p.Speed)
	moveBody(&p.Body, dx, dy, s.st.Walls, s.st.Width, s.st.Height)

	cx, cy := p.Center()
	p.Angle = math.Atan2(in.PointerY-cy, in.PointerX-cx)

	if in.PointerDown {
		s.shoot()
	}
	if in.Reload && p.ReloadMs <= 0 {
		s.reload()
	}
	if f.interact {
		if s.tryEnterVehicle() {
			f.interact = false
		}
	}

	p.ReloadMs = countdown(p.ReloadMs, s.st.FrameMs)
	p.InvulnerableMs = countdown(p.InvulnerableMs, s.st.FrameMs)
}

func countdown(v, dt float64) float64 {
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}

// shoot fires the equipped weapon if ammo, cooldown and reload allow it.
// It returns whether a shot was fired.
func (s *Sim) shoot() bool {
	p := &s.st.Player
	w := s.st.equipped()
	if p.Ammo <= 0 || s.st.NowMs-p.LastShotMs <= w.FireRateMs || p.Reloading() {
		return false
	}
	p.Ammo--
	p.LastShotMs = s.st.NowMs

	cx, cy := p.Center()
	s.st.Bullets = append(s.st.Bullets, Bullet{
		X: cx, Y: cy, Angle: p.Angle,
		Speed: playerBulletSpeed, Damage: w.Damage,
		Owner: OwnerPlayer, Life: playerBulletLife,
		Kind: string(w.ID), Size: playerBulletSize,
	})
	for i := 0; i < w.Pellets; i++ {
		offset := (s.rng.Float64()*2 - 1) * pelletSpread
		s.st.Bullets = append(s.st.Bullets, Bullet{
			X: cx, Y: cy, Angle: p.Angle + offset,
			Speed: pelletSpeed, Damage: w.Damage * pelletDamageMul,
			Owner: OwnerPlayer, Life: pelletLife,
			Kind: "pellet", Size: pelletSize,
		})
	}
	s.spawnParticles(cx, cy, ParticleMuzzle)
	s.play(CueShoot)
	s.metrics.shot()
	return true
}

// reload refills the magazine at once and starts the reload timer, which only
// gates the next shot.
func (s *Sim) reload() {
	p := &s.st.Player
	w := s.st.equipped()
	p.ReloadMs = w.ReloadMs
	p.Ammo = w.Capacity
	p.MaxAmmo = w.Capacity
	s.play(CueReload)
}

// resetPlayer restores the player for a fresh level.
func (s *Sim) resetPlayer() {
	p := &s.st.Player
	p.place(s.st.Width, s.st.Height, s.st.Walls)
	p.Health = p.MaxHealth
	w := s.st.equipped()
	p.Ammo = w.Capacity
	p.MaxAmmo = w.Capacity
	p.ReloadMs = 0
	p.InvulnerableMs = 0
}

// damagePlayer applies an enemy hit arriving along angle, reduced by cover.
func (s *Sim) damagePlayer(dmg, angle float64) {
	p := &s.st.Player
	taken := dmg * (1 - s.st.Cover.Protection(angle))
	p.Health = math.Max(0, p.Health-taken)
	p.InvulnerableMs = invulnerabilityMs
	s.play(CueHit)
	s.metrics.playerDamage(taken)
	s.events.Add(s.st.Tick, "P", "combat", "player_hit", "", taken)
}
