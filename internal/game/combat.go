package game

import (
	"math"
)

// Owner identifies which side fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// Bullet is a projectile. X, Y is the top-left of its Size×Size hit box.
type Bullet struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Speed  float64 `json:"speed"`
	Damage float64 `json:"damage"`
	Owner  Owner   `json:"owner"`
	Life   int     `json:"life"` // remaining ticks
	Kind   string  `json:"kind,omitempty"`
	Size   float64 `json:"size"`
}

// Rect returns the bullet's hit box.
func (b Bullet) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

func (b Bullet) outOfBounds(w, h float64) bool {
	return b.X < 0 || b.X > w || b.Y < 0 || b.Y > h
}

// updateBullets advances every bullet and drops those that expired, left the
// world or struck a wall.
func (s *Sim) updateBullets() {
	kept := s.st.Bullets[:0]
	for _, b := range s.st.Bullets {
		b.X += math.Cos(b.Angle) * b.Speed
		b.Y += math.Sin(b.Angle) * b.Speed
		b.Life--
		if b.Life <= 0 || b.outOfBounds(s.st.Width, s.st.Height) {
			continue
		}
		if CollidesWithWalls(b.Rect(), s.st.Walls) {
			s.spawnParticles(b.X, b.Y, ParticleSpark)
			continue
		}
		kept = append(kept, b)
	}
	s.st.Bullets = kept
}

// resolveCollisions handles bullet hits, evidence and pickup collection.
// Each bullet hits at most one target; the first match consumes it.
func (s *Sim) resolveCollisions() {
	kept := s.st.Bullets[:0]
	for _, b := range s.st.Bullets {
		var hit bool
		if b.Owner == OwnerPlayer {
			hit = s.playerBulletHits(b)
		} else {
			hit = s.enemyBulletHits(b)
		}
		if hit {
			s.spawnParticles(b.X, b.Y, ParticleBlood)
			continue
		}
		kept = append(kept, b)
	}
	s.st.Bullets = kept

	s.collectEvidence()
	s.collectPickups()
}

func (s *Sim) playerBulletHits(b Bullet) bool {
	r := b.Rect()
	for i := range s.st.Enemies {
		e := &s.st.Enemies[i]
		if Intersects(r, e.Rect()) {
			e.Health -= b.Damage
			s.play(CueHit)
			s.events.AddVerbose(s.st.Tick, e.label(), "combat", "enemy_hit", b.Kind, b.Damage)
			return true
		}
	}
	for i := range s.st.Vehicles.Free {
		v := &s.st.Vehicles.Free[i]
		if v.Parked {
			continue
		}
		if Intersects(r, v.Rect()) {
			v.Health -= b.Damage
			s.play(CueHit)
			return true
		}
	}
	return false
}

func (s *Sim) enemyBulletHits(b Bullet) bool {
	r := b.Rect()
	if v := s.st.Vehicles.Player; v != nil {
		if Intersects(r, v.Rect()) {
			v.Health -= b.Damage
			s.play(CueHit)
			return true
		}
		return false
	}
	p := &s.st.Player
	if p.InvulnerableMs > 0 || !Intersects(r, p.Rect()) {
		return false
	}
	s.damagePlayer(b.Damage, b.Angle)
	return true
}

// collector is the box that picks things up: the player, or the player vehicle.
func (st *State) collector() Rect {
	if v := st.Vehicles.Player; v != nil {
		return v.Rect()
	}
	return st.Player.Rect()
}

func (s *Sim) collectEvidence() {
	c := s.st.collector()
	kept := s.st.Evidence[:0]
	for _, ev := range s.st.Evidence {
		if !ev.Collected && Intersects(c, ev.Rect) {
			ev.Collected = true
			s.st.Economy.Cash += ev.Value
			s.st.Economy.Score += evidenceScore
			s.st.Mission.EvidenceRemaining--
			s.spawnParticles(ev.X, ev.Y, ParticlePickup)
			s.play(CuePickup)
			s.events.Add(s.st.Tick, "P", "economy", "evidence", "", float64(ev.Value))
			continue
		}
		kept = append(kept, ev)
	}
	s.st.Evidence = kept
}

func (s *Sim) collectPickups() {
	c := s.st.collector()
	kept := s.st.Pickups[:0]
	for _, pk := range s.st.Pickups {
		if Intersects(c, pk.Rect) {
			s.applyPickup(pk)
			continue
		}
		kept = append(kept, pk)
	}
	s.st.Pickups = kept
}

func (s *Sim) applyPickup(pk Pickup) {
	p := &s.st.Player
	switch pk.Kind {
	case PickupHealth:
		p.Health = math.Min(p.MaxHealth, p.Health+pickupHeal)
	case PickupAmmo:
		p.Ammo = s.st.equipped().Capacity
	}
	s.spawnParticles(pk.X, pk.Y, ParticlePickup)
	s.play(CuePickup)
	s.events.Add(s.st.Tick, "P", "economy", "pickup", pk.Kind.String(), 0)
}
