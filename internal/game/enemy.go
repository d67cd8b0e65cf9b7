package game

import (
	"fmt"
	"math"
)

const (
	enemySize = 16

	attackRange    = 80.0   // chase -> attack below this
	disengageRange = 100.0  // attack -> chase above this
	loseRange      = 200.0  // chase -> patrol above this
	memoryMs       = 3000.0 // patrol -> chase if seen this recently
	patrolDrift    = 0.1    // max heading wander per tick, radians

	enemyBulletSpeed = 4.0
	enemyBulletLife  = 120
	enemyBulletSize  = 4.0

	killScore = 100
	killCash  = 50

	pickupDropChance = 0.2
)

// AIState is the enemy behaviour state.
type AIState int

const (
	AIPatrol AIState = iota // wandering, no target
	AIChase                 // closing on the player
	AIAttack                // in range, firing
)

func (s AIState) String() string {
	switch s {
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AIAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Enemy is an AI-controlled gunman.
type Enemy struct {
	Body
	ID         int     `json:"id"`
	Health     float64 `json:"health"`
	MaxHealth  float64 `json:"maxHealth"`
	Speed      float64 `json:"speed"`
	FireRateMs float64 `json:"fireRateMs"`
	Damage     float64 `json:"damage"`
	State      AIState `json:"state"`
	TargetX    float64 `json:"targetX"`
	TargetY    float64 `json:"targetY"`
	LastSeenMs float64 `json:"lastSeenMs"`
	LastShotMs float64 `json:"lastShotMs"`
}

func (e *Enemy) label() string {
	return fmt.Sprintf("E%d", e.ID)
}

// nextAIState is the enemy transition function. A current sighting forces
// chase before the distance rules apply.
func nextAIState(cur AIState, sees bool, dist, sinceSeenMs float64) AIState {
	if sees {
		cur = AIChase
	}
	switch cur {
	case AIChase:
		if dist < attackRange {
			return AIAttack
		}
		if dist > loseRange {
			return AIPatrol
		}
	case AIAttack:
		if dist > disengageRange {
			return AIChase
		}
	case AIPatrol:
		if sinceSeenMs < memoryMs {
			return AIChase
		}
	}
	return cur
}

// newEnemy builds a level-scaled enemy at (x, y).
func (s *Sim) newEnemy(x, y float64) Enemy {
	lvl := float64(s.st.Level)
	hp := 50 + lvl*10
	px, py := s.st.Player.Center()
	return Enemy{
		Body:       Body{X: x, Y: y, Width: enemySize, Height: enemySize},
		ID:         s.st.nextID(),
		Health:     hp,
		MaxHealth:  hp,
		Speed:      1 + lvl*0.2,
		FireRateMs: 1000 + s.rng.Float64()*1000,
		Damage:     15 + lvl*2,
		State:      AIPatrol,
		TargetX:    px,
		TargetY:    py,
		LastSeenMs: neverMs,
		LastShotMs: neverMs,
	}
}

// targetPoint is where hostiles aim: the player, or the player's vehicle while driving.
func (st *State) targetPoint() (float64, float64) {
	if v := st.Vehicles.Player; v != nil {
		return v.Center()
	}
	return st.Player.Center()
}

// updateEnemies runs AI, movement and firing for every enemy, then removes the dead.
func (s *Sim) updateEnemies() {
	for i := range s.st.Enemies {
		e := &s.st.Enemies[i]
		s.think(e)

		moveBody(&e.Body, math.Cos(e.Angle)*e.Speed, math.Sin(e.Angle)*e.Speed,
			s.st.Walls, s.st.Width, s.st.Height)

		if e.State == AIAttack && s.st.NowMs-e.LastShotMs > e.FireRateMs {
			s.enemyShoot(e)
			e.LastShotMs = s.st.NowMs
		}
	}

	kept := s.st.Enemies[:0]
	for _, e := range s.st.Enemies {
		if e.Health <= 0 {
			s.killEnemy(e)
			continue
		}
		kept = append(kept, e)
	}
	s.st.Enemies = kept
}

// think updates perception, state and heading for one enemy.
func (s *Sim) think(e *Enemy) {
	ex, ey := e.Center()
	tx, ty := s.st.targetPoint()
	dist := distance(ex, ey, tx, ty)
	sees := HasLineOfSight(ex, ey, tx, ty, s.st.Walls)
	if sees {
		e.LastSeenMs = s.st.NowMs
		e.TargetX, e.TargetY = tx, ty
	}

	prev := e.State
	e.State = nextAIState(e.State, sees, dist, s.st.NowMs-e.LastSeenMs)
	if e.State != prev {
		s.events.AddVerbose(s.st.Tick, e.label(), "ai", "state", prev.String()+" → "+e.State.String(), dist)
	}

	switch e.State {
	case AIChase, AIAttack:
		e.Angle = math.Atan2(e.TargetY-ey, e.TargetX-ex)
	default:
		e.Angle += (s.rng.Float64() - 0.5) * patrolDrift
	}
}

func (s *Sim) enemyShoot(e *Enemy) {
	cx, cy := e.Center()
	s.st.Bullets = append(s.st.Bullets, Bullet{
		X: cx, Y: cy, Angle: e.Angle,
		Speed: enemyBulletSpeed, Damage: e.Damage,
		Owner: OwnerEnemy, Life: enemyBulletLife,
		Size: enemyBulletSize,
	})
	s.play(CueEnemyShoot)
}

// killEnemy credits the kill and spawns the death effects for a removed enemy.
func (s *Sim) killEnemy(e Enemy) {
	s.spawnExplosion(e.X, e.Y, ExplosionEnemy)
	s.play(CueExplosion)
	s.st.Economy.Kills++
	s.st.Economy.Score += killScore
	s.st.Economy.Cash += killCash
	s.metrics.kill()
	s.events.Add(s.st.Tick, e.label(), "combat", "kill", "", float64(s.st.Economy.Kills))

	if s.rng.Float64() < pickupDropChance {
		kind := PickupHealth
		if s.rng.Float64() < 0.5 {
			kind = PickupAmmo
		}
		s.spawnPickup(e.X, e.Y, kind)
	}
}
