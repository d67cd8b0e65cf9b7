package game

// ParticleKind selects a particle palette; the renderer maps it to colours.
type ParticleKind int

const (
	ParticleSpark ParticleKind = iota
	ParticleBlood
	ParticlePickup
	ParticleMuzzle
	ParticleFire
)

// Particle is a short-lived cosmetic dot.
type Particle struct {
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	VX      float64      `json:"vx"`
	VY      float64      `json:"vy"`
	Life    int          `json:"life"`
	MaxLife int          `json:"maxLife"`
	Alpha   float64      `json:"alpha"`
	Kind    ParticleKind `json:"kind"`
	Shade   int          `json:"shade"` // palette index chosen at spawn
}

// ExplosionKind records what blew up.
type ExplosionKind int

const (
	ExplosionEnemy ExplosionKind = iota
	ExplosionVehicle
	ExplosionCollision
	ExplosionCover
)

// Explosion is an expanding ring.
type Explosion struct {
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Radius  float64       `json:"radius"`
	Life    int           `json:"life"`
	MaxLife int           `json:"maxLife"`
	Kind    ExplosionKind `json:"kind"`
}

// PickupKind is the effect a consumable applies.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupAmmo
)

func (k PickupKind) String() string {
	if k == PickupHealth {
		return "health"
	}
	return "ammo"
}

// Pickup is a consumable that expires after Life ticks.
type Pickup struct {
	Rect
	Kind PickupKind `json:"kind"`
	Life int        `json:"life"`
}

// Evidence is a mission objective worth Value cash.
type Evidence struct {
	Rect
	Value     int  `json:"value"`
	Collected bool `json:"collected"`
}

const (
	particleLife       = 30
	particleCount      = 5
	muzzleCount        = 8
	particleSpeed      = 4.0 // velocity range width per axis
	explosionLife      = 30
	explosionGrowth    = 2.0
	explosionSparks    = 15
	explosionSparkLife = 60
	explosionSpeed     = 8.0

	pickupSize    = 16
	pickupLife    = 600
	pickupHeal    = 25.0
	evidenceSize  = 15
	evidenceScore = 50

	// paletteSize is the number of shades per particle kind.
	paletteSize = 3
)

func (s *Sim) spawnParticles(x, y float64, kind ParticleKind) {
	n := particleCount
	if kind == ParticleMuzzle {
		n = muzzleCount
	}
	for i := 0; i < n; i++ {
		s.st.Particles = append(s.st.Particles, Particle{
			X: x, Y: y,
			VX:      (s.rng.Float64() - 0.5) * particleSpeed,
			VY:      (s.rng.Float64() - 0.5) * particleSpeed,
			Life:    particleLife,
			MaxLife: particleLife,
			Alpha:   1,
			Kind:    kind,
			Shade:   s.rng.IntN(paletteSize),
		})
	}
}

func (s *Sim) spawnExplosion(x, y float64, kind ExplosionKind) {
	s.st.Explosions = append(s.st.Explosions, Explosion{
		X: x, Y: y, Life: explosionLife, MaxLife: explosionLife, Kind: kind,
	})
	for i := 0; i < explosionSparks; i++ {
		s.st.Particles = append(s.st.Particles, Particle{
			X: x, Y: y,
			VX:      (s.rng.Float64() - 0.5) * explosionSpeed,
			VY:      (s.rng.Float64() - 0.5) * explosionSpeed,
			Life:    explosionSparkLife,
			MaxLife: explosionSparkLife,
			Alpha:   1,
			Kind:    ParticleFire,
			Shade:   s.rng.IntN(paletteSize),
		})
	}
}

func (s *Sim) spawnPickup(x, y float64, kind PickupKind) {
	s.st.Pickups = append(s.st.Pickups, Pickup{
		Rect: Rect{X: x, Y: y, W: pickupSize, H: pickupSize},
		Kind: kind,
		Life: pickupLife,
	})
}

// updateEffects ages particles, pickups and explosions and drops expired ones.
// Evidence is static and only leaves the store when collected.
func (s *Sim) updateEffects() {
	particles := s.st.Particles[:0]
	for _, p := range s.st.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Alpha = float64(p.Life) / float64(p.MaxLife)
		particles = append(particles, p)
	}
	s.st.Particles = particles

	pickups := s.st.Pickups[:0]
	for _, pk := range s.st.Pickups {
		pk.Life--
		if pk.Life > 0 {
			pickups = append(pickups, pk)
		}
	}
	s.st.Pickups = pickups

	explosions := s.st.Explosions[:0]
	for _, ex := range s.st.Explosions {
		ex.Life--
		ex.Radius += explosionGrowth
		if ex.Life > 0 {
			explosions = append(explosions, ex)
		}
	}
	s.st.Explosions = explosions
}
