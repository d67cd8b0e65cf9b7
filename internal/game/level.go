package game

const (
	wallMargin  = 50.0
	wallMinSize = 40.0
	wallMaxSize = 80.0

	enemySpawnOffset = 50.0 // spawn this far outside a world edge

	evidenceMargin = 25.0
	evidenceProbe  = 20.0 // placement box, larger than the item itself

	hostileVehicleMinLevel = 3
	hostileVehicleChance   = 0.3
)

// generateLevel clears every transient store and builds the current level:
// walls, cover, enemies, vehicles and evidence, all scaled by level number.
func (s *Sim) generateLevel() {
	st := s.st
	st.Enemies = nil
	st.Bullets = nil
	st.Particles = nil
	st.Explosions = nil
	st.Pickups = nil
	st.Evidence = nil
	st.Walls = nil
	st.Vehicles = Fleet{}
	st.Mission = Mission{}

	s.generateWalls()
	s.generateCover()
	s.resetPlayer()

	for i := 0; i < 5+2*st.Level; i++ {
		s.spawnEnemy()
	}

	s.parkCruiser()
	if st.Level >= hostileVehicleMinLevel && s.rng.Float64() < hostileVehicleChance {
		s.spawnVehicle(s.rng.Float64()*st.Width, s.rng.Float64()*st.Height, VehicleSports, false)
	}

	st.Mission.EvidenceRemaining = 3 + st.Level
	for i := 0; i < st.Mission.EvidenceRemaining; i++ {
		s.spawnEvidence()
	}

	s.events.Add(st.Tick, "--", "level", "generated", "", float64(st.Level))
	s.log.Info().
		Int("level", st.Level).
		Int("walls", len(st.Walls)).
		Int("cover", len(st.Cover.Objects)).
		Int("enemies", len(st.Enemies)).
		Int("evidence", len(st.Evidence)).
		Int("vehicles", len(st.Vehicles.Free)).
		Msg("level generated")
}

func (s *Sim) generateWalls() {
	st := s.st
	n := 8 + st.Level
	st.Walls = make([]Wall, 0, n)
	for i := 0; i < n; i++ {
		st.Walls = append(st.Walls, Wall{Rect{
			X: s.rng.Float64()*(st.Width-2*wallMargin) + wallMargin,
			Y: s.rng.Float64()*(st.Height-2*wallMargin) + wallMargin,
			W: wallMinSize + s.rng.Float64()*(wallMaxSize-wallMinSize),
			H: wallMinSize + s.rng.Float64()*(wallMaxSize-wallMinSize),
		}})
	}
}

// spawnEnemy drops an enemy just outside a random world edge.
func (s *Sim) spawnEnemy() {
	st := s.st
	var x, y float64
	switch s.rng.IntN(4) {
	case 0: // top
		x, y = s.rng.Float64()*st.Width, -enemySpawnOffset
	case 1: // right
		x, y = st.Width+enemySpawnOffset, s.rng.Float64()*st.Height
	case 2: // bottom
		x, y = s.rng.Float64()*st.Width, st.Height+enemySpawnOffset
	default: // left
		x, y = -enemySpawnOffset, s.rng.Float64()*st.Height
	}
	st.Enemies = append(st.Enemies, s.newEnemy(x, y))
}

func (s *Sim) spawnEvidence() {
	st := s.st
	var x, y float64
	for attempt := 0; attempt < placementAttempts; attempt++ {
		x = s.rng.Float64()*(st.Width-2*evidenceMargin) + evidenceMargin
		y = s.rng.Float64()*(st.Height-2*evidenceMargin) + evidenceMargin
		if !CollidesWithWalls(Rect{X: x, Y: y, W: evidenceProbe, H: evidenceProbe}, st.Walls) {
			break
		}
	}
	st.Evidence = append(st.Evidence, Evidence{
		Rect:  Rect{X: x, Y: y, W: evidenceSize, H: evidenceSize},
		Value: 100 + 50*st.Level,
	})
}

// parkCruiser leaves an empty police cruiser somewhere clear of walls and
// the player's start position. The player must already be placed.
func (s *Sim) parkCruiser() {
	st := s.st
	spec := vehicleSpecs[VehiclePolice]
	start := st.Player.Rect()
	var x, y float64
	for attempt := 0; attempt < placementAttempts; attempt++ {
		x = s.rng.Float64() * (st.Width - spec.Width)
		y = s.rng.Float64() * (st.Height - spec.Height)
		r := Rect{X: x, Y: y, W: spec.Width, H: spec.Height}
		if !CollidesWithWalls(r, st.Walls) && !Intersects(r, start) {
			break
		}
	}
	s.spawnVehicle(x, y, VehiclePolice, true)
}
